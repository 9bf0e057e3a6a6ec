// Package discovery enumerates candidate package files under corpus
// roots using glob include/ignore patterns.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/gobwas/glob"
)

// compiledPattern holds both the pattern string and its compiled glob.
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// Corpus discovers package files under a set of roots. Roots that are
// plain files are passed through directly; directories are walked with
// the include and ignore patterns applied to slash-normalized paths
// relative to the root.
type Corpus struct {
	roots   []string
	include []compiledPattern
	ignore  []compiledPattern
}

// DefaultInclude matches SSIS package files anywhere under a root.
var DefaultInclude = []string{"**/*.dtsx", "*.dtsx"}

// New compiles the patterns and returns a Corpus. Empty include falls
// back to DefaultInclude.
func New(roots, include, ignore []string) (*Corpus, error) {
	if len(include) == 0 {
		include = DefaultInclude
	}
	c := &Corpus{roots: roots}
	for _, pattern := range include {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("include pattern %q: %w", pattern, err)
		}
		c.include = append(c.include, compiledPattern{pattern: pattern, glob: g})
	}
	for _, pattern := range ignore {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("ignore pattern %q: %w", pattern, err)
		}
		c.ignore = append(c.ignore, compiledPattern{pattern: pattern, glob: g})
	}
	return c, nil
}

// Files walks every root and returns the matching files, sorted for
// deterministic run order.
func (c *Corpus) Files() ([]string, error) {
	var files []string
	for _, root := range c.roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("corpus root %s: %w", root, err)
		}
		if !info.IsDir() {
			files = append(files, root)
			continue
		}
		err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return nil
			}
			relPath, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			relPath = filepath.ToSlash(relPath)
			if c.ignored(relPath) {
				return nil
			}
			if matchesAny(relPath, c.include) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}

func (c *Corpus) ignored(relPath string) bool {
	if matchesAny(relPath, c.ignore) {
		return true
	}
	// A directory ignore like "archive/**" should also drop the bare
	// directory path itself.
	return matchesAny(relPath+"/**", c.ignore)
}

func matchesAny(relPath string, patterns []compiledPattern) bool {
	for _, p := range patterns {
		if p.glob.Match(relPath) {
			return true
		}
	}
	return false
}
