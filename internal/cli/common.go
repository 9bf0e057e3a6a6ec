package cli

import (
	"os"

	"github.com/spf13/viper"

	"github.com/mvp-joe/dtxscan/internal/config"
	"github.com/mvp-joe/dtxscan/internal/discovery"
	"github.com/mvp-joe/dtxscan/internal/extract"
)

// loadConfig builds the effective configuration from defaults, config
// file, environment and flags.
func loadConfig() (*config.Config, error) {
	return config.Load(viper.GetViper())
}

// resolvePaths expands command arguments into the list of files to scan.
// Directory arguments are walked with the configured include/ignore
// patterns; plain file arguments pass through untouched (the extraction
// runner still applies its extension gate). No arguments means the
// current directory.
func resolvePaths(args []string, cfg *config.Config) ([]string, error) {
	if len(args) == 0 {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		args = []string{wd}
	}
	corpus, err := discovery.New(args, cfg.Paths.Include, cfg.Paths.Ignore)
	if err != nil {
		return nil, err
	}
	return corpus.Files()
}

// newRunner builds the extraction runner shared by all commands, wiring
// progress reporting for multi-file scans.
func newRunner(total int) (*extract.Runner, func()) {
	bar := newScanBar(total, quiet)
	runner := &extract.Runner{
		Verbose: verbose,
		OnFile:  func(string) { bar.advance() },
	}
	return runner, bar.finish
}

// pickFormat prefers the per-command flag over the configured default.
func pickFormat(flag string, cfg *config.Config) string {
	if flag != "" {
		return flag
	}
	return cfg.Output.Format
}
