package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/dtxscan/internal/dtsx"
	"github.com/mvp-joe/dtxscan/internal/extract"
	"github.com/mvp-joe/dtxscan/internal/search"
)

var searchLimit int

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query> [paths...]",
	Short: "Full-text search over embedded SQL",
	Long: `Search extracts every SQL statement from the scanned packages,
indexes them in memory and runs the query against the index.

Queries use bleve syntax: bare terms, "quoted phrases", wildcard*,
boolean +must -mustnot, and field scoping such as component_type:Lookup.

Examples:
  # Which packages touch the Customers table?
  dtxscan search Customers /srv/ssis/packages

  # Lookup components selecting from a staging schema
  dtxscan search '+component_type:Lookup +staging'
`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 20, "maximum number of hits")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query, paths := args[0], args[1:]
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	files, err := resolvePaths(paths, cfg)
	if err != nil {
		return err
	}

	// Gather all SQL records, then index them in one batch.
	var records []dtsx.SQLRecord
	runner, done := newRunner(len(files))
	_, err = runner.SQL(files, extract.NewFilter(nil), func(rec dtsx.SQLRecord) error {
		if rec.SQL != "" {
			records = append(records, rec)
		}
		return nil
	})
	done()
	if err != nil {
		return err
	}

	idx, err := search.NewIndex()
	if err != nil {
		return err
	}
	defer idx.Close()
	if err := idx.Add(records); err != nil {
		return err
	}

	hits, err := idx.Search(query, searchLimit)
	if err != nil {
		return err
	}
	if len(hits) == 0 {
		fmt.Printf("no matches for %q in %d statements\n", query, len(records))
		return nil
	}

	for i, hit := range hits {
		fmt.Printf("%d. %s  [%s] %s (score %.2f)\n",
			i+1, hit.Record.File, hit.Record.ComponentType, hit.Record.ComponentName, hit.Score)
		if hit.Record.TaskName != "" {
			fmt.Printf("   task: %s\n", hit.Record.TaskName)
		}
		for _, fragment := range hit.Fragments {
			fmt.Printf("   %s\n", fragment)
		}
	}
	return nil
}
