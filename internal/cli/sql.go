package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/dtxscan/internal/extract"
	"github.com/mvp-joe/dtxscan/internal/output"
)

var (
	sqlTypes  []string
	sqlFormat string
)

// sqlCmd represents the sql command
var sqlCmd = &cobra.Command{
	Use:   "sql [paths...]",
	Short: "Extract SQL statements embedded in packages",
	Long: `Sql extracts the query text carried by Execute SQL Tasks, OLE DB
sources, destinations and commands, Lookups, and variable expressions.

Examples:
  # All embedded SQL under the current directory
  dtxscan sql

  # Only Execute SQL Task statements, as JSON
  dtxscan sql --type "Execute SQL Task" --format json /srv/ssis/packages
`,
	RunE: runSQL,
}

func init() {
	rootCmd.AddCommand(sqlCmd)
	sqlCmd.Flags().StringSliceVarP(&sqlTypes, "type", "t", nil,
		`component types to extract (default "All")`)
	sqlCmd.Flags().StringVarP(&sqlFormat, "format", "f", "", "output format: table, json or csv")
}

func runSQL(cmd *cobra.Command, args []string) error {
	if err := extract.ValidateSQLTypes(sqlTypes); err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	files, err := resolvePaths(args, cfg)
	if err != nil {
		return err
	}

	writer, err := output.NewSQLWriter(pickFormat(sqlFormat, cfg), os.Stdout)
	if err != nil {
		return err
	}

	runner, done := newRunner(len(files))
	summary, err := runner.SQL(files, extract.NewFilter(sqlTypes), writer.Write)
	done()
	if err != nil {
		return err
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if verbose {
		log.Printf("%d records from %d files (%d skipped, %d failed to parse)",
			summary.Records, summary.Files, summary.Skipped, summary.Failed)
	}
	return nil
}
