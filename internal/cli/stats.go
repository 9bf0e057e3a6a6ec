package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/dtxscan/internal/config"
	"github.com/mvp-joe/dtxscan/internal/dtsx"
	"github.com/mvp-joe/dtxscan/internal/extract"
	"github.com/mvp-joe/dtxscan/internal/output"
	"github.com/mvp-joe/dtxscan/internal/stats"
	"github.com/mvp-joe/dtxscan/internal/watcher"
)

var (
	statsFormat string
	statsWatch  bool
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats [paths...]",
	Short: "Aggregate counts across a package corpus",
	Long: `Stats scans the corpus once and prints how many packages, tasks,
components, variables, connections and configurations it holds, broken
down by type.

With --watch, the scan re-runs whenever a package file changes.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVarP(&statsFormat, "format", "f", "", "output format: table or json")
	statsCmd.Flags().BoolVarP(&statsWatch, "watch", "w", false, "re-run when package files change")
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	format := pickFormat(statsFormat, cfg)
	if format != output.FormatTable && format != output.FormatJSON {
		return fmt.Errorf("unknown stats format %q (expected table or json)", format)
	}

	roots := args
	if len(roots) == 0 {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		roots = []string{wd}
	}

	if err := collectStats(roots, cfg, format); err != nil {
		return err
	}
	if !statsWatch {
		return nil
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	w, err := watcher.New(roots)
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	log.Println("watching for package changes (Ctrl+C to stop)")
	err = w.Run(ctx, func(changed []string) {
		log.Printf("%d package(s) changed, rescanning", len(changed))
		if err := collectStats(roots, cfg, format); err != nil {
			log.Printf("rescan failed: %v", err)
		}
	})
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func collectStats(roots []string, cfg *config.Config, format string) error {
	files, err := resolvePaths(roots, cfg)
	if err != nil {
		return err
	}

	agg := stats.NewAggregator()
	runner, done := newRunner(len(files))
	summary, err := runner.Content(files, extract.NewFilter(nil), func(rec dtsx.ContentRecord) error {
		agg.Add(rec)
		return nil
	})
	done()
	if err != nil {
		return err
	}

	result := agg.Summary()
	if format == output.FormatJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	printStatsTable(result, summary)
	return nil
}

func printStatsTable(s stats.Summary, run extract.Summary) {
	fmt.Printf("Packages: %d   Records: %d   Skipped: %d   Parse failures: %d\n\n",
		s.Files, s.Records, run.Skipped, run.Failed)

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	section := func(title string, counts []stats.Count) {
		if len(counts) == 0 {
			return
		}
		fmt.Fprintf(tw, "%s\t\n", title)
		for _, c := range counts {
			fmt.Fprintf(tw, "  %s\t%d\n", c.Label, c.Count)
		}
		fmt.Fprintln(tw, "\t")
	}
	section("By category", s.ByCategory)
	section("Task types", s.TaskTypes)
	section("Data flow component types", s.ComponentTypes)
	section("Connection kinds", s.ConnectionKinds)
	tw.Flush()
}
