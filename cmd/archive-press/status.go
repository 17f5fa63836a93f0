// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/archive-press/internal/manifest"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show recorded extraction outcomes",
	Long: `Status reads the manifest database under the output directory and lists
one line per document: status, page count, size, and when it was recorded.
Use --format to export the manifest as YAML or JSON instead of a table.`,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	outputDir := stringSetting(cmd, "output-dir", "output_dir")

	store, err := manifest.NewStore(outputDir)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "yaml":
		return store.ExportYAML(ctx, os.Stdout)
	case "json":
		return store.ExportJSON(ctx, os.Stdout)
	case "table", "":
		return printStatusTable(ctx, store)
	default:
		return fmt.Errorf("unsupported format %q: use table, yaml, or json", format)
	}
}

func printStatusTable(ctx context.Context, store *manifest.Store) error {
	entries, err := store.List(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No extractions recorded.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-40s  %-10s  %6s  %10s  %s\n",
		"Document", "Status", "Pages", "Size (MB)", "Recorded")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))

	for _, e := range entries {
		stem := e.Stem
		if len(stem) > 40 {
			stem = stem[:37] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-40s  %-10s  %6d  %10.2f  %s\n",
			stem, e.Status, e.Pages, float64(e.SizeBytes)/(1024*1024),
			e.RecordedAt.Format("2006-01-02 15:04"))
	}

	fmt.Fprintf(os.Stdout, "\n%d documents\n", len(entries))
	return nil
}

func init() {
	statusCmd.Flags().String("output-dir", "Snowden-PNGs", "output directory holding the manifest database")
	statusCmd.Flags().String("format", "table", "output format: table, yaml, or json")

	rootCmd.AddCommand(statusCmd)
}
