// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/archive-press/internal/extract"
	"github.com/pdiddy/archive-press/internal/manifest"
	"github.com/pdiddy/archive-press/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract every PDF page in the archive to PNG images",
	Long: `Extract enumerates the PDFs in the archive directory, renders each page
at the configured DPI, and writes one numbered PNG per page into the output
directory. Documents whose page-1 output already exists are skipped, so an
interrupted batch can be resumed by running extract again.

Two rasterization backends are supported: fitz (embedded MuPDF, the default)
and pdftoppm (poppler-utils).`,
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := types.ExtractConfig{
		ArchiveDir:   stringSetting(cmd, "archive-dir", "archive_dir"),
		OutputDir:    stringSetting(cmd, "output-dir", "output_dir"),
		DPI:          intSetting(cmd, "dpi", "dpi"),
		SkipExisting: boolSetting(cmd, "skip-existing", "skip_existing"),
		Backend:      types.RasterBackend(stringSetting(cmd, "backend", "backend")),
	}

	rasterizer, err := newRasterizer(cfg.Backend)
	if err != nil {
		return err
	}

	var rec extract.Recorder
	if boolSetting(cmd, "manifest", "manifest") {
		store, err := manifest.NewStore(cfg.OutputDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: manifest disabled: %v\n", err)
		} else {
			defer store.Close()
			rec = store
		}
	}

	bar := extract.NewProgressBar(os.Stderr, "Extracting PDFs")
	summary, err := extract.Run(rasterizer, cfg, os.Stdout, bar, rec)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d document(s) failed extraction", summary.Failed)
	}
	return nil
}

func newRasterizer(backend types.RasterBackend) (extract.Rasterizer, error) {
	switch backend {
	case types.BackendFitz, "":
		return extract.FitzRasterizer{}, nil
	case types.BackendPdftoppm:
		return extract.NewPdftoppmRasterizer()
	default:
		return nil, fmt.Errorf("unsupported backend %q: use fitz or pdftoppm", backend)
	}
}

func init() {
	extractCmd.Flags().String("archive-dir", "Snowden archive", "directory containing the input PDFs")
	extractCmd.Flags().String("output-dir", "Snowden-PNGs", "directory for the extracted page images")
	extractCmd.Flags().Int("dpi", 200, "rasterization resolution in dots per inch")
	extractCmd.Flags().Bool("skip-existing", true, "skip documents whose page-1 output already exists")
	extractCmd.Flags().String("backend", "fitz", "rasterization backend: fitz or pdftoppm")
	extractCmd.Flags().Bool("manifest", true, "record per-document outcomes in the manifest database")

	rootCmd.AddCommand(extractCmd)
}
