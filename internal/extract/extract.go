// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract implements batch PDF-to-PNG page extraction with pluggable
// rasterization backends.
package extract

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/archive-press/pkg/types"
)

// Rasterizer renders every page of a PDF into a bitmap at the given DPI.
// Implementations return either the complete page sequence in page order or
// an error; a partial sequence is never returned.
type Rasterizer interface {
	Rasterize(path string, dpi int) ([]image.Image, error)
}

// Reporter observes batch progress. Implementations run inline with the
// conversion loop and must be cheap.
type Reporter interface {
	// Step is called once after each document finishes, with the number of
	// documents completed so far and the batch total.
	Step(done, total int)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(done, total int)

func (f ReporterFunc) Step(done, total int) { f(done, total) }

// Recorder persists per-document outcomes. Recording errors are surfaced as
// warnings and never fail the run.
type Recorder interface {
	Record(doc types.Document, out types.Outcome, cfg types.ExtractConfig) error
}

// PageFileName returns the output file name for the 1-based page index,
// e.g. "report_page001.png".
func PageFileName(stem string, page int) string {
	return fmt.Sprintf("%s_page%03d.png", stem, page)
}

// HasBeenExtracted reports whether doc already has output in outDir. Only
// the page-1 file is checked, so a run interrupted after page 1 was written
// is treated as complete on the next run.
func HasBeenExtracted(doc types.Document, outDir string) bool {
	_, err := os.Stat(filepath.Join(outDir, PageFileName(doc.Stem, 1)))
	return err == nil
}

// ExtractDocument rasterizes every page of doc and writes one PNG per page
// into outDir, in page order. When skipExisting is set and the page-1 file
// already exists the filesystem is left untouched. Errors do not propagate:
// rasterization and write failures are folded into a failed Outcome so the
// batch continues with the next document. A failure mid-write leaves the
// pages written so far on disk; there is no rollback.
func ExtractDocument(r Rasterizer, doc types.Document, outDir string, dpi int, skipExisting bool, w io.Writer) types.Outcome {
	if skipExisting && HasBeenExtracted(doc, outDir) {
		return types.Outcome{Status: types.ExtractionSkipped}
	}

	name := filepath.Base(doc.Path)
	fmt.Fprintf(w, "Processing: %s (%.2f MB)\n", name, float64(doc.Size)/(1024*1024))

	images, err := r.Rasterize(doc.Path, dpi)
	if err != nil {
		fmt.Fprintf(w, "  ERROR processing %s: %v\n", name, err)
		return types.Outcome{Status: types.ExtractionFailed, Err: err.Error()}
	}

	fmt.Fprintf(w, "  %d pages to extract\n", len(images))

	for i, img := range images {
		path := filepath.Join(outDir, PageFileName(doc.Stem, i+1))
		if err := writePNG(path, img); err != nil {
			fmt.Fprintf(w, "  ERROR processing %s: %v\n", name, err)
			return types.Outcome{Status: types.ExtractionFailed, Err: err.Error()}
		}
	}

	fmt.Fprintf(w, "  Completed: %s\n", name)
	return types.Outcome{Status: types.ExtractionDone, Pages: len(images)}
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}

// ListDocuments enumerates the *.pdf entries directly under archiveDir,
// sorted lexicographically by name.
func ListDocuments(archiveDir string) ([]types.Document, error) {
	entries, err := os.ReadDir(archiveDir)
	if err != nil {
		return nil, fmt.Errorf("reading archive directory %s: %w", archiveDir, err)
	}

	// os.ReadDir returns entries sorted by filename.
	var docs []types.Document
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.EqualFold(filepath.Ext(name), ".pdf") {
			continue
		}
		var size int64
		if info, err := entry.Info(); err == nil {
			size = info.Size()
		}
		docs = append(docs, types.Document{
			Path: filepath.Join(archiveDir, name),
			Stem: strings.TrimSuffix(name, filepath.Ext(name)),
			Size: size,
		})
	}
	return docs, nil
}

// Run executes one batch pass: enumerate the archive, extract or skip each
// document in order, and print a summary to w. reporter and rec may be nil.
// Only startup failures (unreadable archive, uncreatable output directory)
// return an error; per-document failures are counted and reported inline.
func Run(r Rasterizer, cfg types.ExtractConfig, w io.Writer, reporter Reporter, rec Recorder) (types.RunSummary, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return types.RunSummary{}, fmt.Errorf("creating output directory %s: %w", cfg.OutputDir, err)
	}

	docs, err := ListDocuments(cfg.ArchiveDir)
	if err != nil {
		return types.RunSummary{}, err
	}
	if len(docs) == 0 {
		fmt.Fprintf(w, "No PDF files found in %s\n", cfg.ArchiveDir)
		return types.RunSummary{}, nil
	}

	fmt.Fprintf(w, "Found %d PDF files\n", len(docs))
	fmt.Fprintf(w, "Output directory: %s\n\n", cfg.OutputDir)

	summary := types.RunSummary{Total: len(docs)}
	for i, doc := range docs {
		out := ExtractDocument(r, doc, cfg.OutputDir, cfg.DPI, cfg.SkipExisting, w)
		switch out.Status {
		case types.ExtractionSkipped:
			summary.Skipped++
		case types.ExtractionDone:
			summary.Processed++
			summary.TotalPages += out.Pages
		case types.ExtractionFailed:
			summary.Failed++
		}

		if rec != nil {
			if err := rec.Record(doc, out, cfg); err != nil {
				fmt.Fprintf(w, "warning: could not record %s in manifest: %v\n", doc.Stem, err)
			}
		}
		if reporter != nil {
			reporter.Step(i+1, len(docs))
		}
	}

	printSummary(w, summary, cfg.OutputDir)
	return summary, nil
}

func printSummary(w io.Writer, s types.RunSummary, outDir string) {
	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 60))
	fmt.Fprintln(w, "Complete!")
	fmt.Fprintf(w, "Processed: %d files\n", s.Processed)
	fmt.Fprintf(w, "Skipped (already extracted): %d files\n", s.Skipped)
	fmt.Fprintf(w, "Total: %d files\n", s.Total)
	fmt.Fprintf(w, "Total pages extracted: %d\n", s.TotalPages)
	fmt.Fprintf(w, "Output directory: %s\n", outDir)
}
