// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the archive-press pipeline.
package types

// ExtractionStatus indicates the state of PDF-to-PNG extraction for a document.
type ExtractionStatus string

const (
	ExtractionSkipped ExtractionStatus = "skipped"
	ExtractionDone    ExtractionStatus = "extracted"
	ExtractionFailed  ExtractionStatus = "failed"
)

// Document identifies one input PDF discovered in the archive directory.
type Document struct {
	// Path is the filesystem path to the PDF.
	Path string `json:"path" yaml:"path"`

	// Stem is the base name without its extension. It prefixes every page
	// file generated for this document.
	Stem string `json:"stem" yaml:"stem"`

	// Size is the PDF size in bytes.
	Size int64 `json:"size" yaml:"size"`
}

// Outcome is the result of attempting to extract one document.
type Outcome struct {
	Status ExtractionStatus

	// Pages is the number of page images written; zero unless Status is
	// ExtractionDone.
	Pages int

	// Err carries the failure message when Status is ExtractionFailed.
	Err string
}

// RunSummary accumulates counts over one batch run. Failed documents count
// toward Total but neither Processed nor Skipped.
type RunSummary struct {
	Processed  int
	Skipped    int
	Failed     int
	TotalPages int
	Total      int
}
