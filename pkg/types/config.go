// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// RasterBackend selects the page rasterization backend.
type RasterBackend string

const (
	BackendFitz     RasterBackend = "fitz"
	BackendPdftoppm RasterBackend = "pdftoppm"
)

// ExtractConfig holds settings for one batch extraction run. Defaults are
// applied at the CLI boundary; the extraction core never hardcodes paths.
type ExtractConfig struct {
	// ArchiveDir is the directory containing the input PDFs.
	ArchiveDir string `json:"archive_dir" yaml:"archive_dir"`

	// OutputDir is the directory page images are written to. Created on
	// demand if absent.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// DPI is the rasterization resolution (default 200).
	DPI int `json:"dpi" yaml:"dpi"`

	// SkipExisting controls whether documents with an existing page-1
	// output file are skipped.
	SkipExisting bool `json:"skip_existing" yaml:"skip_existing"`

	// Backend selects the rasterizer: fitz or pdftoppm.
	Backend RasterBackend `json:"backend" yaml:"backend"`
}

// SlideshowConfig holds settings for slideshow video generation.
type SlideshowConfig struct {
	// SongPath is the audio track for the video.
	SongPath string `json:"song_path" yaml:"song_path"`

	// OutputPath is the video file to write.
	OutputPath string `json:"output_path" yaml:"output_path"`

	// PNGDir is the directory scanned (recursively) for page images.
	PNGDir string `json:"png_dir" yaml:"png_dir"`

	// JumpCutSeconds is the display time per image (default 0.1).
	JumpCutSeconds float64 `json:"jump_cut_seconds" yaml:"jump_cut_seconds"`

	// Framerate is the output video frame rate (default 30).
	Framerate int `json:"framerate" yaml:"framerate"`
}
