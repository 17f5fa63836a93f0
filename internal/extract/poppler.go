// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

const binPdftoppm = "pdftoppm"

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(name string, args ...string) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osExecutor) Run(name string, args ...string) error {
	out, err := exec.Command(name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, bytes.TrimSpace(out))
	}
	return nil
}

var defaultExec executor = osExecutor{}

// PdftoppmRasterizer shells out to poppler's pdftoppm. Pages are rendered
// into a temporary directory and decoded back into memory, so the caller
// owns every write under the output directory.
type PdftoppmRasterizer struct {
	exec executor
}

// NewPdftoppmRasterizer verifies that pdftoppm is on PATH and returns a
// rasterizer that uses it.
func NewPdftoppmRasterizer() (*PdftoppmRasterizer, error) {
	return newPdftoppmRasterizer(defaultExec)
}

func newPdftoppmRasterizer(exec executor) (*PdftoppmRasterizer, error) {
	if _, err := exec.LookPath(binPdftoppm); err != nil {
		return nil, fmt.Errorf("%s not found, install poppler-utils: %w", binPdftoppm, err)
	}
	return &PdftoppmRasterizer{exec: exec}, nil
}

// Rasterize renders every page of the PDF at path via pdftoppm. The tool
// pads its page numbers to a uniform width per invocation, so the sorted
// directory listing of the temp dir is already in page order.
func (p *PdftoppmRasterizer) Rasterize(path string, dpi int) ([]image.Image, error) {
	tmp, err := os.MkdirTemp("", "archive-press-")
	if err != nil {
		return nil, fmt.Errorf("creating temp directory: %w", err)
	}
	defer os.RemoveAll(tmp)

	prefix := filepath.Join(tmp, "page")
	if err := p.exec.Run(binPdftoppm, "-png", "-r", strconv.Itoa(dpi), path, prefix); err != nil {
		return nil, fmt.Errorf("rasterizing %s: %w", path, err)
	}

	entries, err := os.ReadDir(tmp)
	if err != nil {
		return nil, fmt.Errorf("reading temp directory: %w", err)
	}

	var images []image.Image
	for _, entry := range entries {
		img, err := readPNG(filepath.Join(tmp, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("decoding %s page %s: %w", path, entry.Name(), err)
		}
		images = append(images, img)
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("%s produced no pages for %s", binPdftoppm, path)
	}
	return images, nil
}

func readPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}
