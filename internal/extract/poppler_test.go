// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"testing"
)

// fakeExecutor simulates pdftoppm. On Run it writes pageCount PNG files using
// the prefix passed as the last argument, mimicking the tool's numbering.
type fakeExecutor struct {
	missing   bool
	runErr    error
	pageCount int
	widths    []int // per-page image width, to verify ordering
}

func (f *fakeExecutor) LookPath(file string) (string, error) {
	if f.missing {
		return "", errors.New("executable file not found in $PATH")
	}
	return "/usr/bin/" + file, nil
}

func (f *fakeExecutor) Run(name string, args ...string) error {
	if f.runErr != nil {
		return f.runErr
	}
	prefix := args[len(args)-1]
	for i := 1; i <= f.pageCount; i++ {
		width := 1
		if len(f.widths) >= i {
			width = f.widths[i-1]
		}
		path := fmt.Sprintf("%s-%d.png", prefix, i)
		out, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := png.Encode(out, image.NewRGBA(image.Rect(0, 0, width, 1))); err != nil {
			out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return err
		}
	}
	return nil
}

func TestNewPdftoppmRasterizer_MissingBinary(t *testing.T) {
	if _, err := newPdftoppmRasterizer(&fakeExecutor{missing: true}); err == nil {
		t.Error("expected an error when pdftoppm is not on PATH")
	}
}

func TestPdftoppmRasterize(t *testing.T) {
	r, err := newPdftoppmRasterizer(&fakeExecutor{pageCount: 3, widths: []int{1, 2, 3}})
	if err != nil {
		t.Fatal(err)
	}

	images, err := r.Rasterize("doc.pdf", 200)
	if err != nil {
		t.Fatal(err)
	}
	if len(images) != 3 {
		t.Fatalf("got %d pages, want 3", len(images))
	}
	for i, img := range images {
		if got := img.Bounds().Dx(); got != i+1 {
			t.Errorf("page %d width = %d, want %d (pages out of order)", i+1, got, i+1)
		}
	}
}

func TestPdftoppmRasterize_CommandFailure(t *testing.T) {
	r, err := newPdftoppmRasterizer(&fakeExecutor{runErr: errors.New("Syntax Error: couldn't read xref table")})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.Rasterize("broken.pdf", 200); err == nil {
		t.Error("expected an error when pdftoppm fails")
	}
}

func TestPdftoppmRasterize_NoPages(t *testing.T) {
	r, err := newPdftoppmRasterizer(&fakeExecutor{pageCount: 0})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := r.Rasterize("empty.pdf", 200); err == nil {
		t.Error("expected an error when no pages are produced")
	}
}
