// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// FitzRasterizer renders pages with the MuPDF library embedded in go-fitz.
// It needs no external binaries and is the default backend.
type FitzRasterizer struct{}

// Rasterize opens the PDF at path and renders every page at the requested
// DPI. All page images for the document are held in memory at once.
func (FitzRasterizer) Rasterize(path string, dpi int) ([]image.Image, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer doc.Close()

	pages := doc.NumPage()
	images := make([]image.Image, 0, pages)
	for n := 0; n < pages; n++ {
		img, err := doc.ImageDPI(n, float64(dpi))
		if err != nil {
			return nil, fmt.Errorf("rendering page %d of %s: %w", n+1, path, err)
		}
		images = append(images, img)
	}
	return images, nil
}
