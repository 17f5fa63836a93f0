// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"io"
	"strings"
)

const barWidth = 30

// ProgressBar is a Reporter that redraws a single-line bar tracking documents
// completed out of total. It writes a carriage return before each redraw and
// a newline once the batch finishes.
type ProgressBar struct {
	w     io.Writer
	label string
}

// NewProgressBar returns a bar labelled with label (e.g. "Extracting PDFs").
func NewProgressBar(w io.Writer, label string) *ProgressBar {
	return &ProgressBar{w: w, label: label}
}

// Step implements Reporter.
func (p *ProgressBar) Step(done, total int) {
	if total <= 0 {
		return
	}
	filled := done * barWidth / total
	fmt.Fprintf(p.w, "\r%s: [%-*s] %d/%d", p.label, barWidth, strings.Repeat("#", filled), done, total)
	if done == total {
		fmt.Fprintln(p.w)
	}
}
