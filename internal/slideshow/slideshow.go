// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package slideshow builds jump-cut videos from extracted page images: an
// audio track plus a random sequence of PNGs, one image per jump-cut
// interval, rendered with ffmpeg.
package slideshow

import (
	"fmt"
	"io"
	"io/fs"
	"math"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	binFfmpeg  = "ffmpeg"
	binFfprobe = "ffprobe"
)

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Output(name string, args ...string) (string, error)
	Run(name string, args ...string) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osExecutor) Output(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).Output()
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return string(out), nil
}

func (osExecutor) Run(name string, args ...string) error {
	out, err := exec.Command(name, args...).CombinedOutput()
	if err != nil {
		lines := strings.Split(strings.TrimSpace(string(out)), "\n")
		tail := lines[len(lines)-1]
		return fmt.Errorf("%s: %w: %s", name, err, tail)
	}
	return nil
}

// Builder renders slideshow videos. The zero source seed makes selection
// deterministic in tests; production builders seed from the clock.
type Builder struct {
	exec executor
	rand *rand.Rand
}

// NewBuilder verifies that ffmpeg and ffprobe are on PATH and returns a
// Builder using them.
func NewBuilder() (*Builder, error) {
	return newBuilder(osExecutor{}, rand.New(rand.NewSource(time.Now().UnixNano())))
}

func newBuilder(exec executor, rng *rand.Rand) (*Builder, error) {
	for _, bin := range []string{binFfmpeg, binFfprobe} {
		if _, err := exec.LookPath(bin); err != nil {
			return nil, fmt.Errorf("%s not found, install ffmpeg: %w", bin, err)
		}
	}
	return &Builder{exec: exec, rand: rng}, nil
}

// Options configures one slideshow render.
type Options struct {
	SongPath       string
	OutputPath     string
	PNGDir         string
	JumpCutSeconds float64
	Framerate      int
}

// audioDuration returns the duration of the audio file in seconds.
func (b *Builder) audioDuration(path string) (float64, error) {
	out, err := b.exec.Output(binFfprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path)
	if err != nil {
		return 0, fmt.Errorf("probing %s: %w", path, err)
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return 0, fmt.Errorf("parsing duration %q: %w", strings.TrimSpace(out), err)
	}
	return d, nil
}

// FindPNGs walks dir recursively and returns every .png file found.
func FindPNGs(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".png") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	return files, nil
}

// selectPNGs picks n images at random without replacement; when fewer than n
// are available the pool is repeated cyclically before shuffling.
func (b *Builder) selectPNGs(files []string, n int) []string {
	selected := make([]string, 0, n)
	if len(files) >= n {
		selected = append(selected, files...)
		b.rand.Shuffle(len(selected), func(i, j int) {
			selected[i], selected[j] = selected[j], selected[i]
		})
		return selected[:n]
	}
	for i := 0; i < n; i++ {
		selected = append(selected, files[i%len(files)])
	}
	b.rand.Shuffle(len(selected), func(i, j int) {
		selected[i], selected[j] = selected[j], selected[i]
	})
	return selected
}

// concatList renders the ffmpeg concat demuxer file for the selection. The
// final image is repeated without a duration so it stays visible until the
// audio ends.
func concatList(selected []string, jumpCutSeconds float64) string {
	var sb strings.Builder
	for _, path := range selected {
		fmt.Fprintf(&sb, "file '%s'\nduration %g\n", path, jumpCutSeconds)
	}
	if len(selected) > 0 {
		fmt.Fprintf(&sb, "file '%s'\n", selected[len(selected)-1])
	}
	return sb.String()
}

// Build renders the slideshow video described by opts, writing progress
// lines to w.
func (b *Builder) Build(opts Options, w io.Writer) error {
	if _, err := os.Stat(opts.SongPath); err != nil {
		return fmt.Errorf("audio file not found: %s", opts.SongPath)
	}

	duration, err := b.audioDuration(opts.SongPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Audio duration: %.2f seconds\n", duration)

	needed := int(math.Ceil(duration / opts.JumpCutSeconds))

	files, err := FindPNGs(opts.PNGDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no PNG files found in %s", opts.PNGDir)
	}
	fmt.Fprintf(w, "Found %d PNG files, need %d\n", len(files), needed)
	if len(files) < needed {
		fmt.Fprintf(w, "warning: only %d PNGs available, images will repeat\n", len(files))
	}

	selected := b.selectPNGs(files, needed)

	listFile, err := os.CreateTemp("", "archive-press-concat-*.txt")
	if err != nil {
		return fmt.Errorf("creating concat list: %w", err)
	}
	defer os.Remove(listFile.Name())
	if _, err := listFile.WriteString(concatList(selected, opts.JumpCutSeconds)); err != nil {
		listFile.Close()
		return fmt.Errorf("writing concat list: %w", err)
	}
	if err := listFile.Close(); err != nil {
		return fmt.Errorf("closing concat list: %w", err)
	}

	fmt.Fprintf(w, "Creating video with %d images...\n", len(selected))
	vf := fmt.Sprintf("fps=%d,scale=1280:720:force_original_aspect_ratio=decrease,pad=1280:720:(ow-iw)/2:(oh-ih)/2", opts.Framerate)
	err = b.exec.Run(binFfmpeg,
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", listFile.Name(),
		"-i", opts.SongPath,
		"-vf", vf,
		"-c:v", "libx264",
		"-c:a", "aac",
		"-shortest",
		"-pix_fmt", "yuv420p",
		opts.OutputPath)
	if err != nil {
		return fmt.Errorf("rendering video: %w", err)
	}

	fmt.Fprintf(w, "Video created: %s\n", opts.OutputPath)
	return nil
}
