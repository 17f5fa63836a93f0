// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/archive-press/internal/slideshow"
)

var slideshowCmd = &cobra.Command{
	Use:   "slideshow",
	Short: "Build a jump-cut video from extracted page images",
	Long: `Slideshow pairs an audio track with a random sequence of extracted page
images, showing one image per jump-cut interval, and renders the result with
ffmpeg. Enough images are selected to cover the audio duration; when the
archive has fewer images than needed they are repeated.`,
	RunE: runSlideshow,
}

func runSlideshow(cmd *cobra.Command, args []string) error {
	builder, err := slideshow.NewBuilder()
	if err != nil {
		return err
	}

	jumpCut, _ := cmd.Flags().GetFloat64("jump-cut")
	framerate, _ := cmd.Flags().GetInt("framerate")
	song, _ := cmd.Flags().GetString("song")
	output, _ := cmd.Flags().GetString("output")

	opts := slideshow.Options{
		SongPath:       song,
		OutputPath:     output,
		PNGDir:         stringSetting(cmd, "png-dir", "output_dir"),
		JumpCutSeconds: jumpCut,
		Framerate:      framerate,
	}
	return builder.Build(opts, os.Stdout)
}

func init() {
	slideshowCmd.Flags().StringP("song", "s", "", "audio file for the video (required)")
	slideshowCmd.Flags().StringP("output", "o", "", "output video file (required)")
	slideshowCmd.Flags().String("png-dir", "Snowden-PNGs", "directory containing the page images")
	slideshowCmd.Flags().Float64P("jump-cut", "j", 0.1, "seconds each image is shown")
	slideshowCmd.Flags().Int("framerate", 30, "output video frame rate")
	slideshowCmd.MarkFlagRequired("song")
	slideshowCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(slideshowCmd)
}
