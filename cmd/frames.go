package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"framecut/application/export"
	"framecut/domain/clip"
	"framecut/domain/job"

	"github.com/spf13/cobra"
)

var (
	framesSourcePath string
	framesStart      int
	framesEnd        int
)

var framesCmd = &cobra.Command{
	Use:   "frames",
	Short: "Export a frame range as numbered still images",
	Long: `Export every frame in the inclusive [start, end] range as an individual
image into frames_trim_<start>_<end>/ beside the source. Files are named
frame_0001.png, frame_0002.png, ... in selection order. The directory is
created if absent; existing contents are left alone.

Example:
  framecut frames --source recording.mp4 --start 100 --end 240`,
	RunE: runFrames,
}

func init() {
	rootCmd.AddCommand(framesCmd)
	framesCmd.Flags().StringVar(&framesSourcePath, "source", "", "Path to source video file (required)")
	framesCmd.Flags().IntVar(&framesStart, "start", 0, "First frame of the range, 0-based inclusive (required)")
	framesCmd.Flags().IntVar(&framesEnd, "end", 0, "Last frame of the range, inclusive (required)")
	framesCmd.MarkFlagRequired("source")
	framesCmd.MarkFlagRequired("start")
	framesCmd.MarkFlagRequired("end")
}

func runFrames(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	ffmpegPath := locateFFmpegOrExit(cfg, os.Stdout)
	transcoder := newTranscoder(cfg, ffmpegPath)

	return RunFramesWithDependencies(
		cmd.Context(),
		transcoder,
		framesSourcePath,
		framesStart,
		framesEnd,
		cfg.Output.ImageFormat,
		os.Stdout,
	)
}

// RunFramesWithDependencies runs the frames command with injected
// dependencies (for testing).
func RunFramesWithDependencies(
	ctx context.Context,
	transcoder clip.Transcoder,
	sourcePath string,
	start, end int,
	imageExt string,
	output io.Writer,
) error {
	req, err := clip.NewRequest(sourcePath, start, end, 0, clip.EncoderSoftware, clip.ModeFrames, imageExt)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "Exporting frames %d..%d of %s...\n", req.Start, req.End, sourcePath)

	service := export.NewService(transcoder, job.NewRunner(), output)
	progress := newSpinner(output, "Exporting")
	defer progress.Dismiss()

	if _, err := service.Run(ctx, req, false, progress.Tick); err != nil {
		progress.Dismiss()
		presentJobError(err, output)
		return fmt.Errorf("frame export did not complete")
	}
	return nil
}
