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
	trimSourcePath string
	trimStart      int
	trimEnd        int
	trimEncoder    string
	trimWithFrames bool
)

var trimCmd = &cobra.Command{
	Use:   "trim",
	Short: "Trim a video to a frame range",
	Long: `Trim a video to the inclusive [start, end] frame range, re-timestamped
at the source rate with audio discarded. The output is written beside the
source as <basename>_trim_<start>_<end>.<ext>.

With --with-frames, a successful trim also exports every selected frame as
a numbered still image into frames_trim_<start>_<end>/.

Example:
  framecut trim --source recording.mp4 --start 100 --end 240 --encoder hardware`,
	RunE: runTrim,
}

func init() {
	rootCmd.AddCommand(trimCmd)
	trimCmd.Flags().StringVar(&trimSourcePath, "source", "", "Path to source video file (required)")
	trimCmd.Flags().IntVar(&trimStart, "start", 0, "First frame of the range, 0-based inclusive (required)")
	trimCmd.Flags().IntVar(&trimEnd, "end", 0, "Last frame of the range, inclusive (required)")
	trimCmd.Flags().StringVar(&trimEncoder, "encoder", "software", "Encoder profile: hardware or software")
	trimCmd.Flags().BoolVar(&trimWithFrames, "with-frames", false, "Also export the range as still images after trimming")
	trimCmd.MarkFlagRequired("source")
	trimCmd.MarkFlagRequired("start")
	trimCmd.MarkFlagRequired("end")
}

func runTrim(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	ffmpegPath := locateFFmpegOrExit(cfg, os.Stdout)
	transcoder := newTranscoder(cfg, ffmpegPath)

	prober := probeForPath(ffmpegPath)
	rate := cfg.Preview.FallbackFPS
	if info, err := prober.Probe(cmd.Context(), trimSourcePath); err == nil && info.FrameRate > 0 {
		rate = info.FrameRate
	}

	return RunTrimWithDependencies(
		cmd.Context(),
		transcoder,
		trimSourcePath,
		trimStart,
		trimEnd,
		rate,
		trimEncoder,
		trimWithFrames,
		cfg.Output.ImageFormat,
		os.Stdout,
	)
}

// RunTrimWithDependencies runs the trim command with injected dependencies
// (for testing).
func RunTrimWithDependencies(
	ctx context.Context,
	transcoder clip.Transcoder,
	sourcePath string,
	start, end int,
	frameRate float64,
	encoderName string,
	withFrames bool,
	imageExt string,
	output io.Writer,
) error {
	encoder, err := clip.ParseEncoder(encoderName)
	if err != nil {
		return err
	}

	req, err := clip.NewRequest(sourcePath, start, end, frameRate, encoder, clip.ModeTrim, imageExt)
	if err != nil {
		return err
	}

	fmt.Fprintf(output, "Trimming frames %d..%d of %s (%s encoder)...\n",
		req.Start, req.End, sourcePath, encoder)

	service := export.NewService(transcoder, job.NewRunner(), output)
	progress := newSpinner(output, "Transcoding")
	defer progress.Dismiss()

	if _, err := service.Run(ctx, req, withFrames, progress.Tick); err != nil {
		progress.Dismiss()
		presentJobError(err, output)
		return fmt.Errorf("trim did not complete")
	}
	return nil
}
