package cmd

import (
	"fmt"
	"image/png"
	"os"

	"framecut/application/session"
	"framecut/infrastructure/capture"
	"framecut/infrastructure/filesystem"

	"github.com/spf13/cobra"
)

var (
	previewFrame int
	previewOut   string
	previewFit   bool
)

var previewCmd = &cobra.Command{
	Use:   "preview <path>",
	Short: "Decode one frame and save it as a PNG",
	Long: `Seek to a frame, decode it, and write it as a PNG for inspection.
With --fit the image is scaled down into the configured preview box
(never upscaled), preserving aspect ratio.

Requires a build with '-tags=preview' and OpenCV/GoCV installed.`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().IntVar(&previewFrame, "frame", 0, "Frame index to decode, 0-based")
	previewCmd.Flags().StringVar(&previewOut, "out", "preview.png", "Output image path")
	previewCmd.Flags().BoolVar(&previewFit, "fit", true, "Scale down into the preview box")
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	path := filesystem.NormalizeDropPath(args[0])

	sess := session.New(
		capture.NewOpener(cfg.Preview.FallbackFPS),
		filesystem.NewChecker(),
		cfg.AcceptsExtension,
		cfg.Output.ImageFormat,
	)
	defer sess.Close()

	if err := sess.Load(path); err != nil {
		return err
	}

	sess.Selection().SetPosition(previewFrame)
	frame, ok := sess.PreviewFrame()
	if !ok {
		return fmt.Errorf("frame %d could not be decoded (source has %d frames)",
			previewFrame, sess.Selection().Total())
	}
	defer frame.Close()

	img, err := capture.NewRenderer().Render(frame, cfg.Preview.MaxWidth, cfg.Preview.MaxHeight, previewFit)
	if err != nil {
		return err
	}

	f, err := os.Create(previewOut)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Wrote frame %d to %s\n", sess.Selection().Position(), previewOut)
	return nil
}
