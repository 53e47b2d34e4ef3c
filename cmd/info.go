package cmd

import (
	"fmt"
	"os"

	"framecut/domain/clip"
	"framecut/infrastructure/filesystem"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <path>",
	Short: "Show frame count, rate, and duration of a video",
	Long: `Inspect the first video stream of a file with ffprobe and print a
summary: dimensions, frame count, frame rate, and formatted duration.

The path may be a raw drag-and-drop payload; brace wrapping and quoting
are stripped before inspection.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	ffmpegPath := locateFFmpegOrExit(cfg, os.Stdout)

	path := filesystem.NormalizeDropPath(args[0])
	if !cfg.AcceptsExtension(path) {
		return &clip.SourceOpenError{Path: path, Err: fmt.Errorf("unsupported container extension")}
	}
	if !filesystem.NewChecker().Exists(path) {
		return &clip.SourceOpenError{Path: path, Err: fmt.Errorf("file does not exist")}
	}

	info, err := probeForPath(ffmpegPath).Probe(cmd.Context(), path)
	if err != nil {
		return err
	}

	rate := info.FrameRate
	if rate <= 0 {
		rate = cfg.Preview.FallbackFPS
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.SetStyle(table.StyleRounded)
	tw.AppendRows([]table.Row{
		{"Source", path},
		{"Dimensions", fmt.Sprintf("%dx%d", info.Width, info.Height)},
		{"Frames", info.Frames},
		{"Frame rate", fmt.Sprintf("%.3f fps", rate)},
		{"Duration", clip.FormatDuration(info.DurationS)},
	})
	tw.Render()
	return nil
}
