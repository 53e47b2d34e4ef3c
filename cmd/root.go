package cmd

import (
	"fmt"
	"os"

	"framecut/infrastructure/config"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "framecut",
	Short: "Select a frame range in a video and trim or export it with ffmpeg",
	Long: `framecut previews a video frame by frame, lets you pick a start/end
frame range, and invokes ffmpeg to produce a trimmed copy and/or a
numbered sequence of still images from that range.

  - Trim:   <basename>_trim_<start>_<end>.<ext> beside the source
  - Stills: frames_trim_<start>_<end>/frame_0001.png, frame_0002.png, ...

Example:
  framecut trim --source recording.mp4 --start 100 --end 240 --encoder software`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/config.yaml)")
}

func initConfig() {
	if cfgFile == "" {
		cfgFile = "config/config.yaml"
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		cfg = config.Default()
	}
}

// GetConfig returns the loaded configuration
func GetConfig() *config.Config {
	if cfg == nil {
		cfg = config.Default()
	}
	return cfg
}
