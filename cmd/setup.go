package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"framecut/infrastructure/config"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create configuration file interactively",
	Long: `Prompts for configuration values and creates config.yaml.

Every prompt offers the built-in default; accept it with Enter. The
hardware codec is host-specific (h264_videotoolbox on macOS, h264_nvenc
for NVIDIA, h264_qsv for Intel).`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	return RunSetupWithPrompter(DefaultPrompter, "config/config.yaml")
}

// RunSetupWithPrompter runs the setup with a given prompter (for testing)
func RunSetupWithPrompter(prompter Prompter, configPath string) error {
	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		overwrite, err := prompter.Confirm("config.yaml already exists. Overwrite?", false)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if !overwrite {
			fmt.Println("Setup cancelled.")
			return nil
		}
	}

	fmt.Println("Welcome to framecut setup!")
	fmt.Println()

	cfg := config.Default()

	path, err := prompter.Input("ffmpeg binary path (empty searches PATH)", cfg.FFmpeg.Path)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.FFmpeg.Path = path

	codec, err := prompter.Input("Hardware encoder codec", cfg.FFmpeg.HardwareCodec)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.FFmpeg.HardwareCodec = codec

	bitrate, err := prompter.Input("Hardware encoder bitrate", cfg.FFmpeg.HardwareBitrate)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.FFmpeg.HardwareBitrate = bitrate

	width, err := promptInt(prompter, "Preview max width", cfg.Preview.MaxWidth)
	if err != nil {
		return err
	}
	cfg.Preview.MaxWidth = width

	height, err := promptInt(prompter, "Preview max height", cfg.Preview.MaxHeight)
	if err != nil {
		return err
	}
	cfg.Preview.MaxHeight = height

	format, err := prompter.Input("Still image format (png, jpg, ...)", cfg.Output.ImageFormat)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Output.ImageFormat = format

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := config.Save(cfg, configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Println()
	fmt.Printf("Configuration saved to %s\n", configPath)
	return nil
}

func promptInt(prompter Prompter, message string, defaultValue int) (int, error) {
	raw, err := prompter.Input(message, strconv.Itoa(defaultValue))
	if err != nil {
		return 0, fmt.Errorf("prompt cancelled")
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%q is not a positive number", raw)
	}
	return n, nil
}
