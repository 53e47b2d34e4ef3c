package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the complete application configuration
type Config struct {
	FFmpeg  FFmpegConfig  `yaml:"ffmpeg"`
	Preview PreviewConfig `yaml:"preview"`
	Output  OutputConfig  `yaml:"output"`
	// VideoExtensions is the container allow-list for loading sources.
	VideoExtensions []string `yaml:"video_extensions"`
}

// FFmpegConfig locates and configures the external transcoder
type FFmpegConfig struct {
	// Path pins a specific binary; empty means search PATH, then look
	// beside our executable.
	Path string `yaml:"path"`
	// HardwareCodec/HardwareBitrate define the hardware encoder profile;
	// host-specific (h264_videotoolbox, h264_nvenc, h264_qsv, ...).
	HardwareCodec   string `yaml:"hardware_codec"`
	HardwareBitrate string `yaml:"hardware_bitrate"`
}

// PreviewConfig bounds the preview image and patches bad metadata
type PreviewConfig struct {
	MaxWidth    int     `yaml:"max_width"`
	MaxHeight   int     `yaml:"max_height"`
	FallbackFPS float64 `yaml:"fallback_fps"`
}

// OutputConfig controls still-export output
type OutputConfig struct {
	ImageFormat string `yaml:"image_format"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		FFmpeg: FFmpegConfig{
			HardwareCodec:   "h264_videotoolbox",
			HardwareBitrate: "12M",
		},
		Preview: PreviewConfig{
			MaxWidth:    960,
			MaxHeight:   540,
			FallbackFPS: 30,
		},
		Output: OutputConfig{
			ImageFormat: "png",
		},
		VideoExtensions: []string{".mp4", ".mov", ".mkv", ".avi", ".webm", ".m4v"},
	}
}

// Load reads the configuration from the specified YAML file. A missing
// file yields the defaults; a present but unparsable file is an error.
// Fields left empty in the file fall back to their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.fillDefaults()
	return cfg, nil
}

// Save writes the configuration to the specified YAML file
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (c *Config) fillDefaults() {
	d := Default()
	if c.FFmpeg.HardwareCodec == "" {
		c.FFmpeg.HardwareCodec = d.FFmpeg.HardwareCodec
	}
	if c.FFmpeg.HardwareBitrate == "" {
		c.FFmpeg.HardwareBitrate = d.FFmpeg.HardwareBitrate
	}
	if c.Preview.MaxWidth <= 0 {
		c.Preview.MaxWidth = d.Preview.MaxWidth
	}
	if c.Preview.MaxHeight <= 0 {
		c.Preview.MaxHeight = d.Preview.MaxHeight
	}
	if c.Preview.FallbackFPS <= 0 {
		c.Preview.FallbackFPS = d.Preview.FallbackFPS
	}
	if c.Output.ImageFormat == "" {
		c.Output.ImageFormat = d.Output.ImageFormat
	}
	if len(c.VideoExtensions) == 0 {
		c.VideoExtensions = d.VideoExtensions
	}
}

// AcceptsExtension reports whether path carries one of the allowed video
// container extensions (case-insensitive).
func (c *Config) AcceptsExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range c.VideoExtensions {
		if ext == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}
