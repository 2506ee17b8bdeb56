package config

import "os"

type AssemblerConfig struct {
	FfmpegPath        string
	FfprobePath       string
	FontPath          string
	ScratchRoot       string
	EnableTextOverlay bool
}

func GetAssemblerConfig() (*AssemblerConfig, error) {
	cfg := &AssemblerConfig{
		FfmpegPath:        "ffmpeg",
		FfprobePath:       "ffprobe",
		FontPath:          "/opt/fonts/DejaVuSans-Bold.ttf",
		ScratchRoot:       os.TempDir(),
		EnableTextOverlay: false,
	}

	if v := os.Getenv("FFMPEG_PATH"); v != "" {
		cfg.FfmpegPath = v
	}
	if v := os.Getenv("FFPROBE_PATH"); v != "" {
		cfg.FfprobePath = v
	}
	if v := os.Getenv("OVERLAY_FONT_PATH"); v != "" {
		cfg.FontPath = v
	}
	if v := os.Getenv("SCRATCH_ROOT"); v != "" {
		cfg.ScratchRoot = v
	}
	if os.Getenv("ENABLE_TEXT_OVERLAY") == "true" {
		cfg.EnableTextOverlay = true
	}

	return cfg, nil
}
