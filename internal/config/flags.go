package config

import (
	"flag"
	"strings"
)

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagWidth       = flag.Int("width", 0, "Window width")
	flagHeight      = flag.Int("height", 0, "Window height")
	flagFullscreen  = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagTickRate    = flag.Int("fps", 0, "Ticks per second")
	flagModels      = flag.String("models", "", "Models directory")
	flagModel       = flag.String("model", "", "Model to open (skips model selection)")
	flagObjects     = flag.String("objects", "", "Comma-separated object filter (skips object selection)")
	flagSelector    = flag.String("selector", "", "Selection UI: prompt, dialog or static")
	flagSnapshotDir = flag.String("snapshot-dir", "", "Directory for F12 snapshots")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SplitList splits a comma-separated list, dropping empty entries.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.Window.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Window.Height = *flagHeight
	}
	if *flagFullscreen {
		cfg.Window.Fullscreen = true
	}
	if *flagTickRate > 0 {
		cfg.Window.TickRate = *flagTickRate
	}
	if *flagModels != "" {
		cfg.Models.Dir = *flagModels
	}
	if *flagModel != "" {
		cfg.Models.Model = *flagModel
	}
	if objects := SplitList(*flagObjects); len(objects) > 0 {
		cfg.Models.Objects = objects
	}
	if *flagSelector != "" {
		cfg.Models.Selector = *flagSelector
	}
	if *flagSnapshotDir != "" {
		cfg.Snapshot.Dir = *flagSnapshotDir
	}
}
