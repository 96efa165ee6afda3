package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagPack      = flag.String("pack", "", "Resource pack directory or zip")
	flagNamespace = flag.String("namespace", "", "Texture namespace")
	flagUVScale   = flag.Float64("uv-scale", 0, "Texture-space unit of block models")
	flagWorkers   = flag.Int("workers", 0, "Parallel entity workers")
	flagStore     = flag.String("store", "", "Scene snapshot store path")
	flagLogFile   = flag.String("log-file", "", "Log file path")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments left after ParseFlags.
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagPack != "" {
		cfg.Assets.ResourcePack = *flagPack
	}
	if *flagNamespace != "" {
		cfg.Assets.Namespace = *flagNamespace
	}
	if *flagUVScale > 0 {
		cfg.Assets.UVScale = *flagUVScale
	}
	if *flagWorkers > 0 {
		cfg.Render.Workers = *flagWorkers
	}
	if *flagStore != "" {
		cfg.Scene.StorePath = *flagStore
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}
