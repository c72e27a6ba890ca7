package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagLoop    = flag.Bool("loop", false, "Loop animation time instead of clamping")
	flagWorkers = flag.Int("workers", 0, "Skinning workers (0 = config or one per CPU)")
	flagScale   = flag.Float64("scale", 0, "Uniform skeleton scale")
	flagSeq     = flag.String("seq", "", "Animation sequence name")
	flagTime    = flag.Float64("time", -1, "Animation time in frames")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// Args returns the non-flag command-line arguments.
func Args() []string {
	return flag.Args()
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagLoop {
		cfg.Animation.Loop = true
	}
	if *flagWorkers > 0 {
		cfg.Skinning.Workers = *flagWorkers
	}
	if *flagScale > 0 {
		cfg.Transform.Scale = float32(*flagScale)
	}
	if *flagSeq != "" {
		cfg.Animation.Sequence = *flagSeq
	}
	if *flagTime >= 0 {
		cfg.Animation.Time = float32(*flagTime)
	}
}
