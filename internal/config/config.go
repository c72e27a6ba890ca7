// Package config handles skeltool configuration loading and management.
package config

// Config holds all skeltool settings.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Skinning  SkinningConfig  `yaml:"skinning"`
	Animation AnimationConfig `yaml:"animation"`
	Transform TransformConfig `yaml:"transform"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// SkinningConfig holds vertex skinning settings.
type SkinningConfig struct {
	Workers int `yaml:"workers"` // 0 = one per CPU
}

// AnimationConfig holds playback settings.
type AnimationConfig struct {
	Sequence string  `yaml:"sequence"` // empty = rest pose
	Time     float32 `yaml:"time"`     // in frames
	Loop     bool    `yaml:"loop"`
}

// TransformConfig places the whole skeleton.
type TransformConfig struct {
	Origin [3]float32 `yaml:"origin"`
	Yaw    float32    `yaml:"yaw"`   // degrees about Z
	Pitch  float32    `yaml:"pitch"` // degrees about Y
	Roll   float32    `yaml:"roll"`  // degrees about X
	Scale  float32    `yaml:"scale"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Skinning: SkinningConfig{
			Workers: 0,
		},
		Animation: AnimationConfig{
			Sequence: "",
			Time:     0,
			Loop:     false,
		},
		Transform: TransformConfig{
			Scale: 1,
		},
	}
}
