// Package config provides the sandbox configuration from a YAML file.
package config

import (
	"os"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for a config file, relative to the working directory.
const DefaultPath = "sandbox.yaml"

// EnvPath overrides DefaultPath when set.
const EnvPath = "SANDBOX_CONFIG"

type Octree struct {
	Capacity int     `yaml:"capacity"`
	MaxLevel int     `yaml:"max_level"`
	Bounds   float64 `yaml:"bounds"` // half size of the root cube
}

type Camera struct {
	FovDeg   float64    `yaml:"fov_deg"`
	Near     float64    `yaml:"near"`
	Far      float64    `yaml:"far"`
	Position [3]float64 `yaml:"position"`
}

// Config represent the sandbox configuration.
type Config struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	FPS        int    `yaml:"fps"`
	TickHz     int    `yaml:"tick_hz"`
	Workers    int    `yaml:"workers"`
	Mode       string `yaml:"mode"`
	LogLevel   string `yaml:"log_level"`
	Audio      bool   `yaml:"audio"`
	Collisions bool   `yaml:"collisions"`

	Octree Octree `yaml:"octree"`
	Camera Camera `yaml:"camera"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Width:      800,
		Height:     600,
		FPS:        30,
		TickHz:     100,
		Workers:    runtime.NumCPU(),
		Mode:       "3d",
		LogLevel:   "info",
		Audio:      true,
		Collisions: true,
		Octree: Octree{
			Capacity: 8,
			MaxLevel: 5,
			Bounds:   100,
		},
		Camera: Camera{
			FovDeg:   45,
			Near:     0.1,
			Far:      1000,
			Position: [3]float64{0, 0, 7.5},
		},
	}
}

// Path returns the config path from the environment, or DefaultPath.
func Path() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	return DefaultPath
}

// Load reads the configuration at path over Default(). A missing file yields
// Default() without error; a malformed or invalid one is an error.
func Load(path string) (Config, error) {
	conf := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return conf, nil
	}
	if err != nil {
		return conf, errors.Wrapf(err, "config: read %s", path)
	}

	if err := yaml.Unmarshal(data, &conf); err != nil {
		return Default(), errors.Wrapf(err, "config: parse %s", path)
	}
	conf.Mode = strings.ToLower(conf.Mode)
	conf.LogLevel = strings.ToLower(conf.LogLevel)

	if err := conf.Validate(); err != nil {
		return Default(), errors.Wrapf(err, "config: %s", path)
	}

	return conf, nil
}

// Save writes conf as YAML to path
func Save(path string, conf Config) error {
	data, err := yaml.Marshal(conf)
	if err != nil {
		return errors.Wrap(err, "config: encode")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0644), "config: write %s", path)
}
