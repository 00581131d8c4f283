package config

import (
	"strings"

	"github.com/pkg/errors"
)

var availableLoggingLevels = []string{"panic", "fatal", "error", "warn", "info", "debug"}
var availableLoggingLevelsString = strings.Join(availableLoggingLevels, ", ")

var availableModes = []string{"2d", "3d"}

type checkFunc func(conf *Config) error

// Validate runs every check and joins their messages into one error
func (conf *Config) Validate() error {
	checkFuncs := []checkFunc{
		checkSize,
		checkRates,
		checkMode,
		checkLoggingLevel,
		checkOctree,
		checkCamera,
	}

	var problems []string
	for _, checkFunc := range checkFuncs {
		if err := checkFunc(conf); err != nil {
			problems = append(problems, err.Error())
		}
	}
	if len(problems) > 0 {
		return errors.New("invalid config: " + strings.Join(problems, "; "))
	}

	return nil
}

func checkSize(conf *Config) error {
	if conf.Width <= 0 || conf.Height <= 0 {
		return errors.Errorf("size %dx%d must be positive", conf.Width, conf.Height)
	}
	return nil
}

func checkRates(conf *Config) error {
	if conf.FPS <= 0 {
		return errors.Errorf("fps %d must be positive", conf.FPS)
	}
	if conf.TickHz <= 0 {
		return errors.Errorf("tick_hz %d must be positive", conf.TickHz)
	}
	if conf.Workers <= 0 {
		return errors.Errorf("workers %d must be positive", conf.Workers)
	}
	return nil
}

func checkMode(conf *Config) error {
	for _, m := range availableModes {
		if m == conf.Mode {
			return nil
		}
	}
	return errors.Errorf("mode %q is not one of 2d, 3d", conf.Mode)
}

func checkLoggingLevel(conf *Config) error {
	for _, l := range availableLoggingLevels {
		if l == conf.LogLevel {
			return nil
		}
	}
	return errors.Errorf("log_level %q is not one of %s", conf.LogLevel, availableLoggingLevelsString)
}

func checkOctree(conf *Config) error {
	if conf.Octree.Capacity <= 0 {
		return errors.Errorf("octree capacity %d must be positive", conf.Octree.Capacity)
	}
	if conf.Octree.MaxLevel < 0 {
		return errors.Errorf("octree max_level %d is negative", conf.Octree.MaxLevel)
	}
	if conf.Octree.Bounds <= 0 {
		return errors.Errorf("octree bounds %v must be positive", conf.Octree.Bounds)
	}
	return nil
}

func checkCamera(conf *Config) error {
	if conf.Camera.FovDeg <= 0 || conf.Camera.FovDeg >= 180 {
		return errors.Errorf("camera fov_deg %v is outside (0, 180)", conf.Camera.FovDeg)
	}
	if conf.Camera.Near <= 0 || conf.Camera.Far <= conf.Camera.Near {
		return errors.Errorf("camera clip range (%v, %v) is invalid", conf.Camera.Near, conf.Camera.Far)
	}
	return nil
}
