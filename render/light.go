package render

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

type LightKind int

const (
	LightPoint LightKind = iota
	LightDirectional
	LightSpot
)

// Light is pure data. Direction is used by directional and spot lights,
// the cutoff angles (radians) by spot lights only.
type Light struct {
	Kind        LightKind
	Position    mgl64.Vec3
	Direction   mgl64.Vec3
	Color       mgl64.Vec3 // RGB, 0-1
	Intensity   float64
	Cutoff      float64
	OuterCutoff float64
}

func NewPointLight(position, color mgl64.Vec3, intensity float64) Light {
	return Light{
		Kind:      LightPoint,
		Position:  position,
		Color:     color,
		Intensity: intensity,
	}
}

func NewDirectionalLight(direction, color mgl64.Vec3, intensity float64) Light {
	return Light{
		Kind:      LightDirectional,
		Direction: direction,
		Color:     color,
		Intensity: intensity,
	}
}

func NewSpotLight(position, direction, color mgl64.Vec3, intensity, cutoff, outerCutoff float64) Light {
	return Light{
		Kind:        LightSpot,
		Position:    position,
		Direction:   direction,
		Color:       color,
		Intensity:   intensity,
		Cutoff:      cutoff,
		OuterCutoff: outerCutoff,
	}
}

func (l Light) Validate() error {
	if l.Intensity < 0 {
		return errors.Errorf("light intensity %v is negative", l.Intensity)
	}
	for i := 0; i < 3; i++ {
		if l.Color[i] < 0 {
			return errors.Errorf("light color %v has a negative channel", l.Color)
		}
	}
	if l.Kind == LightSpot && l.OuterCutoff < l.Cutoff {
		return errors.Errorf("spot light outer cutoff %v is inside cutoff %v", l.OuterCutoff, l.Cutoff)
	}

	return nil
}
