package config

import (
	"fmt"
	"sort"
)

// Presets are named variations of DefaultConfig.
var Presets = map[string]func(*Config){
	"classic": func(*Config) {},
	"flat": func(c *Config) {
		c.Orbit.EnableTilt = false
		c.Orbit.RandomPhase = false
		c.Camera.Position = [3]float64{0, 120, 0.001}
	},
	"compact": func(c *Config) {
		c.Window.Width, c.Window.Height = 960, 540
		c.Stars.Count = 1500
		c.Stars.Spread = 250
		c.Camera.Position = [3]float64{0, 45, 60}
		c.Controls.MaxDistance = 200
		c.Orbit.PathSegments = 64
	},
	"fast": func(c *Config) {
		c.Camera.Step = 0.1
		for i := range c.Bodies {
			c.Bodies[i].SpeedBase *= 4
		}
	},
}

// GetPreset builds the named preset on top of DefaultConfig.
func GetPreset(name string) (*Config, error) {
	apply, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
