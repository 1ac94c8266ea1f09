package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/camera"
	"github.com/san-kum/orrery/internal/orbit"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth        = 1280
	DefaultHeight       = 720
	DefaultFPS          = 60
	DefaultSpinRate     = 0.02
	DefaultMaxTiltDeg   = 5.0
	DefaultStarCount    = 5000
	DefaultStarSpread   = 400.0
	DefaultSunRadius    = 3.0
	DefaultRingTiltDeg  = 27.0
	DefaultRingOpacity  = 0.6
	DefaultPathSegments = orbit.DefaultSegments
)

var (
	ErrUnknownPreset = errors.New("unknown preset")
	ErrInvalidConfig = errors.New("invalid config")
	ErrInvalidColor  = errors.New("invalid color")
)

type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Camera   CameraConfig   `yaml:"camera"`
	Controls ControlsConfig `yaml:"controls"`
	Orbit    OrbitConfig    `yaml:"orbit"`
	Stars    StarsConfig    `yaml:"stars"`
	Seed     int64          `yaml:"seed"`
	Bodies   []BodyConfig   `yaml:"bodies"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	FPS    int    `yaml:"fps"`
}

type CameraConfig struct {
	Position     [3]float64 `yaml:"position"`
	FovY         float64    `yaml:"fov"`
	Near         float64    `yaml:"near"`
	Far          float64    `yaml:"far"`
	Step         float64    `yaml:"step"`
	SunDistance  float64    `yaml:"sun_distance"`
	RadiusFactor float64    `yaml:"radius_factor"`
}

type ControlsConfig struct {
	RotateSpeed   float64 `yaml:"rotate_speed"`
	ZoomSpeed     float64 `yaml:"zoom_speed"`
	Damping       bool    `yaml:"damping"`
	DampingFactor float64 `yaml:"damping_factor"`
	MinDistance   float64 `yaml:"min_distance"`
	MaxDistance   float64 `yaml:"max_distance"`
}

type OrbitConfig struct {
	SpinRate     float64 `yaml:"spin_rate"`
	EnableTilt   bool    `yaml:"enable_tilt"`
	MaxTiltDeg   float64 `yaml:"max_tilt_deg"`
	PathSegments int     `yaml:"path_segments"`
	RandomPhase  bool    `yaml:"random_phase"`
}

type StarsConfig struct {
	Count  int     `yaml:"count"`
	Spread float64 `yaml:"spread"`
}

// BodyConfig is one row of the body table. Kind is "sun" or "planet".
type BodyConfig struct {
	Name      string      `yaml:"name"`
	Kind      string      `yaml:"kind"`
	Radius    float64     `yaml:"radius"`
	A         float64     `yaml:"a,omitempty"`
	E         float64     `yaml:"e,omitempty"`
	SpeedBase float64     `yaml:"speed_base,omitempty"`
	SpinRate  *float64    `yaml:"spin_rate,omitempty"`
	Color     string      `yaml:"color"`
	Detail    string      `yaml:"detail,omitempty"`
	Pattern   string      `yaml:"pattern,omitempty"`
	Ring      *RingConfig `yaml:"ring,omitempty"`
}

type RingConfig struct {
	TiltDeg float64 `yaml:"tilt_deg"`
	Inner   float64 `yaml:"inner"`
	Outer   float64 `yaml:"outer"`
	Color   string  `yaml:"color"`
	Opacity float64 `yaml:"opacity"`
}

func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{Title: "orrery", Width: DefaultWidth, Height: DefaultHeight, FPS: DefaultFPS},
		Camera: CameraConfig{
			Position:     [3]float64{0, 80, 100},
			FovY:         45,
			Near:         0.1,
			Far:          2000,
			Step:         0.05,
			SunDistance:  25,
			RadiusFactor: 10,
		},
		Controls: ControlsConfig{
			RotateSpeed:   1,
			ZoomSpeed:     0.95,
			Damping:       true,
			DampingFactor: 0.05,
			MinDistance:   0.5,
			MaxDistance:   500,
		},
		Orbit: OrbitConfig{
			SpinRate:     DefaultSpinRate,
			EnableTilt:   true,
			MaxTiltDeg:   DefaultMaxTiltDeg,
			PathSegments: DefaultPathSegments,
			RandomPhase:  true,
		},
		Stars:  StarsConfig{Count: DefaultStarCount, Spread: DefaultStarSpread},
		Seed:   1,
		Bodies: DefaultBodies(),
	}
}

// DefaultBodies is the sun and the eight planets.
func DefaultBodies() []BodyConfig {
	planet := func(name string, size, a, e, speed float64, color, detail, pattern string) BodyConfig {
		return BodyConfig{
			Name: name, Kind: "planet", Radius: size,
			A: a, E: e, SpeedBase: speed,
			Color: color, Detail: detail, Pattern: pattern,
		}
	}
	saturn := planet("Saturnus", 1.5, 32, 0.054, 0.011, "#f7e6b0", "#ddcc99", "bands")
	saturn.Ring = &RingConfig{
		TiltDeg: DefaultRingTiltDeg,
		Inner:   1.5 + 0.4,
		Outer:   1.5 + 1.5,
		Color:   "#fff0d0",
		Opacity: DefaultRingOpacity,
	}
	return []BodyConfig{
		{Name: "Matahari", Kind: "sun", Radius: DefaultSunRadius, Color: "#ffd700", Detail: "#ff8800", Pattern: "clouds"},
		planet("Merkurius", 0.4, 5, 0.205, 0.06, "#c0c0c0", "#606060", "noise"),
		planet("Venus", 0.6, 8, 0.007, 0.045, "#ffe099", "#cc9944", "clouds"),
		planet("Bumi", 0.65, 11, 0.017, 0.035, "#4da6ff", "#118844", "clouds"),
		planet("Mars", 0.5, 15, 0.093, 0.028, "#ff6b50", "#993322", "noise"),
		planet("Jupiter", 1.8, 24, 0.048, 0.015, "#ebc895", "#bb8855", "bands"),
		saturn,
		planet("Uranus", 1.0, 40, 0.047, 0.008, "#85f0ff", "#4499cc", "noise"),
		planet("Neptunus", 1.0, 48, 0.009, 0.006, "#6b80ff", "#3344aa", "noise"),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Bodies = make([]BodyConfig, len(c.Bodies))
	for i, b := range c.Bodies {
		if b.SpinRate != nil {
			s := *b.SpinRate
			b.SpinRate = &s
		}
		if b.Ring != nil {
			r := *b.Ring
			b.Ring = &r
		}
		out.Bodies[i] = b
	}
	return &out
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}
	if c.Camera.FovY <= 0 || c.Camera.FovY >= 180 {
		return fmt.Errorf("%w: fov %.2f", ErrInvalidConfig, c.Camera.FovY)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("%w: clip planes %.3f..%.3f", ErrInvalidConfig, c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.Step <= 0 || c.Camera.Step > 1 {
		return fmt.Errorf("%w: transition step %.3f", ErrInvalidConfig, c.Camera.Step)
	}
	if c.Controls.MaxDistance < c.Controls.MinDistance {
		return fmt.Errorf("%w: controls distance %.2f..%.2f", ErrInvalidConfig, c.Controls.MinDistance, c.Controls.MaxDistance)
	}
	if c.Stars.Count < 0 {
		return fmt.Errorf("%w: star count %d", ErrInvalidConfig, c.Stars.Count)
	}
	_, err := c.ToSpecs()
	return err
}

// ToSpecs converts the body table into registry specs.
func (c *Config) ToSpecs() ([]body.Spec, error) {
	specs := make([]body.Spec, 0, len(c.Bodies))
	for _, bc := range c.Bodies {
		s, err := bc.spec(c.Orbit.SpinRate)
		if err != nil {
			return nil, fmt.Errorf("body %q: %w", bc.Name, err)
		}
		specs = append(specs, s)
	}
	return specs, nil
}

func (bc BodyConfig) spec(defaultSpin float64) (body.Spec, error) {
	s := body.Spec{
		Name:    bc.Name,
		Radius:  bc.Radius,
		Pattern: body.Pattern(bc.Pattern),
	}
	switch strings.ToLower(bc.Kind) {
	case "sun":
		s.Kind = body.KindSun
	case "planet", "":
		s.Kind = body.KindPlanet
		s.Elements = orbit.Elements{A: bc.A, E: bc.E, SpeedBase: bc.SpeedBase}
		if err := s.Elements.Validate(); err != nil {
			return s, err
		}
		s.SpinRate = defaultSpin
	default:
		return s, fmt.Errorf("%w: kind %q", ErrInvalidConfig, bc.Kind)
	}
	if bc.SpinRate != nil {
		s.SpinRate = *bc.SpinRate
	}
	if s.Pattern == "" {
		s.Pattern = body.PatternNoise
	}

	var err error
	if s.Color, err = parseColor(bc.Color); err != nil {
		return s, err
	}
	s.Detail = s.Color
	if bc.Detail != "" {
		if s.Detail, err = parseColor(bc.Detail); err != nil {
			return s, err
		}
	}

	if bc.Ring != nil {
		if bc.Ring.Inner <= 0 || bc.Ring.Outer <= bc.Ring.Inner {
			return s, fmt.Errorf("%w: ring radii %.2f..%.2f", ErrInvalidConfig, bc.Ring.Inner, bc.Ring.Outer)
		}
		rc, err := parseColor(bc.Ring.Color)
		if err != nil {
			return s, err
		}
		s.Ring = &body.Ring{
			TiltDeg: bc.Ring.TiltDeg,
			Inner:   bc.Ring.Inner,
			Outer:   bc.Ring.Outer,
			Color:   rc,
			Opacity: bc.Ring.Opacity,
		}
	}
	return s, nil
}

func parseColor(hex string) (colorful.Color, error) {
	if hex == "" {
		return colorful.Color{R: 1, G: 1, B: 1}, nil
	}
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}
	return c, nil
}

func (c *Config) RegistryOptions() body.Options {
	opts := body.Options{Seed: c.Seed, RandomPhase: c.Orbit.RandomPhase}
	if c.Orbit.EnableTilt {
		opts.MaxTiltDeg = c.Orbit.MaxTiltDeg
	}
	return opts
}

func (c *Config) HomePose() camera.Pose {
	p := c.Camera.Position
	return camera.Pose{Position: mgl64.Vec3{p[0], p[1], p[2]}}
}

func (c *Config) Lens() camera.Lens {
	return camera.Lens{FovY: c.Camera.FovY, Near: c.Camera.Near, Far: c.Camera.Far}
}

func (c *Config) Viewport() camera.Viewport {
	return camera.Viewport{Width: c.Window.Width, Height: c.Window.Height}
}

func (c *Config) CameraSettings() camera.Settings {
	s := camera.DefaultSettings()
	s.Step = c.Camera.Step
	s.SunDistance = c.Camera.SunDistance
	s.RadiusFactor = c.Camera.RadiusFactor
	return s
}

func (c *Config) ControlsSettings() camera.ControlsSettings {
	s := camera.DefaultControlsSettings()
	s.RotateSpeed = c.Controls.RotateSpeed
	s.ZoomSpeed = c.Controls.ZoomSpeed
	s.EnableDamping = c.Controls.Damping
	s.DampingFactor = c.Controls.DampingFactor
	s.MinDistance = c.Controls.MinDistance
	s.MaxDistance = c.Controls.MaxDistance
	return s
}

func (c *Config) PathSegments() int {
	if c.Orbit.PathSegments < 3 {
		return DefaultPathSegments
	}
	return c.Orbit.PathSegments
}
