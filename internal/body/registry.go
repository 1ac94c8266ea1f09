package body

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/kamstrup/intmap"
	"github.com/san-kum/orrery/internal/orbit"
)

var (
	ErrDuplicateName = errors.New("body: duplicate name")
	ErrUnknownBody   = errors.New("body: unknown body")
	ErrSecondSun     = errors.New("body: registry already has a sun")
	ErrInvalidRadius = errors.New("body: visual radius must be positive")
	ErrInvalidPhase  = errors.New("body: initial phase cannot be placed")
)

// Registry owns every body for the lifetime of the process.
type Registry struct {
	bodies   []*Body
	sun      *Body
	planets  []*Body
	byHandle *intmap.Map[Handle, *Body]
	byName   map[string]*Body
	next     Handle
}

func NewRegistry() *Registry {
	return &Registry{
		byHandle: intmap.New[Handle, *Body](16),
		byName:   make(map[string]*Body),
	}
}

// Options control the randomized parts of Build.
type Options struct {
	Seed        int64
	MaxTiltDeg  float64
	RandomPhase bool
}

// Build registers specs in order. Planet tilt and, when enabled, initial phase
// are drawn from a generator seeded with opts.Seed.
func Build(specs []Spec, opts Options) (*Registry, error) {
	rng := rand.New(rand.NewSource(opts.Seed))
	r := NewRegistry()
	for _, s := range specs {
		if s.Kind == KindPlanet {
			if opts.RandomPhase {
				s.Theta = rng.Float64() * orbit.TwoPi
			}
			if s.Tilt.IsZero() {
				s.Tilt = orbit.RandomTilt(rng, opts.MaxTiltDeg)
			}
		}
		if _, err := r.Add(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) Add(s Spec) (*Body, error) {
	key := strings.ToLower(s.Name)
	if _, dup := r.byName[key]; dup {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateName, s.Name)
	}
	if !(s.Radius > 0) || math.IsInf(s.Radius, 0) {
		return nil, fmt.Errorf("%s: %w", s.Name, ErrInvalidRadius)
	}

	b := &Body{
		Name:     s.Name,
		Radius:   s.Radius,
		Elements: s.Elements,
		Tilt:     s.Tilt,
		Ring:     s.Ring,
		Color:    s.Color,
		Detail:   s.Detail,
		Pattern:  s.Pattern,
		SpinRate: s.SpinRate,
	}

	switch s.Kind {
	case KindSun:
		if r.sun != nil {
			return nil, fmt.Errorf("%w: %q", ErrSecondSun, s.Name)
		}
		b.Ref = SunRef()
	case KindPlanet:
		if err := s.Elements.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", s.Name, err)
		}
		b.Ref = PlanetRef(len(r.planets))
	default:
		return nil, fmt.Errorf("%s: unsupported kind %v", s.Name, s.Kind)
	}

	if math.IsNaN(s.Theta) || math.IsInf(s.Theta, 0) || !b.SetPhase(s.Theta) {
		return nil, fmt.Errorf("%s: %w (theta %v)", s.Name, ErrInvalidPhase, s.Theta)
	}
	if b.IsSun() {
		r.sun = b
	} else {
		r.planets = append(r.planets, b)
	}

	r.next++
	b.Handle = r.next

	r.bodies = append(r.bodies, b)
	r.byHandle.Put(b.Handle, b)
	r.byName[key] = b
	return b, nil
}

func (r *Registry) Sun() *Body       { return r.sun }
func (r *Registry) Planets() []*Body { return r.planets }
func (r *Registry) All() []*Body     { return r.bodies }
func (r *Registry) Len() int         { return len(r.bodies) }

// Clickables returns the handles that take part in picking: the sun and every
// planet, in registration order.
func (r *Registry) Clickables() []Handle {
	handles := make([]Handle, 0, len(r.bodies))
	for _, b := range r.bodies {
		handles = append(handles, b.Handle)
	}
	return handles
}

func (r *Registry) Lookup(h Handle) (*Body, bool) {
	return r.byHandle.Get(h)
}

// Resolve finds the body for a ref.
func (r *Registry) Resolve(ref Ref) (*Body, bool) {
	switch ref.Kind {
	case KindSun:
		return r.sun, r.sun != nil
	case KindPlanet:
		if ref.Index >= 0 && ref.Index < len(r.planets) {
			return r.planets[ref.Index], true
		}
	}
	return nil, false
}

// ByName looks a body up case-insensitively.
func (r *Registry) ByName(name string) (*Body, error) {
	b, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBody, name)
	}
	return b, nil
}

// Advance moves every body by one tick and returns how many position
// updates were skipped.
func (r *Registry) Advance() int {
	skipped := 0
	for _, b := range r.bodies {
		if !b.Advance() {
			skipped++
		}
	}
	return skipped
}
