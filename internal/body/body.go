package body

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/orrery/internal/orbit"
)

// Kind discriminates the body variants.
type Kind uint8

const (
	KindSun Kind = iota
	KindPlanet
)

func (k Kind) String() string {
	switch k {
	case KindSun:
		return "sun"
	case KindPlanet:
		return "planet"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Ref identifies a body as Sun or Planet(index). Refs are comparable.
type Ref struct {
	Kind  Kind
	Index int
}

func SunRef() Ref          { return Ref{Kind: KindSun} }
func PlanetRef(i int) Ref { return Ref{Kind: KindPlanet, Index: i} }

func (r Ref) String() string {
	if r.Kind == KindSun {
		return "sun"
	}
	return fmt.Sprintf("planet[%d]", r.Index)
}

// Handle is the identity of a body's renderable. Zero is never assigned.
type Handle uint32

// Pattern selects the procedural texture style of a body.
type Pattern string

const (
	PatternNoise  Pattern = "noise"
	PatternBands  Pattern = "bands"
	PatternClouds Pattern = "clouds"
)

// Ring is a flat annulus around a planet. It is never clickable and never
// mutated after creation.
type Ring struct {
	TiltDeg float64
	Inner   float64
	Outer   float64
	Color   colorful.Color
	Opacity float64
}

// Rotation is the ring's rotation about X in radians: a −90° base that lays the
// ring flat, plus the extra tilt.
func (r Ring) Rotation() float64 {
	return -math.Pi/2 + mgl64.DegToRad(r.TiltDeg)
}

// Spec describes a body before registration.
type Spec struct {
	Name     string
	Kind     Kind
	Radius   float64
	Elements orbit.Elements
	SpinRate float64
	Color    colorful.Color
	Detail   colorful.Color
	Pattern  Pattern
	Ring     *Ring
	Theta    float64
	Tilt     orbit.Tilt
}

type Body struct {
	Ref      Ref
	Handle   Handle
	Name     string
	Radius   float64
	Elements orbit.Elements
	Tilt     orbit.Tilt
	Ring     *Ring
	Color    colorful.Color
	Detail   colorful.Color
	Pattern  Pattern
	SpinRate float64

	Theta       float64
	Spin        float64
	Revolutions int

	local mgl64.Vec3
	world mgl64.Vec3
}

func (b *Body) IsSun() bool { return b.Ref.Kind == KindSun }

// LocalPosition is the position on the untilted orbital plane.
func (b *Body) LocalPosition() mgl64.Vec3 { return b.local }

// WorldPosition is the position after the orbital-plane tilt.
func (b *Body) WorldPosition() mgl64.Vec3 { return b.world }

// OrbitRadius is the current distance from the sun.
func (b *Body) OrbitRadius() float64 { return b.local.Len() }

// Advance moves the body by one tick: phase, then position, then spin. It
// returns false when the position could not be computed; the previous
// position is kept for that tick.
func (b *Body) Advance() bool {
	b.Spin = orbit.Normalize(b.Spin + b.SpinRate)
	if b.IsSun() {
		return true
	}
	next, wrapped := b.Elements.Advance(b.Theta)
	b.Theta = next
	if wrapped {
		b.Revolutions++
	}
	return b.place()
}

func (b *Body) place() bool {
	if b.IsSun() {
		b.local, b.world = mgl64.Vec3{}, mgl64.Vec3{}
		return true
	}
	p, ok := b.Elements.Position(b.Theta)
	if !ok {
		return false
	}
	b.local = p
	b.world = b.Tilt.Apply(p)
	return true
}

// SetPhase moves the body to theta immediately.
func (b *Body) SetPhase(theta float64) bool {
	b.Theta = orbit.Normalize(theta)
	return b.place()
}
