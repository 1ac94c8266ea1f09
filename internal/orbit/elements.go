package orbit

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	TwoPi = 2 * math.Pi

	// MinRadius is the smallest radius used as the phase-step divisor.
	MinRadius = 1e-3

	// MaxPhaseStep bounds the phase advance of a single tick.
	MaxPhaseStep = math.Pi / 8

	denomEpsilon = 1e-9
)

// Elements are the fixed parameters of an elliptical orbit with the sun at
// one focus. θ = 0 is periapsis.
type Elements struct {
	A         float64 // semi-major axis
	E         float64 // eccentricity, 0 <= E < 1
	SpeedBase float64 // base angular rate factor
}

func (el Elements) Validate() error {
	if !(el.A > 0) || math.IsInf(el.A, 0) {
		return fmt.Errorf("%w: a=%g", ErrSemiMajorAxis, el.A)
	}
	if !(el.E >= 0 && el.E < 1) {
		return fmt.Errorf("%w: e=%g", ErrEccentricity, el.E)
	}
	if !(el.SpeedBase >= 0) || math.IsInf(el.SpeedBase, 0) {
		return fmt.Errorf("%w: speed_base=%g", ErrSpeedBase, el.SpeedBase)
	}
	return nil
}

// Radius returns the polar radius at phase theta. ok is false when the conic
// denominator vanishes or the result is not finite.
func (el Elements) Radius(theta float64) (r float64, ok bool) {
	denom := 1 + el.E*math.Cos(theta)
	if denom <= denomEpsilon {
		return 0, false
	}
	r = el.A * (1 - el.E*el.E) / denom
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, false
	}
	return r, true
}

func (el Elements) Periapsis() float64 { return el.A * (1 - el.E) }
func (el Elements) Apoapsis() float64  { return el.A * (1 + el.E) }

// Position returns the Cartesian position on the untilted orbital plane.
func (el Elements) Position(theta float64) (mgl64.Vec3, bool) {
	r, ok := el.Radius(theta)
	if !ok {
		return mgl64.Vec3{}, false
	}
	s, c := math.Sincos(theta)
	return mgl64.Vec3{r * c, 0, r * s}, true
}

// PhaseStep returns Δθ = speedBase / r² with r clamped to MinRadius and the
// result capped at MaxPhaseStep.
func (el Elements) PhaseStep(theta float64) float64 {
	r, ok := el.Radius(theta)
	if !ok {
		return MaxPhaseStep
	}
	r = math.Max(r, MinRadius)
	return math.Min(el.SpeedBase/(r*r), MaxPhaseStep)
}

// Advance returns the phase after one tick. wrapped reports a completed
// revolution, in which case next has been normalized into [0, 2π).
func (el Elements) Advance(theta float64) (next float64, wrapped bool) {
	next = theta + el.PhaseStep(theta)
	if next >= TwoPi {
		return Normalize(next), true
	}
	return next, false
}

// Normalize wraps an angle into [0, 2π).
func Normalize(theta float64) float64 {
	w := math.Mod(theta, TwoPi)
	if w < 0 {
		w += TwoPi
	}
	return w
}
