package metrics

import (
	"github.com/san-kum/orrery/internal/sim"
)

// RadiusBand counts planet samples whose orbital radius falls outside
// [a(1-e), a(1+e)] by more than tolerance.
type RadiusBand struct {
	name       string
	tolerance  float64
	violations int
	samples    int
}

func NewRadiusBand(tolerance float64) *RadiusBand {
	return &RadiusBand{
		name:      "radius_band_violations",
		tolerance: tolerance,
	}
}

func (r *RadiusBand) Name() string {
	return r.name
}

func (r *RadiusBand) Observe(f sim.Frame) {
	for _, b := range f.Bodies {
		if b.IsSun() {
			continue
		}
		r.samples++
		radius := b.OrbitRadius()
		if radius < b.Elements.Periapsis()-r.tolerance || radius > b.Elements.Apoapsis()+r.tolerance {
			r.violations++
		}
	}
}

func (r *RadiusBand) Value() float64 {
	return float64(r.violations)
}

func (r *RadiusBand) Samples() int { return r.samples }

func (r *RadiusBand) Reset() {
	r.violations = 0
	r.samples = 0
}
