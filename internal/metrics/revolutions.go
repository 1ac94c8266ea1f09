package metrics

import (
	"github.com/san-kum/orrery/internal/sim"
)

// Revolutions is the number of orbits completed by all planets as of the
// last observed frame.
type Revolutions struct {
	name  string
	total int
}

func NewRevolutions() *Revolutions {
	return &Revolutions{name: "revolutions"}
}

func (r *Revolutions) Name() string { return r.name }

func (r *Revolutions) Observe(f sim.Frame) {
	total := 0
	for _, b := range f.Bodies {
		total += b.Revolutions
	}
	r.total = total
}

func (r *Revolutions) Value() float64 { return float64(r.total) }

func (r *Revolutions) Reset() { r.total = 0 }
