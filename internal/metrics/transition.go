package metrics

import (
	"github.com/san-kum/orrery/internal/camera"
	"github.com/san-kum/orrery/internal/sim"
)

// TransitionTicks counts ticks that ended with the camera in a focus or
// reset transition.
type TransitionTicks struct {
	name  string
	ticks int
}

func NewTransitionTicks() *TransitionTicks {
	return &TransitionTicks{
		name: "transition_ticks",
	}
}

func (t *TransitionTicks) Name() string {
	return t.name
}

func (t *TransitionTicks) Observe(f sim.Frame) {
	if f.State == camera.TransitionIn || f.State == camera.TransitionOut {
		t.ticks++
	}
}

func (t *TransitionTicks) Value() float64 { return float64(t.ticks) }

func (t *TransitionTicks) Reset() { t.ticks = 0 }

// Defaults is the metric set attached by the CLI.
func Defaults() []sim.Metric {
	return []sim.Metric{
		NewRevolutions(),
		NewRadiusBand(1e-9),
		NewTransitionTicks(),
	}
}
