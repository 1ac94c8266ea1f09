package analysis

import (
	"github.com/kamstrup/intmap"
	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/sim"
)

// Recorder is an observer collecting the orbit radius of every planet on
// each tick. Paused ticks are not recorded.
type Recorder struct {
	series *intmap.Map[body.Handle, []float64]
}

func NewRecorder() *Recorder {
	return &Recorder{series: intmap.New[body.Handle, []float64](16)}
}

func (r *Recorder) OnTick(f sim.Frame) {
	if f.Paused {
		return
	}
	for _, b := range f.Bodies {
		if b.IsSun() {
			continue
		}
		s, _ := r.series.Get(b.Handle)
		r.series.Put(b.Handle, append(s, b.OrbitRadius()))
	}
}

// Series returns the radius samples recorded for b.
func (r *Recorder) Series(b *body.Body) []float64 {
	s, _ := r.series.Get(b.Handle)
	return s
}

// Period estimates b's orbital period in ticks from its radius series.
func (r *Recorder) Period(b *body.Body) (float64, bool) {
	return DominantPeriod(r.Series(b))
}
