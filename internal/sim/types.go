package sim

import (
	"errors"

	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/camera"
)

var ErrInvalidTicks = errors.New("tick count must be positive")

// Frame is the engine state after one tick. Bodies are live pointers and are
// only valid until the next tick.
type Frame struct {
	Tick     int
	Pose     camera.Pose
	State    camera.State
	Focused  *body.Body
	Bodies   []*body.Body
	Skipped  int
	Paused   bool
	Viewport camera.Viewport
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(f Frame)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Frame)

func (fn ObserverFunc) OnTick(f Frame) { fn(f) }

type Result struct {
	Ticks   int
	Skipped int
	Final   Frame
	Metrics map[string]float64
}
