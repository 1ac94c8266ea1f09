package sim

import (
	"context"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/kamstrup/intmap"
	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/camera"
	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/pick"
)

// Engine owns the scene and runs one tick per frame. It is not safe for
// concurrent use; input methods are called between ticks.
type Engine struct {
	Pose     camera.Pose
	Lens     camera.Lens
	Viewport camera.Viewport

	Stars []mgl64.Vec3

	Registry *body.Registry
	Camera   *camera.Controller
	Controls *camera.OrbitControls
	Picker   *pick.Dispatcher

	paths     *intmap.Map[body.Handle, []mgl64.Vec3]
	segments  int
	metrics   []Metric
	observers []Observer
	tick      int
	skipped   int
	paused    bool
	log       *log.Logger
}

func New(cfg *config.Config, logger *log.Logger) (*Engine, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	specs, err := cfg.ToSpecs()
	if err != nil {
		return nil, err
	}
	reg, err := body.Build(specs, cfg.RegistryOptions())
	if err != nil {
		return nil, fmt.Errorf("build bodies: %w", err)
	}

	e := &Engine{
		Pose:     cfg.HomePose(),
		Lens:     cfg.Lens(),
		Viewport: cfg.Viewport(),
		Stars:    Starfield(rand.New(rand.NewSource(cfg.Seed)), cfg.Stars.Count, cfg.Stars.Spread),
		Registry: reg,
		paths:    intmap.New[body.Handle, []mgl64.Vec3](reg.Len()),
		segments: cfg.PathSegments(),
		log:      logger,
	}
	e.Camera = camera.NewController(&e.Pose, cfg.CameraSettings(), logger)
	e.Controls = camera.NewOrbitControls(cfg.ControlsSettings())
	e.Controls.OnStart = e.Camera.NotifyUserMovement
	e.Picker = pick.NewDispatcher(reg, e.Camera, logger)

	logger.Info("engine ready", "bodies", reg.Len(), "seed", cfg.Seed, "viewport", fmt.Sprintf("%dx%d", e.Viewport.Width, e.Viewport.Height))
	return e, nil
}

func (e *Engine) AddMetric(m Metric)     { e.metrics = append(e.metrics, m) }
func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }

func (e *Engine) Ticks() int   { return e.tick }
func (e *Engine) Paused() bool { return e.paused }

func (e *Engine) SetPaused(p bool) {
	if p != e.paused {
		e.paused = p
		e.log.Debug("pause", "paused", p)
	}
}

// Tick advances orbits, then the camera controller, then the free-orbit
// controls when the controller does not own the pose.
func (e *Engine) Tick() Frame {
	skipped := 0
	if !e.paused {
		skipped = e.Registry.Advance()
		if skipped > 0 {
			e.log.Debug("position update skipped", "bodies", skipped, "tick", e.tick)
		}
	}
	e.skipped += skipped

	e.Camera.Advance()
	if e.Camera.OwnsPose() {
		e.Controls.Discard()
	} else {
		e.Controls.Update(&e.Pose)
	}

	e.tick++
	f := e.frame(skipped)
	for _, m := range e.metrics {
		m.Observe(f)
	}
	for _, o := range e.observers {
		o.OnTick(f)
	}
	return f
}

func (e *Engine) Frame() Frame { return e.frame(0) }

func (e *Engine) frame(skipped int) Frame {
	return Frame{
		Tick:     e.tick,
		Pose:     e.Pose,
		State:    e.Camera.State(),
		Focused:  e.Camera.Focused(),
		Bodies:   e.Registry.All(),
		Skipped:  skipped,
		Paused:   e.paused,
		Viewport: e.Viewport,
	}
}

// Click picks at a screen point and toggles focus on the hit body.
func (e *Engine) Click(x, y float64) camera.Action {
	return e.Picker.Click(x, y, e.Pose, e.Lens, e.Viewport)
}

// Focus toggles focus on the named body.
func (e *Engine) Focus(name string) (camera.Action, error) {
	return e.Picker.ClickBody(name)
}

func (e *Engine) Reset() { e.Camera.Reset() }

func (e *Engine) Rotate(dx, dy float64) { e.Controls.Rotate(dx, dy, e.Viewport.Height) }
func (e *Engine) EndDrag()              { e.Controls.EndDrag() }
func (e *Engine) Zoom(notches float64)  { e.Controls.Zoom(notches) }

// Resize updates the viewport. A zero-sized viewport, as reported by a
// minimized window, is ignored.
func (e *Engine) Resize(width, height int) bool {
	vp := camera.Viewport{Width: width, Height: height}
	if !vp.Valid() {
		e.log.Debug("resize skipped", "width", width, "height", height)
		return false
	}
	e.Viewport = vp
	return true
}

// Project maps a world point to the current screen.
func (e *Engine) Project(p mgl64.Vec3) (mgl64.Vec2, float64, bool) {
	return camera.Project(p, e.Pose, e.Lens, e.Viewport)
}

// Path returns the world-space orbit line of b. The sun has none.
func (e *Engine) Path(b *body.Body) []mgl64.Vec3 {
	if b.IsSun() {
		return nil
	}
	if p, ok := e.paths.Get(b.Handle); ok {
		return p
	}
	p := b.Elements.Path(e.segments, b.Tilt)
	e.paths.Put(b.Handle, p)
	return p
}

// Run ticks the engine headlessly. callback may be nil; returning false from
// it stops the run early.
func (e *Engine) Run(ctx context.Context, ticks int, callback func(Frame) bool) (*Result, error) {
	if ticks <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTicks, ticks)
	}
	for _, m := range e.metrics {
		m.Reset()
	}

	result := &Result{Metrics: make(map[string]float64)}
	start, startSkipped := e.tick, e.skipped
	var err error

loop:
	for i := 0; i < ticks; i++ {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break loop
		default:
		}

		f := e.Tick()
		result.Final = f
		if callback != nil && !callback(f) {
			break
		}
	}

	result.Ticks = e.tick - start
	result.Skipped = e.skipped - startSkipped
	for _, m := range e.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, err
}
