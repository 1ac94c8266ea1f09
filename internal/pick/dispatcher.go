package pick

import (
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/camera"
)

// Hit is a body under the pointer and its distance from the camera.
type Hit struct {
	Body     *body.Body
	Distance float64
}

// Dispatcher turns pointer clicks into focus changes on the camera
// controller.
type Dispatcher struct {
	registry   *body.Registry
	controller *camera.Controller
	log        *log.Logger
}

func NewDispatcher(registry *body.Registry, controller *camera.Controller, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Dispatcher{
		registry:   registry,
		controller: controller,
		log:        logger.WithPrefix("pick"),
	}
}

// Cast intersects the ray with every clickable body and returns the nearest.
func (d *Dispatcher) Cast(ray Ray) (Hit, bool) {
	best := Hit{Distance: math.Inf(1)}
	for _, h := range d.registry.Clickables() {
		b, ok := d.registry.Lookup(h)
		if !ok {
			continue
		}
		t, ok := ray.IntersectSphere(b.WorldPosition(), b.Radius)
		if ok && t < best.Distance {
			best = Hit{Body: b, Distance: t}
		}
	}
	return best, best.Body != nil
}

// Pick returns the body under screen point (x, y).
func (d *Dispatcher) Pick(x, y float64, pose camera.Pose, lens camera.Lens, vp camera.Viewport) (*body.Body, bool) {
	ray, ok := RayFromScreen(x, y, pose, lens, vp)
	if !ok {
		d.log.Debug("pick skipped", "width", vp.Width, "height", vp.Height)
		return nil, false
	}
	hit, ok := d.Cast(ray)
	return hit.Body, ok
}

// Click picks at (x, y) and toggles focus on the hit body. A miss leaves the
// controller untouched.
func (d *Dispatcher) Click(x, y float64, pose camera.Pose, lens camera.Lens, vp camera.Viewport) camera.Action {
	b, ok := d.Pick(x, y, pose, lens, vp)
	if !ok {
		return camera.ActionNone
	}
	return d.toggle(b)
}

// ClickBody toggles focus on the named body as if it had been clicked.
func (d *Dispatcher) ClickBody(name string) (camera.Action, error) {
	b, err := d.registry.ByName(name)
	if err != nil {
		return camera.ActionNone, err
	}
	return d.toggle(b), nil
}

func (d *Dispatcher) toggle(b *body.Body) camera.Action {
	a := d.controller.Toggle(b)
	d.log.Info(a.String(), "body", b.Name, "ref", b.Ref)
	return a
}
