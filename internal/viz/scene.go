package viz

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/camera"
	"github.com/san-kum/orrery/internal/sim"
)

type SceneOptions struct {
	Stars  bool
	Orbits bool
	Rings  bool
}

func DefaultSceneOptions() SceneOptions {
	return SceneOptions{Stars: true, Orbits: true, Rings: true}
}

// ringSegments is the number of chords used to outline a ring.
const ringSegments = 48

type projector struct {
	pose  camera.Pose
	lens  camera.Lens
	vp    camera.Viewport
	right mgl64.Vec3
}

func newProjector(pose camera.Pose, lens camera.Lens, vp camera.Viewport) (projector, bool) {
	f, ok := pose.Forward()
	if !ok || !vp.Valid() {
		return projector{}, false
	}
	right, _ := camera.Basis(f)
	return projector{pose: pose, lens: lens, vp: vp, right: right}, true
}

func (p projector) project(w mgl64.Vec3) (int, int, float64, bool) {
	s, depth, ok := camera.Project(w, p.pose, p.lens, p.vp)
	if !ok {
		return 0, 0, 0, false
	}
	return int(math.Round(s.X())), int(math.Round(s.Y())), depth, true
}

// radius is the on-screen radius in pixels of a sphere of world radius r at w.
func (p projector) radius(w mgl64.Vec3, r float64) int {
	s0, _, ok0 := camera.Project(w, p.pose, p.lens, p.vp)
	s1, _, ok1 := camera.Project(w.Add(p.right.Mul(r)), p.pose, p.lens, p.vp)
	if !ok0 || !ok1 {
		return 0
	}
	return int(math.Round(s1.Sub(s0).Len()))
}

func (p projector) line(c *Canvas, a, b mgl64.Vec3, col colorful.Color) {
	x0, y0, _, ok0 := p.project(a)
	x1, y1, _, ok1 := p.project(b)
	if ok0 && ok1 {
		c.DrawLine(x0, y0, x1, y1, col)
	}
}

// RenderScene draws the engine's scene through its camera pose. The canvas
// pixel grid is used as the viewport.
func RenderScene(c *Canvas, eng *sim.Engine, opts SceneOptions) {
	w, h := c.PixelSize()
	p, ok := newProjector(eng.Pose, eng.Lens, camera.Viewport{Width: w, Height: h})
	if !ok {
		return
	}
	theme := CurrentTheme

	if opts.Stars {
		star := Colorful(theme.Star)
		for _, s := range eng.Stars {
			if x, y, _, ok := p.project(s); ok {
				c.Plot(x, y, star)
			}
		}
	}

	if opts.Orbits {
		orbitCol := Colorful(theme.Orbit)
		focused := eng.Camera.Focused()
		for _, b := range eng.Registry.Planets() {
			col := orbitCol
			if b == focused {
				col = orbitCol.BlendLab(b.Color, 0.5)
			}
			path := eng.Path(b)
			for i := 1; i < len(path); i++ {
				p.line(c, path[i-1], path[i], col)
			}
		}
	}

	bodies := make([]*body.Body, len(eng.Registry.All()))
	copy(bodies, eng.Registry.All())
	depth := func(b *body.Body) float64 { return b.WorldPosition().Sub(eng.Pose.Position).Len() }
	sort.SliceStable(bodies, func(i, j int) bool { return depth(bodies[i]) > depth(bodies[j]) })

	for _, b := range bodies {
		if opts.Rings && b.Ring != nil {
			drawRing(c, p, b)
		}
		x, y, _, ok := p.project(b.WorldPosition())
		if !ok {
			continue
		}
		c.FillCircle(x, y, p.radius(b.WorldPosition(), b.Radius), b.Color)
	}
}

func drawRing(c *Canvas, p projector, b *body.Body) {
	rot := mgl64.Rotate3DX(b.Ring.Rotation())
	if !b.Tilt.IsZero() {
		rot = b.Tilt.Matrix().Mul3(rot)
	}
	center := b.WorldPosition()
	col := b.Ring.Color.BlendLab(colorful.Color{}, 1-b.Ring.Opacity)
	for _, r := range []float64{b.Ring.Inner, b.Ring.Outer} {
		prev := center.Add(rot.Mul3x1(mgl64.Vec3{r, 0, 0}))
		for i := 1; i <= ringSegments; i++ {
			a := 2 * math.Pi * float64(i) / ringSegments
			// the ring lies in its local XY plane before rotation
			next := center.Add(rot.Mul3x1(mgl64.Vec3{r * math.Cos(a), r * math.Sin(a), 0}))
			p.line(c, prev, next, col)
			prev = next
		}
	}
}
