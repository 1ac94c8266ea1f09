package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// WorldUp is the up vector of the scene.
var WorldUp = mgl64.Vec3{0, 1, 0}

const epsilon = 1e-9

// Pose is the camera position and its look-at target.
type Pose struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
}

// Lerp interpolates both position and target linearly.
func Lerp(a, b Pose, t float64) Pose {
	if t >= 1 {
		return b
	}
	return Pose{
		Position: lerpVec(a.Position, b.Position, t),
		Target:   lerpVec(a.Target, b.Target, t),
	}
}

func lerpVec(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// Distance is the distance from the camera to its target.
func (p Pose) Distance() float64 { return p.Position.Sub(p.Target).Len() }

func (p Pose) ApproxEqual(o Pose, eps float64) bool {
	return p.Position.ApproxEqualThreshold(o.Position, eps) &&
		p.Target.ApproxEqualThreshold(o.Target, eps)
}

// Forward is the unit view direction, or false when position equals target.
func (p Pose) Forward() (mgl64.Vec3, bool) {
	f := p.Target.Sub(p.Position)
	if f.Len() < epsilon {
		return mgl64.Vec3{}, false
	}
	return f.Normalize(), true
}

// Basis returns the camera's right and up unit vectors for a forward
// direction. A view straight along WorldUp falls back to +X as right.
func Basis(forward mgl64.Vec3) (right, up mgl64.Vec3) {
	right = forward.Cross(WorldUp)
	if right.Len() < epsilon {
		right = mgl64.Vec3{1, 0, 0}
	} else {
		right = right.Normalize()
	}
	up = right.Cross(forward).Normalize()
	return right, up
}

func (p Pose) View() mgl64.Mat4 {
	f, ok := p.Forward()
	if !ok {
		return mgl64.Ident4()
	}
	_, up := Basis(f)
	return mgl64.LookAtV(p.Position, p.Target, up)
}

// Lens is a perspective lens. FovY is in degrees.
type Lens struct {
	FovY float64
	Near float64
	Far  float64
}

func DefaultLens() Lens {
	return Lens{FovY: 45, Near: 0.1, Far: 2000}
}

func (l Lens) Projection(vp Viewport) (mgl64.Mat4, bool) {
	aspect, ok := vp.Aspect()
	if !ok {
		return mgl64.Mat4{}, false
	}
	return mgl64.Perspective(mgl64.DegToRad(l.FovY), aspect, l.Near, l.Far), true
}

// Viewport is the drawable size in pixels.
type Viewport struct {
	Width  int
	Height int
}

func (v Viewport) Valid() bool { return v.Width > 0 && v.Height > 0 }

// Aspect is width/height; ok is false for a zero-sized viewport.
func (v Viewport) Aspect() (float64, bool) {
	if !v.Valid() {
		return 0, false
	}
	return float64(v.Width) / float64(v.Height), true
}

// Project maps a world point to screen pixels (origin top-left). visible is
// false for points behind the camera or when the viewport is empty.
func Project(world mgl64.Vec3, pose Pose, lens Lens, vp Viewport) (screen mgl64.Vec2, depth float64, visible bool) {
	proj, ok := lens.Projection(vp)
	if !ok {
		return mgl64.Vec2{}, 0, false
	}
	clip := proj.Mul4(pose.View()).Mul4x1(world.Vec4(1))
	w := clip.W()
	if w <= epsilon {
		return mgl64.Vec2{}, 0, false
	}
	ndcX, ndcY, ndcZ := clip.X()/w, clip.Y()/w, clip.Z()/w
	screen = mgl64.Vec2{
		(ndcX + 1) / 2 * float64(vp.Width),
		(1 - ndcY) / 2 * float64(vp.Height),
	}
	visible = math.Abs(ndcX) <= 1 && math.Abs(ndcY) <= 1 && ndcZ >= -1 && ndcZ <= 1
	return screen, w, visible
}
