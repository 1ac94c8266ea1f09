package pick

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orrery/internal/camera"
)

type Ray struct {
	Origin mgl64.Vec3
	Dir    mgl64.Vec3 // unit length
}

func (r Ray) At(t float64) mgl64.Vec3 { return r.Origin.Add(r.Dir.Mul(t)) }

// NDC maps a screen point (origin top-left) to normalized device coordinates.
func NDC(x, y float64, vp camera.Viewport) (mgl64.Vec2, bool) {
	if !vp.Valid() {
		return mgl64.Vec2{}, false
	}
	return mgl64.Vec2{
		2*x/float64(vp.Width) - 1,
		1 - 2*y/float64(vp.Height),
	}, true
}

// RayFromNDC builds the world-space ray through an NDC point for a
// perspective camera.
func RayFromNDC(pose camera.Pose, lens camera.Lens, vp camera.Viewport, ndc mgl64.Vec2) (Ray, bool) {
	aspect, ok := vp.Aspect()
	if !ok {
		return Ray{}, false
	}
	forward, ok := pose.Forward()
	if !ok {
		return Ray{}, false
	}
	right, up := camera.Basis(forward)
	h := math.Tan(mgl64.DegToRad(lens.FovY) / 2)
	dir := forward.
		Add(right.Mul(ndc.X() * h * aspect)).
		Add(up.Mul(ndc.Y() * h))
	return Ray{Origin: pose.Position, Dir: dir.Normalize()}, true
}

// RayFromScreen is NDC followed by RayFromNDC.
func RayFromScreen(x, y float64, pose camera.Pose, lens camera.Lens, vp camera.Viewport) (Ray, bool) {
	ndc, ok := NDC(x, y, vp)
	if !ok {
		return Ray{}, false
	}
	return RayFromNDC(pose, lens, vp, ndc)
}

// IntersectSphere returns the distance along the ray to the first surface
// point of the sphere in front of the origin.
func (r Ray) IntersectSphere(center mgl64.Vec3, radius float64) (float64, bool) {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := math.Sqrt(disc)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}
