package procgen

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orrery/internal/body"
)

const RingSegments = 64

// RingTriangles returns the annulus of b's ring as a triangle list in world
// space, three vertices per triangle and two triangles per segment. The
// ring is built in its local XY plane, rotated by the ring rotation and the
// orbital tilt, then moved to the body. Bodies without a ring yield nil.
func RingTriangles(b *body.Body, segments int) []mgl64.Vec3 {
	if b.Ring == nil || segments < 3 {
		return nil
	}
	rot := mgl64.Rotate3DX(b.Ring.Rotation())
	if !b.Tilt.IsZero() {
		rot = b.Tilt.Matrix().Mul3(rot)
	}
	center := b.WorldPosition()
	point := func(r, a float64) mgl64.Vec3 {
		return center.Add(rot.Mul3x1(mgl64.Vec3{r * math.Cos(a), r * math.Sin(a), 0}))
	}

	tris := make([]mgl64.Vec3, 0, segments*6)
	in, out := b.Ring.Inner, b.Ring.Outer
	for i := 0; i < segments; i++ {
		a0 := 2 * math.Pi * float64(i) / float64(segments)
		a1 := 2 * math.Pi * float64(i+1) / float64(segments)
		i0, i1 := point(in, a0), point(in, a1)
		o0, o1 := point(out, a0), point(out, a1)
		tris = append(tris, i0, o0, o1, i0, o1, i1)
	}
	return tris
}
