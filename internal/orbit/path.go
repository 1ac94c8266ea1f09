package orbit

import "github.com/go-gl/mathgl/mgl64"

const DefaultSegments = 128

// Path samples the closed ellipse at segments+1 evenly spaced phases, the
// last point repeating the first, and maps each through tilt.
func (el Elements) Path(segments int, tilt Tilt) []mgl64.Vec3 {
	if segments < 3 {
		segments = DefaultSegments
	}
	m := tilt.Matrix()
	points := make([]mgl64.Vec3, 0, segments+1)
	for i := 0; i <= segments; i++ {
		theta := float64(i) / float64(segments) * TwoPi
		p, ok := el.Position(theta)
		if !ok {
			continue
		}
		if !tilt.IsZero() {
			p = m.Mul3x1(p)
		}
		points = append(points, p)
	}
	return points
}
