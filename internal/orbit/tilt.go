package orbit

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// Tilt rotates an orbital plane into world space: first about Z, then about X
// (Euler XYZ with no Y component).
type Tilt struct {
	X, Z float64 // radians
}

// RandomTilt draws both angles uniformly from [-maxDeg, maxDeg].
func RandomTilt(rng *rand.Rand, maxDeg float64) Tilt {
	if maxDeg <= 0 {
		return Tilt{}
	}
	return Tilt{
		X: mgl64.DegToRad((rng.Float64()*2 - 1) * maxDeg),
		Z: mgl64.DegToRad((rng.Float64()*2 - 1) * maxDeg),
	}
}

func (t Tilt) IsZero() bool { return t.X == 0 && t.Z == 0 }

func (t Tilt) Matrix() mgl64.Mat3 {
	return mgl64.Rotate3DX(t.X).Mul3(mgl64.Rotate3DZ(t.Z))
}

// Apply maps a point from the orbital plane into world space.
func (t Tilt) Apply(v mgl64.Vec3) mgl64.Vec3 {
	if t.IsZero() {
		return v
	}
	return t.Matrix().Mul3x1(v)
}
