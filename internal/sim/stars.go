package sim

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// Starfield scatters count points uniformly in a cube of the given width
// centered on the origin.
func Starfield(rng *rand.Rand, count int, spread float64) []mgl64.Vec3 {
	stars := make([]mgl64.Vec3, count)
	for i := range stars {
		stars[i] = mgl64.Vec3{
			(rng.Float64() - 0.5) * spread,
			(rng.Float64() - 0.5) * spread,
			(rng.Float64() - 0.5) * spread,
		}
	}
	return stars
}
