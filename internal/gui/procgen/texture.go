// Package procgen generates the procedural surface textures and ring
// geometry drawn by the GUI. Everything here is pure Go so it can be built
// and tested without a window.
package procgen

import (
	"image"
	"image/color"
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/orrery/internal/body"
)

const (
	TextureWidth  = 256
	TextureHeight = 128

	octaves = 4
	lattice = 8
)

// noise is tileable value noise over a lattice that wraps horizontally, so
// the texture has no seam where it closes around a sphere.
type noise struct {
	w, h   int
	values []float64
}

func newNoise(rng *rand.Rand, w, h int) *noise {
	n := &noise{w: w, h: h, values: make([]float64, w*h)}
	for i := range n.values {
		n.values[i] = rng.Float64()
	}
	return n
}

func (n *noise) at(x, y int) float64 {
	x = ((x % n.w) + n.w) % n.w
	if y < 0 {
		y = 0
	}
	if y >= n.h {
		y = n.h - 1
	}
	return n.values[y*n.w+x]
}

func smooth(t float64) float64 { return t * t * (3 - 2*t) }

// sample returns smoothed noise at (u, v) in lattice units.
func (n *noise) sample(u, v float64) float64 {
	x0, y0 := math.Floor(u), math.Floor(v)
	fx, fy := smooth(u-x0), smooth(v-y0)
	ix, iy := int(x0), int(y0)
	top := n.at(ix, iy)*(1-fx) + n.at(ix+1, iy)*fx
	bottom := n.at(ix, iy+1)*(1-fx) + n.at(ix+1, iy+1)*fx
	return top*(1-fy) + bottom*fy
}

// fbm sums octaves of noise for u, v in [0, 1). The result is in [0, 1].
func fbm(layers []*noise, u, v float64) float64 {
	var sum, norm float64
	amp := 1.0
	for _, n := range layers {
		sum += amp * n.sample(u*float64(n.w), v*float64(n.h))
		norm += amp
		amp /= 2
	}
	return sum / norm
}

func newLayers(rng *rand.Rand) []*noise {
	layers := make([]*noise, octaves)
	for i := range layers {
		size := lattice << i
		layers[i] = newNoise(rng, size, size/2)
	}
	return layers
}

// Texture paints an equirectangular surface for a body from its base and
// detail colors. The same seed always yields the same image.
func Texture(b *body.Body, w, h int, seed int64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if w <= 0 || h <= 0 {
		return img
	}
	rng := rand.New(rand.NewSource(seed))
	surface := newLayers(rng)
	cover := newLayers(rng)
	white := colorful.Color{R: 1, G: 1, B: 1}

	for y := 0; y < h; y++ {
		v := float64(y) / float64(h)
		for x := 0; x < w; x++ {
			u := float64(x) / float64(w)
			n := fbm(surface, u, v)

			var c colorful.Color
			switch b.Pattern {
			case body.PatternNoise:
				c = b.Color.BlendLab(b.Detail, n)
			case body.PatternBands:
				t := 0.5 + 0.5*math.Sin(v*math.Pi*14+n*4)
				c = b.Color.BlendLab(b.Detail, t*0.8)
			case body.PatternClouds:
				c = b.Color
				if n > 0.55 {
					c = b.Color.BlendLab(b.Detail, math.Min(1, (n-0.55)*4))
				}
				if k := fbm(cover, u, v); k > 0.6 {
					c = c.BlendRgb(white, math.Min(0.8, (k-0.6)*3))
				}
			default:
				c = b.Color
			}
			img.Set(x, y, toRGBA(c))
		}
	}
	return img
}

func toRGBA(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}
