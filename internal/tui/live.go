package tui

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/san-kum/orrery/internal/sim"
)

const (
	width       = 70
	height      = 20
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer is an observer that prints a top-down character map of the
// system, throttled to frameRate frames per second. A frameRate of zero
// prints every tick.
type LiveRenderer struct {
	out       io.Writer
	frameRate int
	extent    float64
	lastFrame time.Time
	canvas    [][]rune
	trail     []struct{ x, y int }
}

func NewLiveRenderer(out io.Writer, frameRate int, extent float64) *LiveRenderer {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	if extent <= 0 {
		extent = 1
	}
	return &LiveRenderer{
		out:       out,
		frameRate: frameRate,
		extent:    extent,
		canvas:    canvas,
		trail:     make([]struct{ x, y int }, 0, 50),
	}
}

func (r *LiveRenderer) OnTick(f sim.Frame) {
	if r.frameRate > 0 {
		if time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
			return
		}
		r.lastFrame = time.Now()
	}

	r.clear()
	r.draw(f)
	r.render(f)
}

// toCell maps world X/Z onto the character grid. Cells are twice as tall as
// they are wide, so Z is halved.
func (r *LiveRenderer) toCell(x, z float64) (int, int) {
	cx := width/2 + int(math.Round(x/r.extent*float64(width/2)))
	cy := height/2 + int(math.Round(z/r.extent*float64(height/2)))
	return cx, cy
}

func (r *LiveRenderer) clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}
}

func (r *LiveRenderer) set(x, y int, c rune) {
	if x >= 0 && x < width && y >= 0 && y < height {
		r.canvas[y][x] = c
	}
}

func (r *LiveRenderer) draw(f sim.Frame) {
	if f.Focused != nil {
		p := f.Focused.WorldPosition()
		x, y := r.toCell(p.X(), p.Z())
		r.trail = append(r.trail, struct{ x, y int }{x, y})
		if len(r.trail) > 40 {
			r.trail = r.trail[1:]
		}
	} else {
		r.trail = r.trail[:0]
	}
	for _, pt := range r.trail {
		r.set(pt.x, pt.y, '.')
	}

	for _, b := range f.Bodies {
		p := b.WorldPosition()
		x, y := r.toCell(p.X(), p.Z())
		c := '*'
		if !b.IsSun() {
			c = []rune(b.Name)[0]
		}
		r.set(x, y, c)
	}
	if b := f.Focused; b != nil {
		p := b.WorldPosition()
		x, y := r.toCell(p.X(), p.Z())
		r.set(x-1, y, '[')
		r.set(x+1, y, ']')
	}

	cam := f.Pose.Position
	x, y := r.toCell(cam.X(), cam.Z())
	r.set(x, y, '@')
}

func (r *LiveRenderer) render(f sim.Frame) {
	var b strings.Builder
	b.WriteString(clearScreen)
	focus := "-"
	if f.Focused != nil {
		focus = f.Focused.Name
	}
	b.WriteString(fmt.Sprintf("  orrery  tick=%d  camera=%s  focus=%s\n", f.Tick, f.State, focus))
	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	for _, row := range r.canvas {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	b.WriteString(fmt.Sprintf("  camera distance %.2f\n", f.Pose.Distance()))

	io.WriteString(r.out, b.String())
}

func (r *LiveRenderer) Start() { io.WriteString(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { io.WriteString(r.out, showCursor) }
