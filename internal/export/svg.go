package export

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/orrery/internal/sim"
	"github.com/san-kum/orrery/internal/viz"
)

const background = "#0a0a0a"

// CanvasToSVG converts a Braille canvas to SVG format, keeping cell colors.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder

	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="#00ff00">
`, width, height, width, height, background)

	// Braille dot-to-bit mapping
	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}

	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r <= 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)
			fill := ""
			if hex := canvas.Colors[row][col]; hex != "" {
				fill = fmt.Sprintf(` fill="%s"`, hex)
			}

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"%s/>\n", cx, cy, dotRadius, fill)
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// SystemToSVG draws a top-down (X right, Z down) view of every orbit path and
// body in the engine's current state.
func SystemToSVG(eng *sim.Engine, size int) string {
	if eng == nil || size <= 0 {
		return ""
	}

	extent := 1.0
	for _, b := range eng.Registry.Planets() {
		extent = math.Max(extent, b.Elements.Apoapsis()+b.Radius)
		if b.Ring != nil {
			extent = math.Max(extent, b.Elements.Apoapsis()+b.Ring.Outer)
		}
	}
	if sun := eng.Registry.Sun(); sun != nil {
		extent = math.Max(extent, sun.Radius)
	}
	extent *= 1.1

	half := float64(size) / 2
	k := half / extent
	toScreen := func(p mgl64.Vec3) (float64, float64) {
		return half + p.X()*k, half + p.Z()*k
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, size, size, size, size, background)

	focused := eng.Camera.Focused()
	sb.WriteString(`<g fill="none" stroke-width="1">` + "\n")
	for _, b := range eng.Registry.Planets() {
		path := eng.Path(b)
		if len(path) < 2 {
			continue
		}
		stroke := "#3a3a5a"
		if b == focused {
			stroke = hex(b.Color)
		}
		fmt.Fprintf(&sb, `<path stroke="%s" d="`, stroke)
		for i, p := range path {
			x, y := toScreen(p)
			if i == 0 {
				fmt.Fprintf(&sb, "M%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString(`"/>` + "\n")
	}
	sb.WriteString("</g>\n")

	for _, b := range eng.Registry.All() {
		x, y := toScreen(b.WorldPosition())
		r := math.Max(b.Radius*k, 1.5)
		if b.Ring != nil {
			fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="%s" stroke-opacity="%.2f" stroke-width="%.1f"/>`+"\n",
				x, y, (b.Ring.Inner+b.Ring.Outer)/2*k, hex(b.Ring.Color), b.Ring.Opacity, math.Max((b.Ring.Outer-b.Ring.Inner)*k, 1))
		}
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"><title>%s</title></circle>`+"\n",
			x, y, r, hex(b.Color), b.Name)
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func hex(c colorful.Color) string { return c.Clamped().Hex() }

// WriteFile writes an SVG document to path.
func WriteFile(path, svg string) error {
	if svg == "" {
		return fmt.Errorf("export %s: empty document", path)
	}
	return os.WriteFile(path, []byte(svg), 0644)
}
