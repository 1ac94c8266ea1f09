package viz

import (
	"image/color"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/sim"
)

var red = colorful.Color{R: 1}

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Set(0, 0)
	c.Set(1, 3)
	if got := c.Grid[0][0]; got != blank|0x1|0x80 {
		t.Errorf("unexpected cell %U", got)
	}
	c.Unset(0, 0)
	if got := c.Grid[0][0]; got != blank|0x80 {
		t.Errorf("unexpected cell after unset %U", got)
	}

	c.Set(-1, 0)
	c.Set(100, 100)
	c.Clear()
	for _, row := range c.Grid {
		for _, r := range row {
			if r != blank {
				t.Fatalf("expected blank canvas, got %U", r)
			}
		}
	}
}

func TestCanvasPlotColorsCell(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Plot(2, 1, red)
	if c.Colors[0][1] != "#ff0000" {
		t.Errorf("expected red cell, got %q", c.Colors[0][1])
	}
	if c.Colors[0][0] != "" {
		t.Errorf("expected uncolored cell, got %q", c.Colors[0][0])
	}
	if !strings.Contains(c.Render(), string(c.Grid[0][1])) {
		t.Error("render lost the plotted cell")
	}
}

func TestDrawLineEndpoints(t *testing.T) {
	c := NewCanvas(10, 5)
	c.DrawLine(0, 0, 19, 19, red)
	if c.Grid[0][0]&0x1 == 0 {
		t.Error("start pixel not set")
	}
	if c.Grid[4][9]&0x80 == 0 {
		t.Error("end pixel not set")
	}
}

func TestFillCircle(t *testing.T) {
	c := NewCanvas(10, 5)
	c.FillCircle(10, 10, 3, red)
	w, h := c.PixelSize()
	if w != 20 || h != 20 {
		t.Fatalf("unexpected pixel size %dx%d", w, h)
	}
	if c.Grid[10/4][10/2] == blank {
		t.Error("center not filled")
	}
	if c.Grid[0][0] != blank {
		t.Error("corner should be empty")
	}
}

func TestCanvasImage(t *testing.T) {
	c := NewCanvas(3, 2)
	c.Plot(0, 0, red)
	img := c.Image(8, 16, color.Black)
	if img.Bounds().Dx() != 24 || img.Bounds().Dy() != 32 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	r, _, _, _ := img.At(0, 0).RGBA()
	if r == 0 {
		t.Error("plotted dot should be red")
	}
	r, _, _, _ = img.At(23, 31).RGBA()
	if r != 0 {
		t.Error("empty area should be background")
	}
}

func TestRenderSceneDrawsBodies(t *testing.T) {
	eng, err := sim.New(config.DefaultConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	c := NewCanvas(80, 24)
	eng.Resize(c.PixelSize())
	RenderScene(c, eng, DefaultSceneOptions())

	// the sun sits at the screen center from the overview pose
	if c.Grid[12][40] == blank {
		t.Error("expected the sun at the canvas center")
	}
	sun := eng.Registry.Sun().Color.Clamped().Hex()
	if c.Colors[12][40] != sun {
		t.Errorf("expected sun color %s at center, got %s", sun, c.Colors[12][40])
	}
}

func TestRenderSceneDegeneratePose(t *testing.T) {
	eng, err := sim.New(config.DefaultConfig(), nil)
	if err != nil {
		t.Fatal(err)
	}
	eng.Pose.Position = eng.Pose.Target
	c := NewCanvas(10, 5)
	RenderScene(c, eng, DefaultSceneOptions())
	if strings.Trim(c.String(), string(rune(blank))+"\n") != "" {
		t.Error("degenerate pose should draw nothing")
	}
}

func TestThemes(t *testing.T) {
	defer SetTheme(ThemeDeepSpace.Name)
	SetTheme("retro")
	if CurrentTheme.Name != "retro" {
		t.Fatalf("expected retro, got %s", CurrentTheme.Name)
	}
	NextTheme()
	if CurrentTheme.Name != "minimal" {
		t.Errorf("expected minimal, got %s", CurrentTheme.Name)
	}
	if GetTheme("nope").Name != ThemeDeepSpace.Name {
		t.Error("unknown theme should fall back to deep-space")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("theme names mismatch")
	}
}
