package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/gui/procgen"
)

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	rl.BeginMode3D(a.Camera)
	a.drawStars()
	if a.ShowOrbits {
		a.drawOrbits()
	}
	a.drawBodies()
	rl.EndMode3D()

	if a.ShowHUD {
		a.drawLabels()
		a.DrawHUD()
	}
	rl.EndDrawing()
}

func (a *App) drawStars() {
	for _, s := range a.eng.Stars {
		rl.DrawPoint3D(vec3(s), ColStar)
	}
}

func (a *App) drawOrbits() {
	focused := a.eng.Camera.Focused()
	for _, b := range a.eng.Registry.Planets() {
		col := ColOrbit
		if b == focused {
			col = color(b.Color, 200)
		}
		path := a.eng.Path(b)
		for i := 1; i < len(path); i++ {
			rl.DrawLine3D(vec3(path[i-1]), vec3(path[i]), col)
		}
	}
}

func (a *App) drawBodies() {
	up := rl.NewVector3(0, 1, 0)
	one := rl.NewVector3(1, 1, 1)
	for _, b := range a.eng.Registry.All() {
		model, ok := a.models[b.Handle]
		if !ok {
			continue
		}
		pos := vec3(b.WorldPosition())
		rl.DrawModelEx(model, pos, up, float32(b.Spin*rl.Rad2deg), one, rl.White)
		if b.IsSun() {
			rl.DrawBillboard(a.Camera, a.glow, pos, float32(b.Radius*4), rl.NewColor(255, 255, 255, 120))
		}
		if b.Ring != nil {
			drawRing(b)
		}
	}
}

// drawRing emits each triangle in both windings so the ring is visible from
// above and below.
func drawRing(b *body.Body) {
	col := color(b.Ring.Color, uint8(b.Ring.Opacity*255))
	tris := procgen.RingTriangles(b, procgen.RingSegments)
	for i := 0; i+2 < len(tris); i += 3 {
		p0, p1, p2 := vec3(tris[i]), vec3(tris[i+1]), vec3(tris[i+2])
		rl.DrawTriangle3D(p0, p1, p2, col)
		rl.DrawTriangle3D(p0, p2, p1, col)
	}
}

func (a *App) drawLabels() {
	for _, b := range a.eng.Registry.All() {
		s, _, ok := a.eng.Project(b.WorldPosition())
		if !ok {
			continue
		}
		a.drawText(b.Name, int(s.X())+8, int(s.Y())-8, 12, ColTextDim)
	}
}

func (a *App) DrawHUD() {
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()

	a.drawText("orrery", 30, 30, 24, ColText)

	f := a.eng.Frame()
	focus := "none"
	if f.Focused != nil {
		focus = f.Focused.Name
	}
	a.drawText(fmt.Sprintf(":: %s  focus %s", f.State, focus), 140, 36, 14, ColText)
	a.drawText(fmt.Sprintf("distance %.1f  tick %d", f.Pose.Distance(), f.Tick), 30, 64, 14, ColTextDim)

	status, col := "RUNNING", ColText
	if a.eng.Paused() {
		status, col = "PAUSED", ColTextDim
	}
	a.drawText(status, w-130, 30, 16, col)

	a.drawText("[CLICK] FOCUS  [DRAG] ORBIT  [WHEEL] ZOOM  [0-8] BODY  [R] RESET  [SPACE] PAUSE  [O] ORBITS  [H] HUD  [Q] QUIT", 30, h-40, 12, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", rl.GetFPS()), w-90, h-40, 12, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, col rl.Color) {
	rl.DrawTextEx(a.font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, col)
}

func color(c colorful.Color, alpha uint8) rl.Color {
	r, g, b := c.Clamped().RGB255()
	return rl.NewColor(r, g, b, alpha)
}
