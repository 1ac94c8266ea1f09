package gui

import (
	"fmt"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/camera"
	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/gui/procgen"
	"github.com/san-kum/orrery/internal/sim"
)

var (
	ColBg      = rl.NewColor(2, 2, 8, 255)
	ColText    = rl.NewColor(200, 200, 200, 255)
	ColTextDim = rl.NewColor(90, 90, 110, 255)
	ColOrbit   = rl.NewColor(120, 120, 140, 90)
	ColStar    = rl.NewColor(255, 255, 255, 180)
)

// dragThreshold is how far in pixels the pointer must travel before a press
// becomes an orbit drag instead of a click.
const dragThreshold = 4

// pointer tells clicks from drags on the left mouse button.
type pointer struct {
	down     bool
	dragging bool
	origin   rl.Vector2
}

func (p *pointer) press(pos rl.Vector2) {
	*p = pointer{down: true, origin: pos}
}

// move reports whether the press has turned into a drag.
func (p *pointer) move(pos rl.Vector2) bool {
	if !p.down {
		return false
	}
	if !p.dragging {
		dx, dy := pos.X-p.origin.X, pos.Y-p.origin.Y
		p.dragging = dx*dx+dy*dy >= dragThreshold*dragThreshold
	}
	return p.dragging
}

// release reports whether the press ended as a click.
func (p *pointer) release() (click, wasDrag bool) {
	click, wasDrag = p.down && !p.dragging, p.dragging
	*p = pointer{}
	return click, wasDrag
}

type App struct {
	eng  *sim.Engine
	cfg  *config.Config
	log  *log.Logger
	font rl.Font

	Camera  rl.Camera3D
	models  map[body.Handle]rl.Model
	glow    rl.Texture2D
	pointer pointer

	ShowOrbits bool
	ShowHUD    bool
	quit       bool
}

func initWindow(cfg *config.Config) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), cfg.Window.Title)
	rl.SetTargetFPS(int32(cfg.Window.FPS))
	rl.SetExitKey(0)
}

// NewApp builds the GPU resources for every body. The window must already
// be open.
func NewApp(eng *sim.Engine, cfg *config.Config, logger *log.Logger) *App {
	a := &App{
		eng:        eng,
		cfg:        cfg,
		log:        logger.WithPrefix("gui"),
		font:       rl.GetFontDefault(),
		models:     make(map[body.Handle]rl.Model, eng.Registry.Len()),
		ShowOrbits: true,
		ShowHUD:    true,
	}
	a.Camera = rl.NewCamera3D(
		vec3(eng.Pose.Position),
		vec3(eng.Pose.Target),
		vec3(camera.WorldUp),
		float32(eng.Lens.FovY),
		rl.CameraPerspective,
	)

	for _, b := range eng.Registry.All() {
		a.models[b.Handle] = loadBodyModel(b, cfg.Seed+int64(b.Handle))
	}

	img := rl.GenImageGradientRadial(64, 64, 0, rl.NewColor(255, 220, 120, 255), rl.NewColor(0, 0, 0, 0))
	a.glow = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)

	a.log.Info("resources loaded", "models", len(a.models))
	return a
}

func loadBodyModel(b *body.Body, seed int64) rl.Model {
	pix := procgen.Texture(b, procgen.TextureWidth, procgen.TextureHeight, seed)
	img := rl.NewImageFromImage(pix)
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)

	model := rl.LoadModelFromMesh(rl.GenMeshSphere(float32(b.Radius), 32, 32))
	rl.SetMaterialTexture(model.Materials, rl.MapDiffuse, tex)
	return model
}

func (a *App) Close() {
	for _, m := range a.models {
		rl.UnloadModel(m)
	}
	rl.UnloadTexture(a.glow)
}

// Run opens the window and blocks until it is closed or Q is pressed.
func Run(eng *sim.Engine, cfg *config.Config, logger *log.Logger) error {
	if eng == nil {
		return fmt.Errorf("gui: nil engine")
	}
	initWindow(cfg)
	defer rl.CloseWindow()

	eng.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())
	app := NewApp(eng, cfg, logger)
	defer app.Close()
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.quit {
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	if rl.IsWindowResized() {
		a.eng.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())
	}
	a.handleKeys()
	a.handleMouse()

	a.eng.Tick()
	a.syncCamera()
}

func (a *App) handleKeys() {
	switch {
	case rl.IsKeyPressed(rl.KeyQ):
		a.quit = true
	case rl.IsKeyPressed(rl.KeySpace):
		a.eng.SetPaused(!a.eng.Paused())
	case rl.IsKeyPressed(rl.KeyR):
		a.eng.Reset()
	case rl.IsKeyPressed(rl.KeyO):
		a.ShowOrbits = !a.ShowOrbits
	case rl.IsKeyPressed(rl.KeyH):
		a.ShowHUD = !a.ShowHUD
	}

	for i := int32(0); i <= 8; i++ {
		if !rl.IsKeyPressed(rl.KeyZero + i) {
			continue
		}
		ref := body.SunRef()
		if i > 0 {
			ref = body.PlanetRef(int(i) - 1)
		}
		if b, ok := a.eng.Registry.Resolve(ref); ok {
			a.eng.Focus(b.Name)
		}
	}
}

func (a *App) handleMouse() {
	pos := rl.GetMousePosition()

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		a.pointer.press(pos)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) && a.pointer.move(pos) {
		d := rl.GetMouseDelta()
		a.eng.Rotate(float64(d.X), float64(d.Y))
	}
	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		click, drag := a.pointer.release()
		switch {
		case click:
			if act := a.eng.Click(float64(pos.X), float64(pos.Y)); act != camera.ActionNone {
				a.log.Debug("click", "action", act)
			}
		case drag:
			a.eng.EndDrag()
		}
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.eng.Zoom(float64(wheel))
	}
}

// syncCamera copies the engine's pose into the raylib camera. The engine is
// the only writer of the pose.
func (a *App) syncCamera() {
	a.Camera.Position = vec3(a.eng.Pose.Position)
	a.Camera.Target = vec3(a.eng.Pose.Target)
	a.Camera.Fovy = float32(a.eng.Lens.FovY)
}

func vec3(v mgl64.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X()), float32(v.Y()), float32(v.Z()))
}
