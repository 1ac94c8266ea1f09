package tui

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orrery/internal/body"
	"github.com/san-kum/orrery/internal/camera"
	"github.com/san-kum/orrery/internal/export"
	"github.com/san-kum/orrery/internal/sim"
	"github.com/san-kum/orrery/internal/viz"
)

const (
	defaultWidth    = 80
	defaultHeight   = 24
	statsWidth      = 40
	historyCapacity = 300
	maxGIFFrames    = 600 // recording stops and saves when full
	rotateStep      = 12.0 // pixels of drag per arrow key
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(0, 1)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(0, 2).Width(statsWidth)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

func tick(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model is the terminal front end: a Braille rendering of the scene with a
// stats panel. Mouse clicks on the canvas go through the pick dispatcher.
type Model struct {
	eng        *sim.Engine
	fps        int
	canvas     *viz.Canvas
	scene      viz.SceneOptions
	history    []float64
	showHelp   bool
	recording  bool
	frames     []*image.Paletted
	status     string
	snapshotID int
}

func NewModel(eng *sim.Engine, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	m := Model{
		eng:     eng,
		fps:     fps,
		scene:   viz.DefaultSceneOptions(),
		history: make([]float64, 0, historyCapacity),
	}
	m.resize(defaultWidth, defaultHeight)
	return m
}

func (m *Model) resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	m.canvas = viz.NewCanvas(w, h)
	m.eng.Resize(m.canvas.PixelSize())
}

func (m Model) Init() tea.Cmd {
	return tick(m.fps)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// leave room for the stats panel and padding
		m.resize(msg.Width-statsWidth-6, msg.Height-2)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		return m, cmd
	case TickMsg:
		m.step()
		return m, tick(m.fps)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch key := msg.String(); key {
	case "q", "ctrl+c":
		return tea.Quit
	case " ":
		m.eng.SetPaused(!m.eng.Paused())
	case "r":
		m.eng.Reset()
	case "0", "1", "2", "3", "4", "5", "6", "7", "8":
		m.focusIndex(int(key[0] - '0'))
	case "left":
		m.eng.Rotate(-rotateStep, 0)
		m.eng.EndDrag()
	case "right":
		m.eng.Rotate(rotateStep, 0)
		m.eng.EndDrag()
	case "up":
		m.eng.Rotate(0, -rotateStep)
		m.eng.EndDrag()
	case "down":
		m.eng.Rotate(0, rotateStep)
		m.eng.EndDrag()
	case "+", "=":
		m.eng.Zoom(1)
	case "-", "_":
		m.eng.Zoom(-1)
	case "o":
		m.scene.Orbits = !m.scene.Orbits
	case "s":
		m.scene.Stars = !m.scene.Stars
	case "t":
		viz.NextTheme()
	case "e":
		m.snapshot()
	case "g":
		if m.recording {
			m.saveGIF()
		} else {
			m.recording = true
			m.frames = m.frames[:0]
			m.status = "recording"
		}
	case "?":
		m.showHelp = !m.showHelp
	}
	return nil
}

// focusIndex maps 0 to the sun and 1-8 to planets.
func (m *Model) focusIndex(i int) {
	ref := body.SunRef()
	if i > 0 {
		ref = body.PlanetRef(i - 1)
	}
	b, ok := m.eng.Registry.Resolve(ref)
	if !ok {
		return
	}
	if _, err := m.eng.Focus(b.Name); err != nil {
		m.status = err.Error()
	}
}

// handleMouse converts a cell position to canvas pixels, accounting for the
// canvas padding. Clicks are ignored while the help overlay shifts the canvas.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.showHelp {
		return
	}
	col, row := msg.X-1, msg.Y
	if col < 0 || row < 0 || col >= m.canvas.Width || row >= m.canvas.Height {
		return
	}
	if msg.Action != tea.MouseActionPress {
		return
	}
	switch msg.Button {
	case tea.MouseButtonLeft:
		a := m.eng.Click(float64(col*2+1), float64(row*4+2))
		if a != camera.ActionNone {
			m.status = a.String()
		}
	case tea.MouseButtonWheelUp:
		m.eng.Zoom(1)
	case tea.MouseButtonWheelDown:
		m.eng.Zoom(-1)
	}
}

func (m *Model) step() {
	f := m.eng.Tick()

	if b := f.Focused; b != nil && !b.IsSun() {
		m.history = append(m.history, b.OrbitRadius())
	} else if len(m.history) > 0 && f.Focused == nil {
		m.history = m.history[:0]
	}
	if len(m.history) > historyCapacity {
		m.history = m.history[len(m.history)-historyCapacity:]
	}

	m.draw()
	if m.recording {
		m.frames = append(m.frames, m.canvas.Image(8, 16, color.Black))
		if len(m.frames) >= maxGIFFrames {
			m.saveGIF()
		}
	}
}

func (m *Model) draw() {
	m.canvas.Clear()
	viz.RenderScene(m.canvas, m.eng, m.scene)
}

func (m *Model) snapshot() {
	m.snapshotID++
	name := fmt.Sprintf("orrery-%03d.svg", m.snapshotID)
	if err := export.WriteFile(name, export.CanvasToSVG(m.canvas, 4)); err != nil {
		m.status = err.Error()
		return
	}
	m.status = "saved " + name
}

// frameDelay is the GIF frame delay in hundredths of a second. It never
// drops to zero, which viewers treat as "as fast as possible".
func frameDelay(fps int) int {
	return max(1, 100/fps)
}

func (m *Model) saveGIF() {
	m.recording = false
	if len(m.frames) == 0 {
		return
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range m.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, frameDelay(m.fps))
	}
	m.frames = nil
	f, err := os.Create("orrery.gif")
	if err != nil {
		m.status = err.Error()
		return
	}
	defer f.Close()
	if err := gif.EncodeAll(f, &anim); err != nil {
		m.status = err.Error()
		return
	}
	m.status = "saved orrery.gif"
}

func (m Model) View() string {
	frame := m.eng.Frame()
	theme := viz.CurrentTheme

	var s strings.Builder
	s.WriteString(viz.HeaderStyle.Render(viz.GradientText("ORRERY", viz.Colorful(theme.Primary), viz.Colorful(theme.Accent))) + "\n")

	status := viz.StatusRunning.Render("RUNNING")
	if frame.Paused {
		status = viz.StatusPaused.Render("PAUSED")
	}
	s.WriteString(status + "  " + viz.Subtle.Render(frame.State.String()) + "\n\n")

	s.WriteString(viz.MetricLabel.Render("Tick") + viz.MetricValue.Render(fmt.Sprintf("%d", frame.Tick)) + "\n")
	s.WriteString(viz.MetricLabel.Render("Distance") + viz.MetricValue.Render(fmt.Sprintf("%.1f", frame.Pose.Distance())) + "\n")
	focus := "none"
	if frame.Focused != nil {
		focus = frame.Focused.Name
	}
	s.WriteString(viz.MetricLabel.Render("Focus") + viz.MetricValue.Render(focus) + "\n")
	if frame.State == camera.TransitionIn || frame.State == camera.TransitionOut {
		s.WriteString(viz.MetricLabel.Render("Transition") + viz.ProgressBar(m.eng.Camera.Progress(), 16) + "\n")
	}
	if m.eng.Camera.Focus().UserOverrode {
		s.WriteString(viz.MetricLabel.Render("Camera") + viz.Subtle.Render("free look") + "\n")
	}

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history, asciigraph.Height(4), asciigraph.Width(statsWidth-12), asciigraph.Caption("orbit radius"))
		s.WriteString("\n" + viz.GraphStyle.Render(chart) + "\n")
	}

	s.WriteString("\n" + viz.Separator(statsWidth-4) + "\n")
	for i, b := range frame.Bodies {
		line := fmt.Sprintf("%d %s %-10s", i, viz.Swatch(b.Color), b.Name)
		if b == frame.Focused {
			line = viz.Selected.Render("> ") + line
		} else {
			line = "  " + line
		}
		if !b.IsSun() {
			line += viz.Subtle.Render(fmt.Sprintf(" r=%5.2f", b.OrbitRadius()))
		}
		s.WriteString(line + "\n")
	}

	if m.status != "" {
		s.WriteString("\n" + viz.KeyHint.Render(m.status) + "\n")
	}
	s.WriteString(helpStyle.Render("click/0-8:focus R:reset SP:pause\n←↑↓→:orbit +/-:zoom ?:help Q:quit"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasStyle.Render(m.canvas.Render()), statsStyle.Render(s.String()))
	if m.showHelp {
		return helpOverlay + "\n" + mainView
	}
	return mainView
}

const helpOverlay = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Click    - Focus body / reset       ║
║  0-8      - Focus sun or planet      ║
║  R        - Reset camera             ║
║  Space    - Pause orbits             ║
║  Arrows   - Orbit camera             ║
║  +/-      - Zoom                     ║
║  O / S    - Toggle orbits / stars    ║
║  T        - Cycle themes             ║
║  E        - Export SVG snapshot      ║
║  G        - Toggle GIF recording     ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// Run starts the terminal UI and blocks until it exits.
func Run(eng *sim.Engine, fps int) error {
	p := tea.NewProgram(NewModel(eng, fps), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
