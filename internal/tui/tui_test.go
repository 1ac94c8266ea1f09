package tui

import (
	"bytes"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/orrery/internal/camera"
	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/sim"
)

func newEngine(t *testing.T) *sim.Engine {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Orbit.RandomPhase = false
	eng, err := sim.New(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	return eng
}

func TestLiveRendererDrawsBodies(t *testing.T) {
	eng := newEngine(t)
	var out bytes.Buffer
	r := NewLiveRenderer(&out, 0, 60)
	eng.AddObserver(r)
	eng.Tick()

	s := out.String()
	if !strings.Contains(s, "tick=1") {
		t.Errorf("missing header: %q", s)
	}
	if !strings.Contains(s, "*") {
		t.Error("missing sun marker")
	}
	if !strings.Contains(s, "J") {
		t.Error("missing Jupiter marker")
	}
}

func TestLiveRendererMarksFocus(t *testing.T) {
	eng := newEngine(t)
	var out bytes.Buffer
	r := NewLiveRenderer(&out, 0, 60)
	eng.AddObserver(r)
	if _, err := eng.Focus("Matahari"); err != nil {
		t.Fatal(err)
	}
	eng.Tick()
	if !strings.Contains(out.String(), "[*]") {
		t.Error("focused sun should be bracketed")
	}
}

func TestModelResizesEngineViewport(t *testing.T) {
	eng := newEngine(t)
	m := NewModel(eng, 30)
	if eng.Viewport != (camera.Viewport{Width: defaultWidth * 2, Height: defaultHeight * 4}) {
		t.Errorf("unexpected viewport %+v", eng.Viewport)
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	m = next.(Model)
	want := camera.Viewport{Width: (140 - statsWidth - 6) * 2, Height: 38 * 4}
	if eng.Viewport != want {
		t.Errorf("expected %+v, got %+v", want, eng.Viewport)
	}
	if m.canvas.Width != 140-statsWidth-6 {
		t.Errorf("canvas not resized: %d", m.canvas.Width)
	}
}

func TestModelKeysFocusBodies(t *testing.T) {
	eng := newEngine(t)
	m := NewModel(eng, 30)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")})
	m = next.(Model)
	if b := eng.Camera.Focused(); b == nil || b.Name != "Bumi" {
		t.Fatalf("expected Bumi focused, got %v", b)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")})
	m = next.(Model)
	if eng.Camera.State() != camera.TransitionOut {
		t.Errorf("second press should reset, got %s", eng.Camera.State())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	m = next.(Model)
	if !eng.Paused() {
		t.Error("space should pause")
	}
}

func TestModelClickFocusesSun(t *testing.T) {
	eng := newEngine(t)
	m := NewModel(eng, 30)

	// canvas center, shifted by the left padding
	msg := tea.MouseMsg{X: defaultWidth/2 + 1, Y: defaultHeight / 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	next, _ := m.Update(msg)
	m = next.(Model)
	if eng.Camera.Focused() != eng.Registry.Sun() {
		t.Errorf("expected sun focused, got %v", eng.Camera.Focused())
	}
}

func TestModelTickAndView(t *testing.T) {
	eng := newEngine(t)
	m := NewModel(eng, 30)
	next, cmd := m.Update(TickMsg{})
	m = next.(Model)
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if eng.Ticks() != 1 {
		t.Errorf("expected 1 tick, got %d", eng.Ticks())
	}
	view := m.View()
	for _, want := range []string{"Matahari", "Neptunus", "Tick"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestFrameDelay(t *testing.T) {
	tests := []struct {
		fps  int
		want int
	}{
		{10, 10},
		{30, 3},
		{100, 1},
		{144, 1},
		{240, 1},
	}
	for _, tt := range tests {
		if got := frameDelay(tt.fps); got != tt.want {
			t.Errorf("frameDelay(%d) = %d, want %d", tt.fps, got, tt.want)
		}
	}
}

func TestGIFRecordingIsCapped(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	eng := newEngine(t)
	m := NewModel(eng, 30)

	// a small canvas keeps the frames cheap
	next, _ := m.Update(tea.WindowSizeMsg{Width: statsWidth + 20, Height: 12})
	m = next.(Model)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	m = next.(Model)
	if !m.recording {
		t.Fatal("g should start recording")
	}

	for i := 0; i < maxGIFFrames+5; i++ {
		next, _ = m.Update(TickMsg{})
		m = next.(Model)
		if len(m.frames) > maxGIFFrames {
			t.Fatalf("frame buffer grew past %d", maxGIFFrames)
		}
	}
	if m.recording {
		t.Error("recording should stop when the buffer is full")
	}
	if len(m.frames) != 0 {
		t.Errorf("frames should be released after saving, got %d", len(m.frames))
	}
	if info, err := os.Stat("orrery.gif"); err != nil || info.Size() == 0 {
		t.Errorf("gif not written: %v", err)
	}
}
