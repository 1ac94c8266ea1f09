package automation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/san-kum/orrery/internal/camera"
	"github.com/san-kum/orrery/internal/sim"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownAction     = errors.New("unknown action")
	ErrExpectationFailed = errors.New("expectation failed")
)

// Scenario is a scripted camera tour.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Preset      string `yaml:"preset,omitempty"`
	Steps       []Step `yaml:"steps"`
}

// Step is one action followed by optional expectations.
//
// Actions: tick, click, focus, reset, drag, zoom, resize, pause, resume.
// A click hits Body's projected screen position when Body is set, otherwise
// the point (X, Y).
type Step struct {
	Action  string       `yaml:"action"`
	Ticks   int          `yaml:"ticks,omitempty"`
	Body    string       `yaml:"body,omitempty"`
	X       float64      `yaml:"x,omitempty"`
	Y       float64      `yaml:"y,omitempty"`
	DX      float64      `yaml:"dx,omitempty"`
	DY      float64      `yaml:"dy,omitempty"`
	Notches float64      `yaml:"notches,omitempty"`
	Width   int          `yaml:"width,omitempty"`
	Height  int          `yaml:"height,omitempty"`
	Expect  *Expectation `yaml:"expect,omitempty"`
}

// Expectation is checked after its step. Nil fields are not checked; an
// empty Focused means no body.
type Expectation struct {
	State     string   `yaml:"state,omitempty"`
	Focused   *string  `yaml:"focused,omitempty"`
	Overrode  *bool    `yaml:"overrode,omitempty"`
	Distance  *float64 `yaml:"distance,omitempty"`
	Tolerance float64  `yaml:"tolerance,omitempty"`
}

type StepReport struct {
	Index   int
	Action  string
	Tick    int
	State   camera.State
	Focused string
	Result  camera.Action
	Failure string
}

func (s StepReport) Passed() bool { return s.Failure == "" }

type Report struct {
	Name  string
	Steps []StepReport
}

func (r *Report) Passed() bool {
	for _, s := range r.Steps {
		if !s.Passed() {
			return false
		}
	}
	return true
}

func (r *Report) Failures() []StepReport {
	var out []StepReport
	for _, s := range r.Steps {
		if !s.Passed() {
			out = append(out, s)
		}
	}
	return out
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return &scenario, nil
}

func SaveScenario(path string, s *Scenario) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// RunScenario executes all steps against eng. Failed expectations are
// collected in the report and reported as ErrExpectationFailed; an unknown
// action or a cancelled context stops the run.
func RunScenario(ctx context.Context, scenario *Scenario, eng *sim.Engine, logger *log.Logger) (*Report, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.WithPrefix("tour")
	report := &Report{Name: scenario.Name}

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		logger.Debug("step", "n", i+1, "of", len(scenario.Steps), "action", step.Action)

		sr := StepReport{Index: i + 1, Action: step.Action}
		res, failure, err := apply(ctx, eng, step)
		if err != nil {
			return report, fmt.Errorf("step %d: %w", i+1, err)
		}
		sr.Result = res
		sr.Failure = failure
		if sr.Failure == "" && step.Expect != nil {
			sr.Failure = check(eng, step.Expect)
		}

		sr.Tick = eng.Ticks()
		sr.State = eng.Camera.State()
		if b := eng.Camera.Focused(); b != nil {
			sr.Focused = b.Name
		}
		if !sr.Passed() {
			logger.Warn("step failed", "n", i+1, "action", step.Action, "reason", sr.Failure)
		}
		report.Steps = append(report.Steps, sr)
	}

	if !report.Passed() {
		return report, fmt.Errorf("%s: %w (%d of %d steps)", scenario.Name, ErrExpectationFailed, len(report.Failures()), len(report.Steps))
	}
	logger.Info("tour passed", "name", scenario.Name, "steps", len(report.Steps), "ticks", eng.Ticks())
	return report, nil
}

func apply(ctx context.Context, eng *sim.Engine, step Step) (camera.Action, string, error) {
	switch strings.ToLower(step.Action) {
	case "tick":
		n := step.Ticks
		if n <= 0 {
			n = 1
		}
		if _, err := eng.Run(ctx, n, nil); err != nil {
			return camera.ActionNone, "", err
		}
	case "click":
		x, y := step.X, step.Y
		if step.Body != "" {
			b, err := eng.Registry.ByName(step.Body)
			if err != nil {
				return camera.ActionNone, "", err
			}
			s, _, ok := eng.Project(b.WorldPosition())
			if !ok {
				return camera.ActionNone, fmt.Sprintf("%s is off screen", b.Name), nil
			}
			x, y = s.X(), s.Y()
		}
		return eng.Click(x, y), "", nil
	case "focus":
		a, err := eng.Focus(step.Body)
		return a, "", err
	case "reset":
		eng.Reset()
		return camera.ActionReset, "", nil
	case "drag":
		eng.Rotate(step.DX, step.DY)
		eng.EndDrag()
	case "zoom":
		eng.Zoom(step.Notches)
	case "resize":
		eng.Resize(step.Width, step.Height)
	case "pause":
		eng.SetPaused(true)
	case "resume":
		eng.SetPaused(false)
	default:
		return camera.ActionNone, "", fmt.Errorf("%w: %q", ErrUnknownAction, step.Action)
	}
	return camera.ActionNone, "", nil
}

func check(eng *sim.Engine, ex *Expectation) string {
	if ex.State != "" {
		want, err := camera.ParseState(ex.State)
		if err != nil {
			return err.Error()
		}
		if got := eng.Camera.State(); got != want {
			return fmt.Sprintf("state: want %s, got %s", want, got)
		}
	}
	if ex.Focused != nil {
		got := ""
		if b := eng.Camera.Focused(); b != nil {
			got = b.Name
		}
		if !strings.EqualFold(got, *ex.Focused) {
			return fmt.Sprintf("focused: want %q, got %q", *ex.Focused, got)
		}
	}
	if ex.Overrode != nil {
		if got := eng.Camera.Focus().UserOverrode; got != *ex.Overrode {
			return fmt.Sprintf("overrode: want %v, got %v", *ex.Overrode, got)
		}
	}
	if ex.Distance != nil {
		tol := ex.Tolerance
		if tol <= 0 {
			tol = 1e-6
		}
		b := eng.Camera.Focused()
		if b == nil {
			return "distance: no focused body"
		}
		got := eng.Pose.Position.Sub(b.WorldPosition()).Len()
		if math.Abs(got-*ex.Distance) > tol {
			return fmt.Sprintf("distance: want %.4f, got %.4f", *ex.Distance, got)
		}
	}
	return ""
}
