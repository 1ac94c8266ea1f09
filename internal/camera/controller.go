package camera

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orrery/internal/body"
)

type State int

const (
	Free State = iota
	TransitionIn
	Following
	TransitionOut
)

func (s State) String() string {
	switch s {
	case Free:
		return "free"
	case TransitionIn:
		return "transition_in"
	case Following:
		return "following"
	case TransitionOut:
		return "transition_out"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

func ParseState(s string) (State, error) {
	for _, st := range []State{Free, TransitionIn, Following, TransitionOut} {
		if st.String() == s {
			return st, nil
		}
	}
	return Free, fmt.Errorf("camera: unknown state %q", s)
}

// Action is what a toggle did.
type Action int

const (
	ActionNone Action = iota
	ActionFocus
	ActionReset
)

func (a Action) String() string {
	switch a {
	case ActionFocus:
		return "focus"
	case ActionReset:
		return "reset"
	default:
		return "none"
	}
}

type Settings struct {
	Step         float64 // transition progress per tick
	SunDistance  float64 // focus distance for the sun
	RadiusFactor float64 // focus distance per unit of planet radius
	UpWeight     float64
	SideWeight   float64
	RadialWeight float64
}

func DefaultSettings() Settings {
	return Settings{
		Step:         0.05,
		SunDistance:  25,
		RadiusFactor: 10,
		UpWeight:     0.5,
		SideWeight:   0.8,
		RadialWeight: 0.3,
	}
}

// FocusState is a snapshot of the controller's focus fields.
type FocusState struct {
	Body         *body.Body
	Following    bool
	Offset       mgl64.Vec3
	UserOverrode bool
}

// Controller drives the camera pose through focus transitions and follow
// tracking. It is the only writer of the focus state, and the only writer of
// the pose while OwnsPose reports true.
type Controller struct {
	settings Settings
	pose     *Pose
	home     Pose
	log      *log.Logger

	state        State
	focused      *body.Body
	offset       mgl64.Vec3
	userOverrode bool
	progress     float64
	ticks        int
	from         Pose
}

// NewController remembers the current pose as the overview pose that Reset
// returns to.
func NewController(pose *Pose, settings Settings, logger *log.Logger) *Controller {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if settings.Step <= 0 {
		settings.Step = DefaultSettings().Step
	}
	return &Controller{
		settings: settings,
		pose:     pose,
		home:     *pose,
		log:      logger.WithPrefix("camera"),
	}
}

func (c *Controller) State() State        { return c.state }
func (c *Controller) Focused() *body.Body { return c.focused }
func (c *Controller) Progress() float64   { return c.progress }
func (c *Controller) Home() Pose          { return c.home }
func (c *Controller) Settings() Settings  { return c.settings }

func (c *Controller) Focus() FocusState {
	return FocusState{
		Body:         c.focused,
		Following:    c.state == Following,
		Offset:       c.offset,
		UserOverrode: c.userOverrode,
	}
}

// OwnsPose reports whether the controller writes the pose this tick, in which
// case free-orbit input must not.
func (c *Controller) OwnsPose() bool {
	switch c.state {
	case TransitionIn, TransitionOut:
		return true
	case Following:
		return !c.userOverrode
	default:
		return false
	}
}

// FocusDistance is the camera-to-body distance used when focusing b.
func (c *Controller) FocusDistance(b *body.Body) float64 {
	if b.IsSun() {
		return c.settings.SunDistance
	}
	return b.Radius * c.settings.RadiusFactor
}

// FocusOffset is the camera offset from b's world position: a normalized blend
// of up, side and sun-to-body directions scaled by FocusDistance. For a body at
// the origin the horizontal direction toward the current camera stands in for
// the sun-to-body direction.
func (c *Controller) FocusOffset(b *body.Body) mgl64.Vec3 {
	wp := b.WorldPosition()
	radial := wp
	if radial.Len() < epsilon {
		radial = c.pose.Position.Sub(wp)
		radial[1] = 0
		if radial.Len() < epsilon {
			radial = mgl64.Vec3{0, 0, 1}
		}
	}
	radial = radial.Normalize()

	side := radial.Cross(WorldUp)
	if side.Len() < epsilon {
		side = mgl64.Vec3{1, 0, 0}
	} else {
		side = side.Normalize()
	}

	dir := WorldUp.Mul(c.settings.UpWeight).
		Add(side.Mul(c.settings.SideWeight)).
		Add(radial.Mul(c.settings.RadialWeight))
	if dir.Len() < epsilon {
		dir = WorldUp
	}
	return dir.Normalize().Mul(c.FocusDistance(b))
}

// FocusOn starts a transition toward b from the current pose, replacing any
// transition in flight.
func (c *Controller) FocusOn(b *body.Body) {
	if b == nil {
		return
	}
	c.offset = c.FocusOffset(b)
	c.focused = b
	c.userOverrode = false
	c.startTransition()
	c.state = TransitionIn
	c.log.Debug("focus", "body", b.Name, "distance", c.FocusDistance(b))
}

// Reset starts a transition back to the overview pose. Focus is released
// immediately; the override flag clears when the transition completes. A
// free camera moved by the orbit controls also animates home.
func (c *Controller) Reset() {
	if c.state == Free && c.focused == nil && c.pose.ApproxEqual(c.home, epsilon) {
		return
	}
	c.focused = nil
	c.startTransition()
	c.state = TransitionOut
	c.log.Debug("reset")
}

// Toggle resets when b is the focused body and focuses b otherwise.
func (c *Controller) Toggle(b *body.Body) Action {
	if b == nil {
		return ActionNone
	}
	if c.focused == b {
		c.Reset()
		return ActionReset
	}
	c.FocusOn(b)
	return ActionFocus
}

// NotifyUserMovement is the free-orbit gesture-start signal. It only has an
// effect while following.
func (c *Controller) NotifyUserMovement() {
	if c.state == Following && !c.userOverrode {
		c.userOverrode = true
		c.log.Debug("user override", "body", c.focused.Name)
	}
}

func (c *Controller) startTransition() {
	c.from = *c.pose
	c.progress = 0
	c.ticks = 0
}

// step advances transition progress on a tick count so that a step of 0.05
// completes in exactly 20 ticks.
func (c *Controller) step() bool {
	c.ticks++
	c.progress = float64(c.ticks) * c.settings.Step
	if c.progress >= 1-1e-9 {
		c.progress = 1
		return true
	}
	return false
}

// Advance moves the controller by one tick.
func (c *Controller) Advance() {
	switch c.state {
	case TransitionIn:
		done := c.step()
		wp := c.focused.WorldPosition()
		*c.pose = Lerp(c.from, Pose{Position: wp.Add(c.offset), Target: wp}, c.progress)
		if done {
			c.state = Following
			c.userOverrode = false
			c.log.Debug("following", "body", c.focused.Name)
		}
	case Following:
		wp := c.focused.WorldPosition()
		if !c.userOverrode {
			c.pose.Position = wp.Add(c.offset)
		}
		c.pose.Target = wp
	case TransitionOut:
		done := c.step()
		*c.pose = Lerp(c.from, c.home, c.progress)
		if done {
			c.state = Free
			c.userOverrode = false
			c.offset = mgl64.Vec3{}
			c.log.Debug("free")
		}
	}
}
