package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type ControlsSettings struct {
	RotateSpeed   float64
	ZoomSpeed     float64 // distance factor per wheel notch toward the target, in (0, 1)
	EnableDamping bool
	DampingFactor float64
	MinDistance   float64
	MaxDistance   float64
	MinPolar      float64 // radians from +Y
	MaxPolar      float64
}

func DefaultControlsSettings() ControlsSettings {
	return ControlsSettings{
		RotateSpeed:   1.0,
		ZoomSpeed:     0.95,
		EnableDamping: true,
		DampingFactor: 0.05,
		MinDistance:   0.5,
		MaxDistance:   500,
		MinPolar:      0.01,
		MaxPolar:      math.Pi - 0.01,
	}
}

// OrbitControls rotates and zooms the camera around its target in spherical
// coordinates. Input accumulates as deltas that Update applies once per frame.
type OrbitControls struct {
	settings ControlsSettings

	thetaDelta float64 // azimuth about +Y
	phiDelta   float64 // polar angle from +Y
	scale      float64
	dragging   bool

	// OnStart fires when a drag gesture begins and on every zoom step.
	OnStart func()
}

func NewOrbitControls(settings ControlsSettings) *OrbitControls {
	if settings.DampingFactor <= 0 || settings.DampingFactor > 1 {
		settings.DampingFactor = 1
	}
	if settings.ZoomSpeed <= 0 || settings.ZoomSpeed >= 1 {
		settings.ZoomSpeed = DefaultControlsSettings().ZoomSpeed
	}
	return &OrbitControls{settings: settings, scale: 1}
}

func (o *OrbitControls) Settings() ControlsSettings { return o.settings }
func (o *OrbitControls) Dragging() bool             { return o.dragging }

func (o *OrbitControls) start() {
	if o.OnStart != nil {
		o.OnStart()
	}
}

// Rotate feeds a pointer drag of (dx, dy) pixels. A full viewport height of
// vertical drag turns the camera by 2π·RotateSpeed.
func (o *OrbitControls) Rotate(dx, dy float64, viewportHeight int) {
	if viewportHeight <= 0 || (dx == 0 && dy == 0) {
		return
	}
	if !o.dragging {
		o.dragging = true
		o.start()
	}
	k := 2 * math.Pi * o.settings.RotateSpeed / float64(viewportHeight)
	o.thetaDelta -= dx * k
	o.phiDelta -= dy * k
}

// EndDrag marks the end of a drag gesture.
func (o *OrbitControls) EndDrag() { o.dragging = false }

// Zoom feeds wheel notches; positive values move toward the target.
func (o *OrbitControls) Zoom(notches float64) {
	if notches == 0 {
		return
	}
	o.start()
	o.scale *= math.Pow(o.settings.ZoomSpeed, notches)
}

// Discard drops pending input.
func (o *OrbitControls) Discard() {
	o.thetaDelta, o.phiDelta, o.scale = 0, 0, 1
}

// Pending reports whether Update still has motion to apply.
func (o *OrbitControls) Pending() bool {
	return math.Abs(o.thetaDelta) > 1e-9 || math.Abs(o.phiDelta) > 1e-9 || o.scale != 1
}

// Update applies pending input to pose and returns whether the position
// changed. The distance is clamped to [MinDistance, MaxDistance] even with no
// pending input.
func (o *OrbitControls) Update(pose *Pose) bool {
	offset := pose.Position.Sub(pose.Target)
	radius := offset.Len()
	if radius < epsilon {
		o.Discard()
		return false
	}

	theta := math.Atan2(offset.X(), offset.Z())
	phi := math.Acos(mgl64.Clamp(offset.Y()/radius, -1, 1))

	f := 1.0
	if o.settings.EnableDamping {
		f = o.settings.DampingFactor
	}
	theta += o.thetaDelta * f
	phi = mgl64.Clamp(phi+o.phiDelta*f, o.settings.MinPolar, o.settings.MaxPolar)
	radius = mgl64.Clamp(radius*o.scale, o.settings.MinDistance, o.settings.MaxDistance)

	sinPhi := math.Sin(phi)
	next := pose.Target.Add(mgl64.Vec3{
		radius * sinPhi * math.Sin(theta),
		radius * math.Cos(phi),
		radius * sinPhi * math.Cos(theta),
	})
	changed := !next.ApproxEqualThreshold(pose.Position, 1e-12)
	pose.Position = next

	if o.settings.EnableDamping {
		o.thetaDelta *= 1 - f
		o.phiDelta *= 1 - f
	} else {
		o.thetaDelta, o.phiDelta = 0, 0
	}
	o.scale = 1
	return changed
}
