// Package camera manages the camera pose for the orrery.
//
// [Controller] owns the focus state machine:
//
//	FREE ──focus──▶ TRANSITION_IN ──progress≥1──▶ FOLLOWING
//	  ▲                  │  ▲                         │
//	  │                reset focus                  reset
//	  │                  ▼  │                         │
//	  └──progress≥1── TRANSITION_OUT ◀────────────────┘
//
// Transitions are advanced once per tick by [Controller.Advance]; starting a
// new transition replaces the one in flight.
//
// [OrbitControls] is the free-orbit input handler. It rotates and zooms the
// camera around its target and reports the start of each user gesture, which
// the controller uses to stop rigid following.
//
// [Lens] and [Viewport] describe the perspective projection.
package camera
