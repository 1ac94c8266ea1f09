// Package orbit provides the elliptical orbit model used by every planet.
//
// A body's orbit is described by fixed [Elements] and a mutable phase θ:
//
//   - [Elements.Radius]: polar radius from the conic equation r = a(1−e²)/(1+e·cos θ)
//   - [Elements.Position]: Cartesian position on the orbital plane (y = 0)
//   - [Elements.PhaseStep]: per-tick phase increment speedBase/r²
//   - [Tilt]: rotation of the orbital plane into world space
//   - [Path]: sampled closed ellipse for orbit lines
//
// The phase step keeps angular rate inversely proportional to r², so bodies
// move slowly near apoapsis and quickly near periapsis without integrating time.
//
// # Example
//
//	el := orbit.Elements{A: 11, E: 0.017, SpeedBase: 0.035}
//	theta := 0.0
//	for i := 0; i < 100; i++ {
//	    theta = orbit.Normalize(theta + el.PhaseStep(theta))
//	}
//	pos, _ := el.Position(theta)
package orbit
