package orbit

import "errors"

// Domain errors for orbital element validation.
var (
	// ErrSemiMajorAxis indicates a non-positive or non-finite semi-major axis.
	ErrSemiMajorAxis = errors.New("orbit: semi-major axis must be positive")

	// ErrEccentricity indicates an eccentricity outside [0, 1).
	ErrEccentricity = errors.New("orbit: eccentricity must be in [0, 1)")

	// ErrSpeedBase indicates a negative or non-finite angular rate factor.
	ErrSpeedBase = errors.New("orbit: speed base must be non-negative")
)
