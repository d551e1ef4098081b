// Package formation contains the matching and optimization engine for
// formation flight: discovery of compatible flight pairs, construction of
// boost corridors, a corridor entry/exit path optimizer, and a
// departure-time/flight-following optimizer. No AppEngine imports.
package formation

import "time"

const(
	// This is the 'quantization' value, used to index a flight based on
	// which timeslots it overlaps. Never change this value once you've
	// started populating a database, unless you're going to regenerate it
	TimeslotDuration = 30 * time.Minute

	// KDefaultCruiseKMH is the airspeed assumed when converting distances
	// into durations, absent better information about the airframe.
	KDefaultCruiseKMH = 800.0

	// KPathStepDuration is the sampling interval for synthesized paths.
	KPathStepDuration = 5 * time.Minute
)
