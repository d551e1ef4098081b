package formation

import(
	"math"

	"github.com/skypies/geo"
	"gonum.org/v1/gonum/optimize"
)

const(
	// Relative speeds; formation flight covers ground 10% faster.
	KNormalSpeed = 1.0
	KBoostSpeed  = 1.1

	// A boost shorter than this isn't worth the join-up.
	KMinBoostKM = 10.0

	kPenaltyWeight = 1.0e4
)

// {{{ CorridorTransit{}

// A CorridorTransit is one optimized pass through a corridor: where to
// enter, where to leave, and the weighted travel time of the whole
// from->entry->exit->to dogleg.
type CorridorTransit struct {
	Corridor     BoostCorridor
	EntryKM      float64 // distances along the corridor from its start
	ExitKM       float64
	Entry        geo.Latlong
	Exit         geo.Latlong
	WeightedTime float64
}

func (ct CorridorTransit)InBoostKM() float64 { return DistanceKM(ct.Entry, ct.Exit) }

// }}}

// {{{ SolveCorridorTransit

// SolveCorridorTransit finds the entry/exit distances along the corridor
// that minimize weighted travel time from one point to another. This is the
// Snell's-law setup: the corridor is a medium where distance is 10% cheaper,
// so the optimum bends the path to spend more of it inside. The search is
// an unconstrained Nelder-Mead over a penalized objective; the bool is
// false when the corridor is too short or the minimizer fails to converge.
func SolveCorridorTransit(from, to geo.Latlong, bc BoostCorridor) (CorridorTransit, bool) {
	if bc.LengthKM < KMinBoostKM {
		return CorridorTransit{}, false
	}

	objective := func(v []float64) float64 {
		entry, exit := bc.PointAt(v[0]), bc.PointAt(v[1])
		t := DistanceKM(from, entry)/KNormalSpeed +
			DistanceKM(entry, exit)/KBoostSpeed +
			DistanceKM(exit, to)/KNormalSpeed
		t += constraintPenalty(v[0])                       // entry >= 0
		t += constraintPenalty(bc.LengthKM - v[1])         // exit <= length
		t += constraintPenalty(v[1] - v[0] - KMinBoostKM)  // exit >= entry + 10KM
		return t
	}

	x0 := []float64{0.33 * bc.LengthKM, 0.66 * bc.LengthKM}
	problem := optimize.Problem{Func: objective}

	result, err := optimize.Minimize(problem, x0, nil, &optimize.NelderMead{})
	if err != nil {
		return CorridorTransit{}, false
	}
	if err := result.Status.Err(); err != nil {
		return CorridorTransit{}, false
	}

	e, x, ok := repairTransit(result.X[0], result.X[1], bc.LengthKM)
	if !ok {
		return CorridorTransit{}, false
	}

	ct := CorridorTransit{
		Corridor: bc,
		EntryKM:  e,
		ExitKM:   x,
		Entry:    bc.PointAt(e),
		Exit:     bc.PointAt(x),
	}
	ct.WeightedTime = DistanceKM(from, ct.Entry)/KNormalSpeed +
		DistanceKM(ct.Entry, ct.Exit)/KBoostSpeed +
		DistanceKM(ct.Exit, to)/KNormalSpeed

	return ct, true
}

func constraintPenalty(slack float64) float64 {
	if slack >= 0 {
		return 0
	}
	return kPenaltyWeight * slack * slack
}

// repairTransit snaps a penalized solution back onto the feasible region.
// The penalty lets the minimizer sit a hair outside a boundary; anything
// further out than a hair means it never really converged.
func repairTransit(e, x, lengthKM float64) (float64, float64, bool) {
	const slop = 0.5 // KM

	if e < -slop || x > lengthKM+slop || x-e < KMinBoostKM-slop {
		return 0, 0, false
	}

	e = math.Max(0, math.Min(e, lengthKM))
	x = math.Max(0, math.Min(x, lengthKM))
	if x-e < KMinBoostKM {
		x = math.Min(lengthKM, e+KMinBoostKM)
		if x-e < KMinBoostKM {
			e = x - KMinBoostKM
		}
	}
	if e < 0 {
		return 0, 0, false
	}

	return e, x, true
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
