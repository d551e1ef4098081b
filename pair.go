package formation

import(
	"fmt"
	"math"
	"time"
)

// {{{ PairKind{}

type PairKind int

const(
	KindSimilar PairKind = iota  // one shared endpoint, near-parallel courses
	KindIntersecting             // disjoint airports, paths cross closely in space and time
)

func (pk PairKind)String() string {
	switch pk {
	case KindSimilar:      return "similar"
	case KindIntersecting: return "intersecting"
	default:               return fmt.Sprintf("?%d?", int(pk))
	}
}

// }}}
// {{{ CompatiblePair{}

// A CompatiblePair is two flights judged able to fly a stretch in formation.
// Flights are held in canonical order (A.Id <= B.Id), so the same two
// flights always produce the same pair regardless of discovery order.
type CompatiblePair struct {
	Kind         PairKind
	A, B         *Flight
	AngleDeg     float64

	// Only populated for intersecting pairs: where the chords cross, and
	// each flight's interpolated time of arrival there.
	Crossing     Intersection
	ATimeAtCross time.Time
	BTimeAtCross time.Time
}

func (cp CompatiblePair)String() string {
	str := fmt.Sprintf("%s pair %s + %s, %.1f deg", cp.Kind, cp.A.IdentString(),
		cp.B.IdentString(), cp.AngleDeg)
	if cp.Kind == KindIntersecting {
		str += fmt.Sprintf(" crossing at %s", cp.Crossing.Latlong)
	}
	return str
}

// Key is stable across runs and across A/B discovery order; used for dedup.
func (cp CompatiblePair)Key() string {
	return cp.A.Id + "|" + cp.B.Id
}

// EfficiencyScore ranks how much formation benefit a pair promises: tighter
// courses score higher, and crossing pairs get a premium since both flights
// pass through the same point.
func (cp CompatiblePair)EfficiencyScore() float64 {
	score := 1.0 - cp.AngleDeg/45.0
	if cp.Kind == KindIntersecting {
		score *= 1.2
	}
	return score
}

// }}}
// {{{ PairOptions{}

type PairOptions struct {
	MaxSimilarAngleDeg     float64
	MaxIntersectAngleDeg   float64
	MaxEndpointGapMin      float64 // times-of-day gap at the shared airport
	MaxCrossingGapMin      float64 // absolute gap between arrivals at the crossing
}

func DefaultPairOptions() PairOptions {
	return PairOptions{
		MaxSimilarAngleDeg:   45.0,
		MaxIntersectAngleDeg: 10.0,
		MaxEndpointGapMin:    180.0,
		MaxCrossingGapMin:    60.0,
	}
}

// }}}

// {{{ ClassifyPair

// ClassifyPair decides whether two flights are compatible, and how. The
// returned bool is false when they aren't; that is the common case, not an
// error. Inputs are assumed to satisfy HasEndpoints.
func ClassifyPair(a, b *Flight, opt PairOptions) (CompatiblePair, bool) {
	if b.Id < a.Id {
		a, b = b, a
	}

	sharedDep := a.SharesOrigin(*b)
	sharedArr := a.SharesDestination(*b)

	if sharedDep && sharedArr {
		// Identical routes can't trade a detour for a boost.
		return CompatiblePair{}, false
	}

	angle, ok := CourseAngle(a.Origin.Pos, a.Destination.Pos, b.Origin.Pos, b.Destination.Pos)
	if !ok {
		return CompatiblePair{}, false
	}

	if sharedDep || sharedArr {
		return classifySimilar(a, b, angle, sharedDep, opt)
	}
	return classifyIntersecting(a, b, angle, opt)
}

func classifySimilar(a, b *Flight, angle float64, sharedDep bool, opt PairOptions) (CompatiblePair, bool) {
	if angle > opt.MaxSimilarAngleDeg {
		return CompatiblePair{}, false
	}

	// Compare times-of-day at whichever endpoint is shared.
	var gap float64
	if sharedDep {
		gap = minuteOfDayGap(a.Origin.MinuteOfDay(), b.Origin.MinuteOfDay())
	} else {
		gap = minuteOfDayGap(a.Destination.MinuteOfDay(), b.Destination.MinuteOfDay())
	}
	if gap > opt.MaxEndpointGapMin {
		return CompatiblePair{}, false
	}

	return CompatiblePair{Kind: KindSimilar, A: a, B: b, AngleDeg: angle}, true
}

func classifyIntersecting(a, b *Flight, angle float64, opt PairOptions) (CompatiblePair, bool) {
	if angle > opt.MaxIntersectAngleDeg {
		return CompatiblePair{}, false
	}

	x, ok := ChordIntersection(a.Origin.Pos, a.Destination.Pos, b.Origin.Pos, b.Destination.Pos)
	if !ok {
		return CompatiblePair{}, false
	}

	// Each flight reaches the crossing at a time interpolated along its
	// schedule by the chord parameter.
	aAt := timeAlong(a, x.T1)
	bAt := timeAlong(b, x.T2)
	if gap := math.Abs(aAt.Sub(bAt).Minutes()); gap > opt.MaxCrossingGapMin {
		return CompatiblePair{}, false
	}

	return CompatiblePair{
		Kind: KindIntersecting,
		A: a, B: b,
		AngleDeg: angle,
		Crossing: x,
		ATimeAtCross: aAt,
		BTimeAtCross: bAt,
	}, true
}

func timeAlong(f *Flight, frac float64) time.Time {
	return f.Origin.TimeUTC.Add(time.Duration(float64(f.Duration()) * frac))
}

func minuteOfDayGap(m1, m2 float64) float64 {
	d := math.Abs(m1 - m2)
	return math.Min(d, 1440.0-d)
}

// }}}
// {{{ FindPairs

// FindPairs classifies every unordered pair in the flight set once. Flights
// without usable endpoints are skipped; the count of skipped flights comes
// back alongside the pairs.
func FindPairs(flights []*Flight, opt PairOptions) ([]CompatiblePair, int) {
	usable := make([]*Flight, 0, len(flights))
	skipped := 0
	for _, f := range flights {
		if f == nil || !f.HasEndpoints() {
			skipped++
			continue
		}
		usable = append(usable, f)
	}

	pairs := []CompatiblePair{}
	for i := 0; i < len(usable); i++ {
		for j := i + 1; j < len(usable); j++ {
			if pair, ok := ClassifyPair(usable[i], usable[j], opt); ok {
				pairs = append(pairs, pair)
			}
		}
	}

	return pairs, skipped
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
