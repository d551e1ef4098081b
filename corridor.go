package formation

import(
	"fmt"
	"math"
	"sort"

	"github.com/skypies/geo"
)

const(
	// Corridors from crossing pairs run a fixed 400KM, centered on the
	// crossing; corridors from shared-endpoint pairs run 80% of the
	// shorter route.
	KIntersectCorridorLengthKM = 400.0
	KSimilarCorridorFraction   = 0.8

	// A flight in many pairs only considers its best few corridors.
	KMaxCorridorsPerFlight = 3
)

// {{{ BoostCorridor{}

// A BoostCorridor is a straight stretch of sky, at a fixed bearing, where a
// pair of flights could fly in formation and so cover ground 10% faster.
// Derived from a CompatiblePair; read-only once built.
type BoostCorridor struct {
	Start      geo.Latlong
	BearingDeg float64
	LengthKM   float64
	Efficiency float64

	// Provenance
	Kind      PairKind
	PairKey   string
	FlightIds [2]string
}

func (bc BoostCorridor)String() string {
	return fmt.Sprintf("corridor[%s] %.0fKM at %.0fdeg from %s (eff %.2f)",
		bc.PairKey, bc.LengthKM, bc.BearingDeg, bc.Start, bc.Efficiency)
}

// PointAt projects km along the corridor from its start.
func (bc BoostCorridor)PointAt(km float64) geo.Latlong {
	return DestinationPoint(bc.Start, bc.BearingDeg, km)
}

func (bc BoostCorridor)End() geo.Latlong { return bc.PointAt(bc.LengthKM) }

func (bc BoostCorridor)ServesFlight(id string) bool {
	return bc.FlightIds[0] == id || bc.FlightIds[1] == id
}

// }}}

// {{{ CorridorFromPair

// CorridorFromPair realizes the formation-eligible stretch a pair implies.
// Crossing pairs get a corridor centered on the crossing; shared-endpoint
// pairs get one running out of (or into) the shared airport. Either way the
// bearing is the bisector of the two courses.
func CorridorFromPair(cp CompatiblePair) BoostCorridor {
	b1 := InitialBearing(cp.A.Origin.Pos, cp.A.Destination.Pos)
	b2 := InitialBearing(cp.B.Origin.Pos, cp.B.Destination.Pos)
	bearing := BisectBearings(b1, b2)

	bc := BoostCorridor{
		BearingDeg: bearing,
		Efficiency: cp.EfficiencyScore(),
		Kind:       cp.Kind,
		PairKey:    cp.Key(),
		FlightIds:  [2]string{cp.A.Id, cp.B.Id},
	}

	if cp.Kind == KindIntersecting {
		back := math.Mod(bearing+180.0, 360.0)
		bc.Start = DestinationPoint(cp.Crossing.Latlong, back, KIntersectCorridorLengthKM/2.0)
		bc.LengthKM = KIntersectCorridorLengthKM
		return bc
	}

	if cp.A.SharesOrigin(*cp.B) {
		bc.Start = cp.A.Origin.Pos
	} else {
		bc.Start = cp.A.Destination.Pos
	}
	bc.LengthKM = KSimilarCorridorFraction * math.Min(cp.A.DirectKM(), cp.B.DirectKM())

	return bc
}

func CorridorsFromPairs(pairs []CompatiblePair) []BoostCorridor {
	out := make([]BoostCorridor, 0, len(pairs))
	for _, cp := range pairs {
		out = append(out, CorridorFromPair(cp))
	}
	return out
}

// }}}
// {{{ TopCorridorsForFlight

// TopCorridorsForFlight picks the corridors whose source pair involves the
// flight, keeping only the most efficient few when there are many. Ties
// break on pair key, so output order is stable across runs.
func TopCorridorsForFlight(corridors []BoostCorridor, flightId string, max int) []BoostCorridor {
	mine := []BoostCorridor{}
	for _, bc := range corridors {
		if bc.ServesFlight(flightId) {
			mine = append(mine, bc)
		}
	}

	sort.Slice(mine, func(i, j int) bool {
		if mine[i].Efficiency != mine[j].Efficiency {
			return mine[i].Efficiency > mine[j].Efficiency
		}
		return mine[i].PairKey < mine[j].PairKey
	})

	if max > 0 && len(mine) > max {
		mine = mine[:max]
	}
	return mine
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
