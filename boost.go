package formation

import(
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"

	"github.com/skypies/geo"
	"golang.org/x/sync/errgroup"
)

// {{{ Waypoint{}

type WaypointKind string

const(
	WaypointDeparture  WaypointKind = "departure"
	WaypointBoostEntry WaypointKind = "boost_entry"
	WaypointBoostExit  WaypointKind = "boost_exit"
	WaypointArrival    WaypointKind = "arrival"
)

type Waypoint struct {
	Pos  geo.Latlong
	Kind WaypointKind
}

func (wp Waypoint)String() string { return fmt.Sprintf("%s@%s", wp.Kind, wp.Pos) }

// }}}
// {{{ BoostUse{}

// A BoostUse records one corridor transit inside a chosen path.
type BoostUse struct {
	PairKey    string
	BearingDeg float64
	EntryKM    float64 // along the corridor
	ExitKM     float64
	Entry      geo.Latlong
	Exit       geo.Latlong
	InBoostKM  float64
}

func boostUse(ct CorridorTransit) BoostUse {
	return BoostUse{
		PairKey:    ct.Corridor.PairKey,
		BearingDeg: ct.Corridor.BearingDeg,
		EntryKM:    ct.EntryKM,
		ExitKM:     ct.ExitKM,
		Entry:      ct.Entry,
		Exit:       ct.Exit,
		InBoostKM:  ct.InBoostKM(),
	}
}

// }}}
// {{{ OptimizedPath{}

// An OptimizedPath is the outcome of routing one flight through zero or
// more boost corridors. WeightedTime is in distance units (KM at unit
// speed); RealizedKM is the geometric length actually flown.
type OptimizedPath struct {
	FlightId         string
	DepartureAirport string
	ArrivalAirport   string
	DirectKM         float64
	RealizedKM       float64
	WeightedTime     float64
	TimeSavingsMin   float64
	Waypoints        []Waypoint
	Boosts           []BoostUse
}

func (op OptimizedPath)NumBoosts() int  { return len(op.Boosts) }
func (op OptimizedPath)IsBoosted() bool { return len(op.Boosts) > 0 }

func (op OptimizedPath)String() string {
	return fmt.Sprintf("%s %s-%s: %.0fKM direct, %.0fKM flown, %d boosts, saves %.1f min",
		op.FlightId, op.DepartureAirport, op.ArrivalAirport,
		op.DirectKM, op.RealizedKM, op.NumBoosts(), op.TimeSavingsMin)
}

// }}}

// {{{ OptimizeFlightPath

// OptimizeFlightPath routes one flight through whichever of its corridors
// pay off. The baseline is the direct great circle; each corridor is tried
// alone, then every ordered two-corridor chain (nearer corridor first, the
// second solved onward from the first one's exit). A candidate only
// displaces the incumbent when its weighted time is strictly better.
func OptimizeFlightPath(f *Flight, corridors []BoostCorridor) OptimizedPath {
	dep, arr := f.Origin.Pos, f.Destination.Pos
	direct := DistanceKM(dep, arr)

	op := OptimizedPath{
		FlightId:         f.Id,
		DepartureAirport: f.Origin.Airport,
		ArrivalAirport:   f.Destination.Airport,
		DirectKM:         direct,
		WeightedTime:     direct,
		Waypoints: []Waypoint{
			{dep, WaypointDeparture},
			{arr, WaypointArrival},
		},
	}

	for _, bc := range corridors {
		ct, ok := SolveCorridorTransit(dep, arr, bc)
		if !ok {
			continue
		}
		if ct.WeightedTime < op.WeightedTime {
			op.WeightedTime = ct.WeightedTime
			op.Waypoints = []Waypoint{
				{dep, WaypointDeparture},
				{ct.Entry, WaypointBoostEntry},
				{ct.Exit, WaypointBoostExit},
				{arr, WaypointArrival},
			}
			op.Boosts = []BoostUse{boostUse(ct)}
		}
	}

	// Chains: corridors sorted by how far their start sits from departure,
	// so the first transit is always the nearer one.
	ordered := append([]BoostCorridor{}, corridors...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return DistanceKM(dep, ordered[i].Start) < DistanceKM(dep, ordered[j].Start)
	})

	for i := 0; i < len(ordered); i++ {
		first, ok := SolveCorridorTransit(dep, arr, ordered[i])
		if !ok {
			continue
		}
		for j := i + 1; j < len(ordered); j++ {
			second, ok := SolveCorridorTransit(first.Exit, arr, ordered[j])
			if !ok {
				continue
			}

			w := DistanceKM(dep, first.Entry)/KNormalSpeed +
				first.InBoostKM()/KBoostSpeed +
				DistanceKM(first.Exit, second.Entry)/KNormalSpeed +
				second.InBoostKM()/KBoostSpeed +
				DistanceKM(second.Exit, arr)/KNormalSpeed

			if w < op.WeightedTime {
				op.WeightedTime = w
				op.Waypoints = []Waypoint{
					{dep, WaypointDeparture},
					{first.Entry, WaypointBoostEntry},
					{first.Exit, WaypointBoostExit},
					{second.Entry, WaypointBoostEntry},
					{second.Exit, WaypointBoostExit},
					{arr, WaypointArrival},
				}
				op.Boosts = []BoostUse{boostUse(first), boostUse(second)}
			}
		}
	}

	op.RealizedKM = realizedKM(op.Waypoints)
	op.TimeSavingsMin = math.Max(0, (direct-op.WeightedTime)/KDefaultCruiseKMH*60.0)

	return op
}

func realizedKM(waypoints []Waypoint) float64 {
	total := 0.0
	for i := 1; i < len(waypoints); i++ {
		total += DistanceKM(waypoints[i-1].Pos, waypoints[i].Pos)
	}
	return total
}

// }}}
// {{{ FlightsFromPairs

// FlightsFromPairs collects the distinct flights referenced by a pair set,
// in id order.
func FlightsFromPairs(pairs []CompatiblePair) []*Flight {
	byId := map[string]*Flight{}
	for _, cp := range pairs {
		byId[cp.A.Id] = cp.A
		byId[cp.B.Id] = cp.B
	}

	ids := make([]string, 0, len(byId))
	for id := range byId {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	flights := make([]*Flight, 0, len(ids))
	for _, id := range ids {
		flights = append(flights, byId[id])
	}
	return flights
}

// }}}
// {{{ OptimizeFlights

// OptimizeFlights routes every flight against the corridors its own pairs
// produced, fanning out across a bounded pool of workers. Results come back
// sorted by time saved, best first.
func OptimizeFlights(ctx context.Context, flights []*Flight, pairs []CompatiblePair, maxWorkers int) ([]OptimizedPath, error) {
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}

	corridors := CorridorsFromPairs(pairs)
	out := make([]OptimizedPath, len(flights))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxWorkers)
	for i, f := range flights {
		i, f := i, f // per-iteration copies; module builds as go 1.21
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			mine := TopCorridorsForFlight(corridors, f.Id, KMaxCorridorsPerFlight)
			out[i] = OptimizeFlightPath(f, mine)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("OptimizeFlights: %v", err)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TimeSavingsMin != out[j].TimeSavingsMin {
			return out[i].TimeSavingsMin > out[j].TimeSavingsMin
		}
		return out[i].FlightId < out[j].FlightId
	})

	return out, nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
