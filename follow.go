package formation

import(
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"
	"time"

	"github.com/skypies/geo"
	"golang.org/x/sync/errgroup"
)

// {{{ TrajectorySource

// A NodeRef is a sampled trajectory node tagged with the flight it belongs to.
type NodeRef struct {
	FlightId string
	Node     PathNode
}

// TrajectorySource is the external trajectory/spatial index the following
// optimizer reads from. Implementations live elsewhere (datastore-backed,
// in-memory); the optimizer only cares about these three query shapes.
type TrajectorySource interface {
	// NodesInTimeRange returns up to limit nodes timestamped within [s,e].
	NodesInTimeRange(ctx context.Context, s, e time.Time, limit int) ([]NodeRef, error)

	// NearbyNodes returns up to limit nodes within radiusKM of pos,
	// timestamped within [s,e].
	NearbyNodes(ctx context.Context, pos geo.Latlong, radiusKM float64, s, e time.Time, limit int) ([]NodeRef, error)

	// Trajectory returns a flight's full node sequence, in time order.
	Trajectory(ctx context.Context, flightId string) (FlightPath, error)
}

// }}}
// {{{ FollowOptions{}

type FollowOptions struct {
	Offsets          []time.Duration // departure times to evaluate, relative to schedule
	DepartureWindow  time.Duration   // candidates must start within this of the offset time
	MaxCandidates    int
	MaxCourseDiffDeg float64
	EfficiencyGain   float64 // fractional cost reduction while following
	MaxDetourKM      float64
	MaxDivergenceKM  float64
	MaxInterceptMin  float64
	CruiseKMH        float64
	MaxWorkers       int

	nodeQueryLimit int
}

func DefaultFollowOptions() FollowOptions {
	return FollowOptions{
		Offsets: []time.Duration{
			-60 * time.Minute, -40 * time.Minute, -20 * time.Minute, 0,
			20 * time.Minute, 40 * time.Minute, 60 * time.Minute,
		},
		DepartureWindow:  10 * time.Minute,
		MaxCandidates:    50,
		MaxCourseDiffDeg: 45.0,
		EfficiencyGain:   0.05,
		MaxDetourKM:      200.0,
		MaxDivergenceKM:  100.0,
		MaxInterceptMin:  240.0,
		CruiseKMH:        KDefaultCruiseKMH,
		MaxWorkers:       runtime.NumCPU(),
		nodeQueryLimit:   2000,
	}
}

// }}}
// {{{ FollowRequest{}

type FollowRequest struct {
	Origin             geo.Latlong
	Destination        geo.Latlong
	OriginAirport      string
	DestinationAirport string
	ScheduledDeparture time.Time
	Duration           time.Duration // zero means derive from distance at cruise speed
}

func (req FollowRequest)DirectKM() float64 {
	return DistanceKM(req.Origin, req.Destination)
}

func (req FollowRequest)EffectiveDuration(cruiseKMH float64) time.Duration {
	if req.Duration > 0 {
		return req.Duration
	}
	hours := req.DirectKM() / cruiseKMH
	return time.Duration(hours * float64(time.Hour))
}

// RequestForFlight builds the departure-shift request for a scheduled
// flight. The flight must have endpoints.
func RequestForFlight(f *Flight) FollowRequest {
	return FollowRequest{
		Origin:             f.Origin.Pos,
		Destination:        f.Destination.Pos,
		OriginAirport:      f.Origin.Airport,
		DestinationAirport: f.Destination.Airport,
		ScheduledDeparture: f.Origin.TimeUTC,
		Duration:           f.Duration(),
	}
}

// }}}
// {{{ FollowCandidate{}, FollowingResult{}

// A FollowCandidate is a flight airborne around the candidate departure
// time, heading roughly our way.
type FollowCandidate struct {
	FlightId       string
	Path           FlightPath
	BearingDeg     float64
	BearingDiffDeg float64
	FirstSeen      time.Time
}

type CostAnalysis struct {
	SoloCost          float64 // same route flown alone, in KM at unit speed
	TotalCost         float64
	Savings           float64
	SavingsPercent    float64
	TotalSegments     int
	ConnectedSegments int
}

// A FollowingResult is the outcome of evaluating one departure time: the
// path to fly, who to follow (if anyone), and what it costs. When no
// partner works out, the result is the direct path with zero savings and
// an empty FollowedFlightId.
type FollowingResult struct {
	DepartureTime    time.Time
	FollowedFlightId string
	Path             FlightPath
	FollowStart      int // inclusive node range of Path flown in formation
	FollowEnd        int // -1,-1 when flying solo
	InterceptIdx     int // node indexes on the partner's own path
	DepartureIdx     int
	DetourKM         float64
	FollowingKM      float64
	ContinuationKM   float64
	Cost             CostAnalysis
}

func (fr FollowingResult)HasPartner() bool { return fr.FollowedFlightId != "" }

func (fr FollowingResult)String() string {
	if !fr.HasPartner() {
		return fmt.Sprintf("depart %s solo (%.0fKM)", fr.DepartureTime.Format("15:04"), fr.Cost.TotalCost)
	}
	return fmt.Sprintf("depart %s following %s for %.0fKM (saves %.1f%%)",
		fr.DepartureTime.Format("15:04"), fr.FollowedFlightId, fr.FollowingKM, fr.Cost.SavingsPercent)
}

// }}}

// {{{ FindFollowCandidates

// FindFollowCandidates looks for flights that get airborne within the
// departure window of t and fly a course within MaxCourseDiffDeg of ours.
// Flights whose trajectories can't be fetched, or are too short to have a
// course, are skipped and counted, never fatal.
func FindFollowCandidates(ctx context.Context, src TrajectorySource, req FollowRequest, t time.Time, opt FollowOptions) ([]FollowCandidate, int, error) {
	s, e := t.Add(-opt.DepartureWindow), t.Add(opt.DepartureWindow)
	refs, err := src.NodesInTimeRange(ctx, s, e, opt.nodeQueryLimit)
	if err != nil {
		return nil, 0, fmt.Errorf("FindFollowCandidates: %v", err)
	}

	// The earliest node we saw for a flight approximates its start time.
	starts := map[string]time.Time{}
	for _, ref := range refs {
		if ref.FlightId == "" {
			continue
		}
		if first, exists := starts[ref.FlightId]; !exists || ref.Node.TimestampUTC.Before(first) {
			starts[ref.FlightId] = ref.Node.TimestampUTC
		}
	}

	ids := []string{}
	for id, start := range starts {
		if gap := start.Sub(t); gap.Abs() <= opt.DepartureWindow {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids) // map order isn't stable; candidate order should be
	if len(ids) > opt.MaxCandidates {
		ids = ids[:opt.MaxCandidates]
	}

	routeBearing := InitialBearing(req.Origin, req.Destination)
	candidates := []FollowCandidate{}
	skipped := 0

	for _, id := range ids {
		path, err := src.Trajectory(ctx, id)
		if err != nil || len(path) < 2 {
			skipped++
			continue
		}

		fb := InitialBearing(path[0].Latlong, path[len(path)-1].Latlong)
		diff := BearingDiff(fb, routeBearing)
		if diff > opt.MaxCourseDiffDeg {
			continue
		}

		candidates = append(candidates, FollowCandidate{
			FlightId:       id,
			Path:           path,
			BearingDeg:     fb,
			BearingDiffDeg: diff,
			FirstSeen:      starts[id],
		})
	}

	return candidates, skipped, nil
}

// }}}
// {{{ interceptIndex, departureIndex

// interceptIndex picks the partner node to join up at: never its first node
// (that's an airport), reachable within double the detour budget and within
// the intercept time limit, scored to prefer close nodes we'd reach about
// on time.
func interceptIndex(origin geo.Latlong, path FlightPath, departs time.Time, opt FollowOptions) (int, bool) {
	best, bestScore := -1, math.Inf(1)

	for i := 1; i < len(path); i++ {
		d := DistanceKM(origin, path[i].Latlong)
		if d > opt.MaxDetourKM*2 {
			continue
		}

		reachMin := path[i].TimestampUTC.Sub(departs).Minutes()
		if reachMin < 0 || reachMin > opt.MaxInterceptMin {
			continue
		}

		score := d + 0.1*math.Abs(reachMin-d/opt.CruiseKMH*60.0)
		if score < bestScore {
			best, bestScore = i, score
		}
	}

	return best, best >= 0
}

// departureIndex walks forward from the interception until the partner's
// distance to our destination jumps by more than the divergence budget
// against the previous node, and bails at the node before the jump. A
// partner that never diverges is followed to its last node.
func departureIndex(path FlightPath, interceptIdx int, dest geo.Latlong, maxDivergenceKM float64) int {
	for i := interceptIdx + 1; i < len(path); i++ {
		prev := DistanceKM(path[i-1].Latlong, dest)
		if DistanceKM(path[i].Latlong, dest) > prev+maxDivergenceKM {
			return i - 1
		}
	}
	return len(path) - 1
}

// }}}
// {{{ planFollowing

// planFollowing builds the intercept-follow-continue path for one partner
// and prices it. The bool is false when no interception works.
func planFollowing(req FollowRequest, departs time.Time, cand FollowCandidate, opt FollowOptions) (FollowingResult, bool) {
	iIdx, ok := interceptIndex(req.Origin, cand.Path, departs, opt)
	if !ok {
		return FollowingResult{}, false
	}
	dIdx := departureIndex(cand.Path, iIdx, req.Destination, opt.MaxDivergenceKM)

	detourKM := DistanceKM(req.Origin, cand.Path[iIdx].Latlong)

	followingKM := 0.0
	for i := iIdx; i < dIdx; i++ {
		followingKM += DistanceKM(cand.Path[i].Latlong, cand.Path[i+1].Latlong)
	}

	continuationKM := DistanceKM(cand.Path[dIdx].Latlong, req.Destination)

	totalCost := detourKM + followingKM*(1.0-opt.EfficiencyGain) + continuationKM
	soloCost := detourKM + followingKM + continuationKM // same path, no partner

	savings := soloCost - totalCost
	pct := 0.0
	if soloCost > 0 {
		pct = savings / soloCost * 100.0
	}

	// Stitch the flown path together: synthesized detour, the partner's own
	// nodes while following, synthesized continuation.
	path := FlightPath{}
	detour := SynthesizePath(req.Origin, cand.Path[iIdx].Latlong, departs,
		cand.Path[iIdx].TimestampUTC.Sub(departs), KPathStepDuration)
	if len(detour) > 0 {
		path = append(path, detour[:len(detour)-1]...)
	}

	followStart := len(path)
	path = append(path, cand.Path[iIdx:dIdx+1]...)
	followEnd := len(path) - 1

	contDuration := time.Duration(continuationKM / opt.CruiseKMH * float64(time.Hour))
	cont := SynthesizePath(cand.Path[dIdx].Latlong, req.Destination,
		cand.Path[dIdx].TimestampUTC, contDuration, KPathStepDuration)
	if len(cont) > 1 {
		path = append(path, cont[1:]...)
	}

	return FollowingResult{
		DepartureTime:    departs,
		FollowedFlightId: cand.FlightId,
		Path:             path,
		FollowStart:      followStart,
		FollowEnd:        followEnd,
		InterceptIdx:     iIdx,
		DepartureIdx:     dIdx,
		DetourKM:         detourKM,
		FollowingKM:      followingKM,
		ContinuationKM:   continuationKM,
		Cost: CostAnalysis{
			SoloCost:          soloCost,
			TotalCost:         totalCost,
			Savings:           savings,
			SavingsPercent:    pct,
			TotalSegments:     len(path) - 1,
			ConnectedSegments: dIdx - iIdx,
		},
	}, true
}

// }}}
// {{{ directResult

func directResult(req FollowRequest, departs time.Time, opt FollowOptions) FollowingResult {
	path := SynthesizePath(req.Origin, req.Destination, departs,
		req.EffectiveDuration(opt.CruiseKMH), KPathStepDuration)
	direct := req.DirectKM()

	return FollowingResult{
		DepartureTime: departs,
		Path:          path,
		FollowStart:   -1,
		FollowEnd:     -1,
		InterceptIdx:  -1,
		DepartureIdx:  -1,
		Cost: CostAnalysis{
			SoloCost:      direct,
			TotalCost:     direct,
			TotalSegments: len(path) - 1,
		},
	}
}

// }}}
// {{{ EvaluateDepartureAt

// EvaluateDepartureAt prices one departure time: it gathers the candidate
// flights airborne around then, plans a following path for each, and keeps
// the cheapest plan with positive savings. With no candidates, or none
// worth following, the direct path comes back instead.
func EvaluateDepartureAt(ctx context.Context, src TrajectorySource, req FollowRequest, departs time.Time, opt FollowOptions) (FollowingResult, int, error) {
	candidates, skipped, err := FindFollowCandidates(ctx, src, req, departs, opt)
	if err != nil {
		return FollowingResult{}, 0, fmt.Errorf("EvaluateDepartureAt: %v", err)
	}

	best := FollowingResult{}
	bestCost := math.Inf(1)
	found := false

	for _, cand := range candidates {
		plan, ok := planFollowing(req, departs, cand, opt)
		if !ok {
			continue
		}
		if plan.Cost.SavingsPercent > 0 && plan.Cost.TotalCost < bestCost {
			best, bestCost, found = plan, plan.Cost.TotalCost, true
		}
	}

	if !found {
		return directResult(req, departs, opt), skipped, nil
	}
	return best, skipped, nil
}

// }}}
// {{{ OptimizeDeparture

// A DepartureRecommendation is the sweep's outcome: the departure time to
// aim for, the winning evaluation, and every per-offset evaluation for
// display.
type DepartureRecommendation struct {
	ScheduledDeparture time.Time
	OptimalDeparture   time.Time
	OffsetMinutes      float64
	Best               FollowingResult
	Evaluations        []FollowingResult
	SkippedCandidates  int
}

// OptimizeDeparture evaluates every configured offset around the scheduled
// departure, in parallel, and recommends the cheapest one with positive
// savings. When no offset finds a partner worth following, the scheduled
// time and a direct path win by default.
func OptimizeDeparture(ctx context.Context, src TrajectorySource, req FollowRequest, opt FollowOptions) (DepartureRecommendation, error) {
	if len(opt.Offsets) == 0 {
		opt.Offsets = DefaultFollowOptions().Offsets
	}
	workers := opt.MaxWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	evals := make([]FollowingResult, len(opt.Offsets))
	skips := make([]int, len(opt.Offsets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, offset := range opt.Offsets {
		i, offset := i, offset // per-iteration copies; module builds as go 1.21
		g.Go(func() error {
			result, skipped, err := EvaluateDepartureAt(gctx, src, req, req.ScheduledDeparture.Add(offset), opt)
			if err != nil {
				return err
			}
			evals[i], skips[i] = result, skipped
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return DepartureRecommendation{}, fmt.Errorf("OptimizeDeparture: %v", err)
	}

	rec := DepartureRecommendation{
		ScheduledDeparture: req.ScheduledDeparture,
		Evaluations:        evals,
	}
	for _, n := range skips {
		rec.SkippedCandidates += n
	}

	bestCost := math.Inf(1)
	found := false
	for _, eval := range evals {
		if eval.Cost.SavingsPercent > 0 && eval.Cost.TotalCost < bestCost {
			rec.Best, bestCost, found = eval, eval.Cost.TotalCost, true
		}
	}

	if !found {
		rec.Best = directResult(req, req.ScheduledDeparture, opt)
		for _, eval := range evals {
			if eval.DepartureTime.Equal(req.ScheduledDeparture) {
				rec.Best = eval
				break
			}
		}
	}

	rec.OptimalDeparture = rec.Best.DepartureTime
	rec.OffsetMinutes = rec.OptimalDeparture.Sub(req.ScheduledDeparture).Minutes()

	return rec, nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
