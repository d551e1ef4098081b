package formation

import(
	"context"
	"testing"
	"time"
)

// A thousand-kilometer run due east along the equator.
func followTestRequest() FollowRequest {
	return FollowRequest{
		Origin:             ll(0, 0),
		Destination:        ll(0, 9),
		OriginAirport:      "AAAA",
		DestinationAirport: "BBBB",
		ScheduledDeparture: t0,
	}
}

// {{{ TestOptimizeDepartureNoCandidates

func TestOptimizeDepartureNoCandidates(t *testing.T) {
	ctx := context.Background()
	req := followTestRequest()
	opt := DefaultFollowOptions()

	rec, err := OptimizeDeparture(ctx, NewFlightSet(), req, opt)
	if err != nil {
		t.Fatalf("OptimizeDeparture: %v", err)
	}

	if !rec.OptimalDeparture.Equal(req.ScheduledDeparture) {
		t.Errorf("empty sky should keep the schedule; got %v", rec.OptimalDeparture)
	}
	if rec.OffsetMinutes != 0 {
		t.Errorf("offset: wanted 0, got %f", rec.OffsetMinutes)
	}
	if rec.Best.HasPartner() {
		t.Errorf("no flights to follow, but got partner %q", rec.Best.FollowedFlightId)
	}
	if rec.Best.Cost.Savings != 0 || rec.Best.Cost.SavingsPercent != 0 {
		t.Errorf("solo flight should save nothing: %+v", rec.Best.Cost)
	}
	if len(rec.Evaluations) != len(opt.Offsets) {
		t.Errorf("wanted %d evaluations, got %d", len(opt.Offsets), len(rec.Evaluations))
	}

	// The fallback path is the direct route at the scheduled time.
	path := rec.Best.Path
	if len(path) < 2 {
		t.Fatalf("fallback path too short: %d nodes", len(path))
	}
	if !path[0].Latlong.Equal(req.Origin) || !path[len(path)-1].Latlong.Equal(req.Destination) {
		t.Errorf("fallback path endpoints wrong: %s .. %s", path[0], path[len(path)-1])
	}
}

// }}}
// {{{ TestOptimizeDepartureWithPartner

func TestOptimizeDepartureWithPartner(t *testing.T) {
	ctx := context.Background()
	req := followTestRequest()
	opt := DefaultFollowOptions()

	// A flight running parallel half a degree north, departing on our
	// schedule; its synthesized trajectory is interceptable all along.
	partner := makeFlight("NW123", "CCCC", "DDDD", ll(0.5, 0), ll(0.5, 9), t0, 75*time.Minute)

	rec, err := OptimizeDeparture(ctx, NewFlightSet(partner), req, opt)
	if err != nil {
		t.Fatalf("OptimizeDeparture: %v", err)
	}

	if rec.Best.FollowedFlightId != "NW123" {
		t.Fatalf("wanted to follow NW123, got %+v", rec.Best)
	}
	// Leaving 20 minutes late joins the partner further downrange: the
	// shorter dogleg outweighs the formation distance it gives up, so the
	// +20 evaluation undercuts on-schedule departure.
	if rec.OffsetMinutes != 20 {
		t.Errorf("offset: wanted 20, got %f", rec.OffsetMinutes)
	}
	if rec.Best.InterceptIdx != 4 {
		t.Errorf("late join should intercept at node 4, got %d", rec.Best.InterceptIdx)
	}
	if rec.Best.Cost.SavingsPercent <= 0 {
		t.Errorf("following should save; got %+v", rec.Best.Cost)
	}
	if rec.Best.Cost.TotalCost >= rec.Best.Cost.SoloCost {
		t.Errorf("total %.1f should undercut solo %.1f",
			rec.Best.Cost.TotalCost, rec.Best.Cost.SoloCost)
	}

	// Interception happens en route, never at the partner's first node.
	if rec.Best.InterceptIdx < 1 {
		t.Errorf("intercept index: wanted >=1, got %d", rec.Best.InterceptIdx)
	}
	// The partner parallels us all the way, so we follow to its last node.
	partnerPath, _ := NewFlightSet(partner).Trajectory(ctx, "NW123")
	if want := len(partnerPath) - 1; rec.Best.DepartureIdx != want {
		t.Errorf("departure index: wanted %d, got %d", want, rec.Best.DepartureIdx)
	}

	if rec.Best.FollowStart < 0 || rec.Best.FollowEnd <= rec.Best.FollowStart {
		t.Errorf("followed stretch not marked: [%d,%d]", rec.Best.FollowStart, rec.Best.FollowEnd)
	}
	if got := rec.Best.Cost.ConnectedSegments; got != rec.Best.DepartureIdx-rec.Best.InterceptIdx {
		t.Errorf("connected segments: wanted %d, got %d",
			rec.Best.DepartureIdx-rec.Best.InterceptIdx, got)
	}
}

// }}}
// {{{ TestEvaluateDepartureDivergingPartner

func TestEvaluateDepartureDivergingPartner(t *testing.T) {
	ctx := context.Background()
	req := followTestRequest()
	opt := DefaultFollowOptions()

	// Runs our way for half a dozen nodes, then lurches north, away from
	// our destination; we should bail at the node before the lurch.
	positions := []struct{ lat, lon float64 }{
		{0, 0}, {0, 0.6}, {0, 1.2}, {0, 1.8}, {0, 2.4}, {0, 3.0},
		{2.5, 2.4}, {2.5, 3.0}, {2.5, 3.9}, {2.5, 4.8},
	}
	path := FlightPath{}
	for i, p := range positions {
		path = append(path, PathNode{
			Latlong: ll(p.lat, p.lon), TimestampUTC: t0.Add(time.Duration(i) * 5 * time.Minute),
		})
	}
	partner := makeFlight("VX77", "CCCC", "DDDD", ll(0, 0), ll(2.5, 4.8), t0, 45*time.Minute)
	partner.Path = path

	result, skipped, err := EvaluateDepartureAt(ctx, NewFlightSet(partner), req, t0, opt)
	if err != nil {
		t.Fatalf("EvaluateDepartureAt: %v", err)
	}
	if skipped != 0 {
		t.Errorf("skipped: wanted 0, got %d", skipped)
	}

	if result.FollowedFlightId != "VX77" {
		t.Fatalf("wanted to follow VX77, got %+v", result)
	}
	if result.InterceptIdx != 1 {
		t.Errorf("intercept index: wanted 1, got %d", result.InterceptIdx)
	}
	if result.DepartureIdx != 5 {
		t.Errorf("should leave before the northward lurch at node 6; got %d", result.DepartureIdx)
	}
	if result.Cost.ConnectedSegments != 4 {
		t.Errorf("connected segments: wanted 4, got %d", result.Cost.ConnectedSegments)
	}
	if result.Cost.SavingsPercent <= 0 {
		t.Errorf("short follow should still save: %+v", result.Cost)
	}
}

// }}}
// {{{ TestFindFollowCandidates

func TestFindFollowCandidates(t *testing.T) {
	ctx := context.Background()
	req := followTestRequest()
	opt := DefaultFollowOptions()

	good := makeFlight("AA1", "CCCC", "DDDD", ll(0.5, 0), ll(0.5, 9), t0, 75*time.Minute)
	wrongWay := makeFlight("BB2", "DDDD", "CCCC", ll(0.5, 9), ll(0.5, 0), t0, 75*time.Minute)
	tooLate := makeFlight("CC3", "CCCC", "DDDD", ll(1, 0), ll(1, 9), t0.Add(30*time.Minute), 75*time.Minute)

	stumpy := makeFlight("DD4", "CCCC", "DDDD", ll(2, 0), ll(2, 9), t0, 75*time.Minute)
	stumpy.Path = FlightPath{{Latlong: ll(2, 0), TimestampUTC: t0}}

	fs := NewFlightSet(good, wrongWay, tooLate, stumpy)
	candidates, skipped, err := FindFollowCandidates(ctx, fs, req, t0, opt)
	if err != nil {
		t.Fatalf("FindFollowCandidates: %v", err)
	}

	if len(candidates) != 1 || candidates[0].FlightId != "AA1" {
		t.Errorf("wanted just AA1, got %+v", candidates)
	}
	if skipped != 1 { // the single-node trajectory
		t.Errorf("skipped: wanted 1, got %d", skipped)
	}
	if len(candidates) == 1 && candidates[0].BearingDiffDeg > opt.MaxCourseDiffDeg {
		t.Errorf("candidate course diff out of range: %f", candidates[0].BearingDiffDeg)
	}
}

// }}}
// {{{ TestInterceptIndex

func TestInterceptIndex(t *testing.T) {
	opt := DefaultFollowOptions()
	origin := ll(0, 0)

	// Parallel track half a degree north; the first en-route node is both
	// closest and on-schedule, so it wins.
	path := FlightPath{}
	for i := 0; i <= 15; i++ {
		path = append(path, PathNode{
			Latlong: ll(0.5, float64(i)*0.6), TimestampUTC: t0.Add(time.Duration(i) * 5 * time.Minute),
		})
	}

	idx, ok := interceptIndex(origin, path, t0, opt)
	if !ok || idx != 1 {
		t.Errorf("wanted intercept at node 1, got %d (ok=%v)", idx, ok)
	}

	// Nodes out of reach: a track that never comes within double the
	// detour budget.
	farPath := FlightPath{}
	for i := 0; i <= 5; i++ {
		farPath = append(farPath, PathNode{
			Latlong: ll(10, float64(i)*0.6), TimestampUTC: t0.Add(time.Duration(i) * 5 * time.Minute),
		})
	}
	if _, ok := interceptIndex(origin, farPath, t0, opt); ok {
		t.Errorf("unreachable track should yield no interception")
	}

	// Everything already flown: nodes timestamped before our departure.
	stale := FlightPath{}
	for i := 0; i <= 5; i++ {
		stale = append(stale, PathNode{
			Latlong: ll(0.5, float64(i)*0.6), TimestampUTC: t0.Add(time.Duration(i-10) * 5 * time.Minute),
		})
	}
	if _, ok := interceptIndex(origin, stale, t0, opt); ok {
		t.Errorf("fully-flown track should yield no interception")
	}
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
