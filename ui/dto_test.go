package ui

import(
	"testing"
	"time"

	"github.com/skypies/geo"

	fdb "github.com/skypies/formation"
)

// {{{ TestParseTimeArg

func TestParseTimeArg(t *testing.T) {
	want := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		In   string
		Want time.Time
		Err  bool
	}{
		{"2026-03-14T09:30:00Z", want, false},
		{"2026-03-14 09:30:00", want, false},
		{"2026-03-14 09:30", want, false},
		{"half past nine", time.Time{}, true},
		{"", time.Time{}, true},
	}

	for i,test := range tests {
		got,err := parseTimeArg(test.In)
		if test.Err {
			if err == nil {
				t.Errorf("[%d] parseTimeArg(%q) wanted error, got %s", i, test.In, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("[%d] parseTimeArg(%q): %v", i, test.In, err)
		} else if !got.Equal(test.Want) {
			t.Errorf("[%d] parseTimeArg(%q) wanted %s, got %s", i, test.In, test.Want, got)
		}
	}
}

// }}}
// {{{ TestRawFlightToFlight

func TestRawFlightToFlight(t *testing.T) {
	rj := RawFlightJSON{
		FlightNo:           "UA100",
		DepartureAirport:   "KSFO",
		ArrivalAirport:     "KJFK",
		ScheduledDeparture: "2026-03-14 09:00:00",
		ScheduledArrival:   "2026-03-14 14:10:00",
		DepLat:             37.62, DepLon: -122.38,
		ArrLat:             40.64, ArrLon: -73.78,
	}

	f,err := rj.ToFlight()
	if err != nil {
		t.Fatalf("ToFlight: %v", err)
	}
	if f.Id != "UA100" {
		t.Errorf("id wanted flight_no fallback UA100, got %q", f.Id)
	}
	if !f.HasEndpoints() {
		t.Errorf("flight should have usable endpoints: %s", f)
	}
	if f.Origin.Airport != "KSFO" || f.Destination.Airport != "KJFK" {
		t.Errorf("airports wanted KSFO/KJFK, got %q/%q", f.Origin.Airport, f.Destination.Airport)
	}

	rj.ScheduledArrival = "whenever"
	if _,err := rj.ToFlight(); err == nil {
		t.Errorf("bad scheduled_arrival should be an error")
	}

	rj.ScheduledArrival = "2026-03-14 14:10:00"
	rj.FlightNo = ""
	if _,err := rj.ToFlight(); err == nil {
		t.Errorf("flight with no id and no number should be an error")
	}
}

// }}}
// {{{ TestPairJSONRoundtrip

func TestPairJSONRoundtrip(t *testing.T) {
	mkFlight := func(id string) FlightJSON {
		return FlightJSON{
			Id: id, Number: id,
			Dep: CoordinateJSON{Lat: 0, Lon: 0, Airport: "AAAA", Time: "2026-03-14T09:00:00Z"},
			Arr: CoordinateJSON{Lat: 0, Lon: 8, Airport: "BBBB", Time: "2026-03-14T10:00:00Z"},
		}
	}

	// Flights listed in non-canonical order should come back sorted by id.
	pj := PairJSON{Type: "similar", Flight1: mkFlight("ZZ9"), Flight2: mkFlight("AA1"), Angle: 12.5}
	cp,err := pj.ToPair()
	if err != nil {
		t.Fatalf("ToPair: %v", err)
	}
	if cp.A.Id != "AA1" || cp.B.Id != "ZZ9" {
		t.Errorf("pair not canonicalized: got %s,%s", cp.A.Id, cp.B.Id)
	}
	if cp.Kind != fdb.KindSimilar || cp.AngleDeg != 12.5 {
		t.Errorf("kind/angle mangled: got %s,%f", cp.Kind, cp.AngleDeg)
	}

	back := pairToJSON(cp)
	if back.Type != "similar" || back.Intersection != nil {
		t.Errorf("similar pair JSON wanted no intersection, got %+v", back)
	}

	pj.Type = "perpendicular"
	if _,err := pj.ToPair(); err == nil {
		t.Errorf("unknown pair type should be an error")
	}

	pj.Type = "intersecting"
	if _,err := pj.ToPair(); err == nil {
		t.Errorf("intersecting pair without intersection should be an error")
	}

	pj.Intersection = &CoordinateJSON{Lat: 1.5, Lon: 4.0}
	cp,err = pj.ToPair()
	if err != nil {
		t.Fatalf("ToPair (intersecting): %v", err)
	}
	if cp.Crossing.Lat != 1.5 || cp.Crossing.Long != 4.0 {
		t.Errorf("crossing wanted (1.5,4.0), got %s", cp.Crossing)
	}
	back = pairToJSON(cp)
	if back.Intersection == nil || back.Intersection.Lat != 1.5 {
		t.Errorf("intersecting pair JSON lost its intersection: %+v", back)
	}
}

// }}}
// {{{ TestOptimizedPathToJSON

func TestOptimizedPathToJSON(t *testing.T) {
	op := fdb.OptimizedPath{
		FlightId:         "F1",
		DepartureAirport: "KSFO",
		ArrivalAirport:   "KJFK",
		DirectKM:         1000,
		RealizedKM:       1010,
		WeightedTime:     960,
		TimeSavingsMin:   3.0,
		Waypoints: []fdb.Waypoint{
			{Pos: geo.Latlong{Lat: 0, Long: 0}, Kind: fdb.WaypointDeparture},
			{Pos: geo.Latlong{Lat: 1, Long: 1}, Kind: fdb.WaypointBoostEntry},
			{Pos: geo.Latlong{Lat: 2, Long: 2}, Kind: fdb.WaypointBoostExit},
			{Pos: geo.Latlong{Lat: 3, Long: 3}, Kind: fdb.WaypointArrival},
		},
		Boosts: []fdb.BoostUse{
			{PairKey: "AA1+ZZ9", BearingDeg: 45, Entry: geo.Latlong{Lat: 1, Long: 1},
				Exit: geo.Latlong{Lat: 2, Long: 2}, InBoostKM: 157},
		},
	}

	pj := optimizedPathToJSON(op, map[string]string{"F1": "UA100"})
	if pj.FlightId != "F1" || pj.FlightNumber != "UA100" {
		t.Errorf("ids wanted F1/UA100, got %s/%s", pj.FlightId, pj.FlightNumber)
	}
	if pj.BoostPathsUsed != 1 || len(pj.BoostSegments) != 1 {
		t.Errorf("wanted one boost segment, got %d/%d", pj.BoostPathsUsed, len(pj.BoostSegments))
	}
	if pj.BoostSegments[0].BoostId != "AA1+ZZ9" {
		t.Errorf("boost_id wanted pair key, got %q", pj.BoostSegments[0].BoostId)
	}
	if len(pj.Waypoints) != 4 || pj.Waypoints[1].Type != "boost_entry" {
		t.Errorf("waypoints mangled: %+v", pj.Waypoints)
	}

	// No number known: flight_number falls back to the id.
	pj = optimizedPathToJSON(op, map[string]string{})
	if pj.FlightNumber != "F1" {
		t.Errorf("flight_number fallback wanted F1, got %q", pj.FlightNumber)
	}
}

// }}}
// {{{ TestPathToJSON

func TestPathToJSON(t *testing.T) {
	departs := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	path := fdb.SynthesizePath(geo.Latlong{Lat:0, Long:0}, geo.Latlong{Lat:0, Long:3},
		departs, 30*time.Minute, 5*time.Minute)

	nodes := pathToJSON(path)
	if len(nodes) != len(path) {
		t.Fatalf("wanted %d nodes, got %d", len(path), len(nodes))
	}
	if nodes[0].SegmentDistanceKM != 0 {
		t.Errorf("first node segment distance wanted 0, got %f", nodes[0].SegmentDistanceKM)
	}
	if nodes[0].Timestamp != "2026-03-14T09:00:00Z" {
		t.Errorf("timestamp wanted RFC3339 UTC, got %q", nodes[0].Timestamp)
	}
	for i,n := range nodes {
		if n.TimeIndex != i {
			t.Errorf("node %d has time_index %d", i, n.TimeIndex)
		}
		if i > 0 && n.SegmentDistanceKM <= 0 {
			t.Errorf("node %d segment distance wanted >0, got %f", i, n.SegmentDistanceKM)
		}
	}
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
