package formation

import(
	"testing"
	"time"
)

// {{{ TestCorridorFromIntersectingPair

func TestCorridorFromIntersectingPair(t *testing.T) {
	// Two near-equator routes crossing at the origin, about six degrees apart.
	f1 := makeFlight("AA1", "AAAA", "BBBB", ll(0, -1), ll(0, 1), t0, 2*time.Hour)
	f2 := makeFlight("BB2", "CCCC", "DDDD", ll(0.1, -1), ll(-0.1, 1), t0.Add(30*time.Minute), 2*time.Hour)

	pair, ok := ClassifyPair(f1, f2, DefaultPairOptions())
	if !ok || pair.Kind != KindIntersecting {
		t.Fatalf("fixture flights did not form an intersecting pair")
	}

	bc := CorridorFromPair(pair)
	if bc.Kind != KindIntersecting {
		t.Errorf("kind: wanted %v, got %v", KindIntersecting, bc.Kind)
	}
	if bc.LengthKM != KIntersectCorridorLengthKM {
		t.Errorf("length: wanted %.0f, got %.0f", KIntersectCorridorLengthKM, bc.LengthKM)
	}

	// Bearing is the bisector of ~90 and ~95.7 degree courses.
	if !near(bc.BearingDeg, 92.86, 0.2) {
		t.Errorf("bearing: wanted ~92.86, got %.2f", bc.BearingDeg)
	}

	// The corridor is centered on the crossing: 200KM back to the start,
	// 200KM forward to the end, crossing at the halfway mark.
	crossing := pair.Crossing.Latlong
	if d := DistanceKM(bc.Start, crossing); !near(d, 200.0, 0.5) {
		t.Errorf("start should sit 200KM before the crossing; got %.2fKM", d)
	}
	if d := DistanceKM(bc.End(), crossing); !near(d, 200.0, 0.5) {
		t.Errorf("end should sit 200KM past the crossing; got %.2fKM", d)
	}
	if d := DistanceKM(bc.PointAt(bc.LengthKM/2.0), crossing); d > 1.0 {
		t.Errorf("midpoint should be the crossing; got %.2fKM away", d)
	}

	if !bc.PointAt(0).Equal(bc.Start) {
		t.Errorf("PointAt(0) should be the corridor start")
	}
	if !bc.ServesFlight("AA1") || !bc.ServesFlight("BB2") || bc.ServesFlight("CC3") {
		t.Errorf("corridor provenance wrong: %+v", bc.FlightIds)
	}
}

// }}}
// {{{ TestCorridorFromSimilarPair

func TestCorridorFromSimilarPair(t *testing.T) {
	// Shared departure: corridor runs out of SFO, 80% of the shorter route.
	f1 := makeFlight("AA1", "KSFO", "KJFK", KSFO, KJFK, t0, 5*time.Hour+30*time.Minute)
	f2 := makeFlight("BB2", "KSFO", "KBOS", KSFO, KBOS, t0.Add(time.Hour), 5*time.Hour+40*time.Minute)

	pair, ok := ClassifyPair(f1, f2, DefaultPairOptions())
	if !ok || pair.Kind != KindSimilar {
		t.Fatalf("fixture flights did not form a similar pair")
	}

	bc := CorridorFromPair(pair)
	if !bc.Start.Equal(KSFO) {
		t.Errorf("corridor should start at the shared airport; got %s", bc.Start)
	}
	want := KSimilarCorridorFraction * DistanceKM(KSFO, KJFK) // JFK is the shorter run
	if !near(bc.LengthKM, want, 1e-9) {
		t.Errorf("length: wanted %.1f, got %.1f", want, bc.LengthKM)
	}
	if !near(bc.Efficiency, pair.EfficiencyScore(), 1e-9) {
		t.Errorf("efficiency: wanted %.3f, got %.3f", pair.EfficiencyScore(), bc.Efficiency)
	}

	// Shared arrival: corridor starts at the shared airport there too.
	f3 := makeFlight("CC3", "KLAX", "KJFK", KLAX, KJFK, t0, 5*time.Hour)
	f4 := makeFlight("DD4", "KSFO", "KJFK", KSFO, KJFK, t0.Add(20*time.Minute), 5*time.Hour+30*time.Minute)
	pair2, ok := ClassifyPair(f3, f4, DefaultPairOptions())
	if !ok || pair2.Kind != KindSimilar {
		t.Fatalf("shared-arrival flights did not form a similar pair")
	}
	bc2 := CorridorFromPair(pair2)
	if !bc2.Start.Equal(KJFK) {
		t.Errorf("shared-arrival corridor should start at JFK; got %s", bc2.Start)
	}
}

// }}}
// {{{ TestTopCorridorsForFlight

func TestTopCorridorsForFlight(t *testing.T) {
	corridors := []BoostCorridor{
		{PairKey: "p1", Efficiency: 0.2, FlightIds: [2]string{"F1", "F2"}},
		{PairKey: "p2", Efficiency: 0.9, FlightIds: [2]string{"F1", "F3"}},
		{PairKey: "p3", Efficiency: 0.5, FlightIds: [2]string{"F4", "F1"}},
		{PairKey: "p4", Efficiency: 0.9, FlightIds: [2]string{"F1", "F5"}},
		{PairKey: "p5", Efficiency: 0.7, FlightIds: [2]string{"F2", "F3"}}, // not ours
	}

	top := TopCorridorsForFlight(corridors, "F1", KMaxCorridorsPerFlight)
	if len(top) != 3 {
		t.Fatalf("wanted 3 corridors, got %d", len(top))
	}
	wantKeys := []string{"p2", "p4", "p3"} // 0.9, 0.9 (key tiebreak), 0.5
	for i, want := range wantKeys {
		if top[i].PairKey != want {
			t.Errorf("[%d] wanted %s, got %s", i, want, top[i].PairKey)
		}
	}

	// max<=0 means uncapped
	all := TopCorridorsForFlight(corridors, "F1", 0)
	if len(all) != 4 {
		t.Errorf("uncapped: wanted 4 corridors, got %d", len(all))
	}

	if none := TopCorridorsForFlight(corridors, "F9", 3); len(none) != 0 {
		t.Errorf("unknown flight: wanted 0 corridors, got %d", len(none))
	}
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
