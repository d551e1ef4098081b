package analysis

import (
	"context"
	"testing"
	"time"

	"github.com/skypies/geo"

	fdb "github.com/skypies/formation"
	"github.com/skypies/formation/report"
)

var t0 = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func ll(lat, long float64) geo.Latlong { return geo.Latlong{Lat:lat, Long:long} }

func testFlight(id, origApt, destApt string, orig, dest geo.Latlong, departs time.Time, dur time.Duration) *fdb.Flight {
	return fdb.NewFlight(id,
		fdb.Endpoint{Airport:origApt, Pos:orig, TimeUTC:departs},
		fdb.Endpoint{Airport:destApt, Pos:dest, TimeUTC:departs.Add(dur)})
}

func setupTestReport(t *testing.T, name string) report.Report {
	rep,err := report.InstantiateReport(name)
	if err != nil {
		t.Fatalf("InstantiateReport(%s): %v", name, err)
	}
	rep.SetContext(context.Background())
	return rep
}

func runReport(t *testing.T, rep *report.Report, flights []*fdb.Flight) {
	for _,f := range flights {
		if _,err := rep.Process(f); err != nil {
			t.Fatalf("Process(%s): %v", f.IdentString(), err)
		}
	}
	rep.FinishSummary()
}

// Two eastbound departures out of the same airport, twenty minutes
// apart, plus a third flight too far away to pair with anything.
func pairableFlights() []*fdb.Flight {
	return []*fdb.Flight{
		testFlight("UA100", "AAAA", "BBBB", ll(0,0), ll(0,8), t0, 67*time.Minute),
		testFlight("DL200", "AAAA", "CCCC", ll(0,0), ll(0.2,8), t0.Add(20*time.Minute), 67*time.Minute),
		testFlight("QF9", "DDDD", "EEEE", ll(30,30), ll(30,38), t0, 67*time.Minute),
	}
}

func TestPairsReport(t *testing.T) {
	rep := setupTestReport(t, "pairs")
	runReport(t, &rep, pairableFlights())

	if rep.I["[C] Pairs found"] != 1 {
		t.Errorf("wanted 1 pair, got %d", rep.I["[C] Pairs found"])
	}
	if len(rep.RowsText) != 1 {
		t.Fatalf("wanted 1 row, got %d", len(rep.RowsText))
	}
	row := rep.RowsText[0]
	if row[0] != "similar" {
		t.Errorf("wanted a similar pair, got %q", row[0])
	}
	if row[1] != "DL200" || row[2] != "UA100" {
		t.Errorf("pair should be in canonical id order, got %q,%q", row[1], row[2])
	}
}

func TestPairsReportRegion(t *testing.T) {
	rep := setupTestReport(t, "pairs")
	rep.Options.Center = ll(30,30)
	rep.Options.RadiusKM = 50
	runReport(t, &rep, pairableFlights())

	// The only pair's corridor starts at (0,0), well outside the region.
	if len(rep.RowsText) != 0 {
		t.Errorf("wanted 0 rows inside region, got %d", len(rep.RowsText))
	}
	if rep.I["[D] Corridors outside region"] != 1 {
		t.Errorf("wanted 1 excluded corridor, got %d", rep.I["[D] Corridors outside region"])
	}
}

func TestBoostsReport(t *testing.T) {
	rep := setupTestReport(t, "boosts")
	runReport(t, &rep, pairableFlights())

	// The paired flights each get a corridor straight down their course,
	// so both should boost; the loner flies direct.
	if rep.I["[D] <b>Flights boosted</b>"] != 2 {
		t.Errorf("wanted 2 boosted flights, got %d", rep.I["[D] <b>Flights boosted</b>"])
	}
	if rep.I["[D] Flights with no workable corridor"] != 1 {
		t.Errorf("wanted 1 unboosted flight, got %d", rep.I["[D] Flights with no workable corridor"])
	}
	if len(rep.RowsText) != 2 {
		t.Fatalf("wanted 2 rows, got %d", len(rep.RowsText))
	}
	if rep.F["[D] Total minutes saved"] <= 0 {
		t.Errorf("boosting should save time, got %f", rep.F["[D] Total minutes saved"])
	}
}

func TestFollowingReport(t *testing.T) {
	flights := []*fdb.Flight{
		testFlight("UA100", "AAAA", "BBBB", ll(0,0), ll(0,9), t0, 75*time.Minute),
		testFlight("DL200", "AAAA", "BBBB", ll(0,0), ll(0,9), t0.Add(20*time.Minute), 75*time.Minute),
	}

	rep := setupTestReport(t, "following")
	runReport(t, &rep, flights)

	if rep.I["[D] <b>Flights with a partner</b>"] != 2 {
		t.Fatalf("wanted 2 flights with partners, got %d; rows %v",
			rep.I["[D] <b>Flights with a partner</b>"], rep.RowsText)
	}
	if len(rep.RowsText) != 2 {
		t.Fatalf("wanted 2 rows, got %d", len(rep.RowsText))
	}

	// The early flight shifts late to follow the other, and vice versa.
	if rep.RowsText[0][3] != "DL200" || rep.RowsText[0][2] != "+20" {
		t.Errorf("UA100: wanted to follow DL200 at +20, got %q at %q",
			rep.RowsText[0][3], rep.RowsText[0][2])
	}
	if rep.RowsText[1][3] != "UA100" || rep.RowsText[1][2] != "-20" {
		t.Errorf("DL200: wanted to follow UA100 at -20, got %q at %q",
			rep.RowsText[1][3], rep.RowsText[1][2])
	}
}
