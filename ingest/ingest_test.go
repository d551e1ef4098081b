package ingest

import (
	"strings"
	"testing"
	"time"

	"context"

	fdb "github.com/skypies/formation"
	"github.com/skypies/formation/ref"
)

var testBase = time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

func testOptions() Options {
	return Options{BaseDate: testBase, Resolve: ref.Lookup}
}

func TestClockToTime(t *testing.T) {
	tests := []struct {
		HHMM     int
		Expected string
	}{
		{517, "05:17"},
		{1400, "14:00"},
		{5, "00:05"},
		{975, "10:15"},  // minutes overflow normalizes
		{2400, "23:59"}, // end of day pins to the base date
		{2545, "23:59"},
	}
	for i,test := range tests {
		got := clockToTime(testBase, test.HHMM)
		if got.Format("15:04") != test.Expected {
			t.Errorf("[%d] clockToTime(%d) wanted %s, got %s",
				i, test.HHMM, test.Expected, got.Format("15:04"))
		}
		if got.Day() != 14 {
			t.Errorf("[%d] clockToTime(%d) left the base date", i, test.HHMM)
		}
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		In       string
		Expected int
		Ok       bool
	}{
		{"517", 517, true},
		{"517.0", 517, true},
		{" 1400.0 ", 1400, true},
		{"NA", 0, false},
		{"", 0, false},
		{"bogus", 0, false},
		{"-5", 0, false},
	}
	for i,test := range tests {
		got,ok := parseClock(test.In)
		if ok != test.Ok || got != test.Expected {
			t.Errorf("[%d] parseClock(%q) wanted (%d,%v), got (%d,%v)",
				i, test.In, test.Expected, test.Ok, got, ok)
		}
	}
}

func TestRowToFlight(t *testing.T) {
	row := Row{
		"carrier": "UA", "flight": "100", "origin": "SFO", "dest": "JFK",
		"dep_time": "517.0", "arr_time": "1345.0",
	}
	f,err := row.ToFlight(testOptions())
	if err != nil {
		t.Fatalf("ToFlight: %v", err)
	}
	if f.Number != "UA100" {
		t.Errorf("number wanted UA100, got %s", f.Number)
	}
	if f.Origin.Airport != "KSFO" || f.Destination.Airport != "KJFK" {
		t.Errorf("route wanted KSFO-KJFK, got %s", f.RouteLabel())
	}
	if f.Origin.TimeUTC.Format("15:04") != "05:17" {
		t.Errorf("departure wanted 05:17, got %s", f.Origin.TimeUTC.Format("15:04"))
	}
	if !f.HasEndpoints() {
		t.Errorf("flight should be usable: %s", f)
	}
	if f.Id != "UA100-SFO-202603140517" {
		t.Errorf("synthesized id wanted UA100-SFO-202603140517, got %s", f.Id)
	}
	if !f.HasTag("scheduled") {
		t.Errorf("wanted the scheduled tag")
	}

	// An explicit id column wins over synthesis.
	row["id"] = "feed-77"
	if f,err := row.ToFlight(testOptions()); err != nil || f.Id != "feed-77" {
		t.Errorf("id wanted feed-77, got %v (err %v)", f, err)
	}
}

func TestRowToFlightScheduledFallback(t *testing.T) {
	row := Row{
		"carrier": "DL", "flight": "200", "origin": "SFO", "dest": "BOS",
		"dep_time": "NA", "sched_dep_time": "600", "arr_time": "NA", "sched_arr_time": "1430",
	}
	f,err := row.ToFlight(testOptions())
	if err != nil {
		t.Fatalf("ToFlight: %v", err)
	}
	if f.Origin.TimeUTC.Format("15:04") != "06:00" {
		t.Errorf("fallback departure wanted 06:00, got %s", f.Origin.TimeUTC.Format("15:04"))
	}
}

const testCSV = `id,carrier,flight,tailnum,origin,dest,dep_time,sched_dep_time,arr_time,sched_arr_time
f1,UA,100,N101UA,SFO,JFK,517.0,515,1345.0,1340
f2,DL,200,N202DL,SFO,BOS,530.0,530,1400.0,1355
f3,AA,300,N303AA,SFO,XXX,600.0,600,1430.0,1425
f4,WN,400,N404WN,LAX,SFO,2330.0,2330,100.0,55
f5,B6,500,N505B6,JFK,BOS,NA,NA,NA,NA
`

func TestReadFlights(t *testing.T) {
	flights, nSkipped, err := ReadFlights(context.Background(), "test.csv",
		strings.NewReader(testCSV), testOptions())
	if err != nil {
		t.Fatalf("ReadFlights: %v", err)
	}

	// f3 has an unknown airport, f4 lands before it departs on the base
	// date, f5 has no clocks at all.
	if nSkipped != 3 {
		t.Errorf("skipped wanted 3, got %d", nSkipped)
	}
	seen := []string{}
	for _,f := range flights {
		seen = append(seen, f.Id)
	}
	if len(seen) != 2 || seen[0] != "f1" || seen[1] != "f2" {
		t.Errorf("flights wanted [f1 f2], got %v", seen)
	}
}

func TestReadFromCallbackAccounting(t *testing.T) {
	nCalls := 0
	cb := func(ctx context.Context, f *fdb.Flight) (bool,string,error) {
		nCalls++
		return nCalls == 1, "", nil // keep only the first
	}

	nAdded, nSkipped, str, err := ReadFrom(context.Background(), "test.csv",
		strings.NewReader(testCSV), testOptions(), cb)
	if err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}
	if nCalls != 2 {
		t.Errorf("callback calls wanted 2, got %d", nCalls)
	}
	if nAdded != 1 {
		t.Errorf("added wanted 1, got %d", nAdded)
	}
	if nSkipped != 3 {
		t.Errorf("skipped wanted 3, got %d", nSkipped)
	}
	if !strings.Contains(str, "skipped") {
		t.Errorf("summary should mention skips:\n%s", str)
	}
}
