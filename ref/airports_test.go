package ref

import (
	"strings"
	"testing"

	"github.com/skypies/geo"
	"github.com/skypies/geo/sfo"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		Code     string
		Expected string // resolved name; "" means no match
	}{
		{"KSFO", "KSFO"},
		{"SFO", "KSFO"},   // IATA via K-prefix fallback
		{"sfo ", "KSFO"},  // normalization
		{"EGLL", "EGLL"},
		{"LHR", ""},       // non-US IATA codes have no fallback
		{"XXXX", ""},
		{"", ""},
	}

	for i,test := range tests {
		nl,exists := Lookup(test.Code)
		if exists != (test.Expected != "") {
			t.Errorf("[%d] Lookup(%q) wanted exists=%v, got %v", i, test.Code,
				test.Expected != "", exists)
			continue
		}
		if exists && nl.Name != test.Expected {
			t.Errorf("[%d] Lookup(%q) wanted %s, got %s", i, test.Code, test.Expected, nl.Name)
		}
	}

	if nl,_ := Lookup("SFO"); nl.Latlong != sfo.KAirports["KSFO"] {
		t.Errorf("KSFO position wanted %v, got %v", sfo.KAirports["KSFO"], nl.Latlong)
	}
}

func TestAirportCacheResolve(t *testing.T) {
	ac := BlankAirportCache()
	ac.Set("KTRK", geo.Latlong{Lat:39.3200, Long:-120.1392})
	ac.Set("KRNO", geo.Latlong{Lat:39.4991, Long:-119.7681})

	// Builtin wins when both know the code.
	if nl,exists := ac.Resolve("KSFO"); !exists || nl.Latlong != sfo.KAirports["KSFO"] {
		t.Errorf("builtin KSFO wanted (true, %v), got (%v, %v)",
			sfo.KAirports["KSFO"], exists, nl.Latlong)
	}

	// Learned entries fill the gaps, with the same fallback.
	if nl,exists := ac.Resolve("KTRK"); !exists || nl.Name != "KTRK" {
		t.Errorf("learned KTRK wanted hit, got (%v, %v)", exists, nl)
	}
	if nl,exists := ac.Resolve("RNO"); !exists || nl.Name != "KRNO" {
		t.Errorf("learned RNO via fallback wanted KRNO, got (%v, %v)", exists, nl)
	}

	if _,exists := ac.Resolve("ZZZZ"); exists {
		t.Errorf("ZZZZ should not resolve")
	}
}

func TestLoadAirportsCSV(t *testing.T) {
	data := `IATA,name,latitude,longitude
PAO,Palo Alto,37.4611,-122.1150
RNO,Reno,39.4991,-119.7681
BAD,Broken,not-a-lat,-1.0
,Empty,1.0,2.0
`
	m,skipped,err := LoadAirportsCSV(strings.NewReader(data))
	if err != nil {
		t.Fatalf("LoadAirportsCSV: %v", err)
	}
	if skipped != 2 {
		t.Errorf("skipped wanted 2, got %d", skipped)
	}
	if len(m) != 2 {
		t.Fatalf("wanted 2 airports, got %d: %v", len(m), m)
	}
	if pos := m["PAO"]; pos.Lat != 37.4611 {
		t.Errorf("PAO latitude wanted 37.4611, got %v", pos.Lat)
	}

	// Headerless or malformed files fail loudly.
	if _,_,err := LoadAirportsCSV(strings.NewReader("a,b,c\n1,2,3\n")); err == nil {
		t.Errorf("wanted header error, got none")
	}
}

func TestAirportCacheAddAll(t *testing.T) {
	ac := BlankAirportCache()
	m,_,err := LoadAirportsCSV(strings.NewReader("IATA,latitude,longitude\nPAO,37.4611,-122.1150\n"))
	if err != nil {
		t.Fatalf("LoadAirportsCSV: %v", err)
	}
	ac.AddAll(m)
	if _,exists := ac.Get("PAO"); !exists {
		t.Errorf("PAO should be in cache after AddAll")
	}
}
