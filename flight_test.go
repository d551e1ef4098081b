package formation

import(
	"testing"
	"time"

	"github.com/skypies/geo"
)

func makeFlight(id, origApt, destApt string, origPos, destPos geo.Latlong, departs time.Time, dur time.Duration) *Flight {
	return NewFlight(id,
		Endpoint{Airport: origApt, Pos: origPos, TimeUTC: departs},
		Endpoint{Airport: destApt, Pos: destPos, TimeUTC: departs.Add(dur)})
}

func TestHasEndpoints(t *testing.T) {
	good := makeFlight("f1", "KSFO", "KJFK", KSFO, KJFK, t0, 5*time.Hour)
	if !good.HasEndpoints() {
		t.Errorf("fully-specified flight reported unusable")
	}

	noApt := makeFlight("f2", "", "KJFK", KSFO, KJFK, t0, 5*time.Hour)
	if noApt.HasEndpoints() {
		t.Errorf("flight with a blank airport reported usable")
	}

	noPos := makeFlight("f3", "KSFO", "KJFK", geo.Latlong{}, KJFK, t0, 5*time.Hour)
	if noPos.HasEndpoints() {
		t.Errorf("flight with unresolved coordinates reported usable")
	}

	backwards := makeFlight("f4", "KSFO", "KJFK", KSFO, KJFK, t0, -time.Hour)
	if backwards.HasEndpoints() {
		t.Errorf("flight with non-positive duration reported usable")
	}
}

func TestRouteHelpers(t *testing.T) {
	f := makeFlight("f1", "KSFO", "KJFK", KSFO, KJFK, t0, 5*time.Hour)

	if f.RouteLabel() != "KSFO-KJFK" {
		t.Errorf("wanted KSFO-KJFK, got %s", f.RouteLabel())
	}
	if f.Duration() != 5*time.Hour {
		t.Errorf("wanted 5h, got %s", f.Duration())
	}
	if d := f.DirectKM(); d < 4100 || d > 4250 {
		t.Errorf("SFO-JFK direct should be ~4150KM, got %.1f", d)
	}

	g := makeFlight("f2", "KSFO", "KLAX", KSFO, KLAX, t0, time.Hour)
	if !f.SharesOrigin(*g) {
		t.Errorf("both depart KSFO; SharesOrigin said no")
	}
	if f.SharesDestination(*g) {
		t.Errorf("different destinations; SharesDestination said yes")
	}
}

func TestMinuteOfDay(t *testing.T) {
	ep := Endpoint{TimeUTC: time.Date(2026, 3, 14, 23, 30, 0, 0, time.UTC)}
	if m := ep.MinuteOfDay(); m != 1410 {
		t.Errorf("wanted 1410, got %.1f", m)
	}
	ep = Endpoint{TimeUTC: time.Date(2026, 3, 15, 0, 10, 0, 0, time.UTC)}
	if m := ep.MinuteOfDay(); m != 10 {
		t.Errorf("wanted 10, got %.1f", m)
	}
}

func TestTags(t *testing.T) {
	f := makeFlight("f1", "KSFO", "KJFK", KSFO, KJFK, t0, 5*time.Hour)

	f.SetTag("CSV")
	f.SetTag("FORMATION")
	if !f.HasTag("CSV") {
		t.Errorf("tag CSV went missing")
	}
	if tags := f.TagList(); len(tags) != 2 || tags[0] != "CSV" {
		t.Errorf("wanted sorted [CSV FORMATION], got %v", tags)
	}
	f.DropTag("CSV")
	if f.HasTag("CSV") {
		t.Errorf("tag CSV survived DropTag")
	}
}

func TestParseFlightNumber(t *testing.T) {
	tests := []struct {
		in      string
		carrier string
		number  int64
		bad     bool
	}{
		{"UA123", "UA", 123, false},
		{"UAL123", "UAL", 123, false},
		{"B61892", "B6", 1892, false},
		{"SWA3848", "SWA", 3848, false},
		{"", "", 0, true},
		{"123", "", 0, true},
	}

	for i, test := range tests {
		carrier, number, err := ParseFlightNumber(test.in)
		if test.bad {
			if err == nil {
				t.Errorf("[%d] '%s' should not have parsed", i, test.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("[%d] '%s': %v", i, test.in, err)
		} else if carrier != test.carrier || number != test.number {
			t.Errorf("[%d] '%s': wanted %s/%d, got %s/%d",
				i, test.in, test.carrier, test.number, carrier, number)
		}
	}
}
