package report

import(
	"context"
	"strings"
	"testing"
	"time"

	"github.com/skypies/geo"

	fdb "github.com/skypies/formation"
)

var rt0 = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func reportTestFlight(id, orig, dest string, departs time.Time) *fdb.Flight {
	f := fdb.NewFlight(id,
		fdb.Endpoint{Airport:orig, Pos:geo.Latlong{37.6213, -122.3790}, TimeUTC:departs},
		fdb.Endpoint{Airport:dest, Pos:geo.Latlong{40.6413, -73.7781}, TimeUTC:departs.Add(5*time.Hour)})
	f.SetTag("scheduled")
	return f
}

func TestInstantiateReport(t *testing.T) {
	if _,err := InstantiateReport("no-such-report"); err == nil {
		t.Errorf("expected error for unknown report name")
	}

	r,err := InstantiateReport(".list")
	if err != nil {
		t.Fatalf("InstantiateReport(.list): %v", err)
	}
	if r.Func == nil {
		t.Errorf("instantiated report had no Func")
	}
	if r.Blobs == nil || r.I == nil {
		t.Errorf("instantiated report was not blanked properly")
	}
}

func TestPreProcess(t *testing.T) {
	r,_ := InstantiateReport(".list")
	r.SetContext(context.Background())

	good := reportTestFlight("UA100", "KSFO", "KJFK", rt0)
	if !r.PreProcess(good) {
		t.Errorf("clean flight failed PreProcess")
	}

	r.Options.NotTags = []string{"scheduled"}
	if r.PreProcess(good) {
		t.Errorf("not-tag 'scheduled' should have eliminated the flight")
	}
	r.Options.NotTags = nil

	r.Options.Origin = "KLAX"
	if r.PreProcess(good) {
		t.Errorf("origin filter KLAX should have eliminated a KSFO departure")
	}
	r.Options.Origin = ""

	noEndpoints := fdb.NewFlight("XX1", fdb.Endpoint{}, fdb.Endpoint{})
	if r.PreProcess(noEndpoints) {
		t.Errorf("flight without endpoints should have been eliminated")
	}

	if r.I["[A] PreProcessed"] != 4 {
		t.Errorf("wanted 4 preprocessed, got %d", r.I["[A] PreProcessed"])
	}
	if r.I["[B] <b>Survived filters</b> "] != 1 {
		t.Errorf("wanted 1 survivor, got %d", r.I["[B] <b>Survived filters</b> "])
	}
}

func TestListReporter(t *testing.T) {
	r,err := InstantiateReport(".list")
	if err != nil {
		t.Fatalf("InstantiateReport: %v", err)
	}
	r.SetContext(context.Background())

	flights := []*fdb.Flight{
		reportTestFlight("UA100", "KSFO", "KJFK", rt0),
		reportTestFlight("DL200", "KSFO", "KBOS", rt0.Add(20*time.Minute)),
	}
	for _,f := range flights {
		outcome,err := r.Process(f)
		if err != nil {
			t.Fatalf("Process(%s): %v", f.IdentString(), err)
		}
		if outcome != Accepted {
			t.Errorf("Process(%s): wanted Accepted, got %v", f.IdentString(), outcome)
		}
	}
	r.FinishSummary()

	if len(r.RowsText) != 2 {
		t.Fatalf("wanted 2 rows, got %d", len(r.RowsText))
	}
	if r.HeadersText[0] != "flight" {
		t.Errorf("wanted 'flight' header, got %q", r.HeadersText[0])
	}
	if !strings.Contains(r.RowsText[0][1], "KSFO-KJFK") {
		t.Errorf("wanted route KSFO-KJFK in row, got %q", r.RowsText[0][1])
	}

	found := false
	for _,row := range r.MetadataTable() {
		if strings.Contains(string(row[0]), "[A] PreProcessed") { found = true }
	}
	if !found {
		t.Errorf("MetadataTable missing the PreProcessed counter")
	}
}

func TestListReporterMaxResults(t *testing.T) {
	r,_ := InstantiateReport(".list")
	r.SetContext(context.Background())
	r.Options.MaxResults = 1

	for i,id := range []string{"UA100","DL200","AA300"} {
		f := reportTestFlight(id, "KSFO", "KJFK", rt0.Add(time.Duration(i)*time.Minute))
		r.Process(f)
	}

	if len(r.RowsText) != 1 {
		t.Errorf("wanted 1 row with maxresults=1, got %d", len(r.RowsText))
	}
	if r.I["[C] Dropped: too many rows"] != 2 {
		t.Errorf("wanted 2 dropped, got %d", r.I["[C] Dropped: too many rows"])
	}
}

func TestSetHeadersFirstWins(t *testing.T) {
	r := BlankReport()
	r.SetHeaders([]string{"a","b"})
	r.SetHeaders([]string{"c"})
	if len(r.HeadersText) != 2 || r.HeadersText[0] != "a" {
		t.Errorf("second SetHeaders should not replace the first, got %v", r.HeadersText)
	}
}
