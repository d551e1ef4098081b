package fstore

import(
	"testing"
	"time"
)

// The query builders only assemble filters; they run against datastore
// elsewhere. This just catches a builder returning nil mid-chain.

func TestQueryBuilders(t *testing.T) {
	s := time.Date(2026,1,2, 0,0,0,0, time.UTC)
	e := s.Add(6 * time.Hour)

	queries := []*FQuery{
		NewFlightQuery(),
		NewFlightQuery().ByFlightId("F1").Limit(3),
		NewFlightQuery().ByRoute("KSFO","KJFK").Order("-LastUpdate"),
		NewFlightQuery().ByTime(s),
		QueryForTimeRange([]string{"scheduled"}, s, e),
		QueryForRecent([]string{}, 10),
		QueryForRoute("KSFO","KJFK", s, e),
		QueryForAirport("KSFO", s, e),
	}
	for i,fq := range queries {
		if fq == nil {
			t.Errorf("query %d: built nil", i)
		}
	}
}

func TestByTagsChains(t *testing.T) {
	fq := NewFlightQuery()
	if got := fq.ByTags([]string{"a","b"}); got != fq {
		t.Errorf("ByTags returned a different query; wanted the receiver back")
	}
}
