package formation

import (
	"fmt"
	"time"

	"github.com/skypies/util/date"
)

// FormationForBigQuery is a denormalized optimization result, one row per
// flight, designed for import into BigQuery for fleet-level analysis.
type FormationForBigQuery struct {
	FlightId       string // ID back into the flight database
	FlightNumber   string // IATA scheduled flight number, if known
	Orig,Dest      string // airport codes

	Date           string // Approximate; the scheduled midpoint, local time
	Start,End      time.Time

	DirectKM       float64
	RealizedKM     float64
	TimeSavingsMin float64
	NumBoosts      int
	PairKeys     []string // The pairings whose corridors this path boosted through
	Tags         []string
}

func (fbq FormationForBigQuery)String() string {
	return fmt.Sprintf("%s %s-%s %s %.0f/%.0fKM saved=%.1fmin boosts=%d",
		fbq.FlightId, fbq.Orig, fbq.Dest, fbq.Date,
		fbq.RealizedKM, fbq.DirectKM, fbq.TimeSavingsMin, fbq.NumBoosts)
}

// ForBigQuery flattens a flight and its optimization outcome into a row.
// A nil outcome means the flight was analyzed but never boosted.
func (f *Flight)ForBigQuery(op *OptimizedPath) *FormationForBigQuery {
	s, e := f.Origin.TimeUTC, f.Destination.TimeUTC

	// We need to pick a 'date' for this flight. Use the schedule midpoint,
	// in the same format as BQ's DATE() function.
	mid := s.Add(e.Sub(s) / 2)

	fbq := FormationForBigQuery{
		FlightId: f.Id,
		FlightNumber: f.Number,
		Orig: f.Origin.Airport,
		Dest: f.Destination.Airport,
		Date: date.InPdt(mid).Format("2006-01-02"),
		Start: s,
		End: e,
		DirectKM: f.DirectKM(),
		PairKeys: []string{},
		Tags: f.TagList(),
	}

	if op == nil {
		fbq.RealizedKM = fbq.DirectKM
		return &fbq
	}

	fbq.RealizedKM = op.RealizedKM
	fbq.TimeSavingsMin = op.TimeSavingsMin
	fbq.NumBoosts = op.NumBoosts()
	for _,b := range op.Boosts {
		fbq.PairKeys = append(fbq.PairKeys, b.PairKey)
	}

	return &fbq
}
