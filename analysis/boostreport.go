package analysis

import (
	"fmt"

	"github.com/skypies/util/histogram"

	fdb "github.com/skypies/formation"
	"github.com/skypies/formation/report"
)

func init() {
	report.HandleReport("boosts", BoostsReporter, "Optimized paths through formation boost corridors")
	report.SummarizeReport("boosts", BoostsSummarizer)
}

func BoostsReporter(r *report.Report, f *fdb.Flight) (report.FlightReportOutcome, error) {
	accumulate(r, "boosts", f)
	return report.Accepted, nil
}

func BoostsSummarizer(r *report.Report) {
	flights := accumulated(r, "boosts")

	r.SetHeaders([]string{"flight", "route", "direct_km", "flown_km", "boosts", "savings_min"})
	r.H = histogram.Histogram{ValMin:0, ValMax:60, NumBuckets:12}

	pairs,skipped := fdb.FindPairs(flights, fdb.DefaultPairOptions())
	r.I["[C] Pairs found"] = len(pairs)
	if skipped > 0 {
		r.I["[C] Flights skipped (no endpoints)"] = skipped
	}

	results,err := fdb.OptimizeFlights(r.ReportingContext, flights, pairs, 0)
	if err != nil {
		r.S["[E] Optimizer error"] = err.Error()
		return
	}

	for _,op := range results {
		if !op.IsBoosted() {
			r.I["[D] Flights with no workable corridor"]++
			continue
		}

		r.I["[D] <b>Flights boosted</b>"]++
		r.F["[D] Total minutes saved"] += op.TimeSavingsMin
		r.H.Add(histogram.ScalarVal(op.TimeSavingsMin))

		row := []string{
			op.FlightId,
			fmt.Sprintf("%s-%s", op.DepartureAirport, op.ArrivalAirport),
			fmt.Sprintf("%.0f", op.DirectKM),
			fmt.Sprintf("%.0f", op.RealizedKM),
			fmt.Sprintf("%d", op.NumBoosts()),
			fmt.Sprintf("%.1f", op.TimeSavingsMin),
		}
		r.AddRow(&row, &row)
	}
}
