package analysis

import (
	"fmt"

	"github.com/skypies/util/histogram"

	fdb "github.com/skypies/formation"
	"github.com/skypies/formation/report"
)

func init() {
	report.HandleReport("following", FollowingReporter, "Departure shifts that find a flight to follow")
	report.SummarizeReport("following", FollowingSummarizer)
}

func FollowingReporter(r *report.Report, f *fdb.Flight) (report.FlightReportOutcome, error) {
	accumulate(r, "following", f)
	return report.Accepted, nil
}

func FollowingSummarizer(r *report.Report) {
	flights := accumulated(r, "following")

	r.SetHeaders([]string{"flight", "route", "offset_min", "followed", "following_km",
		"savings_pct", "total_cost_km"})
	r.H = histogram.Histogram{ValMin:0, ValMax:10, NumBuckets:20}

	opt := fdb.DefaultFollowOptions()

	for i,f := range flights {
		if !f.HasEndpoints() {
			r.I["[D] Flights skipped (no endpoints)"]++
			continue
		}

		// A flight would happily intercept its own trajectory, so each one
		// gets a source with itself removed.
		others := make([]*fdb.Flight, 0, len(flights)-1)
		for j,g := range flights {
			if j != i {
				others = append(others, g)
			}
		}

		rec,err := fdb.OptimizeDeparture(r.ReportingContext, fdb.NewFlightSet(others...),
			fdb.RequestForFlight(f), opt)
		if err != nil {
			r.I["[D] Optimizer errors"]++
			continue
		}

		if !rec.Best.HasPartner() {
			r.I["[D] No partner at any offset"]++
			continue
		}

		r.I["[D] <b>Flights with a partner</b>"]++
		r.H.Add(histogram.ScalarVal(rec.Best.Cost.SavingsPercent))

		row := []string{
			f.IdentString(),
			f.RouteLabel(),
			fmt.Sprintf("%+.0f", rec.OffsetMinutes),
			rec.Best.FollowedFlightId,
			fmt.Sprintf("%.0f", rec.Best.FollowingKM),
			fmt.Sprintf("%.2f", rec.Best.Cost.SavingsPercent),
			fmt.Sprintf("%.0f", rec.Best.Cost.TotalCost),
		}
		r.AddRow(&row, &row)
	}
}
