package analysis

import (
	"fmt"

	"github.com/skypies/util/histogram"

	fdb "github.com/skypies/formation"
	"github.com/skypies/formation/report"
)

func init() {
	report.HandleReport("pairs", PairsReporter, "Compatible pairs, and the corridors they define")
	report.SummarizeReport("pairs", PairsSummarizer)
}

func PairsReporter(r *report.Report, f *fdb.Flight) (report.FlightReportOutcome, error) {
	accumulate(r, "pairs", f)
	return report.Accepted, nil
}

func PairsSummarizer(r *report.Report) {
	flights := accumulated(r, "pairs")

	r.SetHeaders([]string{"kind", "flight_a", "flight_b", "angle_deg", "efficiency",
		"corridor_start", "corridor_km"})
	r.H = histogram.Histogram{ValMin:0, ValMax:45, NumBuckets:15}

	pairs,skipped := fdb.FindPairs(flights, fdb.DefaultPairOptions())
	r.I["[C] Pairs found"] = len(pairs)
	if skipped > 0 {
		r.I["[C] Flights skipped (no endpoints)"] = skipped
	}

	for _,cp := range pairs {
		bc := fdb.CorridorFromPair(cp)

		// A center+radius restricts the report to corridors starting nearby.
		if !r.Options.RegionContains(bc.Start) {
			r.I["[D] Corridors outside region"]++
			continue
		}

		r.H.Add(histogram.ScalarVal(cp.AngleDeg))
		r.I[fmt.Sprintf("[D] Pairs: %s", cp.Kind)]++

		row := []string{
			cp.Kind.String(),
			cp.A.IdentString(),
			cp.B.IdentString(),
			fmt.Sprintf("%.1f", cp.AngleDeg),
			fmt.Sprintf("%.2f", cp.EfficiencyScore()),
			fmt.Sprintf("%.4f,%.4f", bc.Start.Lat, bc.Start.Long),
			fmt.Sprintf("%.0f", bc.LengthKM),
		}
		r.AddRow(&row, &row)
	}
}
