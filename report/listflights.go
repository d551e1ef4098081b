package report

import(
	"fmt"
	"strings"

	"github.com/skypies/util/date"
	"github.com/skypies/util/histogram"

	fdb "github.com/skypies/formation"
)

func init() {
	HandleReport(".list", ListReporter, "List all matching flights")
}

// ListReporterHeaders is exported so views can render other reports'
// rows with the same leading columns.
func ListReporterHeaders() []string {
	return []string{"flight", "route", "departs_pdt", "arrives_pdt", "direct_km", "tags"}
}

func ListReporter(r *Report, f *fdb.Flight) (FlightReportOutcome, error) {
	r.SetHeaders(ListReporterHeaders())

	if r.MaxResults > 0 && len(r.RowsText) >= r.MaxResults {
		r.I["[C] Dropped: too many rows"]++
		return RejectedByReport, nil
	}

	r.H.Add(histogram.ScalarVal(f.DirectKM()))

	row := []string{
		f.IdentString(),
		f.RouteLabel(),
		date.InPdt(f.Origin.TimeUTC).Format("15:04"),
		date.InPdt(f.Destination.TimeUTC).Format("15:04"),
		fmt.Sprintf("%.0f", f.DirectKM()),
		fmt.Sprintf("[%s]", strings.Join(f.TagList(), ",")),
	}
	r.AddRow(&row, &row)

	return Accepted, nil
}
