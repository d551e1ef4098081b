// Package report runs registered analysis routines over sets of flights.
// A report accumulates rows, counters and histograms as flights are fed
// to it one at a time; reports whose analysis is inherently cross-flight
// (pairing, say) stash state in Blobs and do their real work in a
// SummarizeFunc once the whole set has been seen.
package report

import(
	"fmt"
	"html/template"
	"sort"

	"github.com/skypies/util/histogram"

	fdb "github.com/skypies/formation"
)

// {{{ FlightReportOutcome, ReportFunc

type FlightReportOutcome int
const(
	RejectedByFilter FlightReportOutcome = iota
	RejectedByReport
	Accepted
	Undefined
)

type ReportFunc func(*Report, *fdb.Flight)(FlightReportOutcome,error)
type SummarizeFunc func(*Report)

type ReportLogLevel int
const(
	DEBUG = iota
	INFO
)

// }}}
// {{{ Report{}

type Report struct {
	Name              string
	ReportingContext  // embedded
	Options           // embedded
	Func              ReportFunc
	SummarizeFunc     // embedded, but just to avoid a more confusing name

	// Private state a report might accumulate (be careful about RAM though!)
	Blobs map[string]interface{}

	// Output state
	RowsHTML  [][]template.HTML
	RowsText  [][]string

	HeadersText []string

	I         map[string]int
	F         map[string]float64
	S         map[string]string
	H         histogram.Histogram

	Stats histogram.Set // internal performance counters
	Log string
}

func BlankReport() Report {
	return Report{
		I: map[string]int{},
		F: map[string]float64{},
		S: map[string]string{},
		RowsHTML: [][]template.HTML{},
		RowsText: [][]string{},
		HeadersText: []string{},
		Blobs: map[string]interface{}{},
		Stats: histogram.NewSet(40000),  // maxval, in micros; 40ms == 40000us
	}
}

// }}}

// {{{ r.Logger, etc

func (r *Report)Logger(level ReportLogLevel, s string) {
	if level < r.Options.ReportLogLevel { return }
	r.Log += s
}
func (r *Report)Infof(s string, args ...interface{}) { r.Logger(INFO, fmt.Sprintf(s,args...)) }
func (r *Report)Debugf(s string, args ...interface{}) { r.Logger(DEBUG, fmt.Sprintf(s,args...)) }
func (r *Report)Info(s string) { r.Infof(s) }
func (r *Report)Debug(s string) { r.Debugf(s) }

// }}}
// {{{ r.SetHeaders, r.AddRow

func (r *Report)SetHeaders(headers []string) {
	if len(r.HeadersText) == 0 { r.HeadersText = headers }
}

func (r *Report)AddRow(html *[]string, text *[]string) {
	htmlRow := []template.HTML{}
	for _,s := range *html { htmlRow = append(htmlRow, template.HTML(s)) }
	if html != nil { r.RowsHTML = append(r.RowsHTML, htmlRow) }
	if text != nil { r.RowsText = append(r.RowsText, *text) }
}

// }}}

// {{{ r.PreProcess

// Ensure the flight matches all the search restrictions. Reports never
// see flights that fail here; the counters say what got dropped and why.
func (r *Report)PreProcess(f *fdb.Flight) bool {
	r.I["[A] PreProcessed"]++

	for _,nottag := range r.NotTags {
		if f.HasTag(nottag) {
			r.I[fmt.Sprintf("[B] Eliminated: had not-tag '%s'", nottag)]++
			return false
		}
	}

	if r.Options.Origin != "" && f.Origin.Airport != r.Options.Origin {
		r.I[fmt.Sprintf("[B] Eliminated: origin was not %s", r.Options.Origin)]++
		return false
	}
	if r.Options.Destination != "" && f.Destination.Airport != r.Options.Destination {
		r.I[fmt.Sprintf("[B] Eliminated: destination was not %s", r.Options.Destination)]++
		return false
	}

	if !f.HasEndpoints() {
		r.I["[B] Eliminated: no schedule endpoints"]++
		return false
	}

	r.I["[B] <b>Survived filters</b> "]++

	return true
}

// }}}
// {{{ r.Process

func (r *Report)Process(f *fdb.Flight) (FlightReportOutcome, error) {
	if !r.PreProcess(f) { return RejectedByFilter,nil }
	return r.Func(r, f)
}

// }}}
// {{{ r.FinishSummary

func (r *Report)FinishSummary() {
	r.Info("**** Stage: all done\n")
	if r.SummarizeFunc != nil { r.SummarizeFunc(r) }
	r.Infof("Stats (in micros):-\n%s", r.Stats)
}

// }}}
// {{{ r.MetadataTable

func (r *Report)MetadataTable() [][]template.HTML {
	all := map[string]string{}

	for k,v := range r.I { all[k] = fmt.Sprintf("%d", v) }
	for k,v := range r.F { all[k] = fmt.Sprintf("%.1f", v) }
	for k,v := range r.S { all[k] = v }

	if stats,valid := r.H.Stats(); valid {
		all["[Z] stats,  <b>N</b>"] = fmt.Sprintf("%d", stats.N)
		all["[Z] stats, Mean"] = fmt.Sprintf("%.0f", stats.Mean)
		all["[Z] stats, Stddev"] = fmt.Sprintf("%.0f", stats.Stddev)
		all["[Z] stats, 50%ile"] = fmt.Sprintf("%d", stats.Percentile50)
		all["[Z] stats, 90%ile"] = fmt.Sprintf("%d", stats.Percentile90)
	}

	keys := []string{}
	for k,_ := range all { keys = append(keys, k) }
	sort.Strings(keys)

	out := [][]template.HTML{}
	for _,k := range keys {
		out = append(out, []template.HTML{ template.HTML(k), template.HTML(all[k]) })
	}

	return out
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
