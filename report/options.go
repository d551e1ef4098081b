package report

// All reports share this same options struct. Some options apply to all
// reports, some are interpreted creatively by others, and some only apply
// to one kind of report. They are all parsed out of the http.Request,
// including the report name.

import(
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/skypies/geo"
	"github.com/skypies/util/widget"

	fdb "github.com/skypies/formation"
)

type Options struct {
	Name               string
	Start, End         time.Time
	Tags             []string  // applied by the flight query, not PreProcess
	NotTags          []string

	Origin             string  // restrict to flights departing here (ICAO)
	Destination        string

	Center             geo.Latlong
	RadiusKM           float64 // area of interest around Center; reports interpret it

	MaxResults         int

	ReportLogLevel     ReportLogLevel
}

// {{{ FormValueReportOptions

func FormValueReportOptions(r *http.Request) (Options, error) {
	if r.FormValue("rep") == "" {
		return Options{}, fmt.Errorf("url arg 'rep' missing (no report specified)")
	}

	s,e,err := widget.FormValueDateRange(r)
	if err != nil { return Options{}, err }

	opt := Options{
		Name: r.FormValue("rep"),
		Start: s,
		End: e,
		Tags: widget.FormValueCommaSepStrings(r,"tags"),
		NotTags: widget.FormValueCommaSepStrings(r,"nottags"),
		Origin: strings.ToUpper(r.FormValue("origin")),
		Destination: strings.ToUpper(r.FormValue("destination")),
		RadiusKM: widget.FormValueFloat64EatErrs(r, "radiuskm"),
		MaxResults: int(widget.FormValueFloat64EatErrs(r, "maxresults")),
		ReportLogLevel: INFO,
	}

	if r.FormValue("log") == "debug" {
		opt.ReportLogLevel = DEBUG
	}

	if r.FormValue("centerlat") != "" && r.FormValue("centerlong") != "" {
		lat  := widget.FormValueFloat64EatErrs(r, "centerlat")
		long := widget.FormValueFloat64EatErrs(r, "centerlong")
		opt.Center = geo.Latlong{lat,long}
	}

	if !opt.Center.IsNil() && opt.RadiusKM <= 0.1 {
		return Options{}, fmt.Errorf("a center needs a radiuskm to go with it")
	}

	return opt, nil
}

// }}}
// {{{ r.ToCGIArgs

// A bare minimum of args, so views can link back to a report and get the
// same one.
func (r *Report)ToCGIArgs() string {
	str := fmt.Sprintf("rep=%s&%s", r.Options.Name, widget.DateRangeToCGIArgs(r.Start, r.End))
	if len(r.Options.Tags) > 0 {
		str += "&tags=" + strings.Join(r.Options.Tags, ",")
	}
	if r.Options.Origin != "" { str += "&origin=" + r.Options.Origin }
	if r.Options.Destination != "" { str += "&destination=" + r.Options.Destination }
	if !r.Options.Center.IsNil() {
		str += fmt.Sprintf("&centerlat=%.5f&centerlong=%.5f&radiuskm=%.2f",
			r.Options.Center.Lat, r.Options.Center.Long, r.Options.RadiusKM)
	}
	return str
}

// }}}
// {{{ o.RegionContains

// RegionContains says whether a position falls inside the report's area
// of interest. Reports with no center configured match everywhere.
func (o Options)RegionContains(pos geo.Latlong) bool {
	if o.Center.IsNil() || o.RadiusKM <= 0 { return true }
	return fdb.DistanceKM(o.Center, pos) <= o.RadiusKM
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
