package ingest

import(
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/skypies/geo"

	fdb "github.com/skypies/formation"
)

// {{{ notes

/* Schedule data comes in CSV rows, one flight per row.

The headers vary a little between dumps, so we turn each row into a map
from header name to value. The core columns:

[0]id(optional), carrier, flight, tailnum, origin, dest,
  dep_time, sched_dep_time, arr_time, sched_arr_time

Clock values are numeric HHMM on an unstated day: 517.0 is 05:17, 1400.0
is 14:00. Actual times are preferred over scheduled ones when present;
the ingest options supply the day they land on.

 */

// }}}

type RowReader struct {
	csvreader  *csv.Reader
	headers   []string
}

func NewRowReader(ioreader io.Reader) *RowReader {
	rdr := RowReader{
		csvreader: csv.NewReader(ioreader),
	}
	rdr.headers,_ = rdr.csvreader.Read() // Discard err, we'll get it when we try to get next row
	return &rdr
}

// {{{ rdr.Read()

func (r *RowReader)Read() (Row,error) {
	m := map[string]string{}

	vals,err := r.csvreader.Read()
	if err != nil {
		return m,err
	} else if len(r.headers) != len(vals) {
		return m, fmt.Errorf("header/val mismatch (%d/%d)", len(r.headers), len(vals))
	}

	for i,_ := range vals {
		m[strings.ToLower(strings.TrimSpace(r.headers[i]))] = vals[i]
	}

	return m,nil
}

// }}}

type Row map[string]string

// {{{ row.FlightNumber, row.FlightId

func (r Row)FlightNumber() string {
	return strings.ToUpper(strings.TrimSpace(r["carrier"] + r["flight"]))
}

// FlightId prefers the feed's own id column; without one, the id derives
// from the number, route, and departure clock, which repeats stably on
// re-ingest.
func (r Row)FlightId(departs time.Time) string {
	if id := strings.TrimSpace(r["id"]); id != "" {
		return id
	}
	return fmt.Sprintf("%s-%s-%s", r.FlightNumber(), strings.ToUpper(r["origin"]),
		departs.Format("200601021504"))
}

// }}}
// {{{ row.DepartureTime, row.ArrivalTime

func (r Row)DepartureTime(base time.Time) (time.Time, bool) {
	return r.clockValue(base, "dep_time", "sched_dep_time")
}

func (r Row)ArrivalTime(base time.Time) (time.Time, bool) {
	return r.clockValue(base, "arr_time", "sched_arr_time")
}

func (r Row)clockValue(base time.Time, cols ...string) (time.Time, bool) {
	for _,col := range cols {
		if hhmm,ok := parseClock(r[col]); ok {
			return clockToTime(base, hhmm), true
		}
	}
	return time.Time{}, false
}

// }}}
// {{{ row.ToFlight

// ToFlight builds a flight from a schedule row. The returned error names
// what made the row unusable; callers count those rather than failing
// the whole file.
func (r Row)ToFlight(opt Options) (*fdb.Flight, error) {
	departs,ok := r.DepartureTime(opt.BaseDate)
	if !ok {
		return nil, fmt.Errorf("no departure time (dep_time=%q sched=%q)",
			r["dep_time"], r["sched_dep_time"])
	}
	arrives,ok := r.ArrivalTime(opt.BaseDate)
	if !ok {
		return nil, fmt.Errorf("no arrival time (arr_time=%q sched=%q)",
			r["arr_time"], r["sched_arr_time"])
	}
	if !arrives.After(departs) {
		return nil, fmt.Errorf("non-positive duration (%s -> %s)",
			departs.Format("15:04"), arrives.Format("15:04"))
	}

	orig,ok := opt.Resolve(r["origin"])
	if !ok {
		return nil, fmt.Errorf("unknown origin airport %q", r["origin"])
	}
	dest,ok := opt.Resolve(r["dest"])
	if !ok {
		return nil, fmt.Errorf("unknown destination airport %q", r["dest"])
	}

	f := fdb.NewFlight(
		r.FlightId(departs),
		fdb.Endpoint{Airport:orig.Name, Pos:orig.Latlong, TimeUTC:departs},
		fdb.Endpoint{Airport:dest.Name, Pos:dest.Latlong, TimeUTC:arrives})
	f.Number = r.FlightNumber()
	f.SetTag("scheduled")

	return f, nil
}

// }}}

// {{{ parseClock, clockToTime

// Clock values arrive as "517", "517.0", sometimes "NA".
func parseClock(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "NA") {
		return 0, false
	}
	v,err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return int(v), true
}

func clockToTime(base time.Time, hhmm int) time.Time {
	hours := hhmm / 100
	mins := hhmm % 100

	if mins >= 60 {
		hours += mins / 60
		mins = mins % 60
	}
	// 2400 means end of day; everything stays on the base date.
	if hours >= 24 {
		hours, mins = 23, 59
	}

	day := time.Date(base.Year(), base.Month(), base.Day(), 0, 0, 0, 0, base.Location())
	return day.Add(time.Duration(hours)*time.Hour + time.Duration(mins)*time.Minute)
}

// }}}

type Options struct {
	BaseDate time.Time // the day the HHMM clock values land on
	Resolve  func(code string) (geo.NamedLatlong, bool)
}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
