package formation

import(
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/skypies/adsb"
	"github.com/skypies/geo"
	"github.com/skypies/util/date"
)

// {{{ Endpoint{}

// An Endpoint is one end of a scheduled route: which airport, where it is,
// and the scheduled time at it.
type Endpoint struct {
	Airport      string       // ICAO airport code, e.g. "KSFO"
	Pos          geo.Latlong
	TimeUTC      time.Time
}

func (ep Endpoint)String() string {
	return fmt.Sprintf("%s@%s", ep.Airport, ep.TimeUTC.Format("15:04"))
}

// MinuteOfDay is the endpoint's scheduled wall-clock time, as minutes after
// midnight. The similar-pair temporal gate compares times-of-day rather
// than absolute instants.
func (ep Endpoint)MinuteOfDay() float64 {
	return float64(ep.TimeUTC.Hour()*60 + ep.TimeUTC.Minute())
}

// }}}
// {{{ Identity{}

// Identity carries the identifiers a flight is known by. Id is the upstream
// feed's opaque unique key; Number is the IATA flight number when we have
// schedule data; IcaoId is the Mode-S airframe id when the flight was seen
// over ADS-B.
type Identity struct {
	Id           string
	Number       string
	IcaoId       adsb.IcaoId
}

func (id Identity)IdentString() string {
	if id.Number != "" {
		return fmt.Sprintf("%s (%s)", id.Id, id.Number)
	}
	return id.Id
}

// }}}

// {{{ Flight{}

type Flight struct {
	Identity

	Origin       Endpoint
	Destination  Endpoint

	// Path holds the sampled trajectory, when the feed supplied one; a
	// flight summarized as just endpoints has an empty Path, and callers
	// synthesize one as needed.
	Path         FlightPath

	Tags         map[string]int

	// Internals for datastore management; not persisted inside the blob.
	datastoreKey string
	lastUpdate   time.Time
}

func BlankFlight() Flight {
	return Flight{
		Tags: map[string]int{},
	}
}

func NewFlight(id string, orig, dest Endpoint) *Flight {
	f := BlankFlight()
	f.Id = id
	f.Origin = orig
	f.Destination = dest
	return &f
}

func (f Flight)String() string {
	return fmt.Sprintf("%s %s %s", f.IdentString(), f.RouteLabel(),
		f.Origin.TimeUTC.Format("2006.01.02 15:04"))
}

// }}}

// {{{ f.RouteLabel

func (f Flight)RouteLabel() string {
	return f.Origin.Airport + "-" + f.Destination.Airport
}

// }}}
// {{{ f.DirectKM, f.CourseBearing, f.Duration

// DirectKM is the great-circle distance of the unoptimized route.
func (f Flight)DirectKM() float64 {
	return DistanceKM(f.Origin.Pos, f.Destination.Pos)
}

// CourseBearing is the initial bearing of the direct route.
func (f Flight)CourseBearing() float64 {
	return InitialBearing(f.Origin.Pos, f.Destination.Pos)
}

func (f Flight)Duration() time.Duration {
	return f.Destination.TimeUTC.Sub(f.Origin.TimeUTC)
}

// }}}
// {{{ f.HasEndpoints

// HasEndpoints says whether the flight is usable by the engine: both
// airports resolved to coordinates, and a positive scheduled duration.
// Flights failing this are skipped by callers, never errored on.
func (f Flight)HasEndpoints() bool {
	if f.Origin.Airport == "" || f.Destination.Airport == "" {
		return false
	}
	if f.Origin.Pos.IsNil() || f.Destination.Pos.IsNil() {
		return false
	}
	return f.Destination.TimeUTC.After(f.Origin.TimeUTC)
}

// }}}
// {{{ f.SharesOrigin, f.SharesDestination

func (f Flight)SharesOrigin(g Flight) bool {
	return f.Origin.Airport == g.Origin.Airport
}
func (f Flight)SharesDestination(g Flight) bool {
	return f.Destination.Airport == g.Destination.Airport
}

// }}}
// {{{ f.Timeslots

// Timeslots quantizes the flight's scheduled span, for datastore indexing.
func (f Flight)Timeslots() []time.Time {
	s, e := f.Origin.TimeUTC, f.Destination.TimeUTC
	if e.Before(s) {
		e = s
	}
	return date.Timeslots(s, e, TimeslotDuration)
}

// }}}

// {{{ f.SetTag, f.HasTag, f.DropTag, f.TagList

func (f *Flight)SetTag(tag string) {
	if f.Tags == nil {
		f.Tags = map[string]int{}
	}
	f.Tags[tag]++
}

func (f *Flight)HasTag(tag string) bool {
	_, exists := f.Tags[tag]
	return exists
}

func (f *Flight)DropTag(tag string) {
	delete(f.Tags, tag)
}

func (f Flight)TagList() []string {
	ret := []string{}
	for tag := range f.Tags {
		ret = append(ret, tag)
	}
	sort.Strings(ret)
	return ret
}

// }}}
// {{{ f.GetDatastoreKey, f.SetDatastoreKey, f.GetLastUpdate, f.SetLastUpdate

func (f Flight)GetDatastoreKey() string { return f.datastoreKey }
func (f *Flight)SetDatastoreKey(k string) { f.datastoreKey = k }
func (f Flight)GetLastUpdate() time.Time { return f.lastUpdate }
func (f *Flight)SetLastUpdate(t time.Time) { f.lastUpdate = t }

// }}}

// {{{ ParseFlightNumber

// Flight numbers are mostly IATA style (UA123), but feeds also send ICAO
// callsign style (UAL123), sometimes with a trailing positioning letter.
var(
	iataFlightNumber = regexp.MustCompile("^([A-Z][0-9A-Z])([0-9]{1,4})[A-Z]?$")
	icaoFlightNumber = regexp.MustCompile("^([A-Z]{3})([0-9]{1,4})[A-Z]?$")
)

func ParseFlightNumber(s string) (string, int64, error) {
	if frags := icaoFlightNumber.FindStringSubmatch(s); frags != nil {
		n, _ := strconv.ParseInt(frags[2], 10, 64)
		return frags[1], n, nil
	}
	if frags := iataFlightNumber.FindStringSubmatch(s); frags != nil {
		n, _ := strconv.ParseInt(frags[2], 10, 64)
		return frags[1], n, nil
	}
	return "", 0, fmt.Errorf("ParseFlightNumber: could not parse '%s'", s)
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
