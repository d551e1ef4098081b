package ui

// Wire types for the JSON API. Field names match the payloads the
// existing frontend already parses, so this backend drops in behind it.
// Flight ids are opaque strings throughout.

import(
	"fmt"
	"time"

	"github.com/skypies/geo"

	fdb "github.com/skypies/formation"
)

// {{{ CoordinateJSON{}, FlightJSON{}, RawFlightJSON{}

type CoordinateJSON struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Airport string  `json:"airport,omitempty"`
	Time    string  `json:"time,omitempty"`
}

type FlightJSON struct {
	Id     string         `json:"id"`
	Number string         `json:"number"`
	Dep    CoordinateJSON `json:"dep"`
	Arr    CoordinateJSON `json:"arr"`
}

type RawFlightJSON struct {
	FlightId           string  `json:"flight_id"`
	FlightNo           string  `json:"flight_no"`
	DepartureAirport   string  `json:"departure_airport"`
	ArrivalAirport     string  `json:"arrival_airport"`
	ScheduledDeparture string  `json:"scheduled_departure"`
	ScheduledArrival   string  `json:"scheduled_arrival"`
	DepLat             float64 `json:"dep_lat"`
	DepLon             float64 `json:"dep_lon"`
	ArrLat             float64 `json:"arr_lat"`
	ArrLon             float64 `json:"arr_lon"`
}

// }}}
// {{{ PairJSON{}, OptimizedPathJSON{}

type PairJSON struct {
	Type         string          `json:"type"` // similar or intersecting
	Flight1      FlightJSON      `json:"flight1"`
	Flight2      FlightJSON      `json:"flight2"`
	Angle        float64         `json:"angle"`
	Intersection *CoordinateJSON `json:"intersection,omitempty"`
}

type WaypointJSON struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Type string  `json:"type"`
}

type BoostSegmentJSON struct {
	BoostId         string         `json:"boost_id"`
	Entry           CoordinateJSON `json:"entry"`
	Exit            CoordinateJSON `json:"exit"`
	DistanceInBoost float64        `json:"distance_in_boost"`
	Bearing         float64        `json:"bearing"`
}

type OptimizedPathJSON struct {
	FlightId          string             `json:"flight_id"`
	FlightNumber      string             `json:"flight_number"`
	DepartureAirport  string             `json:"departure_airport"`
	ArrivalAirport    string             `json:"arrival_airport"`
	OriginalDistance  float64            `json:"original_distance"`
	OptimizedDistance float64            `json:"optimized_distance"`
	TimeSavings       float64            `json:"time_savings"`
	BoostPathsUsed    int                `json:"boost_paths_used"`
	Waypoints         []WaypointJSON     `json:"waypoints"`
	BoostSegments     []BoostSegmentJSON `json:"boost_segments"`
}

type PathNodeJSON struct {
	Lat               float64 `json:"lat"`
	Lon               float64 `json:"lon"`
	Timestamp         string  `json:"timestamp"`
	TimeIndex         int     `json:"time_index"`
	SegmentDistanceKM float64 `json:"segment_distance_km"`
}

// }}}

// {{{ parseTimeArg

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

func parseTimeArg(s string) (time.Time, error) {
	for _,layout := range timeLayouts {
		if t,err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable time %q", s)
}

func timeToJSON(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// }}}
// {{{ fj.ToFlight, rj.ToFlight

func (cj CoordinateJSON)toEndpoint() (fdb.Endpoint, error) {
	ep := fdb.Endpoint{
		Airport: cj.Airport,
		Pos: geo.Latlong{Lat:cj.Lat, Long:cj.Lon},
	}
	if cj.Time != "" {
		t,err := parseTimeArg(cj.Time)
		if err != nil {
			return ep, err
		}
		ep.TimeUTC = t
	}
	return ep, nil
}

func (fj FlightJSON)ToFlight() (*fdb.Flight, error) {
	dep,err := fj.Dep.toEndpoint()
	if err != nil {
		return nil, fmt.Errorf("flight %s dep: %v", fj.Number, err)
	}
	arr,err := fj.Arr.toEndpoint()
	if err != nil {
		return nil, fmt.Errorf("flight %s arr: %v", fj.Number, err)
	}

	id := fj.Id
	if id == "" {
		id = fj.Number
	}
	if id == "" {
		return nil, fmt.Errorf("flight needs an id or a number")
	}

	f := fdb.NewFlight(id, dep, arr)
	f.Number = fj.Number
	return f, nil
}

func (rj RawFlightJSON)ToFlight() (*fdb.Flight, error) {
	dep,err := parseTimeArg(rj.ScheduledDeparture)
	if err != nil {
		return nil, fmt.Errorf("flight %s: bad scheduled_departure: %v", rj.FlightNo, err)
	}
	arr,err := parseTimeArg(rj.ScheduledArrival)
	if err != nil {
		return nil, fmt.Errorf("flight %s: bad scheduled_arrival: %v", rj.FlightNo, err)
	}

	id := rj.FlightId
	if id == "" {
		id = rj.FlightNo
	}
	if id == "" {
		return nil, fmt.Errorf("flight needs a flight_id or a flight_no")
	}

	f := fdb.NewFlight(id,
		fdb.Endpoint{Airport: rj.DepartureAirport, Pos: geo.Latlong{Lat:rj.DepLat, Long:rj.DepLon}, TimeUTC: dep},
		fdb.Endpoint{Airport: rj.ArrivalAirport, Pos: geo.Latlong{Lat:rj.ArrLat, Long:rj.ArrLon}, TimeUTC: arr})
	f.Number = rj.FlightNo
	return f, nil
}

// }}}
// {{{ flightToJSON, pairToJSON

func flightToJSON(f *fdb.Flight) FlightJSON {
	return FlightJSON{
		Id:     f.Id,
		Number: f.Number,
		Dep: CoordinateJSON{Lat: f.Origin.Pos.Lat, Lon: f.Origin.Pos.Long,
			Airport: f.Origin.Airport, Time: timeToJSON(f.Origin.TimeUTC)},
		Arr: CoordinateJSON{Lat: f.Destination.Pos.Lat, Lon: f.Destination.Pos.Long,
			Airport: f.Destination.Airport, Time: timeToJSON(f.Destination.TimeUTC)},
	}
}

func pairToJSON(cp fdb.CompatiblePair) PairJSON {
	pj := PairJSON{
		Type:    cp.Kind.String(),
		Flight1: flightToJSON(cp.A),
		Flight2: flightToJSON(cp.B),
		Angle:   cp.AngleDeg,
	}
	if cp.Kind == fdb.KindIntersecting {
		pj.Intersection = &CoordinateJSON{Lat: cp.Crossing.Lat, Lon: cp.Crossing.Long}
	}
	return pj
}

// }}}
// {{{ pj.ToPair

// ToPair rebuilds an engine pair from its wire form. The flights are
// re-canonicalized by id, since callers may list them in either order.
func (pj PairJSON)ToPair() (fdb.CompatiblePair, error) {
	a,err := pj.Flight1.ToFlight()
	if err != nil {
		return fdb.CompatiblePair{}, err
	}
	b,err := pj.Flight2.ToFlight()
	if err != nil {
		return fdb.CompatiblePair{}, err
	}

	var kind fdb.PairKind
	switch pj.Type {
	case "similar":      kind = fdb.KindSimilar
	case "intersecting": kind = fdb.KindIntersecting
	default:
		return fdb.CompatiblePair{}, fmt.Errorf("unknown pair type %q", pj.Type)
	}

	if b.Id < a.Id {
		a,b = b,a
	}

	cp := fdb.CompatiblePair{Kind: kind, A: a, B: b, AngleDeg: pj.Angle}
	if kind == fdb.KindIntersecting {
		if pj.Intersection == nil {
			return cp, fmt.Errorf("intersecting pair %s+%s missing intersection", a.Id, b.Id)
		}
		cp.Crossing = fdb.Intersection{
			Latlong: geo.Latlong{Lat: pj.Intersection.Lat, Long: pj.Intersection.Lon},
		}
	}
	return cp, nil
}

// }}}
// {{{ optimizedPathToJSON, pathToJSON

func optimizedPathToJSON(op fdb.OptimizedPath, numberById map[string]string) OptimizedPathJSON {
	wps := make([]WaypointJSON, 0, len(op.Waypoints))
	for _,wp := range op.Waypoints {
		wps = append(wps, WaypointJSON{Lat: wp.Pos.Lat, Lon: wp.Pos.Long, Type: string(wp.Kind)})
	}

	segs := make([]BoostSegmentJSON, 0, len(op.Boosts))
	for _,bu := range op.Boosts {
		segs = append(segs, BoostSegmentJSON{
			BoostId:         bu.PairKey,
			Entry:           CoordinateJSON{Lat: bu.Entry.Lat, Lon: bu.Entry.Long},
			Exit:            CoordinateJSON{Lat: bu.Exit.Lat, Lon: bu.Exit.Long},
			DistanceInBoost: bu.InBoostKM,
			Bearing:         bu.BearingDeg,
		})
	}

	number := numberById[op.FlightId]
	if number == "" {
		number = op.FlightId
	}

	return OptimizedPathJSON{
		FlightId:          op.FlightId,
		FlightNumber:      number,
		DepartureAirport:  op.DepartureAirport,
		ArrivalAirport:    op.ArrivalAirport,
		OriginalDistance:  op.DirectKM,
		OptimizedDistance: op.RealizedKM,
		TimeSavings:       op.TimeSavingsMin,
		BoostPathsUsed:    op.NumBoosts(),
		Waypoints:         wps,
		BoostSegments:     segs,
	}
}

func pathToJSON(p fdb.FlightPath) []PathNodeJSON {
	out := make([]PathNodeJSON, 0, len(p))
	for i,n := range p {
		seg := 0.0
		if i > 0 {
			seg = fdb.DistanceKM(p[i-1].Latlong, n.Latlong)
		}
		out = append(out, PathNodeJSON{
			Lat:               n.Lat,
			Lon:               n.Long,
			Timestamp:         n.TimestampUTC.UTC().Format(time.RFC3339),
			TimeIndex:         i,
			SegmentDistanceKM: seg,
		})
	}
	return out
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
