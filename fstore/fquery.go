package fstore

// Flight query builders that sit on top of the datastore provider's query type.

import(
	"time"

	"github.com/skypies/adsb"
	"github.com/skypies/util/date"
	"github.com/skypies/util/gcp/ds"

	fdb "github.com/skypies/formation"
)

const kFlightKind = "formationflight"

type FQuery ds.Query // Create our own type, so we can hang a fluent API off it

func NewFlightQuery() *FQuery { return (*FQuery)(ds.NewQuery(kFlightKind)) }

func (fq *FQuery)Order(str string) *FQuery { return (*FQuery)((*ds.Query)(fq).Order(str)) }
func (fq *FQuery)Limit(val int) *FQuery { return (*FQuery)((*ds.Query)(fq).Limit(val)) }
func (fq *FQuery)Filter(str string, val interface{}) *FQuery {
	return (*FQuery)((*ds.Query)(fq).Filter(str,val))
}

func (q *FQuery)ByTime(t time.Time) *FQuery {
	// Round the time off to the nearest timeslot; and then assert flights possess it
	slots := date.Timeslots(t,t,fdb.TimeslotDuration)
	return q.Filter("Timeslots = ", slots[0])
}

// Note that using this will prevent OrderBy stuff, unless it orders by timeslots ...
func (q *FQuery)ByTimeRange(s,e time.Time) *FQuery {
	// This pair of filters assert that a match must have at least one timeslot that
	// matches both inequalities - i.e. that it has a timeslot within the range.
	slots := date.Timeslots(s,e,fdb.TimeslotDuration)
	return q.
		Filter("Timeslots >= ", slots[0]).
		Filter("Timeslots <= ", slots[len(slots)-1])
}

func (q *FQuery)ByFlightId(id string) *FQuery {
	return q.Filter("FlightId = ", id)
}
func (q *FQuery)ByIcaoId(id adsb.IcaoId) *FQuery {
	return q.Filter("IcaoId = ", string(id))
}
func (q *FQuery)ByOrigin(airport string) *FQuery {
	return q.Filter("Origin = ", airport)
}
func (q *FQuery)ByDestination(airport string) *FQuery {
	return q.Filter("Destination = ", airport)
}
func (q *FQuery)ByRoute(orig, dest string) *FQuery {
	return q.ByOrigin(orig).ByDestination(dest)
}
func (q *FQuery)ByTags(tags []string) *FQuery {
	for _,tag := range tags {
		q.Filter("Tags = ", tag)
	}
	return q
}

// Some canned queries
func QueryForRecent(tags []string, n int) *FQuery {
	return NewFlightQuery().
		ByTags(tags).
		Order("-Timeslots").
		Limit(n)
}

func QueryForTimeRange(tags []string, s,e time.Time) *FQuery {
	return NewFlightQuery().
		ByTags(tags).
		ByTimeRange(s,e)
}

func QueryForRoute(orig, dest string, s,e time.Time) *FQuery {
	return NewFlightQuery().
		ByRoute(orig, dest).
		ByTimeRange(s,e)
}

func QueryForAirport(airport string, s,e time.Time) *FQuery {
	return NewFlightQuery().
		ByOrigin(airport).
		ByTimeRange(s,e)
}
