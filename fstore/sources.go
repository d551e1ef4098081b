package fstore

import(
	"fmt"
	"sort"
	"time"

	"context"

	"github.com/skypies/geo"

	fdb "github.com/skypies/formation"
)

// FormationDB implements fdb.TrajectorySource, so the departure-time
// optimizer can run straight off the datastore. Datastore has no
// geospatial queries; we pull the time range via timeslot filters and
// trim to the radius in memory, the same way the airspace display trims
// to its bounding box.

// {{{ db.NodesInTimeRange

func (db *FormationDB)NodesInTimeRange(ctx context.Context, s,e time.Time, limit int) ([]fdb.NodeRef, error) {
	flights, err := db.lookupByTimeRange(ctx, s, e)
	if err != nil {
		return nil, fmt.Errorf("NodesInTimeRange: %v", err)
	}

	refs := []fdb.NodeRef{}
	for _,f := range flights {
		for _,node := range f.EffectivePath() {
			if node.TimestampUTC.Before(s) || node.TimestampUTC.After(e) {
				continue
			}
			refs = append(refs, fdb.NodeRef{FlightId: f.Id, Node: node})
			if limit > 0 && len(refs) >= limit {
				return refs, nil
			}
		}
	}

	return refs, nil
}

// }}}
// {{{ db.NearbyNodes

func (db *FormationDB)NearbyNodes(ctx context.Context, pos geo.Latlong, radiusKM float64, s,e time.Time, limit int) ([]fdb.NodeRef, error) {
	flights, err := db.lookupByTimeRange(ctx, s, e)
	if err != nil {
		return nil, fmt.Errorf("NearbyNodes: %v", err)
	}

	refs := []fdb.NodeRef{}
	for _,f := range flights {
		for _,node := range f.EffectivePath() {
			if node.TimestampUTC.Before(s) || node.TimestampUTC.After(e) {
				continue
			}
			if fdb.DistanceKM(pos, node.Latlong) > radiusKM {
				continue
			}
			refs = append(refs, fdb.NodeRef{FlightId: f.Id, Node: node})
			if limit > 0 && len(refs) >= limit {
				return refs, nil
			}
		}
	}

	return refs, nil
}

// }}}
// {{{ db.Trajectory

func (db *FormationDB)Trajectory(ctx context.Context, flightId string) (fdb.FlightPath, error) {
	dbc := db.withCtx(ctx)
	f, err := dbc.LookupFirst(NewFlightQuery().ByFlightId(flightId))
	if err != nil {
		return nil, fmt.Errorf("Trajectory: %v", err)
	}
	if f == nil {
		return nil, fmt.Errorf("Trajectory: no flight %q", flightId)
	}
	return f.EffectivePath(), nil
}

// }}}

// {{{ db.lookupByTimeRange

func (db *FormationDB)lookupByTimeRange(ctx context.Context, s,e time.Time) ([]*fdb.Flight, error) {
	dbc := db.withCtx(ctx)
	flights, err := dbc.LookupAll(QueryForTimeRange([]string{}, s, e))
	if err != nil {
		return nil, err
	}

	// Datastore result order isn't stable; flight-id order is.
	sort.Slice(flights, func(i,j int) bool { return flights[i].Id < flights[j].Id })
	return flights, nil
}

// }}}
// {{{ db.withCtx

// The lookup helpers read the db's own context; swap it for the caller's.
func (db *FormationDB)withCtx(ctx context.Context) *FormationDB {
	dbc := FormationDB{ctx: ctx, StartTime: db.StartTime, Backend: db.Backend}
	return &dbc
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
