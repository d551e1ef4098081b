package formation

import(
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/skypies/geo"
)

// {{{ FlightSet{}

// A FlightSet is an in-memory TrajectorySource over a fixed batch of
// flights, with trajectories synthesized on demand for flights that only
// carry endpoints. Build it up front, then query from as many goroutines
// as you like; Add is not safe once queries start.
type FlightSet struct {
	flights map[string]*Flight
	paths   map[string]FlightPath
}

func NewFlightSet(flights ...*Flight) *FlightSet {
	fs := &FlightSet{
		flights: map[string]*Flight{},
		paths:   map[string]FlightPath{},
	}
	for _, f := range flights {
		fs.Add(f)
	}
	return fs
}

func (fs *FlightSet)Add(f *Flight) {
	if f == nil || f.Id == "" {
		return
	}
	fs.flights[f.Id] = f
	fs.paths[f.Id] = f.EffectivePath()
}

func (fs *FlightSet)Len() int { return len(fs.flights) }

// Flights returns the set in id order.
func (fs *FlightSet)Flights() []*Flight {
	out := make([]*Flight, 0, len(fs.flights))
	for _, id := range fs.ids() {
		out = append(out, fs.flights[id])
	}
	return out
}

func (fs *FlightSet)ids() []string {
	ids := make([]string, 0, len(fs.flights))
	for id := range fs.flights {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// }}}

// {{{ fs.NodesInTimeRange

func (fs *FlightSet)NodesInTimeRange(ctx context.Context, s, e time.Time, limit int) ([]NodeRef, error) {
	out := []NodeRef{}
	for _, id := range fs.ids() {
		for _, node := range fs.paths[id] {
			if node.TimestampUTC.Before(s) || node.TimestampUTC.After(e) {
				continue
			}
			out = append(out, NodeRef{FlightId: id, Node: node})
			if limit > 0 && len(out) >= limit {
				return out, nil
			}
		}
	}
	return out, nil
}

// }}}
// {{{ fs.NearbyNodes

func (fs *FlightSet)NearbyNodes(ctx context.Context, pos geo.Latlong, radiusKM float64, s, e time.Time, limit int) ([]NodeRef, error) {
	out := []NodeRef{}
	for _, id := range fs.ids() {
		for _, node := range fs.paths[id] {
			if node.TimestampUTC.Before(s) || node.TimestampUTC.After(e) {
				continue
			}
			if DistanceKM(pos, node.Latlong) > radiusKM {
				continue
			}
			out = append(out, NodeRef{FlightId: id, Node: node})
			if limit > 0 && len(out) >= limit {
				return out, nil
			}
		}
	}
	return out, nil
}

// }}}
// {{{ fs.Trajectory

func (fs *FlightSet)Trajectory(ctx context.Context, flightId string) (FlightPath, error) {
	path, exists := fs.paths[flightId]
	if !exists {
		return nil, fmt.Errorf("Trajectory: no flight %q", flightId)
	}
	return path, nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
