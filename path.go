package formation

import(
	"fmt"
	"sort"
	"time"

	"github.com/skypies/geo"
)

// {{{ PathNode{}

// A PathNode is one sampled position along a flight's trajectory.
type PathNode struct {
	geo.Latlong
	TimestampUTC time.Time
}

func (pn PathNode)String() string {
	return fmt.Sprintf("[%s] %s", pn.TimestampUTC.Format("15:04:05"), pn.Latlong)
}

// InterpolateTo linearly mixes this node with another; ratio=0 yields the
// receiver, ratio=1 yields the other node.
func (pn PathNode)InterpolateTo(other PathNode, ratio float64) PathNode {
	return PathNode{
		Latlong: geo.Latlong{
			Lat:  interpolateFloat64(pn.Lat, other.Lat, ratio),
			Long: interpolateFloat64(pn.Long, other.Long, ratio),
		},
		TimestampUTC: interpolateTime(pn.TimestampUTC, other.TimestampUTC, ratio),
	}
}

func interpolateFloat64(from, to, ratio float64) float64 {
	return from + (to-from)*ratio
}

func interpolateTime(from, to time.Time, ratio float64) time.Time {
	return from.Add(time.Duration(float64(to.Sub(from)) * ratio))
}

// }}}
// {{{ TrajectorySample{}

// A TrajectorySample is a PathNode plus the course the aircraft was flying
// at that node, when one can be derived. It is what the feasibility scorer
// consumes.
type TrajectorySample struct {
	Pos          geo.Latlong
	TimeUTC      time.Time
	Heading      float64
	HasHeading   bool
}

// }}}

// {{{ FlightPath{}

// A FlightPath is a time-ordered sequence of sampled positions.
type FlightPath []PathNode

// This happens a lot with batch data; sort into shape before use.
type byTimestampAscending FlightPath
func (a byTimestampAscending) Len() int      { return len(a) }
func (a byTimestampAscending) Swap(i, j int) { a[i], a[j] = a[j], a[i] }
func (a byTimestampAscending) Less(i, j int) bool {
	return a[i].TimestampUTC.Before(a[j].TimestampUTC)
}

func (fp FlightPath)Sort() {
	sort.Sort(byTimestampAscending(fp))
}

func (fp FlightPath)Start() time.Time {
	if len(fp) == 0 { return time.Time{} }
	return fp[0].TimestampUTC
}
func (fp FlightPath)End() time.Time {
	if len(fp) == 0 { return time.Time{} }
	return fp[len(fp)-1].TimestampUTC
}
func (fp FlightPath)Duration() time.Duration {
	return fp.End().Sub(fp.Start())
}

func (fp FlightPath)String() string {
	str := fmt.Sprintf("Path: %d nodes", len(fp))
	if len(fp) > 0 {
		str += fmt.Sprintf(", %s +%s", fp.Start().Format("15:04:05 MST"),
			fp.Duration())
	}
	return str
}

// }}}

// {{{ fp.TotalKM

// TotalKM is the realized geometric length: the sum of the great-circle
// lengths of consecutive segments.
func (fp FlightPath)TotalKM() float64 {
	total := 0.0
	for i := 1; i < len(fp); i++ {
		total += DistanceKM(fp[i-1].Latlong, fp[i].Latlong)
	}
	return total
}

// }}}
// {{{ fp.IndexAtTime

// IndexAtTime returns the index of the last node at-or-before t, or -1 when
// t falls outside the path's time span.
func (fp FlightPath)IndexAtTime(t time.Time) int {
	if len(fp) == 0 || t.Before(fp[0].TimestampUTC) || t.After(fp[len(fp)-1].TimestampUTC) {
		return -1
	}
	for i := len(fp) - 1; i >= 0; i-- {
		if !fp[i].TimestampUTC.After(t) {
			return i
		}
	}
	return -1
}

// }}}
// {{{ fp.ClosestTo

// ClosestTo returns the index of the node nearest to pos, or -1 on an empty
// path.
func (fp FlightPath)ClosestTo(pos geo.Latlong) int {
	iClosest, dClosest := -1, 0.0
	for i, node := range fp {
		if d := DistanceKM(node.Latlong, pos); iClosest < 0 || d < dClosest {
			iClosest, dClosest = i, d
		}
	}
	return iClosest
}

// }}}
// {{{ fp.SampleAt

// SampleAt derives the scorer's view of node i: position, time, and a course
// heading taken towards the next node (or from the previous one, at the end
// of the path). A one-node path has no derivable heading.
func (fp FlightPath)SampleAt(i int) TrajectorySample {
	s := TrajectorySample{Pos: fp[i].Latlong, TimeUTC: fp[i].TimestampUTC}

	if i+1 < len(fp) {
		s.Heading, s.HasHeading = InitialBearing(fp[i].Latlong, fp[i+1].Latlong), true
	} else if i > 0 {
		s.Heading, s.HasHeading = InitialBearing(fp[i-1].Latlong, fp[i].Latlong), true
	}

	return s
}

// }}}

// {{{ SynthesizePath

// SynthesizePath generates a trajectory for a flight we only know as
// endpoints: straight-line interpolation in lon/lat, one node per step. The
// node count is floor(duration/step)+1; the last node sits at the arrival
// position, though its timestamp can undershoot the scheduled arrival when
// the duration doesn't divide evenly.
func SynthesizePath(from, to geo.Latlong, departs time.Time, duration, step time.Duration) FlightPath {
	steps := int(duration / step)

	path := FlightPath{}
	for i := 0; i <= steps; i++ {
		frac := 0.0
		if steps > 0 {
			frac = float64(i) / float64(steps)
		}
		path = append(path, PathNode{
			Latlong: geo.Latlong{
				Lat:  interpolateFloat64(from.Lat, to.Lat, frac),
				Long: interpolateFloat64(from.Long, to.Long, frac),
			},
			TimestampUTC: departs.Add(time.Duration(i) * step),
		})
	}

	return path
}

// EffectivePath returns the flight's sampled trajectory, synthesizing one
// from the schedule when the feed didn't supply nodes.
func (f Flight)EffectivePath() FlightPath {
	if len(f.Path) > 0 {
		return f.Path
	}
	return SynthesizePath(f.Origin.Pos, f.Destination.Pos, f.Origin.TimeUTC,
		f.Duration(), KPathStepDuration)
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
