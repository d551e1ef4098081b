package formation

import(
	"fmt"
	"time"

	"github.com/skypies/geo"
)

type FlightSnapshot struct {
	Flight
	Sample             TrajectorySample  // Where the aircraft is at this point in time

	// If we have a reference point, figure out where this flight is in relation to it
	Reference          geo.Latlong
	DistToReferenceKM  float64  // 2D distance, between latlongs
	BearingToReference float64  // [0,360)
}

func (fs FlightSnapshot)String() string {
	return fmt.Sprintf("%s %s @ (%8.4f,%9.4f)", fs.IdentString(), fs.RouteLabel(),
		fs.Sample.Pos.Lat, fs.Sample.Pos.Long)
}

// SnapshotAt places the flight at time t along its effective path,
// interpolating between nodes. Returns false when t falls outside the
// path's time range.
func (f *Flight)SnapshotAt(t time.Time) (FlightSnapshot, bool) {
	fp := f.EffectivePath()
	i := fp.IndexAtTime(t)
	if i < 0 {
		return FlightSnapshot{}, false
	}

	return FlightSnapshot{
		Flight: *f,
		Sample: interpolatedSampleAt(fp, i, t),
	}, true
}

func (fs *FlightSnapshot)LocalizeTo(refpt geo.Latlong) {
	fs.Reference = refpt
	fs.DistToReferenceKM = DistanceKM(fs.Sample.Pos, refpt)
	fs.BearingToReference = InitialBearing(fs.Sample.Pos, refpt)
}

type FlightSnapshotsByDist []FlightSnapshot
func (s FlightSnapshotsByDist) Len() int      { return len(s) }
func (s FlightSnapshotsByDist) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s FlightSnapshotsByDist) Less(i, j int) bool {
	return s[i].DistToReferenceKM < s[j].DistToReferenceKM
}

func DebugFlightSnapshotList(snaps []FlightSnapshot) string {
	debug := "Dist    Brng   Hdng   Flight       Orig  Dest  Latlong\n"
	for _,fs := range snaps {
		hdg := "  -"
		if fs.Sample.HasHeading {
			hdg = fmt.Sprintf("%3.0f", fs.Sample.Heading)
		}
		debug += fmt.Sprintf(
			"%5.1fKM %3.0fdeg %sdeg %-12.12s %-5.5s %-5.5s (% 8.4f,%9.4f)\n",
			fs.DistToReferenceKM, fs.BearingToReference, hdg,
			fs.IdentString(), fs.Origin.Airport, fs.Destination.Airport,
			fs.Sample.Pos.Lat, fs.Sample.Pos.Long)
	}
	return debug
}
