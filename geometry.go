package formation

// Great-circle and planar-chord primitives used throughout the engine. These
// are deliberately self-contained; the skypies/geo Latlong is used as the
// coordinate type, but the formulae here are the ones the pairing and
// corridor math are defined against.

import(
	"math"

	"github.com/skypies/geo"
)

const(
	kEarthRadiusKM = 6371.0

	// Chords whose planar denominator falls below this are treated as
	// parallel, and yield no intersection.
	kParallelDenominator = 1e-10
)

// {{{ DistanceKM

// DistanceKM returns the great-circle (haversine) distance between two
// points, in kilometers.
func DistanceKM(p1, p2 geo.Latlong) float64 {
	lat1, lon1 := rad(p1.Lat), rad(p1.Long)
	lat2, lon2 := rad(p2.Lat), rad(p2.Long)

	dLat := lat2 - lat1
	dLon := lon2 - lon1

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return kEarthRadiusKM * c
}

// }}}
// {{{ InitialBearing

// InitialBearing returns the initial course from p1 towards p2, as a compass
// bearing in [0,360).
func InitialBearing(p1, p2 geo.Latlong) float64 {
	lat1, lat2 := rad(p1.Lat), rad(p2.Lat)
	dLon := rad(p2.Long - p1.Long)

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	return math.Mod(deg(math.Atan2(y, x))+360.0, 360.0)
}

// }}}
// {{{ BisectBearings

// BisectBearings returns the bearing halfway between b1 and b2, taking the
// shorter circular arc between them.
func BisectBearings(b1, b2 float64) float64 {
	return math.Mod(math.Mod(b2-b1+360.0, 360.0)/2.0+b1, 360.0)
}

// }}}
// {{{ BearingDiff

// BearingDiff returns the absolute circular difference between two bearings,
// in [0,180].
func BearingDiff(b1, b2 float64) float64 {
	return math.Abs(math.Mod(b2-b1+540.0, 360.0) - 180.0)
}

// }}}
// {{{ DestinationPoint

// DestinationPoint projects forward from origin along a bearing for distKM
// kilometers, using the spherical law of cosines.
func DestinationPoint(origin geo.Latlong, bearingDeg, distKM float64) geo.Latlong {
	lat1, lon1 := rad(origin.Lat), rad(origin.Long)
	brng := rad(bearingDeg)
	delta := distKM / kEarthRadiusKM

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(delta) +
		math.Cos(lat1)*math.Sin(delta)*math.Cos(brng))
	lon2 := lon1 + math.Atan2(math.Sin(brng)*math.Sin(delta)*math.Cos(lat1),
		math.Cos(delta)-math.Sin(lat1)*math.Sin(lat2))

	return geo.Latlong{Lat: deg(lat2), Long: deg(lon2)}
}

// }}}
// {{{ ChordIntersection

// An Intersection is where two chords cross. T1 is the interpolation
// parameter along the first chord (0 at its start, 1 at its end), T2
// likewise for the second.
type Intersection struct {
	geo.Latlong
	T1, T2 float64
}

// ChordIntersection intersects chord (p1,p2) with chord (p3,p4), treating
// lon/lat as planar Cartesian coordinates. This is an approximation that
// holds up for the short-to-medium chords the pair finder deals in; it is
// not a geodesic intersection. Returns false for (near-)parallel chords,
// or when the crossing falls outside either segment.
func ChordIntersection(p1, p2, p3, p4 geo.Latlong) (Intersection, bool) {
	x1, y1 := p1.Long, p1.Lat
	x2, y2 := p2.Long, p2.Lat
	x3, y3 := p3.Long, p3.Lat
	x4, y4 := p4.Long, p4.Lat

	denom := (x1-x2)*(y3-y4) - (y1-y2)*(x3-x4)
	if math.Abs(denom) < kParallelDenominator {
		return Intersection{}, false
	}

	t1 := ((x1-x3)*(y3-y4) - (y1-y3)*(x3-x4)) / denom
	t2 := -((x1-x2)*(y1-y3) - (y1-y2)*(x1-x3)) / denom

	if t1 < 0 || t1 > 1 || t2 < 0 || t2 > 1 {
		return Intersection{}, false
	}

	pos := geo.Latlong{
		Lat:  y1 + t1*(y2-y1),
		Long: x1 + t1*(x2-x1),
	}
	return Intersection{Latlong: pos, T1: t1, T2: t2}, true
}

// }}}
// {{{ CourseAngle

// CourseAngle returns the angle in degrees between the course vectors of two
// routes (arrival minus departure, in lon/lat space). Returns false when
// either vector is degenerate, or when the courses oppose (negative dot
// product) - such routes can never fly formation.
func CourseAngle(dep1, arr1, dep2, arr2 geo.Latlong) (float64, bool) {
	v1x, v1y := arr1.Long-dep1.Long, arr1.Lat-dep1.Lat
	v2x, v2y := arr2.Long-dep2.Long, arr2.Lat-dep2.Lat

	mag1 := math.Sqrt(v1x*v1x + v1y*v1y)
	mag2 := math.Sqrt(v2x*v2x + v2y*v2y)
	if mag1 == 0 || mag2 == 0 {
		return 0, false
	}

	dot := v1x*v2x + v1y*v2y
	if dot < 0 {
		return 0, false
	}

	cos := dot / (mag1 * mag2)
	if cos > 1.0 {
		cos = 1.0
	}

	return deg(math.Acos(cos)), true
}

// }}}

func rad(d float64) float64 { return d * math.Pi / 180.0 }
func deg(r float64) float64 { return r * 180.0 / math.Pi }

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
