package formation

import(
	"math"
	"testing"

	"github.com/skypies/geo"
)

var(
	KSFO = geo.Latlong{Lat: 37.6213, Long: -122.3790}
	KLAX = geo.Latlong{Lat: 33.9425, Long: -118.4081}
	KJFK = geo.Latlong{Lat: 40.6413, Long: -73.7781}
	KBOS = geo.Latlong{Lat: 42.3656, Long: -71.0096}
	KORD = geo.Latlong{Lat: 41.9742, Long: -87.9073}
)

func TestDistanceKM(t *testing.T) {
	tests := []struct {
		p1, p2   geo.Latlong
		expected float64
		slop     float64
	}{
		{KSFO, KSFO, 0.0, 0.0001},
		{KSFO, KLAX, 543.6, 1.0},
		// One degree of longitude along the equator
		{geo.Latlong{0, 0}, geo.Latlong{0, 1}, 111.195, 0.01},
	}

	for i, test := range tests {
		actual := DistanceKM(test.p1, test.p2)
		if math.Abs(actual-test.expected) > test.slop {
			t.Errorf("[%d] wanted %.3fKM, got %.3fKM", i, test.expected, actual)
		}

		// Symmetry should hold to within floating noise
		reverse := DistanceKM(test.p2, test.p1)
		if math.Abs(actual-reverse) > 1e-9 {
			t.Errorf("[%d] asymmetric: %.9f vs %.9f", i, actual, reverse)
		}
	}
}

func TestInitialBearing(t *testing.T) {
	tests := []struct {
		p1, p2   geo.Latlong
		expected float64
	}{
		{geo.Latlong{0, 0}, geo.Latlong{10, 0}, 0.0},
		{geo.Latlong{0, 0}, geo.Latlong{0, 10}, 90.0},
		{geo.Latlong{0, 0}, geo.Latlong{-10, 0}, 180.0},
		{geo.Latlong{0, 0}, geo.Latlong{0, -10}, 270.0},
	}

	for i, test := range tests {
		actual := InitialBearing(test.p1, test.p2)
		if math.Abs(actual-test.expected) > 0.0001 {
			t.Errorf("[%d] wanted %.4f deg, got %.4f deg", i, test.expected, actual)
		}
	}

	// Range invariant over a spread of point pairs
	points := []geo.Latlong{KSFO, KLAX, KJFK, KBOS, KORD, {0, 0}, {-33.9, 151.2}}
	for _, from := range points {
		for _, to := range points {
			if from.Equal(to) {
				continue
			}
			b := InitialBearing(from, to)
			if b < 0 || b >= 360 {
				t.Errorf("bearing %v->%v out of range: %f", from, to, b)
			}
		}
	}
}

func TestBisectBearings(t *testing.T) {
	tests := []struct {
		b1, b2, expected float64
	}{
		{0, 90, 45},
		{90, 180, 135},
		{350, 10, 0},     // wraps through north
		{10, 350, 180},   // the long way round, per the (b2-b1) convention
		{90, 0, 225},
		{120, 120, 120},
	}

	for i, test := range tests {
		actual := BisectBearings(test.b1, test.b2)
		if math.Abs(actual-test.expected) > 0.0001 {
			t.Errorf("[%d] bisect(%.0f,%.0f): wanted %.4f, got %.4f",
				i, test.b1, test.b2, test.expected, actual)
		}
	}
}

func TestBearingDiff(t *testing.T) {
	tests := []struct {
		b1, b2, expected float64
	}{
		{0, 0, 0},
		{0, 45, 45},
		{45, 0, 45},
		{350, 10, 20},
		{10, 350, 20},
		{0, 180, 180},
	}

	for i, test := range tests {
		if actual := BearingDiff(test.b1, test.b2); math.Abs(actual-test.expected) > 0.0001 {
			t.Errorf("[%d] diff(%.0f,%.0f): wanted %.4f, got %.4f",
				i, test.b1, test.b2, test.expected, actual)
		}
	}
}

func TestDestinationPoint(t *testing.T) {
	// Due east along the equator, one degree's worth of kilometers
	p := DestinationPoint(geo.Latlong{0, 0}, 90.0, 111.195)
	if math.Abs(p.Lat) > 0.0001 || math.Abs(p.Long-1.0) > 0.001 {
		t.Errorf("equator hop: got %v", p)
	}

	// Projecting forward and measuring back should roundtrip the distance
	tests := []struct {
		origin  geo.Latlong
		bearing float64
		distKM  float64
	}{
		{KSFO, 135.0, 400.0},
		{KSFO, 70.0, 50.0},
		{KJFK, 250.0, 1000.0},
		{geo.Latlong{-33.9, 151.2}, 10.0, 320.0},
	}
	for i, test := range tests {
		dest := DestinationPoint(test.origin, test.bearing, test.distKM)
		d := DistanceKM(test.origin, dest)
		if math.Abs(d-test.distKM) > 0.1 {
			t.Errorf("[%d] projected %.1fKM but measured %.3fKM", i, test.distKM, d)
		}
	}
}

func TestChordIntersection(t *testing.T) {
	tests := []struct {
		p1, p2, p3, p4 geo.Latlong
		ok             bool
		t1, t2         float64
	}{
		// A south-north chord crossed by a west-east chord, dead center
		{geo.Latlong{-1, 0}, geo.Latlong{1, 0}, geo.Latlong{0, -1}, geo.Latlong{0, 1},
			true, 0.5, 0.5},
		// Parallel verticals never cross
		{geo.Latlong{-1, 0}, geo.Latlong{1, 0}, geo.Latlong{-1, 1}, geo.Latlong{1, 1},
			false, 0, 0},
		// Lines cross, but beyond the end of the first segment
		{geo.Latlong{0, 0}, geo.Latlong{1, 0}, geo.Latlong{2, -1}, geo.Latlong{2, 1},
			false, 0, 0},
		// Asymmetric crossing: t1 at 25%
		{geo.Latlong{0, 0}, geo.Latlong{4, 0}, geo.Latlong{1, -1}, geo.Latlong{1, 1},
			true, 0.25, 0.5},
	}

	for i, test := range tests {
		x, ok := ChordIntersection(test.p1, test.p2, test.p3, test.p4)
		if ok != test.ok {
			t.Errorf("[%d] wanted ok=%v, got %v", i, test.ok, ok)
			continue
		}
		if !ok {
			continue
		}
		if math.Abs(x.T1-test.t1) > 0.0001 || math.Abs(x.T2-test.t2) > 0.0001 {
			t.Errorf("[%d] wanted t1,t2=%.3f,%.3f; got %.3f,%.3f",
				i, test.t1, test.t2, x.T1, x.T2)
		}
	}
}

func TestCourseAngle(t *testing.T) {
	o := geo.Latlong{0, 0}

	tests := []struct {
		arr1, arr2 geo.Latlong
		ok         bool
		angle      float64
	}{
		{geo.Latlong{0, 10}, geo.Latlong{0, 10}, true, 0},     // identical courses
		{geo.Latlong{0, 10}, geo.Latlong{10, 10}, true, 45},   // 45 degrees apart
		{geo.Latlong{0, 10}, geo.Latlong{10, 0}, true, 90},    // perpendicular (dot==0)
		{geo.Latlong{0, 10}, geo.Latlong{0, -10}, false, 0},   // opposing courses
		{geo.Latlong{0, 0}, geo.Latlong{0, 10}, false, 0},     // degenerate first vector
	}

	for i, test := range tests {
		angle, ok := CourseAngle(o, test.arr1, o, test.arr2)
		if ok != test.ok {
			t.Errorf("[%d] wanted ok=%v, got %v", i, test.ok, ok)
			continue
		}
		if ok && math.Abs(angle-test.angle) > 0.0001 {
			t.Errorf("[%d] wanted %.4f deg, got %.4f deg", i, test.angle, angle)
		}
	}
}
