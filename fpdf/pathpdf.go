package fpdf

import(
	"fmt"

	"github.com/jung-kurt/gofpdf"

	fdb "github.com/skypies/formation"
)

var (
	BlackRGB = []int{0, 0, 0}
	GreyRGB  = []int{0x90, 0x90, 0x90}
	RedRGB   = []int{0xff, 0, 0}
	BlueRGB  = []int{0, 0, 0xff}
	GreenRGB = []int{0, 0x99, 0}
)

// A PathPdf renders one optimized flight onto a single-page plan view:
// the direct route, the corridors open to it, and the path it ended up
// flying. Longitude runs along X, latitude up Y.
type PathPdf struct {
	Grid          *BaseGrid
	*gofpdf.Fpdf  // embedded

	LineThickness float64
	Caption       string
}

// {{{ pp.Init

func (g *PathPdf)Init(op fdb.OptimizedPath, corridors []fdb.BoostCorridor) {
	g.Fpdf = gofpdf.New("L", "mm", "Letter", "") // landscape suits plan views
	g.AddPage()
	g.SetFont("Arial", "", 10)

	if g.LineThickness == 0.0 { g.LineThickness = 0.3 }

	minLong,maxLong,minLat,maxLat := pathBounds(op, corridors)

	g.Grid = &BaseGrid{
		Fpdf:    g.Fpdf,
		OffsetU: 25,
		OffsetV: 35,
		W:       220,
		H:       140,
		MinX:    minLong,
		MaxX:    maxLong,
		MinY:    minLat,
		MaxY:    maxLat,
		XGridlineEvery: tickStep(maxLong - minLong),
		YGridlineEvery: tickStep(maxLat - minLat),
		XTickFmt: "%.1f",
		YTickFmt: "%.1f",
		Clip:     true, // set to false for debugging datasets
	}
}

// }}}
// {{{ pathBounds, tickStep

// pathBounds finds the lat/long box covering the flight and its
// corridors, padded a little so nothing sits on the frame.
func pathBounds(op fdb.OptimizedPath, corridors []fdb.BoostCorridor) (minLong,maxLong,minLat,maxLat float64) {
	minLong, minLat = 180.0, 90.0
	maxLong, maxLat = -180.0, -90.0

	grow := func(lat,long float64) {
		if lat  < minLat  { minLat = lat }
		if lat  > maxLat  { maxLat = lat }
		if long < minLong { minLong = long }
		if long > maxLong { maxLong = long }
	}

	for _,wp := range op.Waypoints {
		grow(wp.Pos.Lat, wp.Pos.Long)
	}
	for _,bc := range corridors {
		end := bc.End()
		grow(bc.Start.Lat, bc.Start.Long)
		grow(end.Lat, end.Long)
	}

	padLong := (maxLong - minLong) * 0.1
	padLat  := (maxLat - minLat) * 0.1
	if padLong < 0.2 { padLong = 0.2 }
	if padLat  < 0.2 { padLat = 0.2 }

	return minLong-padLong, maxLong+padLong, minLat-padLat, maxLat+padLat
}

func tickStep(span float64) float64 {
	if span <= 0 { return 1.0 }
	return span / 4.0
}

// }}}

// {{{ pp.DrawFrame

func (g PathPdf)DrawFrame() {
	g.Grid.DrawGridlines()
}

// }}}
// {{{ pp.DrawDirectRoute

// The route as scheduled: a dashed grey line, departure to arrival.
func (g PathPdf)DrawDirectRoute(op fdb.OptimizedPath) {
	if len(op.Waypoints) < 2 { return }

	dep := op.Waypoints[0].Pos
	arr := op.Waypoints[len(op.Waypoints)-1].Pos

	g.Grid.LineColor = GreyRGB
	g.SetLineWidth(g.LineThickness)
	g.SetDashPattern([]float64{2,2}, 0.0)
	g.Grid.Line(dep.Long, dep.Lat, arr.Long, arr.Lat)
	g.SetDashPattern([]float64{}, 0.0)
}

// }}}
// {{{ pp.DrawCorridors

func (g PathPdf)DrawCorridors(corridors []fdb.BoostCorridor) {
	g.Grid.LineColor = BlueRGB
	g.SetLineWidth(1.1)

	for _,bc := range corridors {
		end := bc.End()
		g.Grid.Line(bc.Start.Long, bc.Start.Lat, end.Long, end.Lat)
	}

	g.SetLineWidth(g.LineThickness)
}

// }}}
// {{{ pp.DrawFlownPath

// The optimized path, waypoint to waypoint, with the boost entry and
// exit points circled.
func (g PathPdf)DrawFlownPath(op fdb.OptimizedPath) {
	g.Grid.LineColor = RedRGB
	g.SetLineWidth(0.5)

	for i := 1; i < len(op.Waypoints); i++ {
		a := op.Waypoints[i-1].Pos
		b := op.Waypoints[i].Pos
		g.Grid.Line(a.Long, a.Lat, b.Long, b.Lat)
	}

	g.SetDrawColor(0, 0x99, 0)
	for _,wp := range op.Waypoints {
		if wp.Kind != fdb.WaypointBoostEntry && wp.Kind != fdb.WaypointBoostExit {
			continue
		}
		u,v,oob := g.Grid.UV(wp.Pos.Long, wp.Pos.Lat)
		if oob { continue }
		g.Circle(u, v, 1.2, "D")
	}

	g.SetLineWidth(g.LineThickness)
}

// }}}
// {{{ pp.DrawCaption

func (g PathPdf)DrawCaption(op fdb.OptimizedPath) {
	title := fmt.Sprintf("%s: %s-%s. Direct %.0fKM; flown %.0fKM via %d boosts; saves %.1f min.\n",
		op.FlightId, op.DepartureAirport, op.ArrivalAirport,
		op.DirectKM, op.RealizedKM, op.NumBoosts(), op.TimeSavingsMin)
	title += g.Caption

	g.SetTextColor(0x50, 0x70, 0xc0)
	g.Fpdf.MoveTo(10, 10)
	g.MultiCell(0, 4, title, "", "", false)
	g.DrawPath("D")
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
