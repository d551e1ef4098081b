package ui

import(
	"fmt"
	"net/http"

	"github.com/skypies/util/widget"

	fdb "github.com/skypies/formation"
	"github.com/skypies/formation/fpdf"
	"github.com/skypies/formation/fstore"
)

// {{{ PathPDFHandler

// PathPDFHandler implements GET /api/path.pdf: a one-page plan view of
// a flight's optimized path, with the corridors it had to work with.
//   ?date=range&range-from=2026/01/01&range-to=2026/01/02
//   &flight=UA100
//   &tags=scheduled
func PathPDFHandler(db fstore.FormationDB, w http.ResponseWriter, r *http.Request) {
	s,e,err := widget.FormValueDateRange(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err)
		return
	}
	flightId := r.FormValue("flight")
	if flightId == "" {
		WriteError(w, http.StatusBadRequest, fmt.Errorf("need url arg 'flight'"))
		return
	}
	tags := widget.FormValueCommaSepStrings(r, "tags")

	flights,err := db.LookupAll(fstore.QueryForTimeRange(tags, s, e))
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err)
		return
	}

	var flight *fdb.Flight
	for _,f := range flights {
		if f.Id == flightId {
			flight = f
			break
		}
	}
	if flight == nil {
		WriteError(w, http.StatusNotFound, fmt.Errorf("flight %q not found in range", flightId))
		return
	}

	pairs,_ := fdb.FindPairs(flights, fdb.DefaultPairOptions())
	corridors := fdb.TopCorridorsForFlight(fdb.CorridorsFromPairs(pairs), flight.Id,
		fdb.KMaxCorridorsPerFlight)
	op := fdb.OptimizeFlightPath(flight, corridors)

	pp := fpdf.PathPdf{
		Caption: fmt.Sprintf("%d flights in range, %d pairs\n", len(flights), len(pairs)),
	}
	pp.Init(op, corridors)
	pp.DrawFrame()
	pp.DrawDirectRoute(op)
	pp.DrawCorridors(corridors)
	pp.DrawFlownPath(op)
	pp.DrawCaption(op)

	w.Header().Set("Content-Type", "application/pdf")
	if err := pp.Output(w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
