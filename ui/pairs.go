package ui

import(
	"net/http"

	"github.com/skypies/util/widget"

	fdb "github.com/skypies/formation"
	"github.com/skypies/formation/fstore"
)

// {{{ PairsHandler

// PairsHandler implements GET /api/pairs: look up the stored flights in
// a date range (plus optional tags), classify every pairing, and return
// the compatible ones.
//   ?date=range&range-from=2026/01/01&range-to=2026/01/02
//   &tags=scheduled             (comma separated)
//   &maxsimilarangle=30         (optional threshold overrides)
//   &maxintersectangle=8
func PairsHandler(db fstore.FormationDB, w http.ResponseWriter, r *http.Request) {
	s,e,err := widget.FormValueDateRange(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err)
		return
	}
	tags := widget.FormValueCommaSepStrings(r, "tags")

	flights,err := db.LookupAll(fstore.QueryForTimeRange(tags, s, e))
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err)
		return
	}

	opt := fdb.DefaultPairOptions()
	if v := widget.FormValueFloat64EatErrs(r, "maxsimilarangle"); v > 0 {
		opt.MaxSimilarAngleDeg = v
	}
	if v := widget.FormValueFloat64EatErrs(r, "maxintersectangle"); v > 0 {
		opt.MaxIntersectAngleDeg = v
	}

	pairs,skipped := fdb.FindPairs(flights, opt)

	similar,intersecting := 0,0
	pairsJSON := make([]PairJSON, 0, len(pairs))
	for _,cp := range pairs {
		if cp.Kind == fdb.KindSimilar {
			similar++
		} else {
			intersecting++
		}
		pairsJSON = append(pairsJSON, pairToJSON(cp))
	}

	resp := struct {
		TotalFlights      int        `json:"total_flights"`
		SkippedFlights    int        `json:"skipped_flights"`
		TotalPairsFound   int        `json:"total_pairs_found"`
		SimilarPairs      int        `json:"similar_pairs"`
		IntersectingPairs int        `json:"intersecting_pairs"`
		Pairs             []PairJSON `json:"pairs"`
	}{
		TotalFlights:      len(flights),
		SkippedFlights:    skipped,
		TotalPairsFound:   len(pairs),
		SimilarPairs:      similar,
		IntersectingPairs: intersecting,
		Pairs:             pairsJSON,
	}

	WriteEncodedData(w, resp)
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
