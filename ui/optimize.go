package ui

// Stateless optimization endpoints: one takes pre-classified pairs,
// the other takes raw schedules and classifies them itself. Neither
// touches the datastore.

import(
	"encoding/json"
	"fmt"
	"net/http"

	fdb "github.com/skypies/formation"
)

// {{{ OptimizePathsHandler

// OptimizePathsHandler implements POST /api/optimize-paths. The body is
// a JSON array of pairs; the response is an array of optimized paths,
// one per distinct flight named in the pairs, best savings first.
func OptimizePathsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		WriteError(w, http.StatusMethodNotAllowed, fmt.Errorf("POST only"))
		return
	}

	pairsJSON := []PairJSON{}
	if err := json.NewDecoder(r.Body).Decode(&pairsJSON); err != nil {
		WriteError(w, http.StatusBadRequest, fmt.Errorf("bad pairs payload: %v", err))
		return
	}
	if len(pairsJSON) == 0 {
		WriteError(w, http.StatusBadRequest, fmt.Errorf("no flight pairs provided"))
		return
	}

	pairs := make([]fdb.CompatiblePair, 0, len(pairsJSON))
	for _,pj := range pairsJSON {
		cp,err := pj.ToPair()
		if err != nil {
			WriteError(w, http.StatusBadRequest, err)
			return
		}
		pairs = append(pairs, cp)
	}

	flights := fdb.FlightsFromPairs(pairs)
	results,err := fdb.OptimizeFlights(r.Context(), flights, pairs, 0)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err)
		return
	}

	WriteEncodedData(w, pathsToJSON(results, numbersById(flights)))
}

// }}}
// {{{ OptimizeFromRawFlightsHandler

type rawOptimizationResponse struct {
	TotalFlights      int                 `json:"total_flights"`
	SkippedFlights    int                 `json:"skipped_flights"`
	TotalPairsFound   int                 `json:"total_pairs_found"`
	SimilarPairs      int                 `json:"similar_pairs"`
	IntersectingPairs int                 `json:"intersecting_pairs"`
	FlightsOptimized  int                 `json:"flights_optimized"`
	OptimizedPaths    []OptimizedPathJSON `json:"optimized_paths"`
}

// OptimizeFromRawFlightsHandler implements POST
// /api/optimize-from-raw-flights, the one-shot pipeline: classify pairs
// from raw schedules, derive corridors, optimize every paired flight.
func OptimizeFromRawFlightsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		WriteError(w, http.StatusMethodNotAllowed, fmt.Errorf("POST only"))
		return
	}

	raws := []RawFlightJSON{}
	if err := json.NewDecoder(r.Body).Decode(&raws); err != nil {
		WriteError(w, http.StatusBadRequest, fmt.Errorf("bad flight payload: %v", err))
		return
	}
	if len(raws) == 0 {
		WriteError(w, http.StatusBadRequest, fmt.Errorf("no flight data provided"))
		return
	}

	flights := make([]*fdb.Flight, 0, len(raws))
	for _,rj := range raws {
		f,err := rj.ToFlight()
		if err != nil {
			WriteError(w, http.StatusBadRequest, err)
			return
		}
		flights = append(flights, f)
	}

	pairs,skipped := fdb.FindPairs(flights, fdb.DefaultPairOptions())
	if len(pairs) == 0 {
		WriteError(w, http.StatusNotFound, fmt.Errorf("no valid flight pairs found"))
		return
	}

	similar,intersecting := 0,0
	for _,cp := range pairs {
		if cp.Kind == fdb.KindSimilar {
			similar++
		} else {
			intersecting++
		}
	}

	paired := fdb.FlightsFromPairs(pairs)
	results,err := fdb.OptimizeFlights(r.Context(), paired, pairs, 0)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err)
		return
	}

	resp := rawOptimizationResponse{
		TotalFlights:      len(flights),
		SkippedFlights:    skipped,
		TotalPairsFound:   len(pairs),
		SimilarPairs:      similar,
		IntersectingPairs: intersecting,
		FlightsOptimized:  len(results),
		OptimizedPaths:    pathsToJSON(results, numbersById(flights)),
	}
	WriteEncodedData(w, resp)
}

// }}}
// {{{ pathsToJSON, numbersById

func pathsToJSON(results []fdb.OptimizedPath, numbers map[string]string) []OptimizedPathJSON {
	out := make([]OptimizedPathJSON, 0, len(results))
	for _,op := range results {
		out = append(out, optimizedPathToJSON(op, numbers))
	}
	return out
}

func numbersById(flights []*fdb.Flight) map[string]string {
	out := map[string]string{}
	for _,f := range flights {
		out[f.Id] = f.Number
	}
	return out
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
