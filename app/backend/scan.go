package main

// Periodic sweep for new formation pairings. The set of pairings we've
// already seen persists as a singleton, so overlapping sweeps (cron runs
// every hour over a multi-hour window) only report each pairing once.

import(
	"fmt"
	"net/http"
	"time"

	"github.com/skypies/util/gcp/ds"
	sprovider "github.com/skypies/util/gcp/singleton"
	"github.com/skypies/util/singleton"
	"github.com/skypies/util/widget"

	fdb "github.com/skypies/formation"
	"github.com/skypies/formation/fstore"
)

// {{{ scanPairsHandler

// /backend/scan-pairs                        (scan the last six hours)
// /backend/scan-pairs?date=range&range-from=2026/01/01&range-to=2026/01/02
//  &tags=scheduled
//  &ageout=48   (hours to remember a pairing for; default 24)
func scanPairsHandler(db fstore.FormationDB, w http.ResponseWriter, r *http.Request) {
	ctx := db.Ctx()
	tStart := time.Now()

	s,e,err := widget.FormValueDateRange(r)
	if err != nil {
		e = time.Now()
		s = e.Add(-6 * time.Hour)
	}
	tags := widget.FormValueCommaSepStrings(r, "tags")

	ageout := 24 * time.Hour
	if hours := widget.FormValueFloat64EatErrs(r, "ageout"); hours > 0 {
		ageout = time.Duration(hours * float64(time.Hour))
	}

	flights,err := db.LookupAll(fstore.QueryForTimeRange(tags, s, e))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	pairs,nSkipped := fdb.FindPairs(flights, fdb.DefaultPairOptions())

	sp := sprovider.NewProvider(ds.GetProviderOrPanic(ctx))

	ps := fdb.PairSet{}
	if err := sp.ReadSingleton(ctx, fdb.KSingletonPairSetKey, singleton.GzipReader, &ps); err != nil {
		// First run, or a mangled singleton; start over with an empty set.
		db.Warningf("pairset load: %v (starting afresh)", err)
		ps = fdb.PairSet{}
	}

	ps.AgeOut(ageout)
	newPairs := ps.FindNew(pairs)

	if err := sp.WriteSingleton(ctx, fdb.KSingletonPairSetKey, singleton.GzipWriter, &ps); err != nil {
		http.Error(w, "pairset save: "+err.Error(), http.StatusInternalServerError)
		return
	}

	str := ""
	for _,cp := range newPairs {
		str += " * " + cp.String() + "\n"
	}

	db.Infof("scan-pairs [%s..%s]: %d flights, %d pairs, %d new",
		s.Format("01/02 15:04"), e.Format("01/02 15:04"), len(flights), len(pairs), len(newPairs))

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(fmt.Sprintf("OK!\n%d flights in window (%d skipped), %d pairs, %d new, "+
		"%d remembered - took %s\n--\n%s",
		len(flights), nSkipped, len(pairs), len(newPairs), len(ps), time.Since(tStart), str)))
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
