package main

// Retention janitor. Archived days live on in GCS (archive.go); this
// trims the datastore rows themselves, either one flight by key or in
// bounded batches of old flights. Cron re-runs the batch form until it
// reports nothing left.

import(
	"fmt"
	"net/http"
	"time"

	"github.com/skypies/util/date"
	"github.com/skypies/util/widget"

	"github.com/skypies/formation/fstore"
)

// {{{ purgeFlightsHandler

// purgeFlightsHandler implements /backend/purge-flights.
//   ?key=<datastore key>     delete that one flight
//   ?days=90                 delete flights not updated in 90 days
//   &limit=500               batch size (max 500, the DeleteMulti cap)
func purgeFlightsHandler(db fstore.FormationDB, w http.ResponseWriter, r *http.Request) {
	tStart := time.Now()

	if keystr := r.FormValue("key"); keystr != "" {
		keyer,err := db.Backend.DecodeKey(keystr)
		if err != nil {
			http.Error(w, fmt.Sprintf("bad key: %v", err), http.StatusBadRequest)
			return
		}
		f,err := db.LookupKey(keyer)
		if err != nil {
			http.Error(w, fmt.Sprintf("lookup %s: %v", keystr, err), http.StatusNotFound)
			return
		}
		if err := db.DeleteByKey(keyer); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		db.Infof("purge-flights: deleted %s", f.IdentString())
		fmt.Fprintf(w, "OK!\ndeleted %s\n", f.IdentString())
		return
	}

	days := int(widget.FormValueFloat64EatErrs(r, "days"))
	if days < 1 {
		http.Error(w, "need url arg 'days' (purge flights older than this), or 'key'",
			http.StatusBadRequest)
		return
	}
	limit := int(widget.FormValueFloat64EatErrs(r, "limit"))
	if limit < 1 || limit > 500 {
		limit = 500
	}

	cutoff := date.NowInPdt().AddDate(0,0,-days)
	q := fstore.NewFlightQuery().Filter("LastUpdate < ", cutoff).Limit(limit)

	keyers,err := db.LookupAllKeys(q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if len(keyers) == 0 {
		fmt.Fprintf(w, "OK!\nnothing last updated before %s\n", cutoff.Format("2006.01.02"))
		return
	}

	if err := db.DeleteAllKeys(keyers); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	db.Infof("purge-flights: %d flights deleted (last updated before %s)",
		len(keyers), cutoff.Format("2006.01.02"))
	fmt.Fprintf(w, "OK!\n%d flights purged (last updated before %s) - took %s\n"+
		"re-run to purge the next batch\n",
		len(keyers), cutoff.Format("2006.01.02"), time.Since(tStart))
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
