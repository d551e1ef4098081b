package ui

import(
	"fmt"
	"net/http"
	"time"

	"github.com/skypies/geo"
	"github.com/skypies/util/date"
	"github.com/skypies/util/widget"

	"github.com/skypies/formation/fstore"
)

// {{{ AirspaceHandler

// AirspaceHandler implements GET /api/airspace: a snapshot of which
// scheduled formation flights are airborne at an instant, and where
// along their routes they'd be.
//  ?epoch=1767286800          or    date=2026/01/01&time=17:00:00  (PDT)
//  &pos_lat=36.0&pos_long=-122.0    optional reference point
func AirspaceHandler(db fstore.FormationDB, w http.ResponseWriter, r *http.Request) {
	var t time.Time
	if r.FormValue("epoch") != "" {
		t = widget.FormValueEpochTime(r, "epoch")
	} else if r.FormValue("date") != "" {
		var err error
		t,err = date.ParseInPdt("2006/01/02 15:04:05", r.FormValue("date")+" "+r.FormValue("time"))
		if err != nil {
			WriteError(w, http.StatusBadRequest, err)
			return
		}
	} else {
		WriteError(w, http.StatusBadRequest, fmt.Errorf("need url arg 'epoch', or 'date'&'time'"))
		return
	}

	refPoint := geo.FormValueLatlong(r, "pos")

	as,err := db.LookupHistoricalAirspace(t.UTC(), refPoint)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err)
		return
	}

	WriteEncodedData(w, as)
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
