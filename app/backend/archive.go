package main

// Archives a day's flights into cloud storage as a gobbed slice of
// indexed blobs, and lists/inspects what has been archived so far.

import(
	"fmt"
	"net/http"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"github.com/skypies/util/date"
	"github.com/skypies/util/widget"

	fdb "github.com/skypies/formation"
	"github.com/skypies/formation/fstore"
)

var archiveGCS = "formation-archive"

// {{{ archiveFlightsHandler

// /backend/archive-flights?datestring=2026.01.02   (or datestring=yesterday)
//  &tags=scheduled
//  &force=1   (overwrite an object that already exists)
func archiveFlightsHandler(db fstore.FormationDB, w http.ResponseWriter, r *http.Request) {
	ctx := db.Ctx()
	tStart := time.Now()

	datestring := r.FormValue("datestring")
	if datestring == "yesterday" {
		datestring = date.NowInPdt().AddDate(0,0,-1).Format("2006.01.02")
	}
	if datestring == "" {
		http.Error(w, "need url arg 'datestring' (2006.01.02, or yesterday)", http.StatusBadRequest)
		return
	}

	tags := widget.FormValueCommaSepStrings(r, "tags")

	day := date.Datestring2MidnightPdt(datestring)
	s := day
	e := s.AddDate(0,0,1).Add(-1 * time.Second)

	client,err := storage.NewClient(ctx)
	if err != nil {
		http.Error(w, "storage client: "+err.Error(), http.StatusInternalServerError)
		return
	}
	defer client.Close()

	object := fdb.ArchiveObjectName(day)
	obj := client.Bucket(archiveGCS).Object(object)
	if r.FormValue("force") == "" {
		if _,err := obj.Attrs(ctx); err == nil {
			w.Header().Set("Content-Type", "text/plain")
			w.Write([]byte(fmt.Sprintf("OK, gs://%s/%s already archived\n", archiveGCS, object)))
			return
		} else if err != storage.ErrObjectNotExist {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	flights,err := db.LookupAll(fstore.QueryForTimeRange(tags, s, e))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	blobs := make([]fdb.IndexedFlightBlob, 0, len(flights))
	for _,f := range flights {
		// Flights straddling midnight archive under the day of their first timeslot.
		if slots := f.Timeslots(); len(slots) > 0 && slots[0].Before(s) {
			continue
		}
		blob,err := f.ToBlob()
		if err != nil {
			http.Error(w, fmt.Sprintf("flight %s: %v", f.IdentString(), err),
				http.StatusInternalServerError)
			return
		}
		blobs = append(blobs, *blob)
	}

	gcsWriter := obj.NewWriter(ctx)
	gcsWriter.ContentType = "application/octet-stream"
	if err := fdb.MarshalBlobSlice(blobs, gcsWriter); err != nil {
		gcsWriter.Close()
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := gcsWriter.Close(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	db.Infof("archived %d flights to gs://%s/%s", len(blobs), archiveGCS, object)

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(fmt.Sprintf("OK!\n%d flights archived to gs://%s/%s - took %s\n",
		len(blobs), archiveGCS, object, time.Since(tStart))))
}

// }}}
// {{{ listArchivesHandler

// /backend/archive-list                             (list the archive objects)
// /backend/archive-list?object=flights/2026-01-02.gob  (peek inside one)
func listArchivesHandler(db fstore.FormationDB, w http.ResponseWriter, r *http.Request) {
	ctx := db.Ctx()

	client,err := storage.NewClient(ctx)
	if err != nil {
		http.Error(w, "storage client: "+err.Error(), http.StatusInternalServerError)
		return
	}
	defer client.Close()

	bucket := client.Bucket(archiveGCS)

	if object := r.FormValue("object"); object != "" {
		gcsReader,err := bucket.Object(object).NewReader(ctx)
		if err != nil {
			http.Error(w, fmt.Sprintf("gs://%s/%s: %v", archiveGCS, object, err),
				http.StatusInternalServerError)
			return
		}
		defer gcsReader.Close()

		blobs,err := fdb.UnmarshalBlobSlice(gcsReader)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		str := fmt.Sprintf("gs://%s/%s: %d flights\n--\n", archiveGCS, object, len(blobs))
		for i,blob := range blobs {
			if i >= 40 {
				str += fmt.Sprintf(" ... and %d more\n", len(blobs)-i)
				break
			}
			str += fmt.Sprintf(" %-12.12s %s-%s [%s]\n",
				blob.FlightId, blob.Origin, blob.Destination, blob.LastUpdate.Format("2006.01.02"))
		}

		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte(str))
		return
	}

	q := &storage.Query{ Prefix: "flights/" }

	str := ""
	n := 0
	it := bucket.Objects(ctx, q)
	for {
		oa, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			http.Error(w, fmt.Sprintf("GCS-Readdir [gs://%s]%s': %v", archiveGCS, q.Prefix, err),
				http.StatusInternalServerError)
			return
		}
		str += fmt.Sprintf("%8db %s {%s}\n", oa.Size, oa.Updated.Format("2006.01.02"), oa.Name)
		n++
	}

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(fmt.Sprintf("OK, %d archive objects in gs://%s/\n--\n%s", n, archiveGCS, str)))
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
