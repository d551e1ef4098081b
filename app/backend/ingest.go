package main

// Ingests schedule CSV dumps into the flight database. The dump can be
// POSTed directly, or named as an object to pull from cloud storage.

import(
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"context"

	"cloud.google.com/go/storage"

	"github.com/skypies/util/date"
	"github.com/skypies/util/gcp/ds"
	sprovider "github.com/skypies/util/gcp/singleton"

	fdb "github.com/skypies/formation"
	"github.com/skypies/formation/fstore"
	"github.com/skypies/formation/ingest"
	"github.com/skypies/formation/ref"
)

var ingestGCS = "formation-ingest"

// {{{ ingestHandler

// /backend/ingest?datestring=2026.01.02          (CSV in the POST body)
// /backend/ingest?datestring=yesterday&object=schedules/2026-01-02.csv.gz
//  &bucket=some-other-bucket
func ingestHandler(db fstore.FormationDB, w http.ResponseWriter, r *http.Request) {
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

	name,rdr,closer,err := ingestSource(db, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer closer()

	sp := sprovider.NewProvider(ds.GetProviderOrPanic(ctx))
	airports,err := ref.LoadAirportCache(ctx, sp)
	if err != nil {
		// The blank cache still resolves the builtin table.
		db.Errorf("airport cache load: %v (continuing with builtins)", err)
	}

	opt := ingest.Options{
		BaseDate: date.Datestring2MidnightPdt(datestring),
		Resolve:  airports.Resolve,
	}

	cb := func(ctx context.Context, f *fdb.Flight) (bool,string,error) {
		if prev,err := db.LookupFirst(fstore.NewFlightQuery().ByFlightId(f.Id)); err != nil {
			return false,"",err
		} else if prev != nil {
			return false,"",nil // already ingested
		}
		f.SetTag("scheduled")
		if err := db.PersistFlight(f); err != nil {
			return false,"",err
		}
		return true,fmt.Sprintf("added %s\n", f.IdentString()),nil
	}

	added,skipped,deb,err := ingest.ReadFrom(ctx, name, rdr, opt, cb)
	if err != nil {
		http.Error(w, deb+"\n--\n"+err.Error(), http.StatusInternalServerError)
		return
	}

	db.Infof("ingest of %s: %d added, %d skipped", name, added, skipped)

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(fmt.Sprintf("OK!\n%d added, %d skipped - took %s\n--\n%s",
		added, skipped, time.Since(tStart), deb)))
}

// }}}
// {{{ ingestSource

// Picks the CSV source: a cloud storage object if one is named, else the
// request body. Unwraps gzip either way.
func ingestSource(db fstore.FormationDB, r *http.Request) (string, io.Reader, func(), error) {
	ctx := db.Ctx()

	if object := r.FormValue("object"); object != "" {
		bucket := r.FormValue("bucket")
		if bucket == "" {
			bucket = ingestGCS
		}

		client,err := storage.NewClient(ctx)
		if err != nil {
			return "",nil,func(){},err
		}

		gcsReader,err := client.Bucket(bucket).Object(object).NewReader(ctx)
		if err != nil {
			client.Close()
			return "",nil,func(){},fmt.Errorf("gs://%s/%s: %v", bucket, object, err)
		}

		name := fmt.Sprintf("gs://%s/%s", bucket, object)
		closer := func(){ gcsReader.Close(); client.Close() }

		if strings.HasSuffix(object, ".gz") {
			gzipReader,err := gzip.NewReader(gcsReader)
			if err != nil {
				closer()
				return "",nil,func(){},err
			}
			return name, gzipReader, func(){ gzipReader.Close(); closer() }, nil
		}

		return name, gcsReader, closer, nil
	}

	if r.Method != "POST" {
		return "",nil,func(){},fmt.Errorf("need a POST body, or url arg 'object'")
	}

	if r.FormValue("gzip") != "" || r.Header.Get("Content-Encoding") == "gzip" {
		gzipReader,err := gzip.NewReader(r.Body)
		if err != nil {
			return "",nil,func(){},err
		}
		return "POST", gzipReader, func(){ gzipReader.Close() }, nil
	}

	return "POST", r.Body, func(){}, nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
