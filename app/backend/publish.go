package main

// Publishes a day's formation results to BigQuery, via a JSON dump in
// cloud storage and a load job. The bigquery dataset may live in a
// different cloud project to the flight data; the service accounts on
// each side need cross-project access set up by hand.

import(
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/storage"
	"golang.org/x/sync/errgroup"

	"github.com/skypies/util/date"
	"github.com/skypies/util/widget"

	fdb "github.com/skypies/formation"
	"github.com/skypies/formation/fstore"
)

var(
	folderGCS = "formation-bigquery"

	bigqueryProject   = "formation-flights"
	bigqueryDataset   = "public"
	bigqueryTableName = "formations"
)

// {{{ publishFlightsHandler

// /backend/publish-flights?datestring=2026.01.02   (or datestring=yesterday)
//  &tags=scheduled
//  &skipload=1   (write the GCS file, but skip the bigquery load job)
func publishFlightsHandler(db fstore.FormationDB, w http.ResponseWriter, r *http.Request) {
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

	filename := "formations-"+datestring+".json"
	n,err := writeBigQueryDayFile(db, datestring, tags, folderGCS, filename)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if r.FormValue("skipload") == "" {
		if err := submitLoadJob(db.Ctx(), folderGCS, filename); err != nil {
			http.Error(w, "submitLoadJob failed: "+err.Error(), http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(fmt.Sprintf("OK!\n%d rows written to gs://%s/%s and job sent - took %s\n",
		n, folderGCS, filename, time.Since(tStart))))
}

// }}}
// {{{ publishAllFlightsHandler

// /backend/publish-all-flights?date=range&range-from=2026/01/01&range-to=2026/01/03
//  ?skipload=1  (skip loading into bigquery; better to bulk load all of them at once)
func publishAllFlightsHandler(db fstore.FormationDB, w http.ResponseWriter, r *http.Request) {
	s,e,err := widget.FormValueDateRange(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	tags := widget.FormValueCommaSepStrings(r, "tags")
	skipload := r.FormValue("skipload") != ""

	days := date.IntermediateMidnights(s.Add(-1 * time.Second), e) // decrement start, to include it

	var mu sync.Mutex
	str := ""

	g,_ := errgroup.WithContext(db.Ctx())
	g.SetLimit(3)
	for _,day := range days {
		day := day // per-iteration copy; module builds as go 1.21
		g.Go(func() error {
			datestring := day.Format("2006.01.02")
			filename := "formations-"+datestring+".json"

			n,err := writeBigQueryDayFile(db, datestring, tags, folderGCS, filename)
			if err != nil {
				return fmt.Errorf("%s: %v", datestring, err)
			}
			if !skipload {
				if err := submitLoadJob(db.Ctx(), folderGCS, filename); err != nil {
					return fmt.Errorf("%s: load: %v", datestring, err)
				}
			}

			mu.Lock()
			str += fmt.Sprintf(" * %s: %d rows\n", datestring, n)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(fmt.Sprintf("OK, published %d days\n--\n%s", len(days), str)))
}

// }}}

// {{{ writeBigQueryDayFile

// Returns the number of rows written (zero if the object already exists).
func writeBigQueryDayFile(db fstore.FormationDB, datestring string, tags []string, bucket, object string) (int, error) {
	ctx := db.Ctx()

	client,err := storage.NewClient(ctx)
	if err != nil {
		return 0,fmt.Errorf("storage client: %v", err)
	}
	defer client.Close()

	obj := client.Bucket(bucket).Object(object)
	if _,err := obj.Attrs(ctx); err == nil {
		return 0,nil // already published
	} else if err != storage.ErrObjectNotExist {
		return 0,err
	}

	s := date.Datestring2MidnightPdt(datestring)
	e := s.AddDate(0,0,1).Add(-1 * time.Second) // +23:59:59 (or 22:59 or 24:59 when going in/out DST)

	flights,err := db.LookupAll(fstore.QueryForTimeRange(tags, s, e))
	if err != nil {
		return 0,err
	}

	// A flight that straddles midnight shows up in two days' lookups; only
	// the day holding its first timeslot gets to publish it.
	kept := make([]*fdb.Flight, 0, len(flights))
	for _,f := range flights {
		if slots := f.Timeslots(); len(slots) > 0 && slots[0].Before(s) {
			continue
		}
		kept = append(kept, f)
	}

	pairs,_ := fdb.FindPairs(kept, fdb.DefaultPairOptions())
	results,err := fdb.OptimizeFlights(ctx, fdb.FlightsFromPairs(pairs), pairs, 0)
	if err != nil {
		return 0,err
	}

	resultById := map[string]*fdb.OptimizedPath{}
	for i := range results {
		resultById[results[i].FlightId] = &results[i]
	}

	gcsWriter := obj.NewWriter(ctx)
	gcsWriter.ContentType = "application/json"
	encoder := json.NewEncoder(gcsWriter)

	n := 0
	for _,f := range kept {
		if err := encoder.Encode(f.ForBigQuery(resultById[f.Id])); err != nil {
			gcsWriter.Close()
			return 0,err
		}
		n++
	}

	if err := gcsWriter.Close(); err != nil {
		return 0,err
	}

	db.Infof("GCS bigquery file '%s' written, %d rows", object, n)

	return n,nil
}

// }}}
// {{{ submitLoadJob

// https://cloud.google.com/bigquery/docs/loading-data-cloud-storage
func submitLoadJob(ctx context.Context, gcsfolder, gcsfile string) error {
	client,err := bigquery.NewClient(ctx, bigqueryProject)
	if err != nil {
		return fmt.Errorf("creating bigquery client: %v", err)
	}
	defer client.Close()

	gcsSrc := bigquery.NewGCSReference(fmt.Sprintf("gs://%s/%s", gcsfolder, gcsfile))
	gcsSrc.SourceFormat = bigquery.JSON
	gcsSrc.AllowJaggedRows = true

	loader := client.Dataset(bigqueryDataset).Table(bigqueryTableName).LoaderFrom(gcsSrc)
	loader.CreateDisposition = bigquery.CreateNever

	job,err := loader.Run(ctx)
	if err != nil {
		return fmt.Errorf("submission of load job: %v", err)
	}

	status,err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("waiting on load job: %v", err)
	}
	if err := status.Err(); err != nil {
		detailed := ""
		for i,innerErr := range status.Errors {
			detailed += fmt.Sprintf(" [%2d] %v\n", i, innerErr)
		}
		return fmt.Errorf("load job error: %v\n--\n%s", err, detailed)
	}

	return nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
