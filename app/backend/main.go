package main

import(
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/skypies/util/gcp/ds"

	_ "github.com/skypies/formation/analysis" // populate the reports registry
	"github.com/skypies/formation/ui"
)

var(
	GoogleCloudProjectId = "formation-flights"
)

func init() {
	if p := os.Getenv("GOOGLE_CLOUD_PROJECT"); p != "" {
		GoogleCloudProjectId = p
	}

	// Batch URLs get long deadlines; these jobs walk whole days of flights.
	ctxMaker := func(r *http.Request) context.Context {
		ctx,_ := context.WithTimeout(r.Context(), 595 * time.Second)
		p,err := ds.NewCloudDSProvider(ctx, GoogleCloudProjectId)
		if err != nil {
			panic(fmt.Errorf("main: could not get a clouddsprovider (projectId=%s): %v\n", GoogleCloudProjectId, err))
		}
		return ds.SetProvider(ctx, p)
	}

	// ingest.go
	http.HandleFunc("/backend/ingest",              ui.WithFormationDBCtx(ctxMaker, ingestHandler))

	// publish.go
	http.HandleFunc("/backend/publish-flights",     ui.WithFormationDBCtx(ctxMaker, publishFlightsHandler))
	http.HandleFunc("/backend/publish-all-flights", ui.WithFormationDBCtx(ctxMaker, publishAllFlightsHandler))

	// archive.go
	http.HandleFunc("/backend/archive-flights",     ui.WithFormationDBCtx(ctxMaker, archiveFlightsHandler))
	http.HandleFunc("/backend/archive-list",        ui.WithFormationDBCtx(ctxMaker, listArchivesHandler))

	// scan.go
	http.HandleFunc("/backend/scan-pairs",          ui.WithFormationDBCtx(ctxMaker, scanPairsHandler))

	// purge.go
	http.HandleFunc("/backend/purge-flights",       ui.WithFormationDBCtx(ctxMaker, purgeFlightsHandler))

	// We host the report runner here too, to get the batch timeouts.
	http.HandleFunc("/report",                      ui.WithFormationDBCtx(ctxMaker, ui.ReportHandler))
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Listening on port %s [formation/app/backend]", port)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%s", port), nil))
}
