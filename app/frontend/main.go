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

	// This is the routine that creates new contexts, and injects a provider
	// into them, as required by the FormationHandlers
	ctxMaker := func(r *http.Request) context.Context {
		ctx,_ := context.WithTimeout(r.Context(), 55 * time.Second)
		p,err := ds.NewCloudDSProvider(ctx, GoogleCloudProjectId)
		if err != nil {
			panic(fmt.Errorf("main: could not get a clouddsprovider (projectId=%s): %v\n", GoogleCloudProjectId, err))
		}
		return ds.SetProvider(ctx, p)
	}

	// ui/optimize.go - stateless, no datastore behind these
	http.HandleFunc("/api/optimize-paths",            ui.OptimizePathsHandler)
	http.HandleFunc("/api/optimize-from-raw-flights", ui.OptimizeFromRawFlightsHandler)

	// ui/pairs.go
	http.HandleFunc("/api/pairs",     ui.WithFormationDBCtx(ctxMaker, ui.PairsHandler))

	// ui/departure.go
	http.HandleFunc("/api/departure", ui.WithFormationDBCtx(ctxMaker, ui.DepartureHandler))

	// ui/airspace.go
	http.HandleFunc("/api/airspace",  ui.WithFormationDBCtx(ctxMaker, ui.AirspaceHandler))

	// ui/pdf.go
	http.HandleFunc("/api/path.pdf",  ui.WithFormationDBCtx(ctxMaker, ui.PathPDFHandler))

	// ui/report.go
	http.HandleFunc("/report",        ui.WithFormationDBCtx(ctxMaker, ui.ReportHandler))

	// ui/api.go
	http.HandleFunc("/api/health",    ui.HealthHandler)
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	fs := http.FileServer(http.Dir("./app/frontend/static"))
	http.Handle("/static/", http.StripPrefix("/static/", fs))

	log.Printf("Listening on port %s [formation/app/frontend]", port)
	log.Fatal(http.ListenAndServe(fmt.Sprintf(":%s", port), nil))
}
