package main

// Finds the best departure time for one flight, given a schedule of
// other flights it might draft behind.

import(
	"compress/gzip"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/skypies/geo"

	fdb "github.com/skypies/formation"
	"github.com/skypies/formation/ingest"
	"github.com/skypies/formation/ref"
)

var(
	ctx = context.Background()
	fOrigin      string
	fDest        string
	fScheduled   string
	fDurationMin float64
	fDistanceKM  float64
	fFlights     string
	fAirports    string
	fBaseDate    string
	fCruiseKMH   float64
	fJson        bool
	fOutput      string
	fVerbosity   int
)

func init() {
	flag.StringVar(&fOrigin, "origin", "", "departure airport code")
	flag.StringVar(&fDest, "dest", "", "arrival airport code")
	flag.StringVar(&fScheduled, "scheduled", "", "scheduled departure, UTC (2006-01-02 15:04)")
	flag.Float64Var(&fDurationMin, "duration", 0, "flight duration in minutes (default: derive from distance)")
	flag.Float64Var(&fDistanceKM, "distance", 0, "route distance override in km, to imply a duration")
	flag.StringVar(&fFlights, "flights", "", "schedule CSV of candidate partner flights (.gz OK)")
	flag.StringVar(&fAirports, "airports", "", "airport database CSV, for codes we don't know")
	flag.StringVar(&fBaseDate, "basedate", "", "day the schedule's HHMM clocks land on (2006-01-02; default today)")
	flag.Float64Var(&fCruiseKMH, "cruise", 0, "cruise speed override, km/h")
	flag.BoolVar(&fJson, "json", false, "dump the recommendation as JSON")
	flag.StringVar(&fOutput, "output", "", "write the JSON recommendation to a file")
	flag.IntVar(&fVerbosity, "v", 0, "verbosity level")
	flag.Parse()
}

// {{{ parseScheduled, baseDate, resolver, loadFlights

func parseScheduled() time.Time {
	for _,layout := range []string{"2006-01-02 15:04:05", "2006-01-02 15:04"} {
		if t,err := time.Parse(layout, fScheduled); err == nil {
			return t.UTC()
		}
	}
	log.Fatalf("bad -scheduled '%s' (want 2006-01-02 15:04)", fScheduled)
	return time.Time{}
}

func baseDate() time.Time {
	if fBaseDate == "" {
		return time.Now()
	}
	t,err := time.Parse("2006-01-02", fBaseDate)
	if err != nil {
		log.Fatalf("bad -basedate '%s': %v", fBaseDate, err)
	}
	return t
}

func resolver() func(string) (geo.NamedLatlong, bool) {
	if fAirports == "" {
		return ref.Lookup
	}

	rdr,err := os.Open(fAirports)
	if err != nil {
		log.Fatalf("open '%s': %v", fAirports, err)
	}
	defer rdr.Close()

	m,_,err := ref.LoadAirportsCSV(rdr)
	if err != nil {
		log.Fatalf("LoadAirportsCSV '%s': %v", fAirports, err)
	}

	ac := ref.BlankAirportCache()
	ac.AddAll(m)

	return ac.Resolve
}

func loadFlights(resolve func(string) (geo.NamedLatlong, bool)) []*fdb.Flight {
	rdr,err := os.Open(fFlights)
	if err != nil {
		log.Fatalf("open '%s': %v", fFlights, err)
	}
	defer rdr.Close()

	var src io.Reader = rdr
	if strings.HasSuffix(fFlights, ".gz") {
		gzRdr,err := gzip.NewReader(rdr)
		if err != nil {
			log.Fatalf("gzopen '%s': %v", fFlights, err)
		}
		defer gzRdr.Close()
		src = gzRdr
	}

	opt := ingest.Options{ BaseDate: baseDate(), Resolve: resolve }

	flights,_,err := ingest.ReadFlights(ctx, fFlights, src, opt)
	if err != nil {
		log.Fatalf("ReadFlights '%s': %v", fFlights, err)
	}

	return flights
}

// }}}

func main() {
	if fOrigin == "" || fDest == "" || fScheduled == "" || fFlights == "" {
		log.Fatal("need -origin, -dest, -scheduled and -flights")
	}

	resolve := resolver()

	orig,ok := resolve(fOrigin)
	if !ok {
		log.Fatalf("origin airport %q not known", fOrigin)
	}
	dest,ok := resolve(fDest)
	if !ok {
		log.Fatalf("dest airport %q not known", fDest)
	}

	opt := fdb.DefaultFollowOptions()
	if fCruiseKMH > 0 {
		opt.CruiseKMH = fCruiseKMH
	}

	req := fdb.FollowRequest{
		Origin:             orig.Latlong,
		Destination:        dest.Latlong,
		OriginAirport:      orig.Name,
		DestinationAirport: dest.Name,
		ScheduledDeparture: parseScheduled(),
	}
	if fDurationMin > 0 {
		req.Duration = time.Duration(fDurationMin * float64(time.Minute))
	} else if fDistanceKM > 0 {
		req.Duration = time.Duration(fDistanceKM / opt.CruiseKMH * float64(time.Hour))
	}

	flights := loadFlights(resolve)
	src := fdb.NewFlightSet(flights...)
	fmt.Printf("%d candidate flights loaded from %s\n", src.Len(), fFlights)

	rec,err := fdb.OptimizeDeparture(ctx, src, req, opt)
	if err != nil {
		log.Fatal(err)
	}

	if fJson || fOutput != "" {
		jsonBytes,err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			log.Fatal(err)
		}
		if fOutput != "" {
			if err := os.WriteFile(fOutput, jsonBytes, 0644); err != nil {
				log.Fatal(err)
			}
			fmt.Printf("wrote %s\n", fOutput)
		}
		if fJson {
			os.Stdout.Write(jsonBytes)
			fmt.Printf("\n")
			return
		}
	}

	fmt.Printf("\n%s-%s, %.0fKM direct\n", req.OriginAirport, req.DestinationAirport, req.DirectKM())
	fmt.Printf("scheduled  %s\n", rec.ScheduledDeparture.Format("2006-01-02 15:04"))
	fmt.Printf("optimal    %s (%+.0f min)\n",
		rec.OptimalDeparture.Format("2006-01-02 15:04"), rec.OffsetMinutes)

	if rec.Best.HasPartner() {
		fmt.Printf("following  %s (%.0fKM in formation, %.0fKM detour, %.1f%% savings)\n",
			rec.Best.FollowedFlightId, rec.Best.FollowingKM, rec.Best.DetourKM,
			rec.Best.Cost.SavingsPercent)
	} else {
		fmt.Printf("following  nobody; fly direct\n")
	}

	if fVerbosity > 0 {
		fmt.Printf("\n%d departure times evaluated (%d candidates skipped):-\n",
			len(rec.Evaluations), rec.SkippedCandidates)
		for i,ev := range rec.Evaluations {
			fmt.Printf(" [%2d] %s\n", i, ev.String())
		}
	}
}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
