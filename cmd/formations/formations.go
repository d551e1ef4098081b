package main

// Offline formation analysis over a schedule CSV: finds compatible
// pairs, derives boost corridors, and optimizes each paired flight's
// path through them.

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
	fFlights         string
	fAirports        string
	fBaseDate        string
	fJson            bool
	fVerbosity       int
	fMaxPairs        int
	fMaxSimilarDeg   float64
	fMaxIntersectDeg float64
)

func init() {
	flag.StringVar(&fFlights, "flights", "", "schedule CSV to analyze (.gz OK)")
	flag.StringVar(&fAirports, "airports", "", "airport database CSV, for codes we don't know")
	flag.StringVar(&fBaseDate, "basedate", "", "day the schedule's HHMM clocks land on (2006-01-02; default today)")
	flag.BoolVar(&fJson, "json", false, "dump optimized paths as JSON")
	flag.IntVar(&fVerbosity, "v", 0, "verbosity level")
	flag.IntVar(&fMaxPairs, "maxpairs", 0, "cap the number of pairs optimized (0 = no cap)")
	flag.Float64Var(&fMaxSimilarDeg, "maxsimilar", 0, "override max angle for similar pairs")
	flag.Float64Var(&fMaxIntersectDeg, "maxintersect", 0, "override max angle for intersecting pairs")
	flag.Parse()
}

// {{{ baseDate, resolver, loadFlights

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

	m,nSkipped,err := ref.LoadAirportsCSV(rdr)
	if err != nil {
		log.Fatalf("LoadAirportsCSV '%s': %v", fAirports, err)
	}

	ac := ref.BlankAirportCache()
	ac.AddAll(m)
	fmt.Printf("%d airports loaded from %s (%d rows skipped)\n", len(m), fAirports, nSkipped)

	return ac.Resolve
}

func loadFlights() []*fdb.Flight {
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

	opt := ingest.Options{ BaseDate: baseDate(), Resolve: resolver() }

	flights,nSkipped,err := ingest.ReadFlights(ctx, fFlights, src, opt)
	if err != nil {
		log.Fatalf("ReadFlights '%s': %v", fFlights, err)
	}
	if nSkipped > 0 {
		fmt.Printf("(%d rows skipped)\n", nSkipped)
	}

	return flights
}

// }}}

func main() {
	if fFlights == "" {
		log.Fatal("need -flights <schedule.csv>")
	}

	flights := loadFlights()
	fmt.Printf("%d flights loaded from %s\n", len(flights), fFlights)

	opt := fdb.DefaultPairOptions()
	if fMaxSimilarDeg > 0 { opt.MaxSimilarAngleDeg = fMaxSimilarDeg }
	if fMaxIntersectDeg > 0 { opt.MaxIntersectAngleDeg = fMaxIntersectDeg }

	pairs,nSkipped := fdb.FindPairs(flights, opt)
	nSim,nInt := 0,0
	for _,cp := range pairs {
		if cp.Kind == fdb.KindSimilar { nSim++ } else { nInt++ }
	}
	fmt.Printf("%d pairs (%d similar, %d intersecting); %d flights skipped\n",
		len(pairs), nSim, nInt, nSkipped)

	if fMaxPairs > 0 && len(pairs) > fMaxPairs {
		pairs = pairs[:fMaxPairs]
		fmt.Printf("(capped to first %d pairs)\n", fMaxPairs)
	}

	if fVerbosity > 0 {
		for i,cp := range pairs {
			fmt.Printf(" [%2d] %s\n", i, cp.String())
		}
	}
	if fVerbosity > 1 {
		for i,c := range fdb.CorridorsFromPairs(pairs) {
			fmt.Printf(" corridor[%2d] %-14.14s %-12.12s %6.1fKM at %05.1fdeg\n",
				i, c.PairKey, c.Kind.String(), c.LengthKM, c.BearingDeg)
		}
	}

	results,err := fdb.OptimizeFlights(ctx, fdb.FlightsFromPairs(pairs), pairs, 0)
	if err != nil {
		log.Fatal(err)
	}

	if fJson {
		jsonBytes,err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			log.Fatal(err)
		}
		os.Stdout.Write(jsonBytes)
		fmt.Printf("\n")
		return
	}

	fmt.Printf("\n")
	totalSavings := 0.0
	for _,op := range results {
		fmt.Printf("%-12.12s %4.4s-%4.4s direct %6.0fKM flown %6.0fKM via %d boosts, saves %5.1f min\n",
			op.FlightId, op.DepartureAirport, op.ArrivalAirport,
			op.DirectKM, op.RealizedKM, op.NumBoosts(), op.TimeSavingsMin)
		totalSavings += op.TimeSavingsMin
	}
	fmt.Printf("\n%d flights optimized; %.1f min total savings\n", len(results), totalSavings)
}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
