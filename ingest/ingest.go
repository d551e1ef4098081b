// Package ingest loads schedule CSV dumps into flight objects, skipping
// rows the formation engine can't use and keeping count of them.
package ingest

import(
	"fmt"
	"io"
	"time"

	"context"

	fdb "github.com/skypies/formation"
)

// {{{ ReadFrom

// The callback decides whether a flight is kept; it returns whether it
// was added, an optional log fragment, and a fatal error.
type NewFlightCallback func(context.Context, *fdb.Flight) (bool, string, error)

// ReadFrom walks a schedule CSV, building a flight per row and handing
// each to the callback. Unusable rows (bad clocks, unknown airports,
// non-positive durations) are skipped and counted, never fatal.
func ReadFrom(ctx context.Context, name string, rdr io.Reader, opt Options, cb NewFlightCallback) (int, int, string, error) {

	str := fmt.Sprintf("---- Flights loaded from %s\n", name)
	i := 1
	nFlightsAdded := 0
	nSkipped := 0
	tStart := time.Now()

	rowReader := NewRowReader(rdr)

	for {
		row,err := rowReader.Read()
		if err == io.EOF { break }
		if err != nil { return nFlightsAdded,nSkipped,str,err }

		logPrefix := fmt.Sprintf("%s:%d", name, i)
		i++

		f,err := row.ToFlight(opt)
		if err != nil {
			nSkipped++
			str += fmt.Sprintf("%s: skipped: %v\n", logPrefix, err)
			continue
		}

		added,subStr,err := cb(ctx,f)
		if err != nil {
			return nFlightsAdded,nSkipped,str,err
		}
		if added { nFlightsAdded++ }
		if subStr != "" {
			str += logPrefix + ": " + subStr
		}
	}

	str = fmt.Sprintf("---- File read, %d rows, %d flights added, %d skipped (took %s)\n",
		i-1, nFlightsAdded, nSkipped, time.Since(tStart)) + str

	return nFlightsAdded,nSkipped,str,nil
}

// }}}

// {{{ ReadFlights

// ReadFlights is ReadFrom with a keep-everything callback, for callers
// that just want the flights.
func ReadFlights(ctx context.Context, name string, rdr io.Reader, opt Options) ([]*fdb.Flight, int, error) {
	flights := []*fdb.Flight{}
	cb := func(ctx context.Context, f *fdb.Flight) (bool,string,error) {
		flights = append(flights, f)
		return true,"",nil
	}

	_,nSkipped,_,err := ReadFrom(ctx, name, rdr, opt, cb)
	return flights, nSkipped, err
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
