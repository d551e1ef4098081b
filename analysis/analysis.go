// Package analysis registers the formation reports: pair discovery,
// corridor boosting, and departure-time shifting. These are cross-flight
// analyses, so the per-flight pass just accumulates the matching flights
// into a report blob; the summarize step does the real work once the
// whole set has been seen.
package analysis

import (
	fdb "github.com/skypies/formation"
	"github.com/skypies/formation/report"
)

func accumulate(r *report.Report, key string, f *fdb.Flight) {
	flights := []*fdb.Flight{}
	if r.Blobs[key] != nil {
		flights = r.Blobs[key].([]*fdb.Flight)
	}
	r.Blobs[key] = append(flights, f)
}

func accumulated(r *report.Report, key string) []*fdb.Flight {
	if r.Blobs[key] == nil {
		return nil
	}
	return r.Blobs[key].([]*fdb.Flight)
}
