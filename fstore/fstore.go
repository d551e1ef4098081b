// Package fstore stores and retrieves formation flights from datastore,
// and layers the formation engine's data needs (trajectory lookups,
// airspace snapshots) on top of those queries.
package fstore

import(
	"fmt"
	"net/http"
	"time"

	"context"

	"github.com/skypies/util/gcp/ds"
)

type FormationDB struct {
	ctx        context.Context
	StartTime  time.Time
	Backend    ds.DatastoreProvider
}

func New(ctx context.Context, p ds.DatastoreProvider) FormationDB {
	return FormationDB{
		ctx:ctx,
		StartTime:time.Now(),
		Backend: p,
	}
}

func (db *FormationDB)NewQuery() *FQuery {
	return NewFlightQuery()
}

func (db *FormationDB)NewIterator(fq *FQuery) *FlightIterator {
	return NewFlightIterator(db.Ctx(), db.Backend, fq)
}

func (db *FormationDB)Ctx() context.Context { return db.ctx }
func (db *FormationDB)HTTPClient() *http.Client { return db.Backend.HTTPClient(db.Ctx()) }

func (db *FormationDB)Debugf(format string, args ...interface{}) {
	db.Backend.Debugf(db.Ctx(), format, args...)
}
func (db *FormationDB)Infof(format string,args ...interface{}) {
	db.Backend.Infof(db.Ctx(), format, args...)
}
func (db *FormationDB)Errorf(format string,args ...interface{}) {
	db.Backend.Errorf(db.Ctx(), format, args...)
}
func (db *FormationDB)Warningf(format string,args ...interface{}) {
	db.Backend.Warningf(db.Ctx(), format, args...)
}
func (db *FormationDB)Criticalf(format string,args ...interface{}) {
	db.Backend.Criticalf(db.Ctx(), format, args...)
}

// Perff is a debugf with a 'step' arg, and adds its own latency timings
func (db *FormationDB)Perff(step string, format string, args ...interface{}) {
	payload := fmt.Sprintf(format, args...)
	db.Debugf("[%s] %9.6f %s", step, time.Since(db.StartTime).Seconds(), payload)
}
