package fstore

import(
	"fmt"

	"context"

	"github.com/skypies/util/gcp/ds"

	fdb "github.com/skypies/formation"
)

// {{{ db.PersistFlight

func (db *FormationDB)PersistFlight(f *fdb.Flight) error {
	keyer,err := findOrGenerateFlightKey(db.Ctx(), db.Backend, f)
	if err != nil { return fmt.Errorf("PersistFlight: %v", err) }

	if blob,err := f.ToBlob(); err != nil {
		return fmt.Errorf("PersistFlight: %v", err)
	} else {
		_, err = db.Backend.Put(db.Ctx(), keyer, blob)
		if err != nil {
			return fmt.Errorf("PersistFlight: %v", err)
		}
	}

	return nil
}

// }}}

// {{{ db.LookupKey

func (db *FormationDB)LookupKey(keyer ds.Keyer) (*fdb.Flight, error) {
	blob := fdb.IndexedFlightBlob{}

	if err := db.Backend.Get(db.Ctx(), keyer, &blob); err != nil {
		return nil, fmt.Errorf("GetByKey: %v", err)
	}

	f, err := blob.ToFlight(keyer.Encode())
	if err != nil { err = fmt.Errorf("GetByKey: %v", err) }
	return f,err
}

// }}}
// {{{ db.LookupAll

func (db *FormationDB)LookupAll(fq *FQuery) ([]*fdb.Flight, error) {
	// Results are not ordered ... for timerange queries, would need to sort on Timeslots
	blobs := []fdb.IndexedFlightBlob{}

	keyers, err := db.Backend.GetAll(db.Ctx(), (*ds.Query)(fq), &blobs)
	if err != nil {
		return nil, fmt.Errorf("GetAllByQuery: %v", err)
	}

	flights := []*fdb.Flight{}
	for i,blob := range blobs {
		if flight,err := blob.ToFlight(keyers[i].Encode()); err != nil {
			return nil, fmt.Errorf("GetAllByQuery: %v", err)
		} else {
			flights = append(flights, flight)
		}
	}

	return flights, nil
}

// }}}
// {{{ db.LookupFirst

func (db *FormationDB)LookupFirst(fq *FQuery) (*fdb.Flight, error) {
	if flights,err := db.LookupAll(fq.Limit(1)); err != nil {
		return nil,fmt.Errorf("GetFirstByQuery: %v", err)
	} else if len(flights) == 0 {
		return nil,nil
	} else {
		return flights[0],nil
	}
}

// }}}
// {{{ db.LookupMostRecent

func (db *FormationDB)LookupMostRecent(fq *FQuery) (*fdb.Flight, error) {
	// Adding the ordering will break some queries, due to lack of indices
	return db.LookupFirst(fq.Order("-LastUpdate"))
}

// }}}
// {{{ db.LookupAllKeys

func (db *FormationDB)LookupAllKeys(fq *FQuery) ([]ds.Keyer, error) {
	q := (*ds.Query)(fq)
	return db.Backend.GetAll(db.Ctx(), q.KeysOnly(), nil)
}

// }}}

// {{{ db.DeleteByKey

func (db *FormationDB)DeleteByKey(keyer ds.Keyer) error {
	return db.Backend.Delete(db.Ctx(), keyer)
}

// }}}
// {{{ db.DeleteAllKeys

func (db *FormationDB)DeleteAllKeys(keyers []ds.Keyer) error {
	return db.Backend.DeleteMulti(db.Ctx(), keyers)
}

// }}}

// {{{ findOrGenerateFlightKey

// Will be nil if we don't have the data we need to specify an ancestor ID
func rootKeyOrNil(ctx context.Context, p ds.DatastoreProvider, f *fdb.Flight) ds.Keyer {
	if f.IcaoId != "" {
		return p.NewNameKey(ctx, kFlightKind, string(f.IcaoId), nil)
	} else if f.Id != "" {
		return p.NewNameKey(ctx, kFlightKind, "f:"+f.Id, nil)
	}
	return nil
}

func findOrGenerateFlightKey(ctx context.Context, p ds.DatastoreProvider, f *fdb.Flight) (ds.Keyer, error) {
	if f.GetDatastoreKey() != "" {
		return p.DecodeKey(f.GetDatastoreKey())
	}

	// We use IcaoId/Id (if we have either) to build the unique ancestor
	// key. This is so we can use ancestor queries when we're looking up
	// by IcaoId, and get strongly consistent query results (e.g.
	// read-your-writes).
	rootKey := rootKeyOrNil(ctx, p, f)

	// Avoid incomplete keys if we can. Bulk loads from cloud storage can
	// end up running twice; deriving the ID from the flight's own clock
	// means the second run overwrites the first instead of duplicating it.
	var intKey int64 = 0
	if len(f.Path) > 0 {
		intKey = f.Path[0].TimestampUTC.Unix()
	} else if !f.Origin.TimeUTC.IsZero() {
		intKey = f.Origin.TimeUTC.Unix()
	}
	keyer := p.NewIDKey(ctx, kFlightKind, intKey, rootKey)

	return keyer, nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
