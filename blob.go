package formation

import(
	"bytes"
	"encoding/gob"
	"time"
)

// An indexed flight blob is the thing we persist into datastore (or other
// blobstores). The flight itself travels as an opaque gob; the fields
// alongside it are the ones queries get to filter on.
type IndexedFlightBlob struct {
	Blob         []byte      `datastore:",noindex"`

	FlightId     string
	IcaoId       string
	Origin       string      // ICAO airport codes, denormalized from the endpoints
	Destination  string
	LastUpdate   time.Time
	Timeslots  []time.Time
	Tags       []string
}

func (f *Flight)ToBlob() (*IndexedFlightBlob, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(f); err != nil {
		return nil, err
	}

	return &IndexedFlightBlob{
		Blob: buf.Bytes(),
		FlightId: f.Id,
		IcaoId: string(f.IcaoId),
		Origin: f.Origin.Airport,
		Destination: f.Destination.Airport,
		Timeslots: f.Timeslots(),
		Tags: f.TagList(),
		LastUpdate: time.Now(),
	}, nil
}

func (blob *IndexedFlightBlob)ToFlight(key string) (*Flight, error) {
	buf := bytes.NewBuffer(blob.Blob)
	f := Flight{}
	err := gob.NewDecoder(buf).Decode(&f)

	// Various kinds of post-load fixups
	f.SetDatastoreKey(key)
	f.SetLastUpdate(blob.LastUpdate)

	return &f, err
}
