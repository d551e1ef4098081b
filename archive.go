package formation

import(
	"encoding/gob"
	"fmt"
	"io"
	"time"
)

// Flights archive into cloud storage as gobbed slices of blobs, one object
// per UTC day per route. The same encoding feeds the BigQuery loader.

func MarshalBlobSlice(blobs []IndexedFlightBlob, w io.Writer) error {
	return gob.NewEncoder(w).Encode(blobs)
}

func UnmarshalBlobSlice(r io.Reader) ([]IndexedFlightBlob, error) {
	blobs := []IndexedFlightBlob{}

	if err := gob.NewDecoder(r).Decode(&blobs); err != nil {
		return nil, err
	}

	return blobs, nil
}

// ArchiveObjectName is the storage key for a day's worth of flights.
func ArchiveObjectName(day time.Time) string {
	return fmt.Sprintf("flights/%s.gob", day.UTC().Format("2006-01-02"))
}
