package fstore

import(
	"time"

	"github.com/skypies/adsb"
	"github.com/skypies/geo"
	"github.com/skypies/pi/airspace"

	fdb "github.com/skypies/formation"
)

// {{{ snapshot2AircraftData

func snapshot2AircraftData(fs fdb.FlightSnapshot, id adsb.IcaoId) airspace.AircraftData {
	callsign := fs.Number
	if callsign == "" {
		callsign = fs.Id
	}

	msg := adsb.CompositeMsg{
		Msg: adsb.Msg{
			Type: "MSG", // ADSB
			Icao24: id,
			GeneratedTimestampUTC: fs.Sample.TimeUTC,
			Callsign: callsign,
			Position: fs.Sample.Pos,
		},
	}
	// Schedule-synthesized paths carry no altitude or speed; the track
	// bearing is all we can report.
	if fs.Sample.HasHeading {
		msg.Track = int64(fs.Sample.Heading)
	}

	return airspace.AircraftData{
 		Msg: &msg,
		NumMessagesSeen: 1,
		Source: "formation",
	}
}

// }}}

// {{{ db.LookupHistoricalAirspace

// LookupHistoricalAirspace reconstructs the sky at time t, placing every
// stored flight along its path. A non-nil pos localizes each snapshot to
// it, for distance sorting in the caller.
func (db FormationDB)LookupHistoricalAirspace(t time.Time, pos geo.Latlong) (airspace.Airspace, error) {
	as := airspace.NewAirspace()

	flights,err := db.LookupAll(NewFlightQuery().ByTime(t.UTC()))
	if err != nil { return as, err }

	for _,f := range flights {
		fs, ok := f.SnapshotAt(t)
		if !ok {
			continue
		}
		if !pos.IsNil() {
			fs.LocalizeTo(pos)
		}
		icaoId := adsb.IcaoId(fs.IcaoId)
		if icaoId == "" {
			icaoId = adsb.IcaoId(fs.Id)
		}
		as.Aircraft[icaoId] = snapshot2AircraftData(fs, icaoId)
	}

	return as,nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
