package ref

import(
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"context"

	"github.com/skypies/geo"
	"github.com/skypies/geo/sfo"
	"github.com/skypies/util/singleton"
)

const kAirportCacheSingletonName = "airports"

func init() {
	// The sfo package is authoritative for the fields it covers; its
	// positions overwrite the table below.
	for code,pos := range sfo.KAirports {
		KAirports[code] = pos
	}
}

// {{{ KAirports

// The airports we always know about, keyed by ICAO code. IATA codes for
// US airports resolve via the K-prefix fallback in Lookup.
var KAirports = map[string]geo.Latlong{
	"KSFO": {37.6213, -122.3790}, "KLAX": {33.9425, -118.4081},
	"KJFK": {40.6413, -73.7781},  "KORD": {41.9742, -87.9073},
	"KDFW": {32.8998, -97.0403},  "KATL": {33.6407, -84.4277},
	"KMIA": {25.7959, -80.2870},  "KSEA": {47.4502, -122.3088},
	"KDEN": {39.8561, -104.6737}, "KBOS": {42.3656, -71.0096},
	"KSAN": {32.7338, -117.1933}, "KSAT": {29.5337, -98.4698},
	"KPHX": {33.4342, -112.0116}, "KLAS": {36.0840, -115.1537},
	"KMSP": {44.8831, -93.2218},  "KDTW": {42.2162, -83.3554},
	"KPHL": {39.8719, -75.2411},  "KIAD": {38.9531, -77.4565},
	"KCLT": {35.2144, -80.9473},  "KHOU": {29.6454, -95.2789},
	"KMCO": {28.4312, -81.3083},  "KBWI": {39.1774, -76.6684},
	"KSLC": {40.7899, -111.9791}, "KPIT": {40.4915, -80.2329},
	"KSTL": {38.7487, -90.3700},  "KCLE": {41.4117, -81.8498},
	"KIND": {39.7173, -86.2944},  "KBNA": {36.1245, -86.6782},
	"KAUS": {30.1945, -97.6699},  "KRDU": {35.8776, -78.7875},
	"KPDX": {45.5898, -122.5951}, "KSJC": {37.3626, -121.9290},
	"KOAK": {37.7213, -122.2207}, "KSNA": {33.6757, -117.8682},
	"KBUR": {34.2006, -118.3587}, "KONT": {34.0560, -117.6012},
	"KSBA": {34.4262, -119.8404}, "KSMF": {38.6954, -121.5908},
	"KFAT": {36.7762, -119.7181}, "KBFL": {35.4336, -119.0567},
	"EBBR": {50.9014, 4.4844},    "EGLL": {51.4700, -0.4543},
	"LFPG": {49.0097, 2.5479},    "EDDF": {50.0379, 8.5622},
	"EHAM": {52.3105, 4.7683},    "LIRF": {41.8003, 12.2389},
	"LEMD": {40.4839, -3.5680},   "CYVR": {49.1947, -123.1792},
	"CYYZ": {43.6772, -79.6306},  "CYMX": {45.4577, -73.7497},
	"MMMX": {19.4363, -99.0721},  "SBGR": {-23.4321, -46.4692},
	"EGKK": {51.1537, -0.1821},
}

// }}}

// {{{ Lookup

// Lookup resolves an airport code against the builtin table. A three
// letter code that misses is retried with a K prefix, which covers IATA
// codes for the contiguous US.
func Lookup(code string) (geo.NamedLatlong, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return geo.NamedLatlong{}, false
	}

	if pos,exists := KAirports[code]; exists {
		return geo.NamedLatlong{Name:code, Latlong:pos}, true
	}
	if len(code) == 3 {
		if pos,exists := KAirports["K"+code]; exists {
			return geo.NamedLatlong{Name:"K"+code, Latlong:pos}, true
		}
	}

	return geo.NamedLatlong{}, false
}

// }}}

// {{{ AirportCache{}

// Airports learned from data files, layered over the builtin table. This
// is built up over time, as ingests encounter airports we don't know.
type AirportCache struct {
	Map map[string]geo.Latlong
}

func BlankAirportCache() AirportCache {
	return AirportCache{Map:map[string]geo.Latlong{}}
}

func (ac *AirportCache)Get(code string) (geo.Latlong, bool) {
	pos,exists := ac.Map[code]
	return pos,exists
}
func (ac *AirportCache)Set(code string, pos geo.Latlong) { ac.Map[code] = pos }

func (ac *AirportCache)AddAll(m map[string]geo.Latlong) {
	for code,pos := range m {
		ac.Map[code] = pos
	}
}

func (ac AirportCache)String() string {
	str := fmt.Sprintf("--- airport cache (%d entries) ---\n", len(ac.Map))
	for code,pos := range ac.Map {
		str += fmt.Sprintf(" %s (%.4f,%.4f)\n", code, pos.Lat, pos.Long)
	}
	return str
}

// }}}
// {{{ ac.Resolve

// Resolve tries the builtin table first, then the learned entries, with
// the same K-prefix fallback in both.
func (ac *AirportCache)Resolve(code string) (geo.NamedLatlong, bool) {
	if nl,exists := Lookup(code); exists {
		return nl, true
	}

	code = strings.ToUpper(strings.TrimSpace(code))
	if pos,exists := ac.Get(code); exists {
		return geo.NamedLatlong{Name:code, Latlong:pos}, true
	}
	if len(code) == 3 {
		if pos,exists := ac.Get("K"+code); exists {
			return geo.NamedLatlong{Name:"K"+code, Latlong:pos}, true
		}
	}

	return geo.NamedLatlong{}, false
}

// }}}

// {{{ LoadAirportCache, SaveAirportCache

func LoadAirportCache(ctx context.Context, sp singleton.SingletonProvider) (*AirportCache, error) {
	airports := BlankAirportCache()
	err := sp.ReadSingleton(ctx, kAirportCacheSingletonName, singleton.GzipReader, &airports)
	return &airports, err
}

func (ac *AirportCache)SaveAirportCache(ctx context.Context, sp singleton.SingletonProvider) error {
	return sp.WriteSingleton(ctx, kAirportCacheSingletonName, singleton.GzipWriter, ac)
}

// }}}

// {{{ LoadAirportsCSV

// LoadAirportsCSV reads an airport database file with header-named
// columns (ICAO or IATA for the code; latitude, longitude for the
// position). Rows that won't parse are counted, not fatal.
func LoadAirportsCSV(r io.Reader) (map[string]geo.Latlong, int, error) {
	out := map[string]geo.Latlong{}
	skipped := 0

	csvrdr := csv.NewReader(r)
	headers,err := csvrdr.Read()
	if err != nil {
		return out, 0, fmt.Errorf("LoadAirportsCSV headers: %v", err)
	}
	col := map[string]int{}
	for i,h := range headers {
		col[strings.ToUpper(strings.TrimSpace(h))] = i
	}

	codeIdx := -1
	for _,name := range []string{"ICAO", "IATA", "FAA"} {
		if i,exists := col[name]; exists {
			codeIdx = i
			break
		}
	}
	latIdx,latOk := col["LATITUDE"]
	longIdx,longOk := col["LONGITUDE"]
	if codeIdx < 0 || !latOk || !longOk {
		return out, 0, fmt.Errorf("LoadAirportsCSV: headers missing code/latitude/longitude: %v",
			headers)
	}

	for {
		vals,err := csvrdr.Read()
		if err == io.EOF { break }
		if err != nil {
			return out, skipped, fmt.Errorf("LoadAirportsCSV row: %v", err)
		}

		code := strings.ToUpper(strings.TrimSpace(vals[codeIdx]))
		lat,errLat := strconv.ParseFloat(vals[latIdx], 64)
		long,errLong := strconv.ParseFloat(vals[longIdx], 64)
		if code == "" || errLat != nil || errLong != nil {
			skipped++
			continue
		}

		out[code] = geo.Latlong{Lat:lat, Long:long}
	}

	return out, skipped, nil
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
