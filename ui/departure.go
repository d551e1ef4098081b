package ui

// Departure-time recommendation endpoint. The response layout is the
// one the departure planner UI already renders: route, both paths,
// cost breakdowns, the followed partner, and the evaluation stats.

import(
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/skypies/geo"
	"github.com/skypies/util/widget"

	fdb "github.com/skypies/formation"
	"github.com/skypies/formation/fstore"
	"github.com/skypies/formation/ref"
)

// {{{ response types

type routeJSON struct {
	Origin             string  `json:"origin"`
	Destination        string  `json:"destination"`
	ScheduledDeparture string  `json:"scheduled_departure"`
	OptimalDeparture   string  `json:"optimal_departure"`
	TimeOffsetMinutes  float64 `json:"time_offset_minutes"`
}

type pathBlockJSON struct {
	OptimalFlightPath  []PathNodeJSON `json:"optimal_flight_path"`
	OriginalFlightPath []PathNodeJSON `json:"original_flight_path"`
	TotalSegments      int            `json:"total_segments"`
	ConnectedSegments  int            `json:"connected_segments"`
	ConnectionRate     float64        `json:"connection_rate"` // percent of segments flown in formation
}

type costBlockJSON struct {
	SoloCost                    float64 `json:"solo_cost"`
	TotalCost                   float64 `json:"total_cost"`
	TotalSavings                float64 `json:"total_savings"`
	SavingsPercent              float64 `json:"savings_percent"`
	EfficiencyGainPerConnection float64 `json:"efficiency_gain_per_connection"`
}

type positionJSON struct {
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Timestamp string  `json:"timestamp"`
}

type partnerRefJSON struct {
	FlightId  string `json:"flight_id"`
	Timestamp string `json:"timestamp"`
}

type connectionJSON struct {
	NodeIndex      int            `json:"node_index"`
	Position       positionJSON   `json:"position"`
	Partner        partnerRefJSON `json:"partner"`
	DistanceKM     float64        `json:"distance_km"`
	EfficiencyGain float64        `json:"efficiency_gain"`
	SegmentSavings float64        `json:"segment_savings"`
}

type connectionsBlockJSON struct {
	TotalPartners      int                       `json:"total_partners"`
	TotalConnections   int                       `json:"total_connections"`
	ConnectionDetails  []connectionJSON          `json:"connection_details"`
	PartnerFlightPaths map[string][]PathNodeJSON `json:"partner_flight_paths"`
	FollowedFlightId   string                    `json:"followed_flight_id"`
}

type statisticsJSON struct {
	AverageCostAllTimes    float64 `json:"average_cost_all_times"`
	AverageSavingsAllTimes float64 `json:"average_savings_all_times"`
	OptimalCost            float64 `json:"optimal_cost"`
	OptimalSavings         float64 `json:"optimal_savings"`
	CostReductionVsAverage float64 `json:"cost_reduction_vs_average"`
}

type algorithmInfoJSON struct {
	Method                   string    `json:"method"`
	FormationEfficiencyGain  float64   `json:"formation_efficiency_gain"`
	MaxDetourDistanceKM      float64   `json:"max_detour_distance_km"`
	MaxDivergenceKM          float64   `json:"max_divergence_km"`
	EvaluationOffsetsMinutes []float64 `json:"evaluation_offsets_minutes"`
	SearchWindowMinutes      float64   `json:"search_window_minutes"`
}

type DepartureJSON struct {
	Route         routeJSON            `json:"route"`
	Path          pathBlockJSON        `json:"path"`
	CostAnalysis  costBlockJSON        `json:"cost_analysis"`
	Connections   connectionsBlockJSON `json:"connections"`
	Statistics    statisticsJSON       `json:"statistics"`
	AlgorithmInfo algorithmInfoJSON    `json:"algorithm_info"`
}

// }}}

// {{{ DepartureHandler

// DepartureHandler implements GET /api/departure: given a route and a
// scheduled departure time, shift the departure around the schedule and
// report the cheapest time to leave, given the flights already stored.
//   ?origin=SFO&dest=JFK                airport codes
//   &scheduled=2026-01-02T15:04:05Z     RFC3339, or "2026-01-02 15:04"
//   &duration=300                       optional flight minutes
//   &origin_lat=37.6&origin_long=-122.4 optional coordinate overrides
func DepartureHandler(db fstore.FormationDB, w http.ResponseWriter, r *http.Request) {
	req,err := formValueFollowRequest(db, r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err)
		return
	}

	opt := fdb.DefaultFollowOptions()
	if v := widget.FormValueFloat64EatErrs(r, "maxdetourkm"); v > 0 {
		opt.MaxDetourKM = v
	}
	if v := widget.FormValueFloat64EatErrs(r, "maxdivergencekm"); v > 0 {
		opt.MaxDivergenceKM = v
	}

	ctx := db.Ctx()
	rec,err := fdb.OptimizeDeparture(ctx, &db, req, opt)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err)
		return
	}

	WriteEncodedData(w, departureToJSON(ctx, &db, req, opt, rec))
}

// }}}
// {{{ formValueFollowRequest

func formValueFollowRequest(db fstore.FormationDB, r *http.Request) (fdb.FollowRequest, error) {
	req := fdb.FollowRequest{}

	origin := strings.ToUpper(r.FormValue("origin"))
	dest := strings.ToUpper(r.FormValue("dest"))
	if origin == "" || dest == "" {
		return req, fmt.Errorf("need url args 'origin' and 'dest' (airport codes)")
	}
	req.OriginAirport, req.DestinationAirport = origin, dest

	if pos := geo.FormValueLatlong(r, "origin"); !pos.IsNil() {
		req.Origin = pos
	} else if pos,err := resolveAirport(db, origin); err != nil {
		return req, err
	} else {
		req.Origin = pos
	}

	if pos := geo.FormValueLatlong(r, "dest"); !pos.IsNil() {
		req.Destination = pos
	} else if pos,err := resolveAirport(db, dest); err != nil {
		return req, err
	} else {
		req.Destination = pos
	}

	sched := r.FormValue("scheduled")
	if sched == "" {
		return req, fmt.Errorf("need url arg 'scheduled' (departure time)")
	}
	t,err := parseTimeArg(sched)
	if err != nil {
		return req, err
	}
	req.ScheduledDeparture = t

	if mins := widget.FormValueFloat64EatErrs(r, "duration"); mins > 0 {
		req.Duration = time.Duration(mins * float64(time.Minute))
	}

	return req, nil
}

// resolveAirport finds coordinates for an airport code: the builtin
// reference table first, then the position recorded against the most
// recently stored flight touching it.
func resolveAirport(db fstore.FormationDB, code string) (geo.Latlong, error) {
	if nl,ok := ref.Lookup(code); ok {
		return nl.Latlong, nil
	}

	if f,err := db.LookupMostRecent(db.NewQuery().ByOrigin(code)); err != nil {
		return geo.Latlong{}, err
	} else if f != nil {
		return f.Origin.Pos, nil
	}
	if f,err := db.LookupMostRecent(db.NewQuery().ByDestination(code)); err != nil {
		return geo.Latlong{}, err
	} else if f != nil {
		return f.Destination.Pos, nil
	}

	return geo.Latlong{}, fmt.Errorf("airport %q not known", code)
}

// }}}
// {{{ numPartners

func numPartners(fr fdb.FollowingResult) int {
	if fr.HasPartner() {
		return 1
	}
	return 0
}

// }}}
// {{{ departureToJSON

func departureToJSON(ctx context.Context, src fdb.TrajectorySource, req fdb.FollowRequest, opt fdb.FollowOptions, rec fdb.DepartureRecommendation) DepartureJSON {
	best := rec.Best
	gainPct := opt.EfficiencyGain * 100.0

	scheduledPath := fdb.SynthesizePath(req.Origin, req.Destination, req.ScheduledDeparture,
		req.EffectiveDuration(opt.CruiseKMH), fdb.KPathStepDuration)

	rate := 0.0
	if best.Cost.TotalSegments > 0 {
		rate = float64(best.Cost.ConnectedSegments) / float64(best.Cost.TotalSegments) * 100.0
	}

	connections := []connectionJSON{}
	partnerPaths := map[string][]PathNodeJSON{}
	if best.HasPartner() && best.FollowStart >= 0 && best.FollowStart < len(best.Path) {
		var partnerPath fdb.FlightPath
		if pp,err := src.Trajectory(ctx, best.FollowedFlightId); err == nil && len(pp) > 0 {
			partnerPath = pp
			partnerPaths[best.FollowedFlightId] = pathToJSON(pp)
		}

		node := best.Path[best.FollowStart]
		partnerTimestamp := node.TimestampUTC.UTC().Format(time.RFC3339)
		dist := 0.0
		if best.InterceptIdx >= 0 && best.InterceptIdx < len(partnerPath) {
			pnode := partnerPath[best.InterceptIdx]
			partnerTimestamp = pnode.TimestampUTC.UTC().Format(time.RFC3339)
			dist = fdb.DistanceKM(node.Latlong, pnode.Latlong)
		}

		connections = append(connections, connectionJSON{
			NodeIndex: best.FollowStart,
			Position: positionJSON{Lat: node.Lat, Lon: node.Long,
				Timestamp: node.TimestampUTC.UTC().Format(time.RFC3339)},
			Partner:        partnerRefJSON{FlightId: best.FollowedFlightId, Timestamp: partnerTimestamp},
			DistanceKM:     dist,
			EfficiencyGain: gainPct,
			SegmentSavings: best.FollowingKM * opt.EfficiencyGain,
		})
	}

	avgCost, avgSavings := 0.0, 0.0
	if n := len(rec.Evaluations); n > 0 {
		for _,ev := range rec.Evaluations {
			avgCost += ev.Cost.TotalCost
			avgSavings += ev.Cost.Savings
		}
		avgCost /= float64(n)
		avgSavings /= float64(n)
	}
	reduction := 0.0
	if avgCost > 0 {
		reduction = (avgCost - best.Cost.TotalCost) / avgCost * 100.0
	}

	offsets := make([]float64, 0, len(opt.Offsets))
	window := 0.0
	for _,o := range opt.Offsets {
		mins := o.Minutes()
		offsets = append(offsets, mins)
		if a := math.Abs(mins); a > window {
			window = a
		}
	}

	return DepartureJSON{
		Route: routeJSON{
			Origin:             req.OriginAirport,
			Destination:        req.DestinationAirport,
			ScheduledDeparture: req.ScheduledDeparture.UTC().Format(time.RFC3339),
			OptimalDeparture:   rec.OptimalDeparture.UTC().Format(time.RFC3339),
			TimeOffsetMinutes:  rec.OffsetMinutes,
		},
		Path: pathBlockJSON{
			OptimalFlightPath:  pathToJSON(best.Path),
			OriginalFlightPath: pathToJSON(scheduledPath),
			TotalSegments:      best.Cost.TotalSegments,
			ConnectedSegments:  best.Cost.ConnectedSegments,
			ConnectionRate:     rate,
		},
		CostAnalysis: costBlockJSON{
			SoloCost:                    best.Cost.SoloCost,
			TotalCost:                   best.Cost.TotalCost,
			TotalSavings:                best.Cost.Savings,
			SavingsPercent:              best.Cost.SavingsPercent,
			EfficiencyGainPerConnection: gainPct,
		},
		Connections: connectionsBlockJSON{
			TotalPartners:      numPartners(best),
			TotalConnections:   len(connections),
			ConnectionDetails:  connections,
			PartnerFlightPaths: partnerPaths,
			FollowedFlightId:   best.FollowedFlightId,
		},
		Statistics: statisticsJSON{
			AverageCostAllTimes:    avgCost,
			AverageSavingsAllTimes: avgSavings,
			OptimalCost:            best.Cost.TotalCost,
			OptimalSavings:         best.Cost.Savings,
			CostReductionVsAverage: reduction,
		},
		AlgorithmInfo: algorithmInfoJSON{
			Method:                   "flight_following_with_detour",
			FormationEfficiencyGain:  gainPct,
			MaxDetourDistanceKM:      opt.MaxDetourKM,
			MaxDivergenceKM:          opt.MaxDivergenceKM,
			EvaluationOffsetsMinutes: offsets,
			SearchWindowMinutes:      window,
		},
	}
}

// }}}

// {{{ -------------------------={ E N D }=----------------------------------

// Local variables:
// folded-file: t
// end:

// }}}
