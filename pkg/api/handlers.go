package api

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"mime"
	"net/http"

	"github.com/Audacity88/optiburb/pkg/burbtypes"
	"github.com/Audacity88/optiburb/pkg/circuit"
	"github.com/Audacity88/optiburb/pkg/geo"
	"github.com/Audacity88/optiburb/pkg/mapsource"
	"github.com/Audacity88/optiburb/pkg/solver"
)

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	src   mapsource.MapSource
	stats StatsResponse
}

// NewHandlers creates handlers that solve against src.
func NewHandlers(src mapsource.MapSource, stats StatsResponse) *Handlers {
	return &Handlers{src: src, stats: stats}
}

// HandleSolve handles POST /api/v1/solve.
func (h *Handlers) HandleSolve(w http.ResponseWriter, r *http.Request) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		writeError(w, http.StatusBadRequest, "invalid_request", "", "expected application/json")
		return
	}

	var req SolveRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "", err.Error())
		return
	}
	if len(req.RegionPolygon) < 3 {
		writeError(w, http.StatusBadRequest, "invalid_request", "", "region_polygon needs at least 3 points")
		return
	}
	for _, p := range req.RegionPolygon {
		if err := validateCoord(p); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_coordinates", "region_polygon", err.Error())
			return
		}
	}

	opts := burbtypes.DefaultOptions()
	opts.Simplify = req.Simplify
	opts.Prune = req.Prune
	opts.SimplifyGPX = req.SimplifyGPX
	opts.FeatureDeadend = req.FeatureDeadend
	opts.ExcludeCompleted = req.ExcludeCompleted
	if req.ArrowInterval > 0 {
		opts.ArrowInterval = req.ArrowInterval
	}
	if req.Start != nil {
		if err := validateCoord(*req.Start); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_coordinates", "start", err.Error())
			return
		}
		opts.Start = &burbtypes.StartLocation{Coords: toCoord(*req.Start), HasCoords: true}
	}

	solveReq := solver.Request{
		Region:  toPolygon(req.RegionPolygon),
		Options: opts,
	}
	if len(req.CompletedArea) >= 3 {
		solveReq.CompletedArea = &mapsource.CompletedArea{Polygon: toPolygon(req.CompletedArea)}
	}

	res, err := solver.Solve(r.Context(), h.src, solveReq, nil)
	if err != nil {
		writeSolveError(w, err)
		return
	}

	resp := SolveResponse{
		TotalDistanceMeters:     res.Track.TotalDistance,
		BacktrackDistanceMeters: res.Track.BacktrackDistance,
		RealPoints:              toPointsJSON(res.Track.Real),
		StraightPoints:          toPointsJSON(res.Track.Straight),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
}

// HandleStats handles GET /api/v1/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.stats)
}

func validateCoord(ll LatLngJSON) error {
	if math.IsNaN(ll.Lat) || math.IsNaN(ll.Lng) || math.IsInf(ll.Lat, 0) || math.IsInf(ll.Lng, 0) {
		return errors.New("coordinates must be finite numbers")
	}
	if ll.Lat < -90 || ll.Lat > 90 || ll.Lng < -180 || ll.Lng > 180 {
		return errors.New("coordinates out of range")
	}
	return nil
}

func toCoord(ll LatLngJSON) geo.Coordinate {
	return geo.Coordinate{ll.Lng, ll.Lat}
}

func toPolygon(pts []LatLngJSON) geo.Polyline {
	out := make(geo.Polyline, len(pts))
	for i, p := range pts {
		out[i] = toCoord(p)
	}
	return out
}

func toPointsJSON(points []circuit.TrackPoint) []TrackPointJSON {
	out := make([]TrackPointJSON, len(points))
	for i, p := range points {
		j := TrackPointJSON{Lat: p.Coord[1], Lng: p.Coord[0], Kind: string(p.Kind)}
		if p.HasBearing {
			b := p.Bearing
			j.BearingDeg = &b
		}
		out[i] = j
	}
	return out
}

func writeError(w http.ResponseWriter, status int, code, phase, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: code, Phase: phase, Message: message})
}

// writeSolveError maps a burbtypes.SolveError's Kind to an HTTP status
// the way the teacher's router mapped ErrPointTooFar/ErrNoRoute.
func writeSolveError(w http.ResponseWriter, err error) {
	var se *burbtypes.SolveError
	if !errors.As(err, &se) {
		writeError(w, http.StatusInternalServerError, "internal_error", "", err.Error())
		return
	}
	status := http.StatusUnprocessableEntity
	switch se.Kind {
	case burbtypes.KindEmptyRegion, burbtypes.KindGeometryInvalid, burbtypes.KindNoPathToStart:
		status = http.StatusBadRequest
	case burbtypes.KindExternalFailure:
		status = http.StatusBadGateway
	case burbtypes.KindUnbalanceableGraph, burbtypes.KindNotConnected, burbtypes.KindCircuitIncomplete:
		status = http.StatusUnprocessableEntity
	}
	if errors.Is(err, context.DeadlineExceeded) {
		status = http.StatusServiceUnavailable
	}
	writeError(w, status, string(se.Kind), se.Phase, se.Message)
}
