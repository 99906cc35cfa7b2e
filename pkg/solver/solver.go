// Package solver orchestrates the full route-solve pipeline (spec §4,
// §5): load the raw network, drop already-completed roads, balance the
// graph into an Eulerian multigraph, walk the circuit, and emit a
// track. Each phase runs in strict sequence and reports progress
// through the caller's ProgressSink, matching the "Scheduling" and
// "Ordering guarantees" of spec §5.
package solver

import (
	"context"

	"github.com/Audacity88/optiburb/pkg/balance"
	"github.com/Audacity88/optiburb/pkg/burbgraph"
	"github.com/Audacity88/optiburb/pkg/burbtypes"
	"github.com/Audacity88/optiburb/pkg/circuit"
	"github.com/Audacity88/optiburb/pkg/completed"
	"github.com/Audacity88/optiburb/pkg/geo"
	"github.com/Audacity88/optiburb/pkg/mapsource"
)

// Request bundles everything a single solve needs from the caller.
type Request struct {
	Region        geo.Polyline
	NetworkFilter mapsource.NetworkFilter
	CompletedArea *mapsource.CompletedArea
	Options       burbtypes.Options
}

// Result is what a successful solve hands back to the caller.
type Result struct {
	Graph   *burbgraph.Graph
	Circuit circuit.Circuit
	Track   circuit.Track
}

// Solve runs the full pipeline described by spec §4 end to end.
func Solve(ctx context.Context, src mapsource.MapSource, req Request, sink burbtypes.ProgressSink) (*Result, error) {
	if sink == nil {
		sink = burbtypes.NopSink{}
	}

	sink.Progress(burbtypes.Event{Step: burbtypes.StepStarting, Percent: 0})
	sink.Progress(burbtypes.Event{Step: burbtypes.StepAreaDefined, Percent: 5})

	sink.Progress(burbtypes.Event{Step: burbtypes.StepLoadingMapData, Percent: 10})
	loadReq := mapsource.LoadRequest{
		RegionPolygon: req.Region,
		NetworkFilter: req.NetworkFilter,
		SimplifyFlag:  req.Options.Simplify,
		BufferMeters:  req.Options.BufferMeters,
	}
	g, err := loadGraph(ctx, src, loadReq, req.Options)
	if err != nil {
		return nil, err
	}

	sink.Progress(burbtypes.Event{Step: burbtypes.StepProcessingGraph, Percent: 25})
	if req.Options.ExcludeCompleted && req.CompletedArea != nil {
		g, err = completed.Filter(g, req.CompletedArea.Polygon, sink)
		if err != nil {
			return nil, err
		}
	}

	sink.Progress(burbtypes.Event{Step: burbtypes.StepBalancingGraph, Percent: 40})
	if _, err := balance.Balance(g, req.Options, sink); err != nil {
		return nil, err
	}

	sink.Progress(burbtypes.Event{Step: burbtypes.StepFindingCircuit, Percent: 70})
	start, err := circuit.SelectStart(g, req.Options.Start)
	if err != nil {
		return nil, err
	}
	c, err := circuit.Build(g, start)
	if err != nil {
		return nil, err
	}

	sink.Progress(burbtypes.Event{Step: burbtypes.StepCreatingGPX, Percent: 90})
	tr := circuit.EmitTrack(c, req.Options)
	if req.Options.SimplifyGPX {
		tr = circuit.SimplifyTrack(tr)
	}

	sink.Progress(burbtypes.Event{Step: burbtypes.StepComplete, Percent: 100})
	return &Result{Graph: g, Circuit: c, Track: tr}, nil
}
