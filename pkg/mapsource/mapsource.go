// Package mapsource defines the inward boundary of the route solver
// (spec §6): the LoadRequest/CompletedArea value types and
// the MapSource interface an external collaborator implements to hand
// the solver a raw road network. Fetching the data itself (tiles, OSM
// PBF extracts, a database) is out of scope (spec §1) -- this package
// only describes the shape of what crosses the boundary.
package mapsource

import (
	"context"

	"github.com/paulmach/osm"

	"github.com/Audacity88/optiburb/pkg/geo"
)

// LoadRequest describes the area and filtering a caller wants loaded.
type LoadRequest struct {
	RegionPolygon geo.Polyline // ring of at least 3 points; the first point need not be repeated as the last
	NetworkFilter NetworkFilter
	SimplifyFlag  bool
	BufferMeters  float64
}

// NetworkFilter decides whether a tagged way should be part of the
// loadable network, and in which directions it may be traversed.
type NetworkFilter func(tags osm.Tags) (accessible bool, forward bool, backward bool)

// CompletedArea is the optional "already done" polygon (spec §6).
type CompletedArea struct {
	Polygon geo.Polyline
}

// RawNode is one node as handed over by a MapSource, before the solver
// assigns it into its own graph store.
type RawNode struct {
	ID    string
	Coord geo.Coordinate
}

// RawEdge is one directed edge as handed over by a MapSource. Geometry
// may be nil/empty, in which case the loader synthesizes a straight
// line between the endpoints and marks it IsStraightLine (spec §6).
type RawEdge struct {
	From     string
	To       string
	Geometry geo.Polyline
	Tags     map[string]string
}

// RawGraph is the complete payload a MapSource returns for one request.
type RawGraph struct {
	Nodes []RawNode
	Edges []RawEdge
}

// MapSource is the external collaborator that turns a LoadRequest into a
// raw road network. Implementations fetch from tiles, OSM extracts, or
// (for tests and the CLI harness) an in-memory fixture.
type MapSource interface {
	Load(ctx context.Context, req LoadRequest) (*RawGraph, error)
}
