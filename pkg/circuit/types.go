// Package circuit builds an Eulerian circuit over a balanced, connected
// graph (spec §4.E) and emits it as a Track of route points, straight
// line points, and direction markers.
package circuit

import (
	"github.com/Audacity88/optiburb/pkg/burbgraph"
	"github.com/Audacity88/optiburb/pkg/geo"
)

// CircuitEdge is one (u, v, edge_data) triple in traversal order (spec
// §3/§6), enriched with each endpoint's coordinates so track emission
// never needs to thread the graph back through.
type CircuitEdge struct {
	U, V           burbgraph.NodeID
	UCoord, VCoord geo.Coordinate
	Data           burbgraph.EdgeData
}

// Circuit is the ordered sequence of edges Hierholzer produced.
type Circuit []CircuitEdge

// TrackPointKind classifies a track point (spec §6).
type TrackPointKind string

const (
	KindRoute        TrackPointKind = "route"
	KindStraightLine TrackPointKind = "straight_line"
	KindDirection    TrackPointKind = "direction"
)

// TrackPoint is one emitted point (spec §6).
type TrackPoint struct {
	Coord      geo.Coordinate
	Kind       TrackPointKind
	Bearing    float64
	HasBearing bool
}

// Track holds the two emitted segment lists plus the distance
// accounting spec §4.E step 4 asks for.
type Track struct {
	Real     []TrackPoint
	Straight []TrackPoint

	TotalDistance        float64
	BacktrackDistance     float64
	StraightLineDistance float64
}
