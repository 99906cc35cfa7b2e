// Package fixture provides a trivial in-memory mapsource.MapSource, used
// by cmd/burbroute and by tests that need a MapSource without reaching
// out to a real tile/OSM provider (which stays out of this module's
// scope, per spec §1).
package fixture

import (
	"context"
	"fmt"

	"github.com/Audacity88/optiburb/pkg/geo"
	"github.com/Audacity88/optiburb/pkg/mapsource"
)

// Source is a fixed, pre-built road network served verbatim regardless
// of the requested region -- good enough for demos and deterministic
// tests, not a substitute for real map ingestion.
type Source struct {
	Nodes []mapsource.RawNode
	Edges []mapsource.RawEdge
}

// Load implements mapsource.MapSource.
func (s *Source) Load(_ context.Context, _ mapsource.LoadRequest) (*mapsource.RawGraph, error) {
	if len(s.Nodes) == 0 {
		return nil, fmt.Errorf("fixture: no nodes configured")
	}
	return &mapsource.RawGraph{Nodes: s.Nodes, Edges: s.Edges}, nil
}

// SquareBlock returns the spec's S1 scenario: a closed 1x1 degree block
// A->B->C->D->A with real road geometry on every edge.
func SquareBlock() *Source {
	coords := map[string]geo.Coordinate{
		"A": {0, 0},
		"B": {1, 0},
		"C": {1, 1},
		"D": {0, 1},
	}
	s := &Source{}
	for id, c := range coords {
		s.Nodes = append(s.Nodes, mapsource.RawNode{ID: id, Coord: c})
	}
	for _, pair := range [][2]string{{"A", "B"}, {"B", "C"}, {"C", "D"}, {"D", "A"}} {
		s.Edges = append(s.Edges, mapsource.RawEdge{
			From:     pair[0],
			To:       pair[1],
			Geometry: geo.Polyline{coords[pair[0]], coords[pair[1]]},
			Tags:     map[string]string{"highway": "residential"},
		})
	}
	return s
}

// OneWayLoop returns the spec's S2 scenario: A->B->C->D with no return
// path, forcing the balancer to synthesize one.
func OneWayLoop() *Source {
	coords := map[string]geo.Coordinate{
		"A": {0, 0},
		"B": {1, 0},
		"C": {1, 1},
		"D": {0, 1},
	}
	s := &Source{}
	for id, c := range coords {
		s.Nodes = append(s.Nodes, mapsource.RawNode{ID: id, Coord: c})
	}
	for _, pair := range [][2]string{{"A", "B"}, {"B", "C"}, {"C", "D"}} {
		s.Edges = append(s.Edges, mapsource.RawEdge{
			From:     pair[0],
			To:       pair[1],
			Geometry: geo.Polyline{coords[pair[0]], coords[pair[1]]},
			Tags:     map[string]string{"highway": "residential", "oneway": "yes"},
		})
	}
	return s
}
