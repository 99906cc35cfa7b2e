// Package burbgraph is the directed multigraph store (spec §4.B): nodes
// carry coordinates, edges carry geometry and provenance flags, and
// parallel edges between the same pair are distinguished by key.
//
// The store is a thin domain layer over github.com/katalvlaran/lvlath/core:
// lvlath's Graph already gives us a weighted, directed, multi-edge graph
// with stable string vertex/edge IDs, in/out degree, and deterministic
// iteration order. We keep edge attributes the spec cares about (geometry,
// is_straight_line, augmented, connecting, tags) in a side table keyed by
// lvlath's edge ID, since core.Graph only stores an int64 weight per edge.
package burbgraph

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/lvlath/core"

	"github.com/Audacity88/optiburb/pkg/geo"
)

// NodeID is a stable opaque node key (spec §3).
type NodeID string

// weightScale quantizes a float64 degree-unit length into the int64
// weight lvlath's core.Graph requires, the same way the teacher quantizes
// distances into millimeter integers for its CSR graph.
const weightScale = 1e9

func toWeight(length float64) int64 {
	if length < 0 {
		length = 0
	}
	return int64(math.Round(length * weightScale))
}

func fromWeight(w int64) float64 {
	return float64(w) / weightScale
}

// EdgeData is the tagged attribute record carried by every edge (spec §9
// "dynamic edge attribute bags" re-architecture note).
type EdgeData struct {
	Geometry       geo.Polyline
	Length         float64
	IsStraightLine bool
	Augmented      bool
	Connecting     bool
	Tags           map[string]string
}

// Clone returns a deep copy of d; polylines and tag maps are never shared
// between copies (spec §9 "object identity of polylines").
func (d EdgeData) Clone() EdgeData {
	out := d
	if d.Geometry != nil {
		out.Geometry = append(geo.Polyline(nil), d.Geometry...)
	}
	if d.Tags != nil {
		out.Tags = make(map[string]string, len(d.Tags))
		for k, v := range d.Tags {
			out.Tags[k] = v
		}
	}
	return out
}

// EdgeRef identifies one directed edge among possibly-parallel edges
// between the same pair (spec §4.B "edge identity is (u,v,key)").
type EdgeRef struct {
	U, V NodeID
	Key  string
}

// Graph is the directed multigraph store.
type Graph struct {
	g      *core.Graph
	wcc    *core.Graph // unweighted undirected mirror, for component/BFS views
	coords map[NodeID]geo.Coordinate
	data   map[string]*EdgeData // lvlath edge ID -> attributes
	wccKeys []wccPair            // real edge ID <-> wcc-view edge ID, kept in lockstep

	nearest      *nearestIndex // spatial grid over coords, rebuilt lazily
	nearestDirty bool
}

// New creates an empty graph store.
func New() *Graph {
	return &Graph{
		g:      core.NewGraph(core.WithDirected(true), core.WithWeighted(), core.WithMultiEdges()),
		wcc:    core.NewGraph(core.WithDirected(false), core.WithMultiEdges()),
		coords: make(map[NodeID]geo.Coordinate),
		data:   make(map[string]*EdgeData),
	}
}

// AddNode registers id with the given coordinates. Calling it again for
// an existing id updates its coordinates (idempotent, per lvlath's
// AddVertex semantics).
func (g *Graph) AddNode(id NodeID, c geo.Coordinate) error {
	if err := g.g.AddVertex(string(id)); err != nil {
		return err
	}
	if err := g.wcc.AddVertex(string(id)); err != nil {
		return err
	}
	g.coords[id] = c
	g.nearestDirty = true
	return nil
}

// HasNode reports whether id has been registered.
func (g *Graph) HasNode(id NodeID) bool {
	return g.g.HasVertex(string(id))
}

// RemoveNode deletes id and every edge incident to it.
func (g *Graph) RemoveNode(id NodeID) error {
	if !g.HasNode(id) {
		return fmt.Errorf("burbgraph: node %q not found", id)
	}
	removed := make(map[string]bool)
	for _, e := range g.g.Edges() {
		if e.From == string(id) || e.To == string(id) {
			delete(g.data, e.ID)
			removed[e.ID] = true
		}
	}
	if err := g.g.RemoveVertex(string(id)); err != nil {
		return err
	}
	_ = g.wcc.RemoveVertex(string(id)) // removes incident wcc edges too
	kept := g.wccKeys[:0]
	for _, p := range g.wccKeys {
		if !removed[p.realKey] {
			kept = append(kept, p)
		}
	}
	g.wccKeys = kept
	delete(g.coords, id)
	g.nearestDirty = true
	return nil
}

// Coord returns the coordinates registered for id.
func (g *Graph) Coord(id NodeID) (geo.Coordinate, bool) {
	c, ok := g.coords[id]
	return c, ok
}

// Nodes returns every node ID, in deterministic (lexicographic) order.
func (g *Graph) Nodes() []NodeID {
	ids := g.g.Vertices()
	out := make([]NodeID, len(ids))
	for i, id := range ids {
		out[i] = NodeID(id)
	}
	return out
}

// NumNodes returns the node count.
func (g *Graph) NumNodes() int { return g.g.VertexCount() }

// NumEdges returns the edge count.
func (g *Graph) NumEdges() int { return g.g.EdgeCount() }

// sortedEdgeRefs sorts a slice of EdgeRef by (U, V, Key) for deterministic
// output.
func sortedEdgeRefs(refs []EdgeRef) []EdgeRef {
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].U != refs[j].U {
			return refs[i].U < refs[j].U
		}
		if refs[i].V != refs[j].V {
			return refs[i].V < refs[j].V
		}
		return refs[i].Key < refs[j].Key
	})
	return refs
}
