package burbgraph

import (
	"fmt"

	"github.com/Audacity88/optiburb/pkg/geo"
)

// AddEdge adds a single directed edge u->v with the given attributes and
// returns its key. Multiple parallel edges between the same pair are
// allowed; each gets a distinct key.
func (g *Graph) AddEdge(u, v NodeID, data EdgeData) (string, error) {
	if _, ok := g.coords[u]; !ok {
		return "", fmt.Errorf("burbgraph: node %q has no coordinates", u)
	}
	if _, ok := g.coords[v]; !ok {
		return "", fmt.Errorf("burbgraph: node %q has no coordinates", v)
	}

	key, err := g.g.AddEdge(string(u), string(v), toWeight(data.Length))
	if err != nil {
		return "", err
	}
	wccKey, err := g.wcc.AddEdge(string(u), string(v), 0)
	if err != nil {
		// Should not happen once the directed add succeeded; undo it.
		_ = g.g.RemoveEdge(key)
		return "", err
	}

	stored := data.Clone()
	g.data[key] = &stored
	g.wccKeys = append(g.wccKeys, wccPair{realKey: key, viewKey: wccKey})
	return key, nil
}

// AddEdgePair adds a forward edge u->v with fwd and a reverse edge v->u
// whose geometry is the coordinate-reversed forward geometry, with the
// same IsStraightLine/Augmented flags copied across (spec §3 "Edge
// provenance invariant" -- the single place both directions of a newly
// synthesized pair are created together, so they can never drift).
func (g *Graph) AddEdgePair(u, v NodeID, fwd EdgeData) (fwdKey, revKey string, err error) {
	fwdKey, err = g.AddEdge(u, v, fwd)
	if err != nil {
		return "", "", err
	}
	rev := fwd.Clone()
	rev.Geometry = geo.Reverse(fwd.Geometry)
	revKey, err = g.AddEdge(v, u, rev)
	if err != nil {
		_ = g.RemoveEdge(EdgeRef{U: u, V: v, Key: fwdKey})
		return "", "", err
	}
	return fwdKey, revKey, nil
}

// RemoveEdge removes the edge identified by ref.
func (g *Graph) RemoveEdge(ref EdgeRef) error {
	if err := g.g.RemoveEdge(ref.Key); err != nil {
		return err
	}
	delete(g.data, ref.Key)
	for i, p := range g.wccKeys {
		if p.realKey == ref.Key {
			_ = g.wcc.RemoveEdge(p.viewKey)
			g.wccKeys = append(g.wccKeys[:i], g.wccKeys[i+1:]...)
			break
		}
	}
	return nil
}

// Edge returns the attributes of one edge, or false if it does not exist.
func (g *Graph) Edge(ref EdgeRef) (EdgeData, bool) {
	d, ok := g.data[ref.Key]
	if !ok {
		return EdgeData{}, false
	}
	return *d, true
}

// SetEdge replaces the attributes stored for ref.
func (g *Graph) SetEdge(ref EdgeRef, data EdgeData) {
	if _, ok := g.data[ref.Key]; ok {
		stored := data.Clone()
		g.data[ref.Key] = &stored
	}
}

// Edges returns every edge in the graph, in deterministic order.
func (g *Graph) Edges() []EdgeRef {
	es := g.g.Edges()
	refs := make([]EdgeRef, 0, len(es))
	for _, e := range es {
		refs = append(refs, EdgeRef{U: NodeID(e.From), V: NodeID(e.To), Key: e.ID})
	}
	return sortedEdgeRefs(refs)
}

// EdgesBetween returns every edge key for directed edges from u to v.
func (g *Graph) EdgesBetween(u, v NodeID) []EdgeRef {
	var out []EdgeRef
	for _, e := range g.g.Edges() {
		if e.From == string(u) && e.To == string(v) {
			out = append(out, EdgeRef{U: u, V: v, Key: e.ID})
		}
	}
	return sortedEdgeRefs(out)
}

// OutEdges returns every edge key for directed edges leaving u.
func (g *Graph) OutEdges(u NodeID) []EdgeRef {
	var out []EdgeRef
	for _, e := range g.g.Edges() {
		if e.From == string(u) {
			out = append(out, EdgeRef{U: u, V: NodeID(e.To), Key: e.ID})
		}
	}
	return sortedEdgeRefs(out)
}

// InEdges returns every edge key for directed edges arriving at v.
func (g *Graph) InEdges(v NodeID) []EdgeRef {
	var out []EdgeRef
	for _, e := range g.g.Edges() {
		if e.To == string(v) {
			out = append(out, EdgeRef{U: NodeID(e.From), V: v, Key: e.ID})
		}
	}
	return sortedEdgeRefs(out)
}

// InDegree returns the number of edges arriving at v.
func (g *Graph) InDegree(v NodeID) int {
	in, _, _, err := g.g.Degree(string(v))
	if err != nil {
		return 0
	}
	return in
}

// OutDegree returns the number of edges leaving v.
func (g *Graph) OutDegree(v NodeID) int {
	_, out, _, err := g.g.Degree(string(v))
	if err != nil {
		return 0
	}
	return out
}

// Clone returns a deep copy of the graph, independent of the receiver.
func (g *Graph) Clone() *Graph {
	out := New()
	for id, c := range g.coords {
		_ = out.AddNode(id, c)
	}
	for _, ref := range g.Edges() {
		d, _ := g.Edge(ref)
		_, _ = out.AddEdge(ref.U, ref.V, d)
	}
	return out
}

type wccPair struct {
	realKey string
	viewKey string
}
