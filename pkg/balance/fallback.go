package balance

import (
	"github.com/Audacity88/optiburb/pkg/burbgraph"
	"github.com/Audacity88/optiburb/pkg/geo"
)

// Validate is balancer Phase 3 (spec §4.C): after connectivity repair
// and flow balancing, any node still out of balance gets a direct
// fallback edge -- an existing edge's reverse if one is missing, or a
// synthetic straight line as a last resort -- repeated until every
// node satisfies in(v) == out(v) or no further fallback is possible.
//
// Returns the number of fallback edges added and whether every node
// ended up balanced.
func Validate(g *burbgraph.Graph) (fallbackEdges int, balanced bool) {
	for {
		unbalanced := unbalancedNodes(g)
		if len(unbalanced) == 0 {
			return fallbackEdges, true
		}

		progressed := false
		for _, v := range unbalanced {
			if addFallbackEdge(g, v) {
				fallbackEdges++
				progressed = true
			}
		}
		if !progressed {
			return fallbackEdges, false
		}
	}
}

func unbalancedNodes(g *burbgraph.Graph) []burbgraph.NodeID {
	var out []burbgraph.NodeID
	for _, v := range g.Nodes() {
		if g.InDegree(v) != g.OutDegree(v) {
			out = append(out, v)
		}
	}
	return out
}

// addFallbackEdge tries, in order: duplicating an existing edge touching
// v in the direction v needs, then a synthetic straight line to the
// nearest node that also needs the opposite direction.
func addFallbackEdge(g *burbgraph.Graph, v burbgraph.NodeID) bool {
	in, out := g.InDegree(v), g.OutDegree(v)
	switch {
	case in > out:
		return addOutboundFallback(g, v)
	case out > in:
		return addInboundFallback(g, v)
	default:
		return false
	}
}

// addOutboundFallback gives v one more outgoing edge: it reuses an
// existing inbound edge's reverse direction if absent, else a straight
// line to the nearest node that needs an extra inbound edge.
func addOutboundFallback(g *burbgraph.Graph, v burbgraph.NodeID) bool {
	for _, ref := range g.InEdges(v) {
		if len(g.EdgesBetween(v, ref.U)) > 0 {
			continue
		}
		d, ok := g.Edge(ref)
		if !ok {
			continue
		}
		rev := d.Clone()
		rev.Geometry = geo.Reverse(d.Geometry)
		rev.Augmented = true
		rev.Connecting = true
		if _, err := g.AddEdge(v, ref.U, rev); err == nil {
			return true
		}
	}
	return straightLineFallback(g, v, true)
}

// addInboundFallback gives v one more incoming edge, symmetric to
// addOutboundFallback.
func addInboundFallback(g *burbgraph.Graph, v burbgraph.NodeID) bool {
	for _, ref := range g.OutEdges(v) {
		if len(g.EdgesBetween(ref.V, v)) > 0 {
			continue
		}
		d, ok := g.Edge(ref)
		if !ok {
			continue
		}
		rev := d.Clone()
		rev.Geometry = geo.Reverse(d.Geometry)
		rev.Augmented = true
		rev.Connecting = true
		if _, err := g.AddEdge(ref.V, v, rev); err == nil {
			return true
		}
	}
	return straightLineFallback(g, v, false)
}

// straightLineFallback adds a synthetic straight-line edge between v and
// the nearest other node whose imbalance is the opposite of v's (it has
// more outgoing than incoming edges if wantOutbound, more incoming than
// outgoing otherwise), oriented outbound from v if wantOutbound,
// otherwise inbound to v.
func straightLineFallback(g *burbgraph.Graph, v burbgraph.NodeID, wantOutbound bool) bool {
	cv, ok := g.Coord(v)
	if !ok {
		return false
	}

	var nearest burbgraph.NodeID
	found := false
	best := -1.0
	for _, other := range g.Nodes() {
		if other == v {
			continue
		}
		in, out := g.InDegree(other), g.OutDegree(other)
		if (wantOutbound && out <= in) || (!wantOutbound && in <= out) {
			continue
		}
		co, _ := g.Coord(other)
		d := geo.Distance(cv, co)
		if !found || d < best {
			best, nearest, found = d, other, true
		}
	}
	if !found {
		return false
	}

	data := burbgraph.EdgeData{IsStraightLine: true, Augmented: true, Connecting: true}
	if wantOutbound {
		cn, _ := g.Coord(nearest)
		data.Geometry = geo.Polyline{cv, cn}
		data.Length = geo.Distance(cv, cn)
		_, err := g.AddEdge(v, nearest, data)
		return err == nil
	}
	cn, _ := g.Coord(nearest)
	data.Geometry = geo.Polyline{cn, cv}
	data.Length = geo.Distance(cn, cv)
	_, err := g.AddEdge(nearest, v, data)
	return err == nil
}
