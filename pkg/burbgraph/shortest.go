package burbgraph

import (
	"math"

	"github.com/katalvlaran/lvlath/dijkstra"
)

// ShortestPath returns the minimum-length directed path from u to v,
// weighted by edge length (spec §4.B "shortest directed path by
// length"), as an ordered list of edge references plus its total length.
// Returns ok=false if v is unreachable from u.
func (g *Graph) ShortestPath(u, v NodeID) (path []EdgeRef, length float64, ok bool) {
	if !g.HasNode(u) || !g.HasNode(v) {
		return nil, 0, false
	}
	if u == v {
		return nil, 0, true
	}

	dist, prev, err := dijkstra.Dijkstra(g.g, dijkstra.Source(string(u)), dijkstra.WithReturnPath())
	if err != nil {
		return nil, 0, false
	}
	w, reached := dist[string(v)]
	if !reached || w == math.MaxInt64 {
		return nil, 0, false
	}

	// Reconstruct the vertex sequence from prev, then pick one concrete
	// parallel edge per hop whose weight matches the distance delta.
	var nodes []NodeID
	for cur := string(v); ; {
		nodes = append(nodes, NodeID(cur))
		p, ok := prev[cur]
		if !ok || p == "" {
			break
		}
		cur = p
	}
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
	if len(nodes) == 0 || nodes[0] != u {
		return nil, 0, false
	}

	refs := make([]EdgeRef, 0, len(nodes)-1)
	for i := 0; i+1 < len(nodes); i++ {
		a, b := nodes[i], nodes[i+1]
		want := dist[string(b)] - dist[string(a)]
		ref, ok := cheapestEdge(g, a, b, want)
		if !ok {
			return nil, 0, false
		}
		refs = append(refs, ref)
		length += fromWeight(want)
	}
	return refs, length, true
}

// cheapestEdge picks the parallel edge a->b whose weight is closest to
// want, breaking ties by the smallest key for determinism.
func cheapestEdge(g *Graph, a, b NodeID, want int64) (EdgeRef, bool) {
	candidates := g.EdgesBetween(a, b)
	if len(candidates) == 0 {
		return EdgeRef{}, false
	}
	best := candidates[0]
	bestDelta := int64(math.MaxInt64)
	for _, ref := range candidates {
		d, ok := g.Edge(ref)
		if !ok {
			continue
		}
		delta := toWeight(d.Length) - want
		if delta < 0 {
			delta = -delta
		}
		if delta < bestDelta {
			bestDelta = delta
			best = ref
		}
	}
	return best, true
}
