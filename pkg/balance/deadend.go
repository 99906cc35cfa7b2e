package balance

import (
	"github.com/Audacity88/optiburb/pkg/burbgraph"
	"github.com/Audacity88/optiburb/pkg/geo"
)

// ShortcutDeadEnds runs the optional dead-end pre-pass (spec §4.C): for
// every node with in-degree+out-degree == 1, it adds the one missing
// reverse edge so out-and-back traversal becomes possible. The dead-end
// node itself ends up balanced; the edge's other endpoint gains one
// extra in- or out-degree, which the later balance phases resolve.
func ShortcutDeadEnds(g *burbgraph.Graph) int {
	added := 0
	for _, v := range g.Nodes() {
		if g.InDegree(v)+g.OutDegree(v) != 1 {
			continue
		}

		var ref burbgraph.EdgeRef
		if out := g.OutEdges(v); len(out) == 1 {
			ref = out[0]
		} else if in := g.InEdges(v); len(in) == 1 {
			ref = in[0]
		} else {
			continue
		}

		if len(g.EdgesBetween(ref.V, ref.U)) > 0 {
			continue // reverse already present
		}

		data, ok := g.Edge(ref)
		if !ok {
			continue
		}
		rev := data.Clone()
		rev.Geometry = geo.Reverse(data.Geometry)
		rev.Augmented = true
		if _, err := g.AddEdge(ref.V, ref.U, rev); err == nil {
			added++
		}
	}
	return added
}
