package circuit

import (
	"fmt"

	"github.com/Audacity88/optiburb/pkg/burbgraph"
	"github.com/Audacity88/optiburb/pkg/burbtypes"
)

// SelectStart implements spec §4.E step 1: if the caller supplied a
// start location, the circuit begins at its nearest graph node;
// otherwise it begins at the first node in deterministic iteration
// order.
func SelectStart(g *burbgraph.Graph, start *burbtypes.StartLocation) (burbgraph.NodeID, error) {
	if start != nil && start.HasCoords {
		id, ok := g.NearestNode(start.Coords)
		if !ok {
			return "", burbtypes.NewError(burbtypes.KindNoPathToStart, "circuit",
				"no graph node is near the requested start coordinates", nil)
		}
		return id, nil
	}
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return "", burbtypes.NewError(burbtypes.KindEmptyRegion, "circuit", "graph has no nodes", nil)
	}
	return nodes[0], nil
}

// Build runs Hierholzer's algorithm over g starting at start, producing
// the ordered edge sequence of an Eulerian circuit (spec §4.E steps
// 2-3). g must already be balanced (in-degree equals out-degree at
// every node) and weakly connected; Build checks both and fails with
// KindUnbalanceableGraph / KindNotConnected rather than looping
// forever or producing a partial circuit.
func Build(g *burbgraph.Graph, start burbgraph.NodeID) (Circuit, error) {
	if g.NumNodes() == 0 {
		return nil, burbtypes.NewError(burbtypes.KindEmptyRegion, "circuit", "graph has no nodes", nil)
	}
	for _, v := range g.Nodes() {
		if g.InDegree(v) != g.OutDegree(v) {
			return nil, burbtypes.NewError(burbtypes.KindUnbalanceableGraph, "circuit",
				fmt.Sprintf("node %s has in-degree %d, out-degree %d", v, g.InDegree(v), g.OutDegree(v)), nil)
		}
	}
	if comps := g.WeaklyConnectedComponents(); len(comps) > 1 {
		return nil, burbtypes.NewError(burbtypes.KindNotConnected, "circuit",
			fmt.Sprintf("graph has %d weakly connected components", len(comps)), nil)
	}
	if g.NumEdges() == 0 {
		return Circuit{}, nil // B2: trivial single-node region, empty circuit
	}
	if !g.HasNode(start) {
		return nil, burbtypes.NewError(burbtypes.KindNoPathToStart, "circuit", "start node not present in graph", nil)
	}

	avail := make(map[burbgraph.NodeID][]burbgraph.EdgeRef, g.NumNodes())
	for _, v := range g.Nodes() {
		avail[v] = append([]burbgraph.EdgeRef(nil), g.OutEdges(v)...)
	}

	// Classic iterative Hierholzer: walk unused edges until stuck, then
	// pop back along the walk, appending each popped vertex (and the
	// edge used to reach it) to the route. The resulting sequences come
	// out in reverse finishing order and must be reversed at the end.
	vstack := []burbgraph.NodeID{start}
	var edgeToHere []burbgraph.EdgeRef
	var routeVerts []burbgraph.NodeID
	var routeEdges []burbgraph.EdgeRef

	for len(vstack) > 0 {
		v := vstack[len(vstack)-1]
		if es := avail[v]; len(es) > 0 {
			e := es[len(es)-1]
			avail[v] = es[:len(es)-1]
			vstack = append(vstack, e.V)
			edgeToHere = append(edgeToHere, e)
			continue
		}
		routeVerts = append(routeVerts, v)
		vstack = vstack[:len(vstack)-1]
		if n := len(edgeToHere); n > 0 {
			routeEdges = append(routeEdges, edgeToHere[n-1])
			edgeToHere = edgeToHere[:n-1]
		}
	}
	reverseNodeSlice(routeVerts)
	reverseEdgeSlice(routeEdges)

	if len(routeEdges) != g.NumEdges() {
		return nil, burbtypes.NewError(burbtypes.KindCircuitIncomplete, "circuit",
			fmt.Sprintf("used %d of %d edges", len(routeEdges), g.NumEdges()), nil)
	}
	if len(routeVerts) == 0 || routeVerts[0] != routeVerts[len(routeVerts)-1] {
		return nil, burbtypes.NewError(burbtypes.KindCircuitIncomplete, "circuit", "circuit does not return to its start", nil)
	}
	for i := 0; i+1 < len(routeEdges); i++ {
		if routeEdges[i].V != routeEdges[i+1].U {
			return nil, burbtypes.NewError(burbtypes.KindCircuitIncomplete, "circuit", "circuit edges do not chain", nil)
		}
	}

	out := make(Circuit, len(routeEdges))
	for i, ref := range routeEdges {
		d, _ := g.Edge(ref)
		uc, _ := g.Coord(ref.U)
		vc, _ := g.Coord(ref.V)
		out[i] = CircuitEdge{U: ref.U, V: ref.V, UCoord: uc, VCoord: vc, Data: d}
	}
	return out, nil
}

func reverseNodeSlice(s []burbgraph.NodeID) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func reverseEdgeSlice(s []burbgraph.EdgeRef) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
