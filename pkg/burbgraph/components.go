package burbgraph

import (
	"sort"

	"github.com/katalvlaran/lvlath/bfs"
)

// WeaklyConnectedComponents partitions the nodes into weakly connected
// components (spec §4.B). It runs over the unweighted undirected mirror
// kept in lockstep with the real directed graph -- lvlath's bfs.BFS
// refuses weighted graphs outright (ErrWeightedGraph), which is exactly
// why the store keeps a parallel unweighted "view" rather than running
// BFS on the weighted graph directly (spec §4.B "shortest undirected
// path over a view").
//
// Components are returned largest-first, node IDs sorted within each
// component, for deterministic output.
func (g *Graph) WeaklyConnectedComponents() [][]NodeID {
	visited := make(map[string]bool, g.NumNodes())
	var comps [][]NodeID

	for _, id := range g.Nodes() {
		sid := string(id)
		if visited[sid] {
			continue
		}
		res, err := bfs.BFS(g.wcc, sid)
		if err != nil {
			// A registered node always exists in the mirror graph.
			comps = append(comps, []NodeID{id})
			visited[sid] = true
			continue
		}
		comp := make([]NodeID, 0, len(res.Order))
		for _, v := range res.Order {
			visited[v] = true
			comp = append(comp, NodeID(v))
		}
		sort.Slice(comp, func(i, j int) bool { return comp[i] < comp[j] })
		comps = append(comps, comp)
	}

	sort.SliceStable(comps, func(i, j int) bool { return len(comps[i]) > len(comps[j]) })
	return comps
}

// ShortestUndirectedPath returns the hop-count shortest path between u
// and v over the unweighted undirected view, or false if disconnected.
func (g *Graph) ShortestUndirectedPath(u, v NodeID) ([]NodeID, bool) {
	res, err := bfs.BFS(g.wcc, string(u))
	if err != nil {
		return nil, false
	}
	path, err := res.PathTo(string(v))
	if err != nil {
		return nil, false
	}
	out := make([]NodeID, len(path))
	for i, id := range path {
		out[i] = NodeID(id)
	}
	return out, true
}
