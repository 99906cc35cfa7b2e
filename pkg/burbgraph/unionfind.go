package burbgraph

// UnionFind is a disjoint-set structure over NodeID keys, adapted from
// the CSR-graph union-find used for one-shot "how many components"
// checks. Unlike the CSR version it is not tied to a fixed dense index
// range, since the route graph's node set changes across balancing
// phases.
type UnionFind struct {
	parent map[NodeID]NodeID
	rank   map[NodeID]byte
	size   map[NodeID]int
}

// NewUnionFind creates a UnionFind with every id in its own singleton set.
func NewUnionFind(ids []NodeID) *UnionFind {
	uf := &UnionFind{
		parent: make(map[NodeID]NodeID, len(ids)),
		rank:   make(map[NodeID]byte, len(ids)),
		size:   make(map[NodeID]int, len(ids)),
	}
	for _, id := range ids {
		uf.parent[id] = id
		uf.size[id] = 1
	}
	return uf
}

// Find returns the representative of the set containing x, with path
// halving.
func (uf *UnionFind) Find(x NodeID) NodeID {
	for uf.parent[x] != x {
		uf.parent[x] = uf.parent[uf.parent[x]]
		x = uf.parent[x]
	}
	return x
}

// Union merges the sets containing x and y. Returns false if already
// the same set.
func (uf *UnionFind) Union(x, y NodeID) bool {
	rx, ry := uf.Find(x), uf.Find(y)
	if rx == ry {
		return false
	}
	if uf.rank[rx] < uf.rank[ry] {
		rx, ry = ry, rx
	}
	uf.parent[ry] = rx
	uf.size[rx] += uf.size[ry]
	if uf.rank[rx] == uf.rank[ry] {
		uf.rank[rx]++
	}
	return true
}

// ComponentCount returns the number of weakly connected components in
// g's current edge set, computed with a single UnionFind pass over a
// fixed snapshot of g.Nodes()/g.Edges(). It is the cheap "how many
// components" check the connectivity-repair loop needs on every
// iteration; WeaklyConnectedComponents additionally builds each
// component's full member list, which the loop only needs once it
// already knows there is more than one.
func ComponentCount(g *Graph) int {
	uf := NewUnionFind(g.Nodes())
	for _, ref := range g.Edges() {
		uf.Union(ref.U, ref.V)
	}
	return len(uf.Components())
}

// Components groups every id by its set representative. The order of the
// groups, and of ids within a group, is not defined.
func (uf *UnionFind) Components() [][]NodeID {
	byRoot := make(map[NodeID][]NodeID)
	for id := range uf.parent {
		root := uf.Find(id)
		byRoot[root] = append(byRoot[root], id)
	}
	comps := make([][]NodeID, 0, len(byRoot))
	for _, members := range byRoot {
		comps = append(comps, members)
	}
	return comps
}
