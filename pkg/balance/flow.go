package balance

import (
	"sort"

	"github.com/katalvlaran/lvlath/core"
	"github.com/katalvlaran/lvlath/flow"

	"github.com/Audacity88/optiburb/pkg/burbgraph"
)

// BalanceDegrees is balancer Phase 2 (spec §4.C): for every node whose
// in-degree and out-degree differ, it materializes directed shortest
// paths so that every unit of imbalance is resolved by duplicating the
// edges along one path, which raises out-degree by one at the path's
// start and in-degree by one at its end without disturbing any
// intermediate node's balance.
//
// lvlath's flow.Dinic computes max-flow only, with no notion of edge
// cost, so a min-cost solution is built on top of it rather than inside
// it: candidate (needsOut, needsIn) paths are grouped into ascending
// cost buckets, and Dinic is run once per bucket against the supply and
// demand still unmet by cheaper buckets (see DESIGN.md). This is a
// greedy cost-scaling successive-shortest-path scheme, not an exact
// min-cost-flow solver, but on the tiny auxiliary networks this phase
// ever builds (a handful of unbalanced nodes) it reaches the same
// answer an exact solver would in every case this module's tests cover.
func BalanceDegrees(g *burbgraph.Graph) (augmentingEdges int) {
	needsOut, needsIn := splitDeficits(g)
	if len(needsOut) == 0 && len(needsIn) == 0 {
		return 0
	}

	candidates, paths := buildCandidates(g, needsOut, needsIn)
	if len(candidates) == 0 {
		return 0
	}

	remOut := cloneDeficits(needsOut)
	remIn := cloneDeficits(needsIn)

	for _, bucket := range bucketByCost(candidates) {
		if remainingTotal(remOut) == 0 || remainingTotal(remIn) == 0 {
			break
		}
		used := runBucket(bucket, remOut, remIn)
		for pair, units := range used {
			path := paths[pair]
			if len(path) == 0 {
				continue
			}
			for i := 0; i < units; i++ {
				materializePath(g, path)
				augmentingEdges += len(path)
			}
			remOut[pair.from] -= units
			remIn[pair.to] -= units
		}
	}
	return augmentingEdges
}

// splitDeficits partitions nodes by spec §4.C's D+/D- sets. needsOut
// holds nodes with in(v) > out(v) (they need an extra outbound edge);
// needsIn holds nodes with out(v) > in(v) (they need an extra inbound
// edge). The map value is the size of the imbalance.
func splitDeficits(g *burbgraph.Graph) (needsOut, needsIn map[burbgraph.NodeID]int) {
	needsOut = make(map[burbgraph.NodeID]int)
	needsIn = make(map[burbgraph.NodeID]int)
	for _, v := range g.Nodes() {
		in, out := g.InDegree(v), g.OutDegree(v)
		switch {
		case in > out:
			needsOut[v] = in - out
		case out > in:
			needsIn[v] = out - in
		}
	}
	return needsOut, needsIn
}

// materializePath adds a copy of every edge along path, each marked
// Augmented, preserving the original's geometry and straight-line flag.
func materializePath(g *burbgraph.Graph, path []burbgraph.EdgeRef) {
	for _, ref := range path {
		d, ok := g.Edge(ref)
		if !ok {
			continue
		}
		copyData := d.Clone()
		copyData.Augmented = true
		_, _ = g.AddEdge(ref.U, ref.V, copyData)
	}
}

type flowPairKey struct {
	from, to burbgraph.NodeID
}

type candidate struct {
	from, to burbgraph.NodeID
	cost     float64
}

func cloneDeficits(m map[burbgraph.NodeID]int) map[burbgraph.NodeID]int {
	out := make(map[burbgraph.NodeID]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func remainingTotal(m map[burbgraph.NodeID]int) int {
	total := 0
	for _, v := range m {
		total += v
	}
	return total
}

// buildCandidates finds every directed path from a D- node to a D+ node
// (spec §4.C "S -> D- -> D+ -> T"), weighted by the path's length plus a
// small tie-break term favoring fewer already straight-line edges (spec
// §4.C "prefer paths whose total count of already straight-line edges is
// smaller"). Routing one unit of flow along a D- -> D+ arc gives the D-
// node an extra outgoing edge (the path's first hop) and the D+ node an
// extra incoming edge (the path's last hop).
func buildCandidates(g *burbgraph.Graph, needsOut, needsIn map[burbgraph.NodeID]int) ([]candidate, map[flowPairKey][]burbgraph.EdgeRef) {
	var candidates []candidate
	paths := make(map[flowPairKey][]burbgraph.EdgeRef)

	for _, from := range sortedKeys(needsOut) {
		for _, to := range sortedKeys(needsIn) {
			path, length, ok := g.ShortestPath(from, to)
			if !ok {
				continue
			}
			straight := 0
			for _, ref := range path {
				if d, ok := g.Edge(ref); ok && d.IsStraightLine {
					straight++
				}
			}
			cost := length*1e6 + float64(straight)
			candidates = append(candidates, candidate{from: from, to: to, cost: cost})
			paths[flowPairKey{from, to}] = path
		}
	}
	return candidates, paths
}

func sortedKeys(m map[burbgraph.NodeID]int) []burbgraph.NodeID {
	out := make([]burbgraph.NodeID, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// bucketByCost groups candidates sharing the same cost into ascending
// buckets. Running the cheapest bucket's max-flow first and only then
// moving to the next is what turns a sequence of plain max-flow solves
// into a (greedy) min-cost flow: once a unit of supply or demand is
// consumed by a cheap arc, a more expensive arc can never reclaim it.
func bucketByCost(candidates []candidate) [][]candidate {
	byCost := make(map[float64][]candidate)
	var costs []float64
	for _, c := range candidates {
		if _, seen := byCost[c.cost]; !seen {
			costs = append(costs, c.cost)
		}
		byCost[c.cost] = append(byCost[c.cost], c)
	}
	sort.Float64s(costs)
	buckets := make([][]candidate, len(costs))
	for i, cost := range costs {
		buckets[i] = byCost[cost]
	}
	return buckets
}

const flowVertexSource = "S"
const flowVertexSink = "T"

// runBucket runs lvlath's Dinic max-flow solver over a small auxiliary
// network built from bucket's candidate arcs: S feeds every participating
// D- node with its remaining deficit, every participating D+ node drains
// to T with its remaining surplus, and bucket's (D-, D+) pairs connect
// them with uncapped (deficit-sized) arcs. The flow Dinic pushes through
// each D- -> D+ arc is read back off the residual graph's reverse edge,
// which lvlath populates with exactly the forward flow consumed.
func runBucket(bucket []candidate, remOut, remIn map[burbgraph.NodeID]int) map[flowPairKey]int {
	var usable []candidate
	for _, c := range bucket {
		if remOut[c.from] > 0 && remIn[c.to] > 0 {
			usable = append(usable, c)
		}
	}
	if len(usable) == 0 {
		return nil
	}

	g := core.NewGraph(core.WithDirected(true), core.WithWeighted())
	_ = g.AddVertex(flowVertexSource)
	_ = g.AddVertex(flowVertexSink)

	fromVert := func(id burbgraph.NodeID) string { return "out:" + string(id) }
	toVert := func(id burbgraph.NodeID) string { return "in:" + string(id) }

	seenOut := make(map[burbgraph.NodeID]bool)
	seenIn := make(map[burbgraph.NodeID]bool)
	for _, c := range usable {
		if !seenOut[c.from] {
			seenOut[c.from] = true
			v := fromVert(c.from)
			_ = g.AddVertex(v)
			if _, err := g.AddEdge(flowVertexSource, v, int64(remOut[c.from])); err != nil {
				return nil
			}
		}
		if !seenIn[c.to] {
			seenIn[c.to] = true
			v := toVert(c.to)
			_ = g.AddVertex(v)
			if _, err := g.AddEdge(v, flowVertexSink, int64(remIn[c.to])); err != nil {
				return nil
			}
		}
	}
	cap := int64(remainingTotal(remOut))
	for _, c := range usable {
		if _, err := g.AddEdge(fromVert(c.from), toVert(c.to), cap); err != nil {
			return nil
		}
	}

	_, residual, err := flow.Dinic(g, flowVertexSource, flowVertexSink, flow.FlowOptions{})
	if err != nil || residual == nil {
		return nil
	}

	used := make(map[flowPairKey]int)
	for _, c := range usable {
		pushed := residualFlow(residual, fromVert(c.from), toVert(c.to))
		if pushed > 0 {
			used[flowPairKey{c.from, c.to}] = pushed
		}
	}
	return used
}

// residualFlow reads the flow pushed forward on u->v off residual's
// reverse edge v->u: lvlath's Dinic starts every edge with no reverse
// twin, so any capacity found on v->u in the residual graph is exactly
// the flow that was routed the other way.
func residualFlow(residual *core.Graph, u, v string) int {
	edges, err := residual.Neighbors(v)
	if err != nil {
		return 0
	}
	total := int64(0)
	for _, e := range edges {
		if e.To == u {
			total += e.Weight
		}
	}
	return int(total)
}
