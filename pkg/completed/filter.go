package completed

import (
	"github.com/tidwall/rtree"

	"github.com/Audacity88/optiburb/pkg/balance"
	"github.com/Audacity88/optiburb/pkg/burbgraph"
	"github.com/Audacity88/optiburb/pkg/burbtypes"
	"github.com/Audacity88/optiburb/pkg/geo"
)

// largeCompletedPenalty inflates a completed edge's apparent length so
// that a shortest-path search over it approximates "minimize the count
// of completed edges reused" (spec §4.D step 3) as its dominant term,
// as long as no realistic path sums to more than this.
const largeCompletedPenalty = 1e6

// Filter implements spec §4.D. It classifies every edge of g as
// completed or uncompleted, rebuilds the graph from the uncompleted
// edges plus the minimum reconnection needed to keep every component
// reachable, rebalances the result, and falls back to returning g
// unchanged if the result cannot be made connected and balanced.
func Filter(g *burbgraph.Graph, area geo.Polyline, sink burbtypes.ProgressSink) (*burbgraph.Graph, error) {
	if sink == nil {
		sink = burbtypes.NopSink{}
	}
	if len(area) < 3 {
		return g, nil // R2: filter_completed(G, empty) = G
	}

	original := g.Clone()
	completedSet := classify(g, area)
	if len(completedSet) == 0 {
		return g, nil
	}

	unGraph := uncompletedSubgraph(g, completedSet)
	comps := unGraph.WeaklyConnectedComponents()
	if len(comps) == 0 {
		return original, nil
	}

	result := burbgraph.New()
	seedComponent(result, g, unGraph, comps[0])

	for _, comp := range comps[1:] {
		seedComponent(result, g, unGraph, comp)
		if !reconnectComponent(g, result, completedSet, comp) {
			isolateComponent(g, result, comp)
			sink.Warn("completed_filter", "left a component as an isolated sub-circuit; no reconnecting path found")
		}
	}

	balRes, balErr := balance.Balance(result, burbtypes.DefaultOptions(), sink)
	if balErr == nil && balRes.Balanced && len(result.WeaklyConnectedComponents()) == 1 {
		return result, nil
	}

	comps = result.WeaklyConnectedComponents()
	if len(comps) == 0 {
		sink.Warn("completed_filter", "filtered graph was empty; returning original input")
		return original, nil
	}
	largest := extractSubgraph(result, comps[0])
	subRes, subErr := balance.Balance(largest, burbtypes.DefaultOptions(), sink)
	if subErr == nil && subRes.Balanced && len(largest.WeaklyConnectedComponents()) == 1 {
		sink.Warn("completed_filter", "kept only the largest component after the filtered graph failed to reconnect fully")
		return largest, nil
	}

	sink.Warn("completed_filter", "could not balance and connect the filtered graph; returning original input unchanged")
	return original, nil
}

// classify indexes every edge's buffered bounding box in an R-tree and
// only runs the overlapRatio sampling pass (see overlap.go) on edges
// whose box actually intersects area's buffered box -- on a region whose
// completed-area covers a small corner of the graph, this skips the
// sampling work entirely for edges nowhere near it.
func classify(g *burbgraph.Graph, area geo.Polyline) map[burbgraph.EdgeRef]bool {
	out := make(map[burbgraph.EdgeRef]bool)
	if len(area) < 3 {
		return out
	}

	type indexed struct {
		ref      burbgraph.EdgeRef
		geometry geo.Polyline
		straight bool
	}
	byIndex := make(map[int]indexed)

	var idx rtree.RTree
	i := 0
	for _, ref := range g.Edges() {
		d, ok := g.Edge(ref)
		if !ok || len(d.Geometry) < 2 {
			continue
		}
		min, max := bufferedBBox(d.Geometry, EdgeBuffer)
		idx.Insert(min, max, i)
		byIndex[i] = indexed{ref: ref, geometry: d.Geometry, straight: d.IsStraightLine}
		i++
	}

	areaMin, areaMax := bufferedBBox(area, AreaBuffer)
	idx.Search(areaMin, areaMax, func(min, max [2]float64, value interface{}) bool {
		entry := byIndex[value.(int)]
		if IsCompleted(entry.geometry, entry.straight, area) {
			out[entry.ref] = true
		}
		return true
	})
	return out
}

func uncompletedSubgraph(g *burbgraph.Graph, completedSet map[burbgraph.EdgeRef]bool) *burbgraph.Graph {
	un := burbgraph.New()
	for _, id := range g.Nodes() {
		c, _ := g.Coord(id)
		_ = un.AddNode(id, c)
	}
	for _, ref := range g.Edges() {
		if completedSet[ref] {
			continue
		}
		d, _ := g.Edge(ref)
		_, _ = un.AddEdge(ref.U, ref.V, d)
	}
	return un
}

func seedComponent(result, g, un *burbgraph.Graph, ids []burbgraph.NodeID) {
	idSet := make(map[burbgraph.NodeID]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
		if !result.HasNode(id) {
			c, _ := g.Coord(id)
			_ = result.AddNode(id, c)
		}
	}
	for _, ref := range un.Edges() {
		if idSet[ref.U] && idSet[ref.V] {
			d, _ := un.Edge(ref)
			_, _ = result.AddEdge(ref.U, ref.V, d)
		}
	}
}

// reconnectComponent adds a forward+reverse path from comp into result,
// searched over the original graph g with completed edges penalized so
// the search favors reusing as few of them as possible. Returns false
// if no path at all exists between comp and result.
func reconnectComponent(g, result *burbgraph.Graph, completedSet map[burbgraph.EdgeRef]bool, comp []burbgraph.NodeID) bool {
	penalized := burbgraph.New()
	for _, id := range g.Nodes() {
		c, _ := g.Coord(id)
		_ = penalized.AddNode(id, c)
	}
	for _, ref := range g.Edges() {
		d, _ := g.Edge(ref)
		cost := d.Length
		if completedSet[ref] {
			cost += largeCompletedPenalty
		}
		_, _ = penalized.AddEdge(ref.U, ref.V, burbgraph.EdgeData{
			Geometry: d.Geometry, Length: cost, IsStraightLine: d.IsStraightLine,
		})
	}

	resultIDs := result.Nodes()
	var bestPath []burbgraph.EdgeRef
	bestCost := -1.0
	for _, a := range comp {
		for _, b := range resultIDs {
			if path, cost, ok := penalized.ShortestPath(a, b); ok {
				if bestCost < 0 || cost < bestCost {
					bestPath, bestCost = path, cost
				}
			}
			if path, cost, ok := penalized.ShortestPath(b, a); ok {
				if bestCost < 0 || cost < bestCost {
					bestPath, bestCost = path, cost
				}
			}
		}
	}
	if bestPath == nil {
		return false
	}

	forward := make([]burbgraph.EdgeData, 0, len(bestPath))
	for _, ref := range bestPath {
		candidates := g.EdgesBetween(ref.U, ref.V)
		if len(candidates) == 0 {
			return false
		}
		d, _ := g.Edge(candidates[0])
		forward = append(forward, d)
	}

	addRealPath(g, result, bestPath, forward)
	addReversePath(result, bestPath, forward)
	return true
}

// addRealPath materializes path's edges into result with data carrying
// g's real (non-penalized) geometry and attributes, marking each
// Connecting.
func addRealPath(g, result *burbgraph.Graph, path []burbgraph.EdgeRef, data []burbgraph.EdgeData) {
	for i, ref := range path {
		copyData := data[i].Clone()
		copyData.Connecting = true
		copyData.Augmented = true
		if !result.HasNode(ref.U) {
			c, _ := g.Coord(ref.U)
			_ = result.AddNode(ref.U, c)
		}
		if !result.HasNode(ref.V) {
			c, _ := g.Coord(ref.V)
			_ = result.AddNode(ref.V, c)
		}
		_, _ = result.AddEdge(ref.U, ref.V, copyData)
	}
}

// addReversePath adds the coordinate-reversed twin of each hop of path,
// walked tail-to-head, so the bridge is traversable in both directions
// without depending on g having a real reverse edge for every hop.
func addReversePath(result *burbgraph.Graph, path []burbgraph.EdgeRef, data []burbgraph.EdgeData) {
	for i := len(path) - 1; i >= 0; i-- {
		ref := path[i]
		rev := data[i].Clone()
		rev.Geometry = geo.Reverse(data[i].Geometry)
		rev.Connecting = true
		rev.Augmented = true
		_, _ = result.AddEdge(ref.V, ref.U, rev)
	}
}

// isolateComponent keeps comp's own edges (already seeded) and gives
// every edge missing its reverse one, reusing a real edge from g when
// one exists and falling back to a synthetic straight line otherwise
// (spec §4.D step 4).
func isolateComponent(g, result *burbgraph.Graph, comp []burbgraph.NodeID) {
	for _, ref := range result.Edges() {
		inComp := false
		for _, id := range comp {
			if ref.U == id {
				inComp = true
				break
			}
		}
		if !inComp {
			continue
		}
		if len(result.EdgesBetween(ref.V, ref.U)) > 0 {
			continue
		}

		if candidates := g.EdgesBetween(ref.V, ref.U); len(candidates) > 0 {
			d, _ := g.Edge(candidates[0])
			copyData := d.Clone()
			copyData.Augmented = true
			_, _ = result.AddEdge(ref.V, ref.U, copyData)
			continue
		}

		cv, _ := result.Coord(ref.V)
		cu, _ := result.Coord(ref.U)
		_, _ = result.AddEdge(ref.V, ref.U, burbgraph.EdgeData{
			Geometry:       geo.Polyline{cv, cu},
			Length:         geo.Distance(cv, cu),
			IsStraightLine: true,
			Augmented:      true,
		})
	}
}

// extractSubgraph returns a new graph containing only ids and the
// edges of result strictly between them.
func extractSubgraph(result *burbgraph.Graph, ids []burbgraph.NodeID) *burbgraph.Graph {
	out := burbgraph.New()
	idSet := make(map[burbgraph.NodeID]bool, len(ids))
	for _, id := range ids {
		idSet[id] = true
		c, _ := result.Coord(id)
		_ = out.AddNode(id, c)
	}
	for _, ref := range result.Edges() {
		if idSet[ref.U] && idSet[ref.V] {
			d, _ := result.Edge(ref)
			_, _ = out.AddEdge(ref.U, ref.V, d)
		}
	}
	return out
}
