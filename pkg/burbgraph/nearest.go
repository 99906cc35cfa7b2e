package burbgraph

import (
	"math"
	"sort"

	"github.com/Audacity88/optiburb/pkg/geo"
)

// nearestCellSize is the grid cell size in degrees, matching the
// teacher's snap-grid granularity (0.01 deg ~= 1.1km at the equator).
const nearestCellSize = 0.01

// cellNode pairs a packed grid-cell key with the node living in it, in a
// single flat sortable slice -- the teacher's pkg/routing/snap.go builds
// the identical layout (flat sorted slice + binary search range, no map
// of slices) to avoid per-cell allocations and map overhead. Here it
// indexes graph nodes instead of road segments.
type cellNode struct {
	key uint64
	id  NodeID
}

// nearestIndex is a flat-sorted-grid spatial index over a fixed snapshot
// of node coordinates, rebuilt whenever the graph's node set changes.
type nearestIndex struct {
	cells     []cellNode // sorted by key
	minLat    int32
	maxLat    int32
	minLon    int32
	maxLon    int32
	maxRadius int32
}

func gridCell(c geo.Coordinate) (latIdx, lonIdx int32) {
	return int32(math.Floor(c[1] / nearestCellSize)), int32(math.Floor(c[0] / nearestCellSize))
}

func cellKey(latIdx, lonIdx int32) uint64 {
	return uint64(uint32(latIdx))<<32 | uint64(uint32(lonIdx))
}

func buildNearestIndex(coords map[NodeID]geo.Coordinate) *nearestIndex {
	idx := &nearestIndex{}
	if len(coords) == 0 {
		return idx
	}
	idx.cells = make([]cellNode, 0, len(coords))
	first := true
	for id, c := range coords {
		lat, lon := gridCell(c)
		idx.cells = append(idx.cells, cellNode{key: cellKey(lat, lon), id: id})
		if first {
			idx.minLat, idx.maxLat, idx.minLon, idx.maxLon = lat, lat, lon, lon
			first = false
			continue
		}
		if lat < idx.minLat {
			idx.minLat = lat
		}
		if lat > idx.maxLat {
			idx.maxLat = lat
		}
		if lon < idx.minLon {
			idx.minLon = lon
		}
		if lon > idx.maxLon {
			idx.maxLon = lon
		}
	}
	sort.Slice(idx.cells, func(i, j int) bool { return idx.cells[i].key < idx.cells[j].key })
	// For a query cell inside the grid's bounding box, a ring radius
	// larger than the grid's own span can never contain a node not already
	// found at a smaller radius; this is the ring loop's termination
	// bound. A query outside the box may find nothing within it, which
	// NearestNode handles with a linear scan.
	latSpan := idx.maxLat - idx.minLat
	lonSpan := idx.maxLon - idx.minLon
	idx.maxRadius = latSpan + lonSpan + 1
	return idx
}

// cellRange returns the nodes registered in the single cell key, via
// binary search over the sorted slice.
func (idx *nearestIndex) cellRange(key uint64) []cellNode {
	lo := sort.Search(len(idx.cells), func(i int) bool { return idx.cells[i].key >= key })
	if lo >= len(idx.cells) || idx.cells[lo].key != key {
		return nil
	}
	hi := sort.Search(len(idx.cells), func(i int) bool { return idx.cells[i].key > key })
	return idx.cells[lo:hi]
}

// ring returns the nodes in every cell at exactly the given Chebyshev
// distance from (centerLat, centerLon) -- radius 0 is just the center
// cell, radius r>0 is the border of the (2r+1)x(2r+1) square around it.
func (idx *nearestIndex) ring(centerLat, centerLon, radius int32) []cellNode {
	if radius == 0 {
		return idx.cellRange(cellKey(centerLat, centerLon))
	}
	var out []cellNode
	for dLat := -radius; dLat <= radius; dLat++ {
		onEdgeRow := dLat == -radius || dLat == radius
		for dLon := -radius; dLon <= radius; dLon++ {
			if !onEdgeRow && dLon != -radius && dLon != radius {
				continue
			}
			out = append(out, idx.cellRange(cellKey(centerLat+dLat, centerLon+dLon))...)
		}
	}
	return out
}

// ensureNearestIndex rebuilds g's spatial index if the node set has
// changed since it was last built.
func (g *Graph) ensureNearestIndex() {
	if g.nearest == nil || g.nearestDirty {
		g.nearest = buildNearestIndex(g.coords)
		g.nearestDirty = false
	}
}

// NearestNode returns the registered node whose coordinates are closest
// to c by planar distance, searched via an expanding ring scan over the
// flat grid index (see cellNode) instead of a linear scan over every
// node. Used for start-node selection (§4.E). If the ring scan finds no
// node within its radius bound (a query far outside the indexed area),
// every node is checked directly.
func (g *Graph) NearestNode(c geo.Coordinate) (NodeID, bool) {
	g.ensureNearestIndex()
	if len(g.coords) == 0 {
		return "", false
	}

	centerLat, centerLon := gridCell(c)
	var best NodeID
	bestDist := math.Inf(1)
	found := false
	foundAtRadius := int32(-1)

	for radius := int32(0); radius <= g.nearest.maxRadius; radius++ {
		for _, cn := range g.nearest.ring(centerLat, centerLon, radius) {
			d := geo.Distance(g.coords[cn.id], c)
			if d < bestDist {
				bestDist = d
				best = cn.id
				found = true
			}
		}
		if found && foundAtRadius < 0 {
			foundAtRadius = radius
		}
		// A closer node can still sit in a diagonally adjacent cell when
		// c is near a cell boundary, so scan one ring past the first hit
		// before trusting it.
		if foundAtRadius >= 0 && radius >= foundAtRadius+1 {
			break
		}
	}
	if !found {
		for id, nc := range g.coords {
			if d := geo.Distance(nc, c); !found || d < bestDist || (d == bestDist && id < best) {
				bestDist, best, found = d, id, true
			}
		}
	}
	return best, found
}
