package mapsource

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"

	"github.com/Audacity88/optiburb/pkg/geo"
)

// PBFSource is a MapSource backed by a real .osm.pbf extract, adapted
// from the upstream OSM ingestion pass: a two-pass scan (ways, then the
// nodes those ways reference) so only the coordinates actually needed
// are held in memory.
type PBFSource struct {
	// Path is the .osm.pbf file to read.
	Path string
}

type wayInfo struct {
	NodeIDs  []osm.NodeID
	Forward  bool
	Backward bool
	Tags     osm.Tags
}

// Load implements MapSource. It opens Path, scans it twice, and returns
// one RawEdge per pair of adjacent nodes along each accepted way (spec
// §6's loader contract: geometry absent means the caller synthesizes a
// straight line, which is exactly what an adjacent-node hop already is
// when the way carries no intermediate shape points between them).
func (s *PBFSource) Load(ctx context.Context, req LoadRequest) (*RawGraph, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("pbfsource: open %s: %w", s.Path, err)
	}
	defer f.Close()

	filter := req.NetworkFilter
	if filter == nil {
		filter = CarNetworkFilter
	}
	bbox, hasBBox := regionBBox(req.RegionPolygon)

	referenced := make(map[osm.NodeID]struct{})
	var ways []wayInfo

	scanner := osmpbf.New(ctx, f, 1)
	scanner.SkipNodes = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		w, ok := scanner.Object().(*osm.Way)
		if !ok || len(w.Nodes) < 2 {
			continue
		}
		accessible, fwd, bwd := filter(w.Tags)
		if !accessible || (!fwd && !bwd) {
			continue
		}
		ids := make([]osm.NodeID, len(w.Nodes))
		for i, wn := range w.Nodes {
			ids[i] = wn.ID
			referenced[wn.ID] = struct{}{}
		}
		ways = append(ways, wayInfo{NodeIDs: ids, Forward: fwd, Backward: bwd, Tags: w.Tags})
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("pbfsource: pass 1 (ways): %w", err)
	}
	scanner.Close()
	log.Printf("pbfsource: %d ways, %d referenced nodes", len(ways), len(referenced))

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("pbfsource: seek for pass 2: %w", err)
	}
	coords := make(map[osm.NodeID]geo.Coordinate, len(referenced))
	scanner = osmpbf.New(ctx, f, 1)
	scanner.SkipWays = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		n, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		if _, needed := referenced[n.ID]; !needed {
			continue
		}
		coords[n.ID] = geo.Coordinate{n.Lon, n.Lat}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("pbfsource: pass 2 (nodes): %w", err)
	}
	scanner.Close()

	out := &RawGraph{}
	seen := make(map[osm.NodeID]bool, len(coords))
	for _, w := range ways {
		for i := 0; i+1 < len(w.NodeIDs); i++ {
			fromID, toID := w.NodeIDs[i], w.NodeIDs[i+1]
			from, fromOK := coords[fromID]
			to, toOK := coords[toID]
			if !fromOK || !toOK {
				continue
			}
			if hasBBox && (!bbox.contains(from) || !bbox.contains(to)) {
				continue
			}
			if !seen[fromID] {
				seen[fromID] = true
				out.Nodes = append(out.Nodes, RawNode{ID: nodeKey(fromID), Coord: from})
			}
			if !seen[toID] {
				seen[toID] = true
				out.Nodes = append(out.Nodes, RawNode{ID: nodeKey(toID), Coord: to})
			}

			tags := tagsToMap(w.Tags)
			line := geo.Polyline{from, to}
			if w.Forward {
				out.Edges = append(out.Edges, RawEdge{From: nodeKey(fromID), To: nodeKey(toID), Geometry: line, Tags: tags})
			}
			if w.Backward {
				out.Edges = append(out.Edges, RawEdge{From: nodeKey(toID), To: nodeKey(fromID), Geometry: geo.Reverse(line), Tags: tags})
			}
		}
	}
	log.Printf("pbfsource: %d nodes, %d edges after filtering", len(out.Nodes), len(out.Edges))
	return out, nil
}

func nodeKey(id osm.NodeID) string {
	return fmt.Sprintf("n%d", int64(id))
}

func tagsToMap(tags osm.Tags) map[string]string {
	out := make(map[string]string, len(tags))
	for _, t := range tags {
		out[t.Key] = t.Value
	}
	return out
}

type bbox struct {
	minLon, minLat, maxLon, maxLat float64
}

func (b bbox) contains(c geo.Coordinate) bool {
	return c[0] >= b.minLon && c[0] <= b.maxLon && c[1] >= b.minLat && c[1] <= b.maxLat
}

// regionBBox reduces a region polygon to its axis-aligned bounding box.
// Load keeps only edges whose endpoints both fall inside that box; no
// exact polygon test is applied, here or later in the solver.
func regionBBox(region geo.Polyline) (bbox, bool) {
	if len(region) < 3 {
		return bbox{}, false
	}
	b := bbox{minLon: math.Inf(1), minLat: math.Inf(1), maxLon: math.Inf(-1), maxLat: math.Inf(-1)}
	for _, c := range region {
		b.minLon = math.Min(b.minLon, c[0])
		b.maxLon = math.Max(b.maxLon, c[0])
		b.minLat = math.Min(b.minLat, c[1])
		b.maxLat = math.Max(b.maxLat, c[1])
	}
	return b, true
}
