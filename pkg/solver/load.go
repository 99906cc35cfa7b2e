package solver

import (
	"context"

	"github.com/paulmach/osm"

	"github.com/Audacity88/optiburb/pkg/burbgraph"
	"github.com/Audacity88/optiburb/pkg/burbtypes"
	"github.com/Audacity88/optiburb/pkg/geo"
	"github.com/Audacity88/optiburb/pkg/mapsource"
)

// loadGraph runs spec §4.A/§6's loading step: it asks src for the raw
// network inside req, converts it into a burbgraph.Graph honoring the
// network filter's direction flags, synthesizes a straight line for any
// edge missing real geometry, then applies the simplify/prune options.
func loadGraph(ctx context.Context, src mapsource.MapSource, req mapsource.LoadRequest, opts burbtypes.Options) (*burbgraph.Graph, error) {
	raw, err := src.Load(ctx, req)
	if err != nil {
		return nil, burbtypes.NewError(burbtypes.KindExternalFailure, "load", "map source failed", err)
	}
	if raw == nil || len(raw.Nodes) == 0 {
		return nil, burbtypes.NewError(burbtypes.KindEmptyRegion, "load", "map source returned no nodes", nil)
	}

	g := burbgraph.New()
	for _, n := range raw.Nodes {
		if !geo.Valid(n.Coord) {
			return nil, burbtypes.NewError(burbtypes.KindGeometryInvalid, "load", "node coordinate out of WGS-84 range", nil)
		}
		if err := g.AddNode(burbgraph.NodeID(n.ID), n.Coord); err != nil {
			return nil, burbtypes.NewError(burbtypes.KindExternalFailure, "load", "duplicate node id from map source", err)
		}
	}

	filter := req.NetworkFilter
	if filter == nil {
		filter = mapsource.CarNetworkFilter
	}

	for _, e := range raw.Edges {
		u, v := burbgraph.NodeID(e.From), burbgraph.NodeID(e.To)
		if !g.HasNode(u) || !g.HasNode(v) {
			continue // edge references a node the source never listed
		}
		accessible, forward, backward := filter(osm.Tags(tagsToOSM(e.Tags)))
		if !accessible || (!forward && !backward) {
			continue
		}

		uc, _ := g.Coord(u)
		vc, _ := g.Coord(v)
		line := e.Geometry
		straight := false
		if len(line) < 2 {
			line = geo.Polyline{uc, vc}
			straight = true
		}
		line = geo.Align(line, uc, vc)
		if line == nil {
			line = geo.Polyline{uc, vc}
			straight = true
		}

		data := burbgraph.EdgeData{Geometry: line, Length: geo.Length(line), IsStraightLine: straight, Tags: e.Tags}
		if forward {
			if _, err := g.AddEdge(u, v, data); err != nil {
				return nil, burbtypes.NewError(burbtypes.KindExternalFailure, "load", "could not add edge", err)
			}
		}
		if backward {
			rev := data.Clone()
			rev.Geometry = geo.Reverse(line)
			if _, err := g.AddEdge(v, u, rev); err != nil {
				return nil, burbtypes.NewError(burbtypes.KindExternalFailure, "load", "could not add reverse edge", err)
			}
		}
	}

	if opts.Prune {
		prune(g)
	}
	if opts.Simplify {
		simplifyGraph(g)
	}
	if g.NumNodes() == 0 {
		return nil, burbtypes.NewError(burbtypes.KindEmptyRegion, "load", "graph is empty after filtering", nil)
	}
	return g, nil
}

func tagsToOSM(tags map[string]string) osm.Tags {
	out := make(osm.Tags, 0, len(tags))
	for k, v := range tags {
		out = append(out, osm.Tag{Key: k, Value: v})
	}
	return out
}

// pruneClasses are the highway classes spec §6's "prune" option removes
// when they carry no name.
var pruneClasses = map[string]bool{"track": true, "path": true, "cycleway": true}

// prune removes edges of class {track, path, cycleway} with an empty
// name, then removes any node left with no incident edges.
func prune(g *burbgraph.Graph) {
	for _, ref := range g.Edges() {
		d, ok := g.Edge(ref)
		if !ok {
			continue
		}
		if pruneClasses[d.Tags["highway"]] && d.Tags["name"] == "" {
			_ = g.RemoveEdge(ref)
		}
	}
	for _, id := range g.Nodes() {
		if g.InDegree(id) == 0 && g.OutDegree(id) == 0 {
			_ = g.RemoveNode(id)
		}
	}
}

// simplifyGraph coalesces a node that is a pure pass-through -- exactly
// one incoming and one outgoing edge, no other incidence -- into its
// neighbors' edge, the common case of a long way broken at every OSM
// shape node along a oneway chain. Nodes with a mirrored (bidirectional)
// pair are left alone; that case needs a parallel-pair merge this pass
// does not attempt.
func simplifyGraph(g *burbgraph.Graph) {
	changed := true
	for changed {
		changed = false
		for _, id := range g.Nodes() {
			in := g.InEdges(id)
			out := g.OutEdges(id)
			if len(in) != 1 || len(out) != 1 {
				continue
			}
			inRef, outRef := in[0], out[0]
			if inRef.U == outRef.V {
				continue // would collapse into a self loop
			}
			inData, _ := g.Edge(inRef)
			outData, _ := g.Edge(outRef)

			merged := burbgraph.EdgeData{
				Geometry:       joinGeometry(inData.Geometry, outData.Geometry),
				IsStraightLine: inData.IsStraightLine && outData.IsStraightLine,
				Tags:           inData.Tags,
			}
			merged.Length = geo.Length(merged.Geometry)

			if _, err := g.AddEdge(inRef.U, outRef.V, merged); err != nil {
				continue
			}
			_ = g.RemoveEdge(inRef)
			_ = g.RemoveEdge(outRef)
			_ = g.RemoveNode(id)
			changed = true
		}
	}
}

func joinGeometry(a, b geo.Polyline) geo.Polyline {
	if len(a) == 0 {
		return b
	}
	if len(b) == 0 {
		return a
	}
	out := make(geo.Polyline, 0, len(a)+len(b)-1)
	out = append(out, a...)
	out = append(out, b[1:]...) // skip the shared joint point
	return out
}
