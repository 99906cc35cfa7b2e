package completed

import (
	"testing"

	"github.com/Audacity88/optiburb/pkg/burbgraph"
	"github.com/Audacity88/optiburb/pkg/geo"
)

// squareBlock builds the spec's S1 scenario directly: a closed 1x1
// block A->B->C->D->A.
func squareBlock(t *testing.T) (*burbgraph.Graph, map[string]burbgraph.NodeID) {
	t.Helper()
	g := burbgraph.New()
	coords := map[string]geo.Coordinate{
		"A": {0, 0}, "B": {1, 0}, "C": {1, 1}, "D": {0, 1},
	}
	ids := make(map[string]burbgraph.NodeID, len(coords))
	for n, c := range coords {
		id := burbgraph.NodeID(n)
		if err := g.AddNode(id, c); err != nil {
			t.Fatal(err)
		}
		ids[n] = id
	}
	for _, e := range [][2]string{{"A", "B"}, {"B", "C"}, {"C", "D"}, {"D", "A"}} {
		line := geo.Polyline{coords[e[0]], coords[e[1]]}
		if _, err := g.AddEdge(ids[e[0]], ids[e[1]],
			burbgraph.EdgeData{Geometry: line, Length: geo.Length(line)}); err != nil {
			t.Fatal(err)
		}
	}
	return g, ids
}

func TestIsCompletedClassifiesOverlappingEdge(t *testing.T) {
	line := geo.Polyline{{0, 0}, {1, 0}}
	area := geo.Polyline{{-0.1, -0.1}, {1.1, -0.1}, {1.1, 0.1}, {-0.1, 0.1}}
	if !IsCompleted(line, false, area) {
		t.Error("edge fully inside the completed-area buffer should classify completed")
	}
}

func TestIsCompletedNeverFlagsStraightLine(t *testing.T) {
	line := geo.Polyline{{0, 0}, {1, 0}}
	area := geo.Polyline{{-0.1, -0.1}, {1.1, -0.1}, {1.1, 0.1}, {-0.1, 0.1}}
	if IsCompleted(line, true, area) {
		t.Error("a straight-line edge must never classify as completed")
	}
}

func TestIsCompletedRejectsDistantEdge(t *testing.T) {
	line := geo.Polyline{{1, 0}, {1, 1}} // B->C, runs north away from the area strip
	area := geo.Polyline{{-0.1, -0.1}, {1.1, -0.1}, {1.1, 0.1}, {-0.1, 0.1}}
	if IsCompleted(line, false, area) {
		t.Error("edge mostly outside the completed-area buffer should not classify completed")
	}
}

// TestFilterDropsCompletedEdgeAndKeepsCycle is spec scenario S4: the
// completed area covers A->B; the remaining B->C->D->A is already a
// balanced, connected cycle, so the filter should return exactly that
// -- no balancer-added edges, no straight lines.
func TestFilterDropsCompletedEdgeAndKeepsCycle(t *testing.T) {
	g, ids := squareBlock(t)
	area := geo.Polyline{{-0.1, -0.1}, {1.1, -0.1}, {1.1, 0.1}, {-0.1, 0.1}}

	out, err := Filter(g, area, nil)
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}

	if len(out.EdgesBetween(ids["A"], ids["B"])) != 0 {
		t.Error("A->B should have been dropped as completed")
	}
	for _, e := range [][2]string{{"B", "C"}, {"C", "D"}, {"D", "A"}} {
		if len(out.EdgesBetween(ids[e[0]], ids[e[1]])) != 1 {
			t.Errorf("expected %s->%s to survive the filter", e[0], e[1])
		}
	}
	if out.NumEdges() != 3 {
		t.Errorf("NumEdges = %d, want 3 (no reconnection or balancing edges needed)", out.NumEdges())
	}
	for _, ref := range out.Edges() {
		d, _ := out.Edge(ref)
		if d.IsStraightLine {
			t.Error("no straight-line edges should be introduced for this scenario")
		}
	}
	for _, id := range out.Nodes() {
		if in, out2 := out.InDegree(id), out.OutDegree(id); in != out2 {
			t.Errorf("node %s: in=%d out=%d, want equal", id, in, out2)
		}
	}
}

func TestFilterNoOpWhenNothingCompleted(t *testing.T) {
	g, _ := squareBlock(t)
	area := geo.Polyline{{50, 50}, {51, 50}, {51, 51}, {50, 51}} // far away, overlaps nothing
	out, err := Filter(g, area, nil)
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if out.NumEdges() != g.NumEdges() || out.NumNodes() != g.NumNodes() {
		t.Errorf("Filter with no overlap changed the graph: %d/%d edges, %d/%d nodes",
			out.NumEdges(), g.NumEdges(), out.NumNodes(), g.NumNodes())
	}
}

func TestFilterEmptyAreaIsIdentity(t *testing.T) {
	g, _ := squareBlock(t)
	out, err := Filter(g, nil, nil)
	if err != nil {
		t.Fatalf("Filter: %v", err)
	}
	if out != g {
		t.Error("Filter(g, nil) should return g unchanged (R2)")
	}
}
