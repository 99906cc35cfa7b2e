package balance

import (
	"testing"

	"github.com/Audacity88/optiburb/pkg/burbgraph"
	"github.com/Audacity88/optiburb/pkg/geo"
)

// spur builds the open chain A->B->C->D. Both ends are dead ends: A has
// in-degree 0, out-degree 1 and D has in-degree 1, out-degree 0, so the
// pre-pass should add B->A and D->C.
func spur(t *testing.T) *burbgraph.Graph {
	t.Helper()
	g := burbgraph.New()
	coords := map[string]geo.Coordinate{
		"A": {0, 0}, "B": {1, 0}, "C": {2, 0}, "D": {3, 0},
	}
	for n, c := range coords {
		if err := g.AddNode(burbgraph.NodeID(n), c); err != nil {
			t.Fatal(err)
		}
	}
	for _, e := range [][2]string{{"A", "B"}, {"B", "C"}, {"C", "D"}} {
		line := geo.Polyline{coords[e[0]], coords[e[1]]}
		if _, err := g.AddEdge(burbgraph.NodeID(e[0]), burbgraph.NodeID(e[1]),
			burbgraph.EdgeData{Geometry: line, Length: geo.Length(line)}); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func TestShortcutDeadEndsAddsReverse(t *testing.T) {
	g := spur(t)
	added := ShortcutDeadEnds(g)
	if added != 2 {
		t.Fatalf("ShortcutDeadEnds added %d edges, want 2 (B->A and D->C)", added)
	}
	if in, out := g.InDegree("D"), g.OutDegree("D"); in != 1 || out != 1 {
		t.Errorf("D: in=%d out=%d, want 1,1", in, out)
	}
	if len(g.EdgesBetween("D", "C")) != 1 {
		t.Error("expected a new D->C edge")
	}
}

func TestShortcutDeadEndsIdempotent(t *testing.T) {
	g := spur(t)
	ShortcutDeadEnds(g)
	if added := ShortcutDeadEnds(g); added != 0 {
		t.Errorf("second ShortcutDeadEnds call added %d edges, want 0", added)
	}
}

func TestShortcutDeadEndsLeavesBalancedGraphAlone(t *testing.T) {
	g, _ := squareLike(t)
	if added := ShortcutDeadEnds(g); added != 0 {
		t.Errorf("ShortcutDeadEnds on a balanced graph added %d edges, want 0", added)
	}
}

// squareLike mirrors burbgraph's own S1 fixture without importing its
// unexported test helper.
func squareLike(t *testing.T) (*burbgraph.Graph, map[string]burbgraph.NodeID) {
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
