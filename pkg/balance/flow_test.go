package balance

import (
	"testing"

	"github.com/Audacity88/optiburb/pkg/burbgraph"
	"github.com/Audacity88/optiburb/pkg/geo"
)

// oneWayLoop builds the S2 scenario: A->B->C->D with no return path. A
// has out=1,in=0 (needs inbound); D has in=1,out=0 (needs outbound);
// B and C are already balanced.
func oneWayLoop(t *testing.T) *burbgraph.Graph {
	t.Helper()
	g := burbgraph.New()
	coords := map[string]geo.Coordinate{
		"A": {0, 0}, "B": {1, 0}, "C": {1, 1}, "D": {0, 1},
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

func TestBalanceDegreesNoOpOnBalancedGraph(t *testing.T) {
	g, _ := squareLike(t)
	if n := BalanceDegrees(g); n != 0 {
		t.Errorf("BalanceDegrees on a balanced graph added %d edges, want 0", n)
	}
}

func TestBalanceDegreesNeedsConnectivityFirst(t *testing.T) {
	// D needs outbound and A needs inbound, but there is no directed
	// path D->A yet (the only edges are A->B->C->D), so Phase 2 alone
	// cannot fix this: it should add nothing, leaving the graph for
	// Phase 3's fallback.
	g := oneWayLoop(t)
	if n := BalanceDegrees(g); n != 0 {
		t.Errorf("BalanceDegrees added %d edges with no D->A path, want 0", n)
	}
	if in, out := g.InDegree("A"), g.OutDegree("A"); in == out {
		t.Skip("flow network unexpectedly found a path; balance already complete")
	}
}

func TestBalanceDegreesDuplicatesPathThroughIntermediateNode(t *testing.T) {
	// A balanced square A->B->C->D->A plus a chord A->C: A now has
	// out=2,in=1 (needs inbound) and C has in=2,out=1 (needs outbound).
	// The only directed path from C to A is C->D->A, so Phase 2 should
	// duplicate both of those edges, leaving D (an innocent bystander on
	// the path) with in=2,out=2 -- still balanced.
	g, ids := squareLike(t)
	ca, _ := g.Coord(ids["A"])
	cc, _ := g.Coord(ids["C"])
	chord := geo.Polyline{cc, ca}
	if _, err := g.AddEdge(ids["A"], ids["C"], burbgraph.EdgeData{Geometry: geo.Reverse(chord), Length: geo.Length(chord)}); err != nil {
		t.Fatal(err)
	}

	added := BalanceDegrees(g)
	if added != 2 {
		t.Fatalf("BalanceDegrees added %d edges, want 2 (C->D, D->A duplicated)", added)
	}
	for _, n := range []string{"A", "B", "C", "D"} {
		id := ids[n]
		if in, out := g.InDegree(id), g.OutDegree(id); in != out {
			t.Errorf("node %s: in=%d out=%d, want equal", n, in, out)
		}
	}
	if len(g.EdgesBetween(ids["C"], ids["D"])) != 2 {
		t.Error("expected C->D to be duplicated")
	}
	if len(g.EdgesBetween(ids["D"], ids["A"])) != 2 {
		t.Error("expected D->A to be duplicated")
	}
}
