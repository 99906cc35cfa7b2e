package circuit

import (
	"testing"

	"github.com/Audacity88/optiburb/pkg/burbgraph"
	"github.com/Audacity88/optiburb/pkg/burbtypes"
	"github.com/Audacity88/optiburb/pkg/geo"
)

// square builds the S1 scenario: a closed 1x1 block A->B->C->D->A,
// already balanced and connected.
func square(t *testing.T) (*burbgraph.Graph, map[string]burbgraph.NodeID) {
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

func TestBuildSquareProducesFullCircuit(t *testing.T) {
	g, ids := square(t)
	c, err := Build(g, ids["A"])
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(c) != 4 {
		t.Fatalf("len(circuit) = %d, want 4", len(c))
	}
	if c[0].U != ids["A"] || c[len(c)-1].V != ids["A"] {
		t.Error("circuit must start and end at the requested start node")
	}
	for i := 0; i+1 < len(c); i++ {
		if c[i].V != c[i+1].U {
			t.Fatalf("edges %d and %d do not chain: %s != %s", i, i+1, c[i].V, c[i+1].U)
		}
	}
}

func TestBuildRejectsUnbalancedGraph(t *testing.T) {
	g := burbgraph.New()
	a, b := burbgraph.NodeID("A"), burbgraph.NodeID("B")
	_ = g.AddNode(a, geo.Coordinate{0, 0})
	_ = g.AddNode(b, geo.Coordinate{1, 0})
	line := geo.Polyline{{0, 0}, {1, 0}}
	if _, err := g.AddEdge(a, b, burbgraph.EdgeData{Geometry: line, Length: geo.Length(line)}); err != nil {
		t.Fatal(err)
	}

	_, err := Build(g, a)
	if err == nil {
		t.Fatal("expected an error for an unbalanced graph")
	}
	se, ok := err.(*burbtypes.SolveError)
	if !ok || se.Kind != burbtypes.KindUnbalanceableGraph {
		t.Errorf("got %v, want KindUnbalanceableGraph", err)
	}
}

func TestBuildRejectsDisconnectedGraph(t *testing.T) {
	g, ids := square(t)
	// add a second, balanced, but disjoint cycle
	e, f := burbgraph.NodeID("E"), burbgraph.NodeID("F")
	_ = g.AddNode(e, geo.Coordinate{10, 10})
	_ = g.AddNode(f, geo.Coordinate{11, 10})
	line := geo.Polyline{{10, 10}, {11, 10}}
	rev := geo.Reverse(line)
	_, _ = g.AddEdge(e, f, burbgraph.EdgeData{Geometry: line, Length: geo.Length(line)})
	_, _ = g.AddEdge(f, e, burbgraph.EdgeData{Geometry: rev, Length: geo.Length(rev)})

	_, err := Build(g, ids["A"])
	se, ok := err.(*burbtypes.SolveError)
	if !ok || se.Kind != burbtypes.KindNotConnected {
		t.Errorf("got %v, want KindNotConnected", err)
	}
}

func TestBuildEmptyGraphIsTrivialCircuit(t *testing.T) {
	g := burbgraph.New()
	a := burbgraph.NodeID("A")
	_ = g.AddNode(a, geo.Coordinate{0, 0})
	c, err := Build(g, a)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(c) != 0 {
		t.Errorf("len(circuit) = %d, want 0", len(c))
	}
}

func TestBuildMultiEdgeChordUsesBothCopies(t *testing.T) {
	// Square plus a chord in both directions (A->C and C->A) so the node
	// degrees stay balanced but A and C are visited by the walk twice --
	// exercises the sub-tour splicing inherent to Hierholzer.
	g, ids := square(t)
	ac := geo.Polyline{{0, 0}, {1, 1}}
	ca := geo.Reverse(ac)
	if _, err := g.AddEdge(ids["A"], ids["C"], burbgraph.EdgeData{Geometry: ac, Length: geo.Length(ac)}); err != nil {
		t.Fatal(err)
	}
	if _, err := g.AddEdge(ids["C"], ids["A"], burbgraph.EdgeData{Geometry: ca, Length: geo.Length(ca)}); err != nil {
		t.Fatal(err)
	}

	c, err := Build(g, ids["A"])
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(c) != g.NumEdges() {
		t.Fatalf("len(circuit) = %d, want %d", len(c), g.NumEdges())
	}
	for i := 0; i+1 < len(c); i++ {
		if c[i].V != c[i+1].U {
			t.Fatalf("edges %d and %d do not chain", i, i+1)
		}
	}
}

func TestSelectStartUsesNearestNode(t *testing.T) {
	g, ids := square(t)
	start := &burbtypes.StartLocation{Coords: geo.Coordinate{0.1, 0.1}, HasCoords: true}
	id, err := SelectStart(g, start)
	if err != nil {
		t.Fatalf("SelectStart: %v", err)
	}
	if id != ids["A"] {
		t.Errorf("SelectStart = %s, want A (nearest to 0.1,0.1)", id)
	}
}

func TestSelectStartFallsBackToFirstNode(t *testing.T) {
	g, _ := square(t)
	id, err := SelectStart(g, nil)
	if err != nil {
		t.Fatalf("SelectStart: %v", err)
	}
	if !g.HasNode(id) {
		t.Errorf("SelectStart returned %s which is not in the graph", id)
	}
}
