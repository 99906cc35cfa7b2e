package balance

import (
	"testing"

	"github.com/Audacity88/optiburb/pkg/burbtypes"
)

func TestBalanceOneWayLoopEndsBalancedAndConnected(t *testing.T) {
	g := oneWayLoop(t)
	res, err := Balance(g, burbtypes.DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if !res.Balanced {
		t.Error("Result.Balanced = false, want true")
	}
	for _, n := range g.Nodes() {
		if in, out := g.InDegree(n), g.OutDegree(n); in != out {
			t.Errorf("node %s: in=%d out=%d, want equal", n, in, out)
		}
	}
	if len(g.WeaklyConnectedComponents()) != 1 {
		t.Error("graph should be a single component after Balance")
	}
}

func TestBalanceTwoComponentsEndsConnected(t *testing.T) {
	g := twoComponents(t)
	res, err := Balance(g, burbtypes.DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if res.BridgesAdded == 0 {
		t.Error("Result.BridgesAdded = 0, want > 0")
	}
	if len(g.WeaklyConnectedComponents()) != 1 {
		t.Error("graph should be a single component after Balance")
	}
	for _, n := range g.Nodes() {
		if in, out := g.InDegree(n), g.OutDegree(n); in != out {
			t.Errorf("node %s: in=%d out=%d, want equal", n, in, out)
		}
	}
}

func TestBalanceDeadEndFeatureFlag(t *testing.T) {
	g := spur(t)
	opts := burbtypes.DefaultOptions()
	opts.FeatureDeadend = true
	res, err := Balance(g, opts, nil)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if res.DeadEndsShortcut != 2 {
		t.Errorf("Result.DeadEndsShortcut = %d, want 2", res.DeadEndsShortcut)
	}
	if !res.Balanced {
		t.Error("Result.Balanced = false, want true")
	}
}

func TestBalanceAlreadyBalancedGraphIsNoOp(t *testing.T) {
	g, _ := squareLike(t)
	res, err := Balance(g, burbtypes.DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}
	if res.BridgesAdded != 0 || res.AugmentingEdges != 0 || res.FallbackEdges != 0 {
		t.Errorf("expected no-op on an already balanced, connected graph, got %+v", res)
	}
}
