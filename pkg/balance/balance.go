// Package balance implements the route solver's balancer (spec §4.C):
// it takes a loaded, possibly disconnected and unbalanced graph and
// produces a graph that is both weakly connected and Eulerian (every
// node's in-degree equals its out-degree), the two preconditions
// Hierholzer's algorithm needs to construct a circuit.
package balance

import (
	"github.com/Audacity88/optiburb/pkg/burbgraph"
	"github.com/Audacity88/optiburb/pkg/burbtypes"
)

// Balance runs the three balancer phases in order -- connectivity
// repair, min-cost flow degree balancing, and bounded fallback -- plus
// the optional dead-end pre-pass, mutating g in place and reporting
// progress through sink.
//
// It returns KindUnbalanceableGraph if Phase 3 cannot bring every node
// into balance, and KindNotConnected if the graph somehow still has
// more than one component afterward (Phase 1 guarantees this cannot
// happen short of a graph with fewer than two nodes).
func Balance(g *burbgraph.Graph, opts burbtypes.Options, sink burbtypes.ProgressSink) (*Result, error) {
	if sink == nil {
		sink = burbtypes.NopSink{}
	}
	res := &Result{}

	if opts.FeatureDeadend {
		res.DeadEndsShortcut = ShortcutDeadEnds(g)
		if res.DeadEndsShortcut > 0 {
			sink.Progress(burbtypes.Event{
				Step:    burbtypes.StepBalancingGraph,
				Message: "shortcut dead ends",
			})
		}
	}

	res.BridgesAdded = ConnectComponents(g)
	if res.BridgesAdded > 0 {
		sink.Progress(burbtypes.Event{
			Step:    burbtypes.StepBalancingGraph,
			Message: "repaired graph connectivity",
		})
	}
	if len(g.WeaklyConnectedComponents()) > 1 {
		return res, burbtypes.NewError(burbtypes.KindNotConnected, "balance",
			"graph still has more than one component after connectivity repair", nil)
	}

	res.AugmentingEdges = BalanceDegrees(g)
	if res.AugmentingEdges > 0 {
		sink.Progress(burbtypes.Event{
			Step:    burbtypes.StepBalancingGraph,
			Message: "balanced node degrees",
		})
	}

	fallback, balanced := Validate(g)
	res.FallbackEdges = fallback
	res.Balanced = balanced
	if !balanced {
		return res, burbtypes.NewError(burbtypes.KindUnbalanceableGraph, "balance",
			"could not balance every node's in-degree and out-degree", nil)
	}

	return res, nil
}
