// Package burbtypes holds the types shared across the solver's phases:
// error kinds (spec §7), progress events (spec §6), and the recognized
// configuration options (spec §6).
package burbtypes

import "fmt"

// Kind enumerates the error kinds the core surfaces to callers (spec §7).
type Kind string

const (
	// KindEmptyRegion: input polygon or load produced no nodes.
	KindEmptyRegion Kind = "empty_region"
	// KindNoPathToStart: requested start coordinates have no nearest node.
	KindNoPathToStart Kind = "no_path_to_start"
	// KindUnbalanceableGraph: balancer's fallback could not make in=out everywhere.
	KindUnbalanceableGraph Kind = "unbalanceable_graph"
	// KindNotConnected: graph has >1 weakly-connected component after the
	// largest-component fallback also failed.
	KindNotConnected Kind = "not_connected"
	// KindCircuitIncomplete: Hierholzer sanity check found missing edges.
	KindCircuitIncomplete Kind = "circuit_incomplete"
	// KindGeometryInvalid: a required coordinate is missing or out of range.
	KindGeometryInvalid Kind = "geometry_invalid"
	// KindExternalFailure: the map source or completed-area input failed.
	KindExternalFailure Kind = "external_failure"
)

// SolveError carries the phase where the failure occurred alongside its
// kind, per spec §7 "every error carries a one-line message and the
// phase where it occurred".
type SolveError struct {
	Kind    Kind
	Phase   string
	Message string
	Err     error // wrapped cause, if any (e.g. from an external collaborator)
}

func (e *SolveError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (phase=%s): %s: %v", e.Kind, e.Phase, e.Message, e.Err)
	}
	return fmt.Sprintf("%s (phase=%s): %s", e.Kind, e.Phase, e.Message)
}

func (e *SolveError) Unwrap() error { return e.Err }

// Is supports kind checks of the form errors.Is(err, &SolveError{Kind: KindX}):
// any *SolveError target with the same Kind matches.
func (e *SolveError) Is(target error) bool {
	k, ok := target.(*SolveError)
	return ok && k.Kind == e.Kind
}

// NewError builds a SolveError for the given kind/phase, optionally
// wrapping a cause.
func NewError(kind Kind, phase, message string, cause error) *SolveError {
	return &SolveError{Kind: kind, Phase: phase, Message: message, Err: cause}
}
