package burbtypes

import "github.com/Audacity88/optiburb/pkg/geo"

// Options holds the recognized configuration switches (spec §6).
type Options struct {
	// Simplify merges each pass-through node of the loaded graph (exactly
	// one in-edge and one out-edge) into a single joined edge before
	// balancing. It does not test whether the node is colinear with its
	// neighbours, and nodes on two-way streets are not merged.
	Simplify bool
	// Prune removes edges of class {track, path, cycleway} with an empty
	// name, then removes orphan nodes.
	Prune bool
	// SimplifyGPX runs the track simplifier during emission.
	SimplifyGPX bool
	// FeatureDeadend runs the dead-end shortcut pre-pass (§4.C) before
	// the main balance pass.
	FeatureDeadend bool
	// ExcludeCompleted runs the completed-road filter (§4.D) when a
	// CompletedArea is supplied.
	ExcludeCompleted bool
	// BufferMeters is the buffer radius applied when the region is a
	// point rather than a polygon.
	BufferMeters float64
	// ArrowInterval is the spacing (in real-road points) between
	// direction markers during track emission (§4.E, default 3).
	ArrowInterval int
	// Start is the optional caller-supplied start location.
	Start *StartLocation
}

// DefaultOptions returns the options a caller gets if they request
// nothing beyond the defaults.
func DefaultOptions() Options {
	return Options{
		ArrowInterval: 3,
	}
}

// StartLocation is the optional start point a caller may supply (spec §6).
// Only Coords is used internally; resolving an address to coordinates is
// the caller's responsibility.
type StartLocation struct {
	Address string
	Coords  geo.Coordinate
	HasCoords bool
}
