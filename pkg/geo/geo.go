// Package geo provides the planar geometry primitives the route solver
// builds on: coordinates, polylines, and the distance/bearing/alignment
// operations used throughout graph preparation, balancing, and track
// emission.
package geo

import (
	"math"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/planar"
)

// Coordinate is a WGS-84 (lon, lat) pair in decimal degrees.
type Coordinate = orb.Point

// Polyline is an ordered sequence of Coordinates. Two points are the
// minimum for a well-formed polyline; a shorter slice is treated as
// degenerate by callers (see Align).
type Polyline = orb.LineString

// Valid reports whether c falls within the legal WGS-84 range.
func Valid(c Coordinate) bool {
	return math.Abs(c[0]) <= 180 && math.Abs(c[1]) <= 90
}

// Reverse returns a new polyline with coordinate order reversed. The
// input is never mutated.
func Reverse(line Polyline) Polyline {
	out := make(Polyline, len(line))
	n := len(line)
	for i, p := range line {
		out[n-1-i] = p
	}
	return out
}

// Length sums the planar Euclidean length of each segment, in the same
// degree units as the input coordinates.
func Length(line Polyline) float64 {
	if len(line) < 2 {
		return 0
	}
	return planar.Length(orb.LineString(line))
}

// Distance returns the planar Euclidean distance between two
// coordinates, in degree units.
func Distance(a, b Coordinate) float64 {
	return planar.Distance(a, b)
}

// Bearing returns the forward azimuth from a to b in degrees,
// normalized to [0, 360), using the standard spherical bearing formula.
func Bearing(a, b Coordinate) float64 {
	deg := orbgeo.Bearing(a, b)
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
