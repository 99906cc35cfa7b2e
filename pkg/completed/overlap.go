// Package completed implements the completed-road filter (spec §4.D):
// it removes edges whose geometry lies mostly inside a caller-supplied
// "already traversed" polygon, while preserving the graph's
// connectedness and balance.
package completed

import (
	"math"

	"github.com/Audacity88/optiburb/pkg/geo"
)

// Tunable parameters from spec §4.D. EdgeBuffer/AreaBuffer approximate
// the ~5m/~15m buffer radii in WGS-84 degree units; Threshold is τ.
const (
	EdgeBuffer = 5e-5
	AreaBuffer = 1.5e-4
	Threshold  = 0.5

	overlapSamples = 21
)

// overlapRatio approximates area(B_e ∩ B_A)/area(B_e) -- the fraction
// of edge's buffered corridor that falls inside area's buffered
// corridor -- by sampling points at even arc-length intervals along
// edge and testing each against area. No polygon-boolean-operations
// library is available in this module's dependency set, so this
// samples the corridor instead of computing exact intersection area;
// τ=0.5 gives it enough margin for the approximation to classify
// correctly in practice (see DESIGN.md).
func overlapRatio(edge, area geo.Polyline) float64 {
	if len(edge) < 2 || len(area) < 3 {
		return 0
	}
	inside := 0
	for i := 0; i < overlapSamples; i++ {
		t := float64(i) / float64(overlapSamples-1)
		p := pointAtFraction(edge, t)
		d := geo.DistanceToPolyline(p, area)
		if d <= AreaBuffer+EdgeBuffer || geo.PointInPolygon(p, area) {
			inside++
		}
	}
	return float64(inside) / float64(overlapSamples)
}

// pointAtFraction interpolates the point t (in [0,1]) of the way along
// line's total arc length.
func pointAtFraction(line geo.Polyline, t float64) geo.Coordinate {
	total := geo.Length(line)
	if total == 0 {
		return line[0]
	}
	if t <= 0 {
		return line[0]
	}
	if t >= 1 {
		return line[len(line)-1]
	}

	target := t * total
	acc := 0.0
	for i := 0; i+1 < len(line); i++ {
		segLen := geo.Distance(line[i], line[i+1])
		if acc+segLen >= target {
			if segLen == 0 {
				return line[i]
			}
			frac := (target - acc) / segLen
			return geo.Coordinate{
				line[i][0] + frac*(line[i+1][0]-line[i][0]),
				line[i][1] + frac*(line[i+1][1]-line[i][1]),
			}
		}
		acc += segLen
	}
	return line[len(line)-1]
}

// bufferedBBox returns line's axis-aligned bounding box expanded by
// buffer on every side, as a min/max pair in the [2]float64 layout the
// R-tree index keys on (filter.go's classify).
func bufferedBBox(line geo.Polyline, buffer float64) (min, max [2]float64) {
	min = [2]float64{math.Inf(1), math.Inf(1)}
	max = [2]float64{math.Inf(-1), math.Inf(-1)}
	for _, c := range line {
		min[0] = math.Min(min[0], c[0])
		min[1] = math.Min(min[1], c[1])
		max[0] = math.Max(max[0], c[0])
		max[1] = math.Max(max[1], c[1])
	}
	min[0] -= buffer
	min[1] -= buffer
	max[0] += buffer
	max[1] += buffer
	return min, max
}

// IsCompleted classifies a single edge per spec §4.D: a straight-line
// edge is always uncompleted (it must be preserved for balance), since
// it never represents real, already-ridden pavement.
func IsCompleted(geometry geo.Polyline, isStraightLine bool, area geo.Polyline) bool {
	if isStraightLine {
		return false
	}
	return overlapRatio(geometry, area) > Threshold
}
