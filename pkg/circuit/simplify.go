package circuit

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"

	"github.com/Audacity88/optiburb/pkg/geo"
)

// simplifyTolerance is the Douglas-Peucker distance tolerance, in
// degree units, applied to the real-point track during GPX
// simplification.
const simplifyTolerance = 1e-5

// SimplifyTrack implements spec §4.E's optional simplification pass: it
// strips direction markers, runs Douglas-Peucker over the remaining
// route points, re-inserts markers at regular intervals, and restores
// each surviving point's type by nearest-neighbor lookup into the
// pre-simplification set. Only the Real segment is simplified; straight
// line points already carry no markers and are left untouched.
func SimplifyTrack(tr Track) Track {
	markerCount, stripped := stripMarkers(tr.Real)
	if len(stripped) < 3 {
		return tr
	}

	pre := make(orb.LineString, len(stripped))
	kinds := make([]TrackPointKind, len(stripped))
	for i, p := range stripped {
		pre[i] = orb.Point(p.Coord)
		kinds[i] = p.Kind
	}

	simplified, ok := simplify.DouglasPeucker(simplifyTolerance).Simplify(pre).(orb.LineString)
	if !ok || len(simplified) == 0 {
		return tr
	}

	out := make([]TrackPoint, len(simplified))
	for i, p := range simplified {
		out[i] = TrackPoint{Coord: geo.Coordinate(p), Kind: nearestKind(geo.Coordinate(p), pre, kinds)}
	}

	interval := max(3, len(out)/(markerCount+1))
	tr.Real = reinsertMarkers(out, interval)
	return tr
}

// stripMarkers returns points with every direction marker removed,
// along with how many markers were found.
func stripMarkers(points []TrackPoint) (int, []TrackPoint) {
	count := 0
	out := make([]TrackPoint, 0, len(points))
	for _, p := range points {
		if p.Kind == KindDirection {
			count++
			continue
		}
		out = append(out, p)
	}
	return count, out
}

func reinsertMarkers(points []TrackPoint, interval int) []TrackPoint {
	out := make([]TrackPoint, 0, len(points)+len(points)/interval+1)
	for i, p := range points {
		out = append(out, p)
		if i%interval == 0 && i+1 < len(points) {
			out = append(out, directionMarker(p.Coord, points[i+1].Coord))
		}
	}
	return out
}

func nearestKind(p geo.Coordinate, pre orb.LineString, kinds []TrackPointKind) TrackPointKind {
	best := 0
	bestDist := geo.Distance(p, geo.Coordinate(pre[0]))
	for i := 1; i < len(pre); i++ {
		d := geo.Distance(p, geo.Coordinate(pre[i]))
		if d < bestDist {
			bestDist, best = d, i
		}
	}
	return kinds[best]
}
