package circuit

import (
	"github.com/Audacity88/optiburb/pkg/burbtypes"
	"github.com/Audacity88/optiburb/pkg/geo"
)

// EmitTrack implements spec §4.E step 4: it walks the circuit in order,
// realigns each edge's stored geometry to its direction of travel,
// routes points into the real or straight-line segment list, plants
// direction markers along real segments, and accumulates distance
// totals.
func EmitTrack(c Circuit, opts burbtypes.Options) Track {
	arrowInterval := opts.ArrowInterval
	if arrowInterval <= 0 {
		arrowInterval = 3
	}

	var tr Track
	for _, ce := range c {
		line := geo.Align(ce.Data.Geometry, ce.UCoord, ce.VCoord)
		straight := ce.Data.IsStraightLine
		if line == nil {
			line = geo.Polyline{ce.UCoord, ce.VCoord}
			straight = true
		}

		length := geo.Length(line)
		tr.TotalDistance += length
		if ce.Data.Augmented {
			tr.BacktrackDistance += length
		}
		if straight {
			tr.StraightLineDistance += length
			tr.Straight = appendSegment(tr.Straight, line, KindStraightLine)
			continue
		}
		tr.Real = appendRealSegment(tr.Real, line, arrowInterval)
	}
	return tr
}

func appendSegment(points []TrackPoint, line geo.Polyline, kind TrackPointKind) []TrackPoint {
	for _, p := range line {
		points = append(points, TrackPoint{Coord: p, Kind: kind})
	}
	return points
}

// appendRealSegment appends line's points as route points, placing a
// direction marker at the first point for a 2-point segment, or at
// every arrowInterval-th interior point otherwise (spec §4.E step 4.3).
func appendRealSegment(points []TrackPoint, line geo.Polyline, arrowInterval int) []TrackPoint {
	if len(line) == 2 {
		points = append(points, TrackPoint{Coord: line[0], Kind: KindRoute})
		points = append(points, directionMarker(line[0], line[1]))
		points = append(points, TrackPoint{Coord: line[1], Kind: KindRoute})
		return points
	}

	interior := 0
	for i, p := range line {
		points = append(points, TrackPoint{Coord: p, Kind: KindRoute})
		if i == 0 || i == len(line)-1 {
			continue
		}
		interior++
		if interior%arrowInterval == 0 && i+1 < len(line) {
			points = append(points, directionMarker(p, line[i+1]))
		}
	}
	return points
}

func directionMarker(from, to geo.Coordinate) TrackPoint {
	return TrackPoint{Coord: from, Kind: KindDirection, Bearing: geo.Bearing(from, to), HasBearing: true}
}
