package geo

// Epsilon is the coordinate-matching tolerance used throughout the
// solver: a polyline endpoint "matches" a node's coordinates when the
// planar distance between them is below this value.
const Epsilon = 1e-5

// Align orients line so its first point matches u and its last point
// matches v, within Epsilon. If the line already matches, it is
// returned unchanged; if it matches reversed, the reversed copy is
// returned. If neither endpoint pairing is within tolerance, the
// orientation that minimizes dist(first,u)+dist(last,v) is chosen. A
// line with fewer than two points cannot be aligned and Align returns
// nil.
func Align(line Polyline, u, v Coordinate) Polyline {
	if len(line) < 2 {
		return nil
	}

	first, last := line[0], line[len(line)-1]
	fu := Distance(first, u)
	lv := Distance(last, v)
	if fu < Epsilon && lv < Epsilon {
		return line
	}

	fv := Distance(first, v)
	lu := Distance(last, u)
	if fv < Epsilon && lu < Epsilon {
		return Reverse(line)
	}

	if fu+lv <= fv+lu {
		return line
	}
	return Reverse(line)
}
