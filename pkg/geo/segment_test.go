package geo

import (
	"math"
	"testing"
)

func TestDistanceToSegmentEndpoints(t *testing.T) {
	a, b := Coordinate{0, 0}, Coordinate{1, 0}
	if d, ratio := DistanceToSegment(a, a, b); d > 1e-9 || ratio != 0 {
		t.Errorf("at start: dist=%v ratio=%v, want 0,0", d, ratio)
	}
	if d, ratio := DistanceToSegment(b, a, b); d > 1e-9 || ratio != 1 {
		t.Errorf("at end: dist=%v ratio=%v, want 0,1", d, ratio)
	}
}

func TestDistanceToSegmentPerpendicular(t *testing.T) {
	a, b := Coordinate{0, 0}, Coordinate{1, 0}
	p := Coordinate{0.5, 1}
	d, ratio := DistanceToSegment(p, a, b)
	if math.Abs(d-1) > 1e-9 {
		t.Errorf("dist = %v, want 1", d)
	}
	if math.Abs(ratio-0.5) > 1e-9 {
		t.Errorf("ratio = %v, want 0.5", ratio)
	}
}

func TestDistanceToSegmentDegenerate(t *testing.T) {
	a := Coordinate{2, 2}
	p := Coordinate{2, 3}
	d, ratio := DistanceToSegment(p, a, a)
	if math.Abs(d-1) > 1e-9 || ratio != 0 {
		t.Errorf("degenerate segment: dist=%v ratio=%v, want 1,0", d, ratio)
	}
}

func TestPointInPolygonSquare(t *testing.T) {
	square := Polyline{{0, 0}, {2, 0}, {2, 2}, {0, 2}}
	if !PointInPolygon(Coordinate{1, 1}, square) {
		t.Error("center point should be inside")
	}
	if PointInPolygon(Coordinate{3, 3}, square) {
		t.Error("far point should be outside")
	}
}
