package geo

import (
	"math"
	"testing"
)

func TestReverseRoundTrip(t *testing.T) {
	line := Polyline{{0, 0}, {1, 0}, {1, 1}}
	got := Reverse(Reverse(line))
	if len(got) != len(line) {
		t.Fatalf("length changed: got %d, want %d", len(got), len(line))
	}
	for i := range line {
		if got[i] != line[i] {
			t.Errorf("point %d: got %v, want %v", i, got[i], line[i])
		}
	}
}

func TestReverseOrder(t *testing.T) {
	line := Polyline{{0, 0}, {1, 0}, {2, 0}}
	rev := Reverse(line)
	want := Polyline{{2, 0}, {1, 0}, {0, 0}}
	for i := range want {
		if rev[i] != want[i] {
			t.Errorf("point %d: got %v, want %v", i, rev[i], want[i])
		}
	}
}

func TestLength(t *testing.T) {
	tests := []struct {
		name string
		line Polyline
		want float64
	}{
		{"two points", Polyline{{0, 0}, {1, 0}}, 1.0},
		{"square edge path", Polyline{{0, 0}, {1, 0}, {1, 1}}, 2.0},
		{"single point", Polyline{{0, 0}}, 0},
		{"empty", Polyline{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Length(tt.line)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Length = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDistance(t *testing.T) {
	got := Distance(Coordinate{0, 0}, Coordinate{3, 4})
	if math.Abs(got-5) > 1e-9 {
		t.Errorf("Distance = %v, want 5", got)
	}
}

func TestBearingNormalized(t *testing.T) {
	tests := []struct {
		name string
		a, b Coordinate
	}{
		{"due north", Coordinate{0, 0}, Coordinate{0, 1}},
		{"due east", Coordinate{0, 0}, Coordinate{1, 0}},
		{"due south", Coordinate{0, 1}, Coordinate{0, 0}},
		{"due west", Coordinate{1, 0}, Coordinate{0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Bearing(tt.a, tt.b)
			if got < 0 || got >= 360 {
				t.Errorf("Bearing = %v, want value in [0,360)", got)
			}
		})
	}
}

func TestBearingDueNorth(t *testing.T) {
	got := Bearing(Coordinate{0, 0}, Coordinate{0, 1})
	if math.Abs(got-0) > 1e-6 {
		t.Errorf("Bearing due north = %v, want ~0", got)
	}
}

func TestBearingDueEast(t *testing.T) {
	got := Bearing(Coordinate{0, 0}, Coordinate{1, 0})
	if math.Abs(got-90) > 1e-6 {
		t.Errorf("Bearing due east = %v, want ~90", got)
	}
}

func TestValid(t *testing.T) {
	if !Valid(Coordinate{103.8, 1.3}) {
		t.Error("expected valid coordinate to pass")
	}
	if Valid(Coordinate{200, 1.3}) {
		t.Error("expected out-of-range longitude to fail")
	}
	if Valid(Coordinate{103.8, 95}) {
		t.Error("expected out-of-range latitude to fail")
	}
}
