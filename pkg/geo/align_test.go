package geo

import "testing"

func TestAlignUnchanged(t *testing.T) {
	line := Polyline{{0, 0}, {1, 0}}
	got := Align(line, Coordinate{0, 0}, Coordinate{1, 0})
	if got[0] != line[0] || got[1] != line[1] {
		t.Errorf("Align = %v, want unchanged %v", got, line)
	}
}

func TestAlignReversed(t *testing.T) {
	line := Polyline{{0, 0}, {1, 0}}
	got := Align(line, Coordinate{1, 0}, Coordinate{0, 0})
	want := Polyline{{1, 0}, {0, 0}}
	if got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Align = %v, want %v", got, want)
	}
}

func TestAlignBestEffort(t *testing.T) {
	// Neither orientation matches within tolerance; pick whichever minimizes
	// the endpoint mismatch.
	line := Polyline{{0, 0}, {1, 0}}
	got := Align(line, Coordinate{0, 0.01}, Coordinate{1, 0.2})
	if got[0] != line[0] {
		t.Errorf("expected unchanged orientation to win, got %v", got)
	}
}

func TestAlignDegenerate(t *testing.T) {
	if got := Align(Polyline{{0, 0}}, Coordinate{0, 0}, Coordinate{1, 1}); got != nil {
		t.Errorf("expected nil for degenerate polyline, got %v", got)
	}
	if got := Align(nil, Coordinate{0, 0}, Coordinate{1, 1}); got != nil {
		t.Errorf("expected nil for empty polyline, got %v", got)
	}
}
