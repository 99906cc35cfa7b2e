package mapsource

import (
	"testing"

	"github.com/paulmach/osm"
)

func tags(kv ...string) osm.Tags {
	var t osm.Tags
	for i := 0; i+1 < len(kv); i += 2 {
		t = append(t, osm.Tag{Key: kv[i], Value: kv[i+1]})
	}
	return t
}

func TestCarNetworkFilterBasic(t *testing.T) {
	accessible, fwd, bwd := CarNetworkFilter(tags("highway", "residential"))
	if !accessible || !fwd || !bwd {
		t.Errorf("residential road should be bidirectional and accessible, got %v %v %v", accessible, fwd, bwd)
	}
}

func TestCarNetworkFilterOneway(t *testing.T) {
	accessible, fwd, bwd := CarNetworkFilter(tags("highway", "primary", "oneway", "yes"))
	if !accessible || !fwd || bwd {
		t.Errorf("oneway=yes should give forward only, got %v %v %v", accessible, fwd, bwd)
	}
}

func TestCarNetworkFilterReversedOneway(t *testing.T) {
	_, fwd, bwd := CarNetworkFilter(tags("highway", "primary", "oneway", "-1"))
	if fwd || !bwd {
		t.Errorf("oneway=-1 should give backward only, got fwd=%v bwd=%v", fwd, bwd)
	}
}

func TestCarNetworkFilterPrivateAccessExcluded(t *testing.T) {
	accessible, _, _ := CarNetworkFilter(tags("highway", "residential", "access", "private"))
	if accessible {
		t.Error("access=private should be excluded")
	}
}

func TestCarNetworkFilterRejectsNonHighway(t *testing.T) {
	accessible, _, _ := CarNetworkFilter(tags("railway", "rail"))
	if accessible {
		t.Error("non-highway tags should be excluded")
	}
}
