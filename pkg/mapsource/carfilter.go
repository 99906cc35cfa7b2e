package mapsource

import "github.com/paulmach/osm"

// carHighways lists the highway tag values a standard route network
// includes, adapted directly from the OSM ingestion rules used upstream
// of this module.
var carHighways = map[string]bool{
	"motorway":       true,
	"motorway_link":  true,
	"trunk":          true,
	"trunk_link":     true,
	"primary":        true,
	"primary_link":   true,
	"secondary":      true,
	"secondary_link": true,
	"tertiary":       true,
	"tertiary_link":  true,
	"unclassified":   true,
	"residential":    true,
	"living_street":  true,
	"service":        true,
	"track":          true,
	"path":           true,
	"cycleway":       true,
	"footway":        true,
}

// CarNetworkFilter is the default NetworkFilter: it accepts the same
// drivable highway classes and honors the same oneway/access tags as the
// upstream OSM ingestion, so the §6 "network_filter" predicate has a
// concrete, realistic default instead of an always-true stub.
func CarNetworkFilter(tags osm.Tags) (accessible, forward, backward bool) {
	hw := tags.Find("highway")
	if !carHighways[hw] {
		return false, false, false
	}
	if tags.Find("area") == "yes" {
		return false, false, false
	}
	access := tags.Find("access")
	if access == "no" || access == "private" {
		return false, false, false
	}

	forward, backward = true, true
	if hw == "motorway" || hw == "motorway_link" || tags.Find("junction") == "roundabout" {
		backward = false
	}
	switch tags.Find("oneway") {
	case "yes", "true", "1":
		forward, backward = true, false
	case "-1", "reverse":
		forward, backward = false, true
	case "no":
		forward, backward = true, true
	case "reversible":
		// Time-dependent direction: excluded entirely, matching upstream.
		return false, false, false
	}
	return true, forward, backward
}
