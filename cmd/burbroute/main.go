// Command burbroute is a CLI harness around pkg/solver: it wires one of
// the built-in fixture networks as a MapSource, maps flags onto
// burbtypes.Options, runs a solve, and prints the resulting track's
// stats. Fetching a real map (tiles, OSM extracts) is out of this
// module's scope (spec §1) -- a production caller supplies its own
// mapsource.MapSource in place of the fixture.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Audacity88/optiburb/internal/fixture"
	"github.com/Audacity88/optiburb/pkg/burbtypes"
	"github.com/Audacity88/optiburb/pkg/geo"
	"github.com/Audacity88/optiburb/pkg/solver"
)

func main() {
	region := flag.String("region", "square", "Built-in fixture network: square | oneway")
	arrowInterval := flag.Int("arrow-interval", 3, "Spacing between direction markers on real road segments")
	simplify := flag.Bool("simplify", false, "Merge pass-through nodes (one in-edge, one out-edge) before balancing")
	prune := flag.Bool("prune", false, "Remove unnamed track/path/cycleway edges and orphan nodes")
	simplifyGPX := flag.Bool("simplify-gpx", false, "Run the track simplifier during emission")
	featureDeadend := flag.Bool("feature-deadend", true, "Run the dead-end shortcut pre-pass before balancing")
	startLon := flag.Float64("start-lon", 0, "Optional start longitude")
	startLat := flag.Float64("start-lat", 0, "Optional start latitude")
	hasStart := flag.Bool("start", false, "Use --start-lon/--start-lat as the requested start location")
	flag.Parse()

	var src = fixture.SquareBlock()
	switch *region {
	case "square":
		src = fixture.SquareBlock()
	case "oneway":
		src = fixture.OneWayLoop()
	default:
		fmt.Fprintf(os.Stderr, "unknown --region %q: want square or oneway\n", *region)
		os.Exit(1)
	}

	opts := burbtypes.DefaultOptions()
	opts.ArrowInterval = *arrowInterval
	opts.Simplify = *simplify
	opts.Prune = *prune
	opts.SimplifyGPX = *simplifyGPX
	opts.FeatureDeadend = *featureDeadend
	if *hasStart {
		opts.Start = &burbtypes.StartLocation{Coords: geo.Coordinate{*startLon, *startLat}, HasCoords: true}
	}

	sink := burbtypes.LogSink{Logger: log.Default()}
	req := solver.Request{Options: opts}

	start := time.Now()
	res, err := solver.Solve(context.Background(), src, req, sink)
	if err != nil {
		log.Fatalf("solve failed: %v", err)
	}

	elapsed := time.Since(start)
	log.Printf("circuit: %d edges, track: %d real points, %d straight points, total distance %.6f, backtrack %.6f (in %s)",
		len(res.Circuit), len(res.Track.Real), len(res.Track.Straight),
		res.Track.TotalDistance, res.Track.BacktrackDistance, elapsed.Round(time.Microsecond))
}
