package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Audacity88/optiburb/internal/fixture"
	"github.com/Audacity88/optiburb/pkg/api"
)

func main() {
	region := flag.String("region", "square", "Built-in fixture network to serve: square | oneway")
	port := flag.Int("port", 8080, "HTTP port")
	corsOrigin := flag.String("cors-origin", "", "CORS allowed origin (empty = same-origin)")
	flag.Parse()

	var src = fixture.SquareBlock()
	switch *region {
	case "square":
		src = fixture.SquareBlock()
	case "oneway":
		src = fixture.OneWayLoop()
	default:
		log.Fatalf("unknown --region %q: want square or oneway", *region)
	}

	addr := fmt.Sprintf(":%d", *port)
	cfg := api.DefaultConfig(addr)
	cfg.CORSOrigin = *corsOrigin

	stats := api.StatsResponse{
		SourceName: *region,
		NumNodes:   len(src.Nodes),
		NumEdges:   len(src.Edges),
	}

	handlers := api.NewHandlers(src, stats)
	srv := api.NewServer(cfg, handlers)

	log.Printf("Serving %s network on %s", *region, addr)
	if err := api.ListenAndServe(srv); err != nil {
		log.Printf("Server stopped: %v", err)
		os.Exit(1)
	}
}
