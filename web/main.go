package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/df07/go-realtime-raytracer/pkg/geometry"
	"github.com/df07/go-realtime-raytracer/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	strategy := flag.String("bvh", "centroid", "BVH split strategy: 'centroid' or 'median'")
	flag.Parse()

	split, err := geometry.ParseSplitStrategy(*strategy)
	if err != nil {
		log.Fatalf("Invalid -bvh: %v", err)
	}
	bvh := geometry.DefaultBVHConfig()
	bvh.Strategy = split

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	webServer := server.NewServer(*port)
	webServer.SetBVHConfig(bvh)

	log.Printf("Realtime Raytracer web server, BVH strategy %s", split)
	if err := webServer.Start(ctx); err != nil {
		log.Printf("Server stopped: %v", err)
		os.Exit(1)
	}
}
