package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
)

const (
	exitOK       = 0
	exitTooLong  = 1
	exitFailure  = 2
	usageSummary = "usage: tour-planner [flags] DD MM YYYY LAT LNG SEED PORT\n       tour-planner -serve :8080 [flags]"
)

var (
	configPath  = flag.String("config", "", "JSON tuning file (defaults are used for omitted fields)")
	outDir      = flag.String("out", ".", "Directory for the flight log and readings map")
	plotPath    = flag.String("plot", "", "Also render the tour to this image file")
	logDir      = flag.String("log-dir", "", "Also write a rotating log file in this directory")
	listen      = flag.String("serve", "", "Run the planning service on this address instead of planning one day")
	nfzPath     = flag.String("nfz", "", "Read no-fly zones from this GeoJSON file instead of the data provider")
	providerURL = flag.String("provider", "", "Data provider base URL (default http://localhost:PORT)")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), usageSummary)
		flag.PrintDefaults()
	}
	flag.Parse()
	os.Exit(run(flag.Args()))
}

func run(args []string) int {
	closer, err := setupLogging(*logDir)
	if err != nil {
		log.Printf("❌ Failed to set up logging: %v\n", err)
		return exitFailure
	}
	defer closer.Close()

	cfg := DefaultConfig()
	if *configPath != "" {
		if cfg, err = LoadConfig(*configPath); err != nil {
			log.Printf("❌ %v\n", err)
			return exitFailure
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *listen != "" {
		return serve(ctx, cfg)
	}
	return planDay(ctx, cfg, args)
}

// planDay fetches one day's sensors, plans the tour and writes the outputs.
func planDay(ctx context.Context, cfg Config, args []string) int {
	if len(args) != 7 {
		fmt.Fprintln(os.Stderr, usageSummary)
		return exitFailure
	}
	day, month, year := args[0], args[1], args[2]
	lat, errLat := strconv.ParseFloat(args[3], 64)
	lng, errLng := strconv.ParseFloat(args[4], 64)
	seed, errSeed := strconv.Atoi(args[5])
	port, errPort := strconv.Atoi(args[6])
	for _, err := range []error{errLat, errLng, errSeed, errPort} {
		if err != nil {
			log.Printf("❌ Invalid argument: %v\n", err)
			return exitFailure
		}
	}
	origin := Point{X: lng, Y: lat}

	log.Println("========================================")
	log.Printf("🚁 Sensor tour for %s/%s/%s from (%.6f, %.6f), seed %d\n", day, month, year, lng, lat, seed)
	log.Println("========================================")

	baseURL := *providerURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("http://localhost:%d", port)
	}
	client := NewDataClient(baseURL)

	readings, waypoints, err := client.Waypoints(ctx, origin, year, month, day)
	if err != nil {
		log.Printf("❌ Server connection error: %v\n", err)
		return exitFailure
	}
	fences, err := loadFences(ctx, client)
	if err != nil {
		log.Printf("❌ %v\n", err)
		return exitFailure
	}

	planner, err := NewFlightPlanner(cfg, fences)
	if err != nil {
		log.Printf("❌ %v\n", err)
		return exitFailure
	}
	plan, err := planner.Plan(ctx, waypoints)
	if err != nil {
		log.Printf("❌ Planning failed: %v\n", err)
		return exitFailure
	}

	log.Printf("Total path length: %d\n", plan.TotalSteps())
	if !plan.Acceptable(cfg.MaxTourSteps) {
		log.Printf("❌ A suitable path was unable to be found (%d > %d moves)\n", plan.TotalSteps(), cfg.MaxTourSteps)
		return exitTooLong
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Printf("❌ Failed to create output dir: %v\n", err)
		return exitFailure
	}
	if _, err := WriteFlightLogFile(*outDir, day, month, year, plan); err != nil {
		log.Printf("❌ %v\n", err)
		return exitFailure
	}
	fc, err := ReadingsMap(readings, waypoints, plan)
	if err != nil {
		log.Printf("❌ %v\n", err)
		return exitFailure
	}
	if _, err := WriteReadingsMap(*outDir, day, month, year, fc); err != nil {
		log.Printf("❌ %v\n", err)
		return exitFailure
	}
	if *plotPath != "" {
		if err := PlotTour(*plotPath, cfg, fences, waypoints, plan); err != nil {
			log.Printf("⚠️  Failed to plot tour: %v\n", err)
		}
	}
	return exitOK
}

// loadFences reads the no-fly zones from -nfz if given, else from the
// data provider.
func loadFences(ctx context.Context, client *DataClient) ([]*Geofence, error) {
	if *nfzPath != "" {
		return LoadNoFlyZonesFromFile(*nfzPath)
	}
	return client.NoFlyZones(ctx)
}

// serve runs the HTTP planning service until ctx is cancelled.
func serve(ctx context.Context, cfg Config) int {
	log.Println("========================================")
	log.Println("🚀 Sensor Tour Planner Server")
	log.Println("========================================")

	var fences []*Geofence
	var err error
	switch {
	case *nfzPath != "":
		fences, err = LoadNoFlyZonesFromFile(*nfzPath)
	case *providerURL != "":
		fences, err = NewDataClient(*providerURL).NoFlyZones(ctx)
	}
	if err != nil {
		log.Printf("❌ Failed to load no-fly zones: %v\n", err)
		return exitFailure
	}

	srv, err := NewServer(cfg, fences)
	if err != nil {
		log.Printf("❌ %v\n", err)
		return exitFailure
	}

	httpServer := &http.Server{Addr: *listen, Handler: srv.Handler()}
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	log.Printf("Server starting on %s\n", *listen)
	log.Println("")
	log.Println("Endpoints:")
	log.Println("  POST /plan     - Plan a closed tour over sensors")
	log.Println("  GET  /health   - Check server status")
	log.Println("")
	log.Println("CORS enabled for all origins")
	log.Println("========================================")

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("❌ %v\n", err)
		return exitFailure
	}
	return exitOK
}
