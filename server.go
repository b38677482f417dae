package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
)

type SensorLocation struct {
	Location string  `json:"location"`
	Lng      float64 `json:"lng"`
	Lat      float64 `json:"lat"`
}

type PlanRequest struct {
	Origin     Point            `json:"origin"`
	Sensors    []SensorLocation `json:"sensors"`
	NoFlyZones json.RawMessage  `json:"noFlyZones,omitempty"` // Optional: GeoJSON FeatureCollection overriding the server's zones
}

type PlanResponse struct {
	RunID          string  `json:"runId"`
	Success        bool    `json:"success"`
	Acceptable     bool    `json:"acceptable"`
	TotalSteps     int     `json:"totalSteps,omitempty"`
	Order          []int   `json:"order,omitempty"`
	Path           []Point `json:"path,omitempty"`
	DistanceMeters float64 `json:"distanceMeters,omitempty"`
	Message        string  `json:"message,omitempty"`
}

// Server exposes the planner over HTTP. The default planner, built from
// the zones loaded at startup, is shared between requests so its leg
// cache stays warm.
type Server struct {
	cfg      Config
	planner  *FlightPlanner
	numZones int

	mu      sync.Mutex
	planned int
}

func NewServer(cfg Config, fences []*Geofence) (*Server, error) {
	planner, err := NewFlightPlanner(cfg, fences)
	if err != nil {
		return nil, err
	}
	return &Server{cfg: cfg, planner: planner, numZones: len(fences)}, nil
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/plan", corsMiddleware(s.planHandler))
	mux.HandleFunc("/health", corsMiddleware(s.healthHandler))
	return mux
}

// corsMiddleware adds CORS headers to allow frontend requests
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// POST /plan - Plan a closed tour over the given sensors
func (s *Server) planHandler(w http.ResponseWriter, r *http.Request) {
	runID := uuid.New().String()
	log.Println("========================================")
	log.Printf("📍 Plan request received (run %s)\n", runID)
	defer log.Println("========================================")

	if r.Method != http.MethodPost {
		log.Printf("❌ Method not allowed: %s\n", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	planner, err := s.plannerFor(req.NoFlyZones)
	if err != nil {
		log.Printf("❌ Invalid no-fly zones: %v\n", err)
		http.Error(w, "Invalid no-fly zones: "+err.Error(), http.StatusBadRequest)
		return
	}

	waypoints := make([]Waypoint, 0, len(req.Sensors)+1)
	waypoints = append(waypoints, Waypoint{Point: req.Origin})
	for _, sensor := range req.Sensors {
		waypoints = append(waypoints, Waypoint{
			Point:  Point{X: sensor.Lng, Y: sensor.Lat},
			Sensor: sensor.Location,
		})
	}
	log.Printf("   Origin: (%.6f, %.6f), sensors: %d\n", req.Origin.X, req.Origin.Y, len(req.Sensors))

	response := PlanResponse{RunID: runID}
	plan, err := planner.Plan(r.Context(), waypoints)
	switch {
	case errors.Is(err, ErrTooFewWaypoints):
		log.Printf("❌ %v\n", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		log.Printf("❌ Planning failed: %v\n", err)
		response.Message = err.Error()
	default:
		path := plan.Path()
		var distanceMeters float64
		for i := 0; i < len(path)-1; i++ {
			distanceMeters += path[i].DistanceMeters(path[i+1])
		}

		response.Success = true
		response.TotalSteps = plan.TotalSteps()
		response.Acceptable = plan.Acceptable(s.cfg.MaxTourSteps)
		response.Order = plan.Order
		response.Path = path
		response.DistanceMeters = distanceMeters
		if !response.Acceptable {
			response.Message = "A suitable path was unable to be found"
		}
		log.Printf("✅ Tour with %d moves, %.2f meters\n", response.TotalSteps, distanceMeters)

		s.mu.Lock()
		s.planned++
		s.mu.Unlock()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// plannerFor returns the shared planner, or a fresh one when the request
// brings its own zones.
func (s *Server) plannerFor(zones json.RawMessage) (*FlightPlanner, error) {
	if len(zones) == 0 || string(zones) == "null" {
		return s.planner, nil
	}
	fences, err := ParseNoFlyZones(zones)
	if err != nil {
		return nil, err
	}
	return NewFlightPlanner(s.cfg, fences)
}

// GET /health - Health check endpoint
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	planned := s.planned
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":     "ready",
		"noFlyZones": s.numZones,
		"planned":    planned,
	})
}
