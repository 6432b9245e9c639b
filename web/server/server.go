package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/df07/go-realtime-raytracer/pkg/core"
	"github.com/df07/go-realtime-raytracer/pkg/geometry"
	"github.com/df07/go-realtime-raytracer/pkg/renderer"
	"github.com/df07/go-realtime-raytracer/pkg/scene"
)

// Request limits shared by the render, stream and inspect endpoints
const (
	minDimension = 16
	maxDimension = 2000
	maxSamples   = 10000
	maxDepth     = 1000
	maxFrames    = 1000
)

// Server handles web requests for the raytracer
type Server struct {
	port int
	bvh  geometry.BVHConfig
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port, bvh: geometry.DefaultBVHConfig()}
}

// SetBVHConfig changes how scenes built for later requests are accelerated
func (s *Server) SetBVHConfig(config geometry.BVHConfig) {
	s.bvh = config
}

// Handler returns the routes served by Start
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir("static/")))
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/stream", s.handleStream)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start serves until ctx is cancelled, then gives in-flight renders a few
// seconds to finish before closing their connections
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:        fmt.Sprintf(":%d", s.port),
		Handler:     s.Handler(),
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting web server on http://localhost%s", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes by group
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	writeJSON(w, http.StatusOK, scene.ListAllScenes())
}

// handleSceneConfig returns the default camera and sampling settings of a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "cornell-box"
	}

	sceneObj, err := s.createScene(sceneName, core.DiscardLogger)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	camera := sceneObj.CameraConfig
	sampling := sceneObj.SamplingConfig
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]interface{}{
			"width":           camera.Width,
			"height":          camera.Height,
			"hfov":            camera.HFov,
			"samplesPerPixel": sampling.SamplesPerPixel,
			"maxDepth":        sampling.MaxDepth,
			"motionBlur":      sampling.MotionBlur,
		},
		"limits": map[string]interface{}{
			"width":   map[string]int{"min": minDimension, "max": maxDimension},
			"height":  map[string]int{"min": minDimension, "max": maxDimension},
			"samples": map[string]int{"min": 1, "max": maxSamples},
			"depth":   map[string]int{"min": 1, "max": maxDepth},
			"frames":  map[string]int{"min": 1, "max": maxFrames},
		},
	})
}

// createScene builds a named scene with the server's BVH settings
func (s *Server) createScene(name string, logger core.Logger) (*scene.Scene, error) {
	return scene.Create(name, scene.Options{BVH: s.bvh, Seed: 1, Logger: logger})
}

// RenderRequest represents a render request from the client.
// Zero sizes and sampling values keep the scene's defaults.
type RenderRequest struct {
	Scene   string  `json:"scene"`   // Scene name (e.g., "cornell-box")
	Width   int     `json:"width"`   // Image width
	Height  int     `json:"height"`  // Image height
	Samples int     `json:"samples"` // Samples per pixel
	Depth   int     `json:"depth"`   // Maximum bounce depth
	Seed    int64   `json:"seed"`    // Sampler seed; 0 is fresh per frame
	Frames  int     `json:"frames"`  // Frames to stream
	Orbit   float64 `json:"orbit"`   // Degrees the camera orbits per streamed frame
}

// parseRenderRequest parses and validates query parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = "cornell-box"
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 0, minDimension, maxDimension); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", 0, minDimension, maxDimension); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(values, "samples", 0, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(values, "depth", 0, 1, maxDepth); err != nil {
		return nil, err
	}
	if req.Frames, err = parseIntParam(values, "frames", 10, 1, maxFrames); err != nil {
		return nil, err
	}
	if req.Orbit, err = parseFloatParam(values, "orbit", 0, -180, 180); err != nil {
		return nil, err
	}
	if seed := values.Get("seed"); seed != "" {
		if req.Seed, err = strconv.ParseInt(seed, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", seed)
		}
	}

	// Performance warning
	if req.Width*req.Height > 800*600 && req.Samples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// newRaytracer builds the requested scene and a raytracer with the request's overrides applied
func (s *Server) newRaytracer(req *RenderRequest, logger core.Logger) (*renderer.Raytracer, error) {
	sceneObj, err := s.createScene(req.Scene, logger)
	if err != nil {
		return nil, err
	}

	cameraConfig := sceneObj.CameraConfig
	if req.Width > 0 {
		cameraConfig.Width = req.Width
	}
	if req.Height > 0 {
		cameraConfig.Height = req.Height
	}

	sampling := sceneObj.SamplingConfig
	if req.Samples > 0 {
		sampling.SamplesPerPixel = req.Samples
	}
	if req.Depth > 0 {
		sampling.MaxDepth = req.Depth
	}
	sampling.Seed = req.Seed

	return renderer.NewRaytracer(sceneObj.World, renderer.NewCamera(cameraConfig), sampling, logger), nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %f and %f, got: %f", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
