package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/df07/go-realtime-raytracer/pkg/core"
	"github.com/df07/go-realtime-raytracer/pkg/renderer"
)

// FrameUpdate is one streamed frame
type FrameUpdate struct {
	FrameNumber int    `json:"frameNumber"`
	TotalFrames int    `json:"totalFrames"`
	ImageData   string `json:"imageData"` // Base64 encoded PNG
	Stats       Stats  `json:"stats"`
	ElapsedMs   int64  `json:"elapsedMs"`
}

// Stats represents render statistics for one frame
type Stats struct {
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	TotalPixels      int     `json:"totalPixels"`
	TotalSamples     int     `json:"totalSamples"`
	SamplesPerPixel  int     `json:"samplesPerPixel"`
	Workers          int     `json:"workers"`
	FrameMs          int64   `json:"frameMs"`
	AverageLuminance float64 `json:"averageLuminance"`
}

func newStats(stats renderer.RenderStats, frame *renderer.Frame) Stats {
	return Stats{
		Width:            stats.Width,
		Height:           stats.Height,
		TotalPixels:      stats.TotalPixels,
		TotalSamples:     stats.TotalSamples,
		SamplesPerPixel:  stats.SamplesPerPixel,
		Workers:          stats.Workers,
		FrameMs:          stats.Duration.Milliseconds(),
		AverageLuminance: frame.AverageLuminance(),
	}
}

// handleRender renders a single frame and responds with a PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}

	raytracer, err := s.newRaytracer(req, core.LoggerFunc(log.Printf))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := raytracer.ComputeFrame(r.Context()); err != nil {
		// The client went away
		log.Printf("Render of %s aborted: %v", req.Scene, err)
		return
	}

	var buf bytes.Buffer
	if err := raytracer.Frame().WritePNG(&buf); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	stats := raytracer.Stats()
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	w.Header().Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples))
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("Failed to write PNG: %v", err)
	}
}

// handleStream renders a sequence of frames and streams them with SSE. With
// orbit set, the camera circles the look-at point between frames.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	setSSEHeaders(w)

	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		sendSSEError(w, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	consoleChan := make(chan ConsoleMessage, 100)
	logger := NewWebLogger(req.Scene, consoleChan)

	raytracer, err := s.newRaytracer(req, logger)
	if err != nil {
		sendSSEError(w, err.Error())
		return
	}

	ctx := r.Context()
	startTime := time.Now()
	camera := raytracer.Camera()

	for frame := 1; frame <= req.Frames; frame++ {
		if err := raytracer.ComputeFrame(ctx); err != nil {
			log.Printf("Stream of %s stopped after %d frames: %v", req.Scene, frame-1, err)
			return
		}

		if err := flushConsole(w, consoleChan); err != nil {
			return
		}

		imageData, err := frameToBase64PNG(raytracer.Frame())
		if err != nil {
			sendSSEError(w, fmt.Sprintf("Failed to encode image: %v", err))
			return
		}

		update := FrameUpdate{
			FrameNumber: frame,
			TotalFrames: req.Frames,
			ImageData:   imageData,
			Stats:       newStats(raytracer.Stats(), raytracer.Frame()),
			ElapsedMs:   time.Since(startTime).Milliseconds(),
		}
		if err := sendSSEUpdate(w, update); err != nil {
			return
		}

		if req.Orbit != 0 {
			camera.Orbit(req.Orbit)
		}
	}

	sendSSEEvent(w, "complete", "Rendering completed")
}

// flushConsole forwards queued log messages as console events
func flushConsole(w http.ResponseWriter, consoleChan chan ConsoleMessage) error {
	for {
		select {
		case msg := <-consoleChan:
			data, err := json.Marshal(msg)
			if err != nil {
				return err
			}
			if err := sendSSEEvent(w, "console", string(data)); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// frameToBase64PNG converts a frame to base64-encoded PNG
func frameToBase64PNG(frame *renderer.Frame) (string, error) {
	var buf bytes.Buffer
	if err := frame.WritePNG(&buf); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// sendSSEUpdate sends a frame update via SSE
func sendSSEUpdate(w http.ResponseWriter, update FrameUpdate) error {
	data, err := json.Marshal(update)
	if err != nil {
		return err
	}
	return sendSSEEvent(w, "frame", string(data))
}

// sendSSEError sends an error via SSE
func sendSSEError(w http.ResponseWriter, message string) error {
	return sendSSEEvent(w, "error", message)
}

// sendSSEEvent sends a generic SSE event
func sendSSEEvent(w http.ResponseWriter, event, data string) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("streaming not supported")
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	flusher.Flush()
	return nil
}
