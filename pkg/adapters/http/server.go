// Package http exposes the debug controls of an engine over a small JSON API.
package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/easel"
	"github.com/aretw0/easel/internal/logging"
	"github.com/aretw0/easel/internal/presentation/graph"
	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/scheduler"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed openapi.yaml
var rawSpec []byte

// Host is the part of an engine the server needs.
type Host interface {
	Debug() (scheduler.Controls, error)
	Status() scheduler.Status
}

// LoadSpec parses and validates the embedded OpenAPI document.
func LoadSpec() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return doc, nil
}

// Server serves the debug API for one host.
type Server struct {
	host     Host
	doc      *openapi3.T
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics serves g at /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewServer loads the API document and configures a server for host.
func NewServer(host Host, opts ...Option) (*Server, error) {
	doc, err := LoadSpec()
	if err != nil {
		return nil, err
	}
	s := &Server{
		host:   host,
		doc:    doc,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// NewHandler creates the HTTP handler for host.
func NewHandler(host Host, opts ...Option) (http.Handler, error) {
	s, err := NewServer(host, opts...)
	if err != nil {
		return nil, err
	}
	return enableCORS(s.Routes()), nil
}

// Routes builds the router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.logRequests)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/status", s.GetStatus)
	r.Get("/graph", s.GetGraph)

	r.Route("/debug", func(r chi.Router) {
		r.Post("/start", s.command(scheduler.Controls.Start))
		r.Post("/break", s.command(scheduler.Controls.Break))
		r.Post("/pause", s.command(scheduler.Controls.Pause))
		r.Post("/step", s.command(scheduler.Controls.Step))
		r.Post("/reset", s.command(scheduler.Controls.Reset))
		r.Post("/resize", s.Resize)
		r.Post("/break-when", s.BreakWhen)
	})
	return r
}

// Serve runs handler on addr until ctx is done, then shuts down gracefully.
func Serve(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.NewNop()
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("debug server listening", "address", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("debug server shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

const swaggerHTML = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>Easel Debug API</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui.css" />
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5.11.0/swagger-ui-bundle.js" crossorigin></script>
<script>
    window.onload = () => {
    window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui',
    });
    };
</script>
</body>
</html>
`

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, s.logger)
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if s.doc.Info != nil {
		apiVersion = s.doc.Info.Version
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "easel-http",
		"version":     strings.TrimSpace(easel.Version),
		"api_version": apiVersion,
	}, s.logger)
}

// GetStatus handles GET /status. It works with debug disabled.
func (s *Server) GetStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.host.Status(), s.logger)
}

// GetGraph handles GET /graph: the loop state machine as Mermaid, current state highlighted.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	overlay := &graph.GraphOverlay{CurrentState: s.host.Status().State}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(graph.GenerateMermaid(graph.LoopEdges(), overlay))); err != nil {
		s.logger.Error("response write failed", "error", err)
	}
}

func (s *Server) controls(w http.ResponseWriter) (scheduler.Controls, bool) {
	controls, err := s.host.Debug()
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrDebugDisabled) {
			status = http.StatusForbidden
		}
		writeError(w, status, err, s.logger)
		return nil, false
	}
	return controls, true
}

func (s *Server) command(fn func(scheduler.Controls)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		controls, ok := s.controls(w)
		if !ok {
			return
		}
		fn(controls)
		writeJSON(w, http.StatusOK, controls.Status(), s.logger)
	}
}

type resizeRequest struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Resize handles POST /debug/resize.
func (s *Server) Resize(w http.ResponseWriter, r *http.Request) {
	controls, ok := s.controls(w)
	if !ok {
		return
	}
	var body resizeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err), s.logger)
		return
	}
	if err := controls.Resize(body.Width, body.Height); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrInvalidSize) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err, s.logger)
		return
	}
	writeJSON(w, http.StatusOK, controls.Status(), s.logger)
}

type breakWhenRequest struct {
	Frame *int `json:"frame"`
}

type breakWhenResponse struct {
	Broke  bool             `json:"broke"`
	Status scheduler.Status `json:"status"`
}

// BreakWhen handles POST /debug/break-when.
func (s *Server) BreakWhen(w http.ResponseWriter, r *http.Request) {
	controls, ok := s.controls(w)
	if !ok {
		return
	}
	var body breakWhenRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err), s.logger)
		return
	}
	if body.Frame == nil || *body.Frame < 0 {
		writeError(w, http.StatusBadRequest, errors.New("frame must be a non-negative integer"), s.logger)
		return
	}
	target := *body.Frame
	broke := controls.BreakWhen(func(d domain.DrawData) bool {
		return d.Frame >= target
	})
	writeJSON(w, http.StatusOK, breakWhenResponse{Broke: broke, Status: controls.Status()}, s.logger)
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error, logger *slog.Logger) {
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
	} else {
		logger.Warn("request rejected", "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()}, logger)
}
