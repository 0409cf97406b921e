package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/infra-ingest/internal/domain"
)

// defaultUploadName is the source path given to uploads without a name parameter.
const defaultUploadName = "upload.tek"

// FileParser decodes and parses one uploaded file.
type FileParser interface {
	ParseBytes(name string, data []byte, encoding string, mode domain.Mode) (*domain.InfraFile, error)
	Mode() domain.Mode
}

// Server exposes health, readiness, metrics and the parse endpoint.
type Server struct {
	httpServer *http.Server
	parser     FileParser
	maxBytes   int64
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics and
// POST /v1/parse routes. Upload bodies above maxBytes are rejected.
func NewServer(addr string, ready sharedobs.ReadinessChecker, parser FileParser, maxBytes int64, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		parser:   parser,
		maxBytes: maxBytes,
		logger:   logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /v1/parse", s.handleParse)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

type errorResponse struct {
	Error string `json:"error"`
	Line  int    `json:"line,omitempty"`
	Code  string `json:"code,omitempty"`
}

// handleParse parses the request body as one Infra file. Query parameters:
// name (source path), encoding (charset label or auto) and mode
// (lenient or strict, defaulting to the service mode).
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	mode := s.parser.Mode()
	if m := q.Get("mode"); m != "" {
		var err error
		if mode, err = domain.ParseMode(m); err != nil {
			sharedobs.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
	}

	body := r.Body
	if s.maxBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, s.maxBytes)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			sharedobs.WriteJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: err.Error()})
			return
		}
		sharedobs.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	name := q.Get("name")
	if name == "" {
		name = defaultUploadName
	}

	f, err := s.parser.ParseBytes(name, data, q.Get("encoding"), mode)
	if err != nil {
		var se *domain.StructuralError
		if errors.As(err, &se) {
			s.logger.Debug("rejected upload", "file", name, "line", se.Line, "error", se.Err)
			sharedobs.WriteJSON(w, http.StatusUnprocessableEntity, errorResponse{
				Error: se.Err.Error(),
				Line:  se.Line,
				Code:  se.Code,
			})
			return
		}
		sharedobs.WriteJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	s.logger.Info("parsed upload",
		"file", name,
		"investigations", len(f.Investigations),
		"diagnostics", len(f.Diagnostics),
	)
	sharedobs.WriteJSON(w, http.StatusOK, f)
}
