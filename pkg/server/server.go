// Package server exposes the export service over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	stdlog "log"
	"net"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/benjaminschreck/moralreport/pkg/config"
	"github.com/benjaminschreck/moralreport/pkg/export"
	"github.com/benjaminschreck/moralreport/pkg/logging"
	"github.com/benjaminschreck/moralreport/pkg/metrics"
)

// Routes
const (
	PathExport  = "/api/export-word"
	PathHealth  = "/healthz"
	PathMetrics = "/metrics"
)

// Client-facing error details
const (
	DetailInvalidPayload = "invalid JSON payload"
	DetailTooLarge       = "payload too large"
	DetailExportFailed   = "failed to generate Word document"
	DetailNotAllowed     = "method not allowed"
)

// Exporter is the part of export.Service the handlers need
type Exporter interface {
	Export(ctx context.Context, raw []byte) (*export.Result, error)
	Spool(res *export.Result) (*export.Artifact, error)
}

// Server wires the HTTP routes
type Server struct {
	cfg     *config.Config
	svc     Exporter
	logger  *logging.Logger
	metrics *metrics.Manager
	handler http.Handler
}

// Option configures a Server
type Option func(*Server)

// WithMetrics records request metrics on m and serves them on /metrics
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// New creates a server for svc
func New(cfg *config.Config, svc Exporter, log *logging.Logger, opts ...Option) *Server {
	if cfg == nil {
		cfg = config.New()
	}
	if log == nil {
		log = logging.GetLogger()
	}
	s := &Server{cfg: cfg, svc: svc, logger: log}
	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()
	mux.HandleFunc(PathExport, metricsMiddleware(s.metrics, "export", s.handleExport))
	mux.HandleFunc(PathHealth, metricsMiddleware(s.metrics, "healthz", s.handleHealth))
	if s.metrics != nil {
		mux.Handle(PathMetrics, s.metrics.Handler())
	}
	s.handler = newCORS(cfg.CORSOrigins).wrap(mux)
	return s
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens on the configured address and serves until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errorLog := s.logger.WithField("component", "http").Writer()
	defer errorLog.Close()
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
		ErrorLog:          stdlog.New(errorLog, "", 0),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.WithField("addr", ln.Addr().String()).Info("starting HTTP server")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	err := g.Wait()
	s.logger.Info("server stopped")
	return err
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		writeError(w, http.StatusMethodNotAllowed, DetailNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleExport handles POST /api/export-word
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, DetailNotAllowed)
		return
	}

	requestID := uuid.NewString()
	w.Header().Set("X-Request-ID", requestID)
	log := s.logger.WithField("request_id", requestID)

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			log.Warn("payload exceeds %d bytes", tooLarge.Limit)
			writeError(w, http.StatusRequestEntityTooLarge, DetailTooLarge)
			return
		}
		log.WithError(err).Warn("failed to read request body")
		writeError(w, http.StatusBadRequest, DetailInvalidPayload)
		return
	}

	res, err := s.svc.Export(r.Context(), body)
	if err != nil {
		switch {
		case export.IsInvalidPayload(err):
			writeError(w, http.StatusUnprocessableEntity, DetailInvalidPayload)
		default:
			log.WithError(err).Error("export failed")
			writeError(w, http.StatusInternalServerError, DetailExportFailed)
		}
		return
	}

	artifact, err := s.svc.Spool(res)
	if err != nil {
		log.WithError(err).Error("failed to spool document")
		writeError(w, http.StatusInternalServerError, DetailExportFailed)
		return
	}
	defer artifact.Release()

	f, err := artifact.Open()
	if err != nil {
		log.WithError(err).Error("failed to open spooled document")
		writeError(w, http.StatusInternalServerError, DetailExportFailed)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	w.Header().Set("Content-Length", strconv.FormatInt(artifact.Size, 10))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, f); err != nil {
		log.WithError(err).Warn("failed to stream document")
		return
	}
	log.WithField("filename", artifact.Filename).Info("document delivered")
}
