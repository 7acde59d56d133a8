// Package server exposes the compiler over HTTP.
//
// Routes:
//
//	GET  /healthz      build information
//	POST /v1/align     evaluate one align call (JSON in, JSON out)
//	POST /v1/compile   compile a TOML document; query: lang, primary,
//	                   secondary, format (text, json, dot or svg), refresh
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/neunenak/typst/pkg/buildinfo"
	typsterrors "github.com/neunenak/typst/pkg/errors"
	"github.com/neunenak/typst/pkg/pipeline"
	"github.com/neunenak/typst/pkg/render"
)

// MaxDocumentSize bounds request bodies.
const MaxDocumentSize = 1 << 20

// Server handles HTTP requests with a shared pipeline runner.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates a server. The runner must not be nil.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	return &Server{runner: runner, logger: logger}
}

// Routes returns the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/align", s.handleAlign)
		r.Post("/compile", s.handleCompile)
	})
	return r
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *Server) handleAlign(w http.ResponseWriter, r *http.Request) {
	var req pipeline.AlignRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxDocumentSize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, typsterrors.Wrap(typsterrors.ErrCodeInvalidInput, err, "decode request"))
		return
	}

	res, err := s.runner.EvaluateAlign(r.Context(), req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	src, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxDocumentSize))
	if err != nil {
		s.writeError(w, typsterrors.Wrap(typsterrors.ErrCodeInvalidInput, err, "read document"))
		return
	}

	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = render.FormatJSON
	}
	opts := pipeline.Options{
		Lang:      q.Get("lang"),
		Primary:   q.Get("primary"),
		Secondary: q.Get("secondary"),
		Formats:   []string{format},
		Refresh:   q.Get("refresh") == "true",
	}

	res, err := s.runner.Execute(r.Context(), src, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType(format))
	w.Header().Set("X-Doc-Hash", res.DocHash)
	if res.CacheHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func contentType(format string) string {
	switch format {
	case render.FormatJSON:
		return "application/json"
	case render.FormatSVG:
		return "image/svg+xml"
	case render.FormatDOT:
		return "text/vnd.graphviz"
	}
	return "text/plain; charset=utf-8"
}

type errorResponse struct {
	Code    typsterrors.Code `json:"code,omitempty"`
	Message string           `json:"message"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	msg := typsterrors.UserMessage(err)
	var e *typsterrors.Error
	if errors.As(err, &e) && e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	writeJSON(w, status, errorResponse{Code: typsterrors.GetCode(err), Message: msg})
}

func statusFor(err error) int {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return http.StatusServiceUnavailable
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return http.StatusRequestEntityTooLarge
	}
	switch typsterrors.GetCode(err) {
	case "", typsterrors.ErrCodeInternal:
		return http.StatusInternalServerError
	case typsterrors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	case typsterrors.ErrCodeNotFound, typsterrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
