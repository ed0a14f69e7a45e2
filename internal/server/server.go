// Package server exposes a dashboard session over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/KaramelBytes/wordloom/internal/dashboard"
)

// Dashboard is the part of a dashboard.Session the handlers use.
type Dashboard interface {
	Status() dashboard.Status
	Categories() ([]string, error)
	Fields() []dashboard.Field
	Render(ctx context.Context, q dashboard.Query) (dashboard.View, error)
}

// Server serves the JSON API.
type Server struct {
	dash   Dashboard
	logger *slog.Logger
}

// New creates a server for d.
func New(d Dashboard, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{dash: d, logger: logger.With(slog.String("component", "server"))}
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/healthz", s.health)
	r.Route("/api", func(r chi.Router) {
		r.Get("/institutions", s.institutions)
		r.Get("/fields", s.fields)
		r.Get("/chart", s.chart)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", slog.String("addr", addr))
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.DebugContext(r.Context(), "request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("took", time.Since(start)),
		)
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	st := s.dash.Status()
	if st.Phase != dashboard.PhaseReady.String() {
		render.Status(r, http.StatusServiceUnavailable)
	}
	render.JSON(w, r, st)
}

func (s *Server) institutions(w http.ResponseWriter, r *http.Request) {
	cats, err := s.dash.Categories()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	render.JSON(w, r, map[string]any{"institutions": cats})
}

func (s *Server) fields(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]any{"fields": s.dash.Fields()})
}

func (s *Server) chart(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	view, err := s.dash.Render(r.Context(), q)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	render.JSON(w, r, view)
}

// parseQuery reads ?field=&institution=&kind=&max_words=&color_scale=&title=.
// institution may repeat or hold a comma-separated list.
func parseQuery(r *http.Request) (dashboard.Query, error) {
	v := r.URL.Query()
	q := dashboard.Query{
		Field:      v.Get("field"),
		Kind:       strings.ToLower(v.Get("kind")),
		ColorScale: v.Get("color_scale"),
		Title:      v.Get("title"),
	}
	for _, raw := range v["institution"] {
		for _, c := range strings.Split(raw, ",") {
			if c = strings.TrimSpace(c); c != "" {
				q.Categories = append(q.Categories, c)
			}
		}
	}
	if mw := v.Get("max_words"); mw != "" {
		n, err := strconv.Atoi(mw)
		if err != nil {
			return dashboard.Query{}, fmt.Errorf("%w: max_words: %q is not an integer", dashboard.ErrInvalidQuery, mw)
		}
		q.MaxWords = n
	}
	return q, nil
}

// ErrorResponse is the JSON body of every non-2xx reply.
type ErrorResponse struct {
	Status int    `json:"status"`
	Code   string `json:"code"`
	Error  string `json:"error"`
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	resp := ErrorResponse{Error: err.Error()}
	switch {
	case errors.Is(err, dashboard.ErrInvalidQuery):
		resp.Status, resp.Code = http.StatusBadRequest, "invalid_query"
	case errors.Is(err, dashboard.ErrNotLoaded):
		resp.Status, resp.Code = http.StatusServiceUnavailable, "loading"
	default:
		// Anything else comes from a failed load.
		resp.Status, resp.Code = http.StatusServiceUnavailable, "load_failed"
		s.logger.ErrorContext(r.Context(), "request failed", slog.String("error", err.Error()))
	}
	render.Status(r, resp.Status)
	render.JSON(w, r, resp)
}
