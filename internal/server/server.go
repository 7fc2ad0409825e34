// Package server exposes checks, favorites and history over a REST API with
// an SSE event stream.
package server

//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen@v2.4.1 -config oapi-codegen.yaml openapi.yaml

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/shahar-caura/glutenguard/internal/checker"
	"github.com/shahar-caura/glutenguard/internal/phrases"
)

const baseURL = "/api"

// Notifier is told when the reference lists change under a running server.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// Server is the glutenguard HTTP API server.
type Server struct {
	port        int
	version     string
	startTime   time.Time
	checker     *checker.Checker
	phrases     *phrases.Provider
	phrasesFile string // watched for changes when set
	notifier    Notifier
	sseHub      *SSEHub
	logger      *slog.Logger
}

// New creates a Server with the given options.
func New(port int, version string, c *checker.Checker, p *phrases.Provider, logger *slog.Logger) *Server {
	return &Server{
		port:      port,
		version:   version,
		startTime: time.Now(),
		checker:   c,
		phrases:   p,
		sseHub:    NewSSEHub(logger),
		logger:    logger,
	}
}

// WatchPhrases reloads the reference lists from path while the server runs
// and publishes a phrases event on every reload.
func (s *Server) WatchPhrases(path string) { s.phrasesFile = path }

// NotifyReloads sends a message through n after every phrase reload.
func (s *Server) NotifyReloads(n Notifier) { s.notifier = n }

func (s *Server) phrasesReloaded(ctx context.Context, set *phrases.Set) {
	s.sseHub.Publish("phrases", toPhraseLists(set))
	if s.notifier == nil {
		return
	}
	msg := fmt.Sprintf("glutenguard: reference lists updated to version %s (%d gluten, %d ambiguous phrases)",
		set.Version, len(set.Gluten), len(set.Ambiguous))
	if err := s.notifier.Notify(ctx, msg); err != nil {
		s.logger.Warn("reload notification failed", "version", set.Version, "err", err)
	}
}

// Handler builds the full route table: the validated REST API, the event
// stream and the OpenAPI document.
func (s *Server) Handler(ctx context.Context) (http.Handler, error) {
	doc, err := LoadSpec(ctx)
	if err != nil {
		return nil, err
	}
	validate, err := NewValidator(doc, baseURL)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()

	h := &Handlers{
		Version:   s.version,
		StartTime: s.startTime,
		Checker:   s.checker,
		Phrases:   s.phrases,
		Hub:       s.sseHub,
		Logger:    s.logger,
	}
	strict := NewStrictHandlerWithOptions(h, nil, StrictHTTPServerOptions{
		RequestErrorHandlerFunc: func(w http.ResponseWriter, _ *http.Request, err error) {
			writeError(w, http.StatusBadRequest, err.Error())
		},
		ResponseErrorHandlerFunc: func(w http.ResponseWriter, r *http.Request, err error) {
			s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
			writeError(w, http.StatusInternalServerError, "internal error")
		},
	})
	HandlerWithOptions(strict, StdHTTPServerOptions{
		BaseURL:     baseURL,
		BaseRouter:  mux,
		Middlewares: []MiddlewareFunc{validate},
		ErrorHandlerFunc: func(w http.ResponseWriter, _ *http.Request, err error) {
			writeError(w, http.StatusBadRequest, err.Error())
		},
	})

	// SSE endpoint (outside codegen, streaming is incompatible with strict mode).
	mux.Handle("GET "+baseURL+"/events", s.sseHub)

	mux.HandleFunc("GET "+baseURL+"/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(Spec())
	})

	return mux, nil
}

// Run starts the HTTP server and blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	handler, err := s.Handler(ctx)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf(":%d", s.port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		// Request contexts end with ctx so open event streams let Shutdown finish.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	if s.phrasesFile != "" {
		go func() {
			err := s.phrases.Watch(ctx, s.phrasesFile, func(set *phrases.Set) {
				s.phrasesReloaded(ctx, set)
			})
			if err != nil {
				s.logger.Error("phrase watcher stopped", "path", s.phrasesFile, "err", err)
			}
		}()
	}

	// Start listener so we can log the actual port.
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}

	s.logger.Info("api server started", "addr", ln.Addr().String(),
		"phrases_version", s.phrases.Current().Version)

	// Graceful shutdown on context cancellation.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
