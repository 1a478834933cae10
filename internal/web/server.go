package web

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/justestif/go-world-theme-player/internal/logging"
)

// DefaultAddr is the default server address.
const DefaultAddr = "127.0.0.1:8080"

const shutdownTimeout = 10 * time.Second

// ServerConfig holds server configuration.
type ServerConfig struct {
	Addr        string
	TemplatesFS fs.FS
	StaticFS    fs.FS
	Results     ResultsReader
	Eras        EraDetector
	MusicDir    string
	LogFile     string // tailed by /ws/logs; empty disables the stream
	Logger      *slog.Logger
}

// Server is the HTTP server for the dashboard.
type Server struct {
	router   chi.Router
	server   *http.Server
	handlers *Handlers
	logger   *slog.Logger

	// closed on shutdown so hijacked websocket streams stop
	streams context.Context
	stop    context.CancelFunc
}

// NewServer creates a new web server.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Results == nil {
		return nil, errors.New("results reader is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	templates, err := NewTemplates(cfg.TemplatesFS)
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	streams, stop := context.WithCancel(context.Background())

	s := &Server{
		router:  chi.NewRouter(),
		logger:  logger,
		streams: streams,
		stop:    stop,
	}
	s.handlers = &Handlers{
		templates: templates,
		results:   cfg.Results,
		eras:      cfg.Eras,
		musicDir:  cfg.MusicDir,
		logFile:   cfg.LogFile,
		logger:    logger,
		streams:   streams,
		now:       time.Now,
	}

	s.setupMiddleware()
	s.setupRoutes(cfg.StaticFS)

	addr := cfg.Addr
	if addr == "" {
		addr = DefaultAddr
	}
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	s.server.RegisterOnShutdown(stop)

	return s, nil
}

// Handler returns the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
}

func (s *Server) setupRoutes(staticFS fs.FS) {
	if staticFS != nil {
		fileServer := http.FileServer(http.FS(staticFS))
		s.router.Handle("/static/*", http.StripPrefix("/static/", fileServer))
	}

	// Pages
	s.router.Get("/", s.handlers.Home)
	s.router.Get("/pipeline", s.handlers.Pipeline)
	s.router.Get("/eras", s.handlers.Eras)
	s.router.Get("/logs", s.handlers.Logs)
	s.router.Get("/partials/audio-files", s.handlers.AudioFilesPartial)

	// JSON API
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/pipeline", s.handlers.APIPipeline)
		r.Get("/history", s.handlers.APIHistory)
		r.Get("/eras", s.handlers.APIEras)
		r.Get("/audio-files", s.handlers.APIAudioFiles)
		r.Post("/prompt", s.handlers.APIPrompt)
	})

	// Files
	s.router.Get("/viz/{date}/{name}", s.handlers.Visualization)
	s.router.Get("/audio/{filename}", s.handlers.Audio)

	s.router.Get("/ws/logs", s.handlers.LogsWS)
	s.router.Get("/healthz", s.handlers.Healthz)
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info("starting dashboard", "url", "http://"+s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	defer s.stop()
	return s.server.Shutdown(ctx)
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down dashboard")
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.logger.Info("dashboard stopped")
	return nil
}
