// Package server is the composition root: it wires the database, services,
// validators, and handlers together, defines the routes, and runs the HTTP
// server with graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/smileksey/quotes-service/internal/config"
	"github.com/smileksey/quotes-service/internal/handler"
	"github.com/smileksey/quotes-service/internal/middleware"
	sqliteRepo "github.com/smileksey/quotes-service/internal/repository/sqlite"
	"github.com/smileksey/quotes-service/internal/service"
	"github.com/smileksey/quotes-service/internal/validation"
)

// Server owns the router and the database connection; the connection is
// closed during graceful shutdown.
type Server struct {
	router *chi.Mux
	cfg    *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New opens the database and assembles the full dependency chain:
// sqlite.DB → services → validators → handlers → routes.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		cfg:    cfg,
		logger: logger,
		db:     db,
	}
	s.setupRoutes()

	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	userService := service.NewUserService(s.db, s.logger)
	quoteService := service.NewQuoteService(s.db, userService, s.logger)

	quoteHandler := handler.NewQuoteHandler(quoteService, validation.NewQuoteValidator(userService), s.logger)
	userHandler := handler.NewUserHandler(userService, validation.NewUserValidator(userService), s.logger)

	s.router.Get("/health", s.handleHealth)

	s.router.Route("/quotes", func(r chi.Router) {
		r.Post("/add", quoteHandler.HandleAdd)
		r.Get("/random", quoteHandler.HandleRandom)
		r.Get("/top10", quoteHandler.HandleTopTen)
		r.Get("/worst10", quoteHandler.HandleWorstTen)
		r.Get("/{id}", quoteHandler.HandleGetByID)
		r.Patch("/{id}", quoteHandler.HandleUpdate)
		r.Delete("/{id}", quoteHandler.HandleDelete)
		r.Patch("/{id}/upvote", quoteHandler.HandleUpvote)
		r.Patch("/{id}/downvote", quoteHandler.HandleDownvote)
	})

	s.router.Post("/users/register", userHandler.HandleRegister)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		s.logger.Error("health check failed", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// Start runs the HTTP server until SIGINT/SIGTERM, then drains in-flight
// requests within the configured shutdown timeout and closes the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout(),
		WriteTimeout: s.cfg.Server.WriteTimeout(),
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.String("addr", srv.Addr),
			slog.String("database", s.cfg.Database.Path),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout())
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
