// Package server exposes the tracker over a local HTTP/JSON API for the
// browser dashboard, with a WebSocket feed that pushes a fresh day report
// after every change.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/robfig/cron/v3"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type Options struct {
	DB     *sql.DB
	Logger *zap.Logger
	// Locale overrides the stored locale for every response that does not
	// ask for one.
	Locale         string
	RateLimit      float64
	RateBurst      int
	Timeout        time.Duration
	SweepSchedule  string
	AllowedOrigins []string
	Now            func() time.Time
}

type Server struct {
	db      *sql.DB
	log     *zap.Logger
	locale  string
	now     func() time.Time
	hub     *Hub
	limiter *rate.Limiter
	cron    *cron.Cron
	router  chi.Router
}

func New(opts Options) (*Server, error) {
	if opts.DB == nil {
		return nil, errors.New("server needs a database")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 20
	}
	if opts.RateBurst <= 0 {
		opts.RateBurst = int(opts.RateLimit) * 2
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	s := &Server{
		db:      opts.DB,
		log:     opts.Logger,
		locale:  opts.Locale,
		now:     opts.Now,
		hub:     NewHub(opts.Logger),
		limiter: rate.NewLimiter(rate.Limit(opts.RateLimit), opts.RateBurst),
		cron:    cron.New(),
	}
	if opts.SweepSchedule != "" {
		if _, err := s.cron.AddFunc(opts.SweepSchedule, s.SweepAchievements); err != nil {
			return nil, fmt.Errorf("schedule achievement sweep %q: %w", opts.SweepSchedule, err)
		}
	}
	s.router = s.routes(opts)
	return s, nil
}

func (s *Server) routes(opts Options) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}).Handler)
	r.Use(s.rateLimit)

	r.Route("/api/v1", func(r chi.Router) {
		// Hijacked connections must not sit behind the timeout.
		r.Get("/ws", s.handleWebSocket)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(opts.Timeout))

			r.Get("/days/{date}", s.getDay)
			r.Get("/insights", s.getInsights)

			r.Get("/meals", s.listMeals)
			r.Post("/meals", s.createMeal)
			r.Put("/meals/{id}", s.updateMeal)
			r.Delete("/meals/{id}", s.deleteMeal)

			r.Put("/water/{date}", s.putWater)

			r.Get("/goals", s.getGoals)
			r.Put("/goals", s.putGoals)
			r.Get("/goals/history", s.getGoalHistory)

			r.Get("/templates", s.listTemplates)
			r.Post("/templates/{ref}/use", s.useTemplate)

			r.Get("/history", s.getHistory)
			r.Get("/statistics", s.getStatistics)
			r.Get("/streak", s.getStreak)
			r.Get("/achievements", s.getAchievements)
			r.Get("/export", s.getExport)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	return r
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Hub() *Hub {
	return s.hub
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.cron.Start()
	defer s.cron.Stop()
	s.SweepAchievements()

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen on %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.hub.CloseAll()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			respondWithError(w, http.StatusTooManyRequests, errorBody{Error: "rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
