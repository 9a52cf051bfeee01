// Package ops serves the operational HTTP surface: health probe, a JSON
// stats snapshot, and Prometheus metrics.
package ops

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kosmosbot/kosmos/internal/database"
	"github.com/kosmosbot/kosmos/internal/netmon"
	"github.com/kosmosbot/kosmos/internal/repository"
)

type Server struct {
	addr      string
	db        *database.DB
	monitor   *netmon.Monitor
	users     *repository.UserRepository
	reminders *repository.ReminderRepository
	queue     *repository.PendingMessageRepository
	log       *zap.Logger
}

func New(addr string, db *database.DB, monitor *netmon.Monitor, users *repository.UserRepository, reminders *repository.ReminderRepository, queue *repository.PendingMessageRepository, log *zap.Logger) *Server {
	return &Server{
		addr:      addr,
		db:        db,
		monitor:   monitor,
		users:     users,
		reminders: reminders,
		queue:     queue,
		log:       log,
	}
}

// Start blocks serving HTTP until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer,
		middleware.Timeout(30*time.Second),
	)

	r.Get("/health", s.handleHealth)
	r.Get("/stats", s.handleStats)

	registry := prometheus.NewRegistry()
	registry.MustRegister(newCollector(s.monitor, s.users, s.reminders, s.queue, s.log))
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:    s.addr,
		Handler: r,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Error("ops server shutdown", zap.Error(err))
		}
	}()

	s.log.Info("ops server listening", zap.String("addr", s.addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Pool.Ping(r.Context()); err != nil {
		s.log.Error("health check failed", zap.Error(err))
		http.Error(w, "database unreachable", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type statsResponse struct {
	Network      netmon.Stats   `json:"network"`
	RecentEvents []netmon.Event `json:"recent_events"`
	QueueDepth   int            `json:"queue_depth"`
	Users        int            `json:"users"`
	Reminders    map[string]int `json:"reminders"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	queueDepth, err := s.queue.Count(ctx)
	if err != nil {
		s.log.Error("failed to count pending messages", zap.Error(err))
		http.Error(w, "stats unavailable", http.StatusInternalServerError)
		return
	}
	users, err := s.users.Count(ctx)
	if err != nil {
		s.log.Error("failed to count users", zap.Error(err))
		http.Error(w, "stats unavailable", http.StatusInternalServerError)
		return
	}
	reminders, err := s.reminders.CountByStatus(ctx)
	if err != nil {
		s.log.Error("failed to count reminders", zap.Error(err))
		http.Error(w, "stats unavailable", http.StatusInternalServerError)
		return
	}

	resp := statsResponse{
		Network:      s.monitor.Stats(),
		RecentEvents: s.monitor.RecentHistory(5),
		QueueDepth:   queueDepth,
		Users:        users,
		Reminders:    reminders,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.log.Error("failed to encode stats", zap.Error(err))
	}
}
