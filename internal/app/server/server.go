package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"payrun/internal/platform/config"
	"payrun/internal/platform/db"
	"payrun/internal/platform/metrics"
	"payrun/internal/transport/http/api"
	directoryhandler "payrun/internal/transport/http/handlers/directory"
	payrollhandler "payrun/internal/transport/http/handlers/payroll"
	"payrun/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	DB      *pgxpool.Pool
	Router  http.Handler
	Metrics *metrics.Collector
}

// New connects, migrates, optionally seeds and builds the router. The
// returned App is also the harness the integration tests run against.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, err
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
	}

	collector := metrics.New()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
	})

	router.Route("/api/v1", func(r chi.Router) {
		payrollhandler.NewHandler(pool, cfg.PayslipDir).RegisterRoutes(r)
		directoryhandler.NewHandler(pool).RegisterRoutes(r)
	})

	return &App{Config: cfg, DB: pool, Router: router, Metrics: collector}, nil
}

func (a *App) Close() {
	a.DB.Close()
}

func Run(cfg config.Config) error {
	app, err := New(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	zap.L().Info("payrun server listening", zap.String("addr", cfg.Addr))
	return http.ListenAndServe(cfg.Addr, app.Router)
}
