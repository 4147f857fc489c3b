package server

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	"juniorjoy/internal/domain/attendance"
	"juniorjoy/internal/domain/auth"
	"juniorjoy/internal/domain/directory"
	"juniorjoy/internal/domain/leave"
	"juniorjoy/internal/domain/notifications"
	"juniorjoy/internal/domain/payroll"
	"juniorjoy/internal/domain/reports"
	"juniorjoy/internal/domain/training"
	"juniorjoy/internal/platform/config"
	"juniorjoy/internal/platform/db"
	"juniorjoy/internal/platform/fixtures"
	"juniorjoy/internal/platform/metrics"
	"juniorjoy/internal/platform/querier"
	"juniorjoy/internal/transport/http/api"
	attendancehandler "juniorjoy/internal/transport/http/handlers/attendance"
	authhandler "juniorjoy/internal/transport/http/handlers/auth"
	directoryhandler "juniorjoy/internal/transport/http/handlers/directory"
	leavehandler "juniorjoy/internal/transport/http/handlers/leave"
	notificationshandler "juniorjoy/internal/transport/http/handlers/notifications"
	payrollhandler "juniorjoy/internal/transport/http/handlers/payroll"
	reportshandler "juniorjoy/internal/transport/http/handlers/reports"
	traininghandler "juniorjoy/internal/transport/http/handlers/training"
	"juniorjoy/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	DB      *pgxpool.Pool
	Router  http.Handler
	Metrics *metrics.Collector
}

// New connects, migrates, seeds and wires the router. Callers own the
// returned App and must Close it.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, migrationsDir()); err != nil {
			pool.Close()
			return nil, err
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, err
		}
	}
	if cfg.SeedDemoData {
		if err := fixtures.SeedDemo(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
	}

	collector := metrics.New()
	return &App{
		Config:  cfg,
		DB:      pool,
		Router:  NewRouter(cfg, pool, collector),
		Metrics: collector,
	}, nil
}

func (a *App) Close() {
	a.DB.Close()
}

// migrationsDir walks up from the working directory so tests running
// from package directories still find the migrations.
func migrationsDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "migrations"
	}
	for {
		candidate := filepath.Join(dir, "migrations")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "migrations"
		}
		dir = parent
	}
}

func Run() {
	ctx := context.Background()
	app, err := New(ctx, config.Load())
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              app.Config.Addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", app.Config.Addr, "env", app.Config.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown", "err", err)
	}
	slog.Info("server stopped")
}

// NewRouter wires the full middleware chain and API surface. It is
// split out from Run so journey tests can mount the same router on an
// httptest server.
func NewRouter(cfg config.Config, pool querier.Pinger, collector *metrics.Collector) http.Handler {
	directoryStore := directory.NewStore(pool)
	authStore := auth.NewStore(pool)
	leaveService := leave.NewService(leave.NewStore(pool), directoryStore)
	payrollService := payroll.NewService(pool, directoryStore)
	attendanceService := attendance.NewService(pool)
	trainingService := training.NewService(pool)
	notificationService := notifications.New(pool)
	reportService := reports.NewService(pool)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))

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

	router.Get("/metricsz", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authStore, cfg.JWTSecret, cfg.TokenTTL).RegisterRoutes(r)
		directoryhandler.NewHandler(directoryStore).RegisterRoutes(r)
		leavehandler.NewHandler(leaveService, notificationService).RegisterRoutes(r)
		payrollhandler.NewHandler(payrollService).RegisterRoutes(r)
		attendancehandler.NewHandler(attendanceService).RegisterRoutes(r)
		traininghandler.NewHandler(trainingService).RegisterRoutes(r)
		reportshandler.NewHandler(reportService, leaveService).RegisterRoutes(r)
		notificationshandler.NewHandler(notificationService).RegisterRoutes(r)
	})

	router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})

	return router
}

type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, r.URL.Path)
	_, err := os.Stat(path)
	if err == nil {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
