package server

import (
	"context"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"

	"staffsync/internal/domain/attendance"
	"staffsync/internal/domain/leave"
	"staffsync/internal/domain/user"
	"staffsync/internal/platform/config"
	"staffsync/internal/platform/db"
	"staffsync/internal/platform/storage"
	attendancehandler "staffsync/internal/transport/http/handlers/attendance"
	leavehandler "staffsync/internal/transport/http/handlers/leave"
	payrollhandler "staffsync/internal/transport/http/handlers/payroll"
	todoshandler "staffsync/internal/transport/http/handlers/todos"
	usershandler "staffsync/internal/transport/http/handlers/users"
	"staffsync/internal/transport/http/middleware"
)

type App struct {
	Config config.Config
	Pool   *pgxpool.Pool
	Router http.Handler
}

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

	userStore := user.NewStore(pool)
	leaveStore := leave.NewStore(pool)
	attendanceStore := attendance.NewStore(pool)
	uploads := storage.NewLocalStore(filepath.Join(cfg.PublicDir, "uploads"), cfg.PublicBaseURL+"/uploads")

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute))
	router.Use(middleware.Auth(cfg.AccessTokenSecret))

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

	router.Route("/api/v1/users", func(r chi.Router) {
		usershandler.NewHandler(userStore, uploads, cfg).RegisterRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.BodyLimit(cfg.MaxBodyBytes))

			leavehandler.NewHandler(leaveStore).RegisterRoutes(r)
			attendancehandler.NewHandler(attendanceStore).RegisterRoutes(r)
			todoshandler.NewHandler(userStore).RegisterRoutes(r)
			payrollhandler.NewHandler(userStore).RegisterRoutes(r)
		})
	})

	// Uploaded images are served straight from the public dir.
	router.Handle("/public/*", http.StripPrefix("/public/", http.FileServer(http.Dir(cfg.PublicDir))))

	return &App{Config: cfg, Pool: pool, Router: router}, nil
}

func (a *App) Close() {
	a.Pool.Close()
}

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	app, err := New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()

	log.Printf("staffsync server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
