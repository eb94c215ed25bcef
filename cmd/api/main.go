package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/workspace-backend-go/internal/config"
	"github.com/cmlabs-hris/workspace-backend-go/internal/domain/directory"
	appHTTP "github.com/cmlabs-hris/workspace-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/workspace-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/workspace-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/workspace-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/workspace-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/workspace-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/workspace-backend-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/workspace-backend-go/internal/repository/rediscache"
	dashboardService "github.com/cmlabs-hris/workspace-backend-go/internal/service/dashboard"
	directoryService "github.com/cmlabs-hris/workspace-backend-go/internal/service/directory"
	workspaceService "github.com/cmlabs-hris/workspace-backend-go/internal/service/workspace"
	"github.com/redis/go-redis/v9"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})).With(
		slog.String("app", cfg.App.Name),
		slog.String("env", cfg.App.Env),
	))

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	var store directory.Store = postgresql.NewStore(db)
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			slog.Warn("redis unreachable, list cache will fall through to postgres", "addr", cfg.Redis.Addr, "error", err)
		}
		store = rediscache.NewStore(store, rdb, cfg.Redis.ListTTL)
	}

	clk := clock.NewRealClock()
	identity := jwt.NewClaimsIdentity()
	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	hub := sse.NewHub()

	registry := workspaceService.NewRegistry(cfg.Workspace.CacheTTL, cfg.Workspace.LoadTimeout, clk)
	notifier := directoryService.NewWorkspaceNotifier(registry, hub)

	directorySvc := directoryService.NewDirectoryService(store, notifier, clk)
	workspaceSvc := workspaceService.NewWorkspaceService(store, identity, registry, clk, cfg.Workspace.TopProjects)
	dashboardSvc := dashboardService.NewDashboardService(store, identity, clk, cfg.Workspace.TopProjects, cfg.Workspace.ActivityFeedSize)

	router := appHTTP.NewRouter(appHTTP.RouterOptions{
		AppName:        cfg.App.Name,
		Version:        cfg.App.Version,
		Env:            cfg.App.Env,
		LogLevel:       cfg.SlogLevel(),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RateLimit:      cfg.App.RateLimit,
		RateLimitBurst: cfg.App.RateLimitBurst,
	}, JWTService, appHTTP.Handlers{
		Dashboard: appHTTP.NewDashboardHandler(dashboardSvc),
		Workspace: appHTTP.NewWorkspaceHandler(workspaceSvc),
		Me:        appHTTP.NewMeHandler(identity),
		Events:    appHTTP.NewEventsHandler(hub, identity),
		Employee:  appHTTP.NewEmployeeHandler(directorySvc, identity),
		Project:   appHTTP.NewProjectHandler(directorySvc),
		Invoice:   appHTTP.NewInvoiceHandler(directorySvc),
	})

	scheduler := cron.NewScheduler()
	scheduler.AddJob("workspace-idle-eviction", time.Minute, func(ctx context.Context) error {
		if n := registry.EvictIdle(cfg.Workspace.IdleEviction); n > 0 {
			slog.Info("evicted idle workspace caches", "count", n, "remaining", registry.Len())
		}
		return nil
	})
	scheduler.Start()
	defer scheduler.Stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
