package main

import (
	"context"
	"database/sql"
	"delivery-planner/internal/adapters/cache"
	"delivery-planner/internal/adapters/mapdata"
	"delivery-planner/internal/adapters/repositories"
	"delivery-planner/internal/api"
	"delivery-planner/internal/config"
	"delivery-planner/internal/platform/db"
	"delivery-planner/internal/platform/logging"
	"delivery-planner/internal/platform/telemetry"
	"delivery-planner/internal/ports"
	"delivery-planner/internal/services"
	"delivery-planner/internal/streetmap"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"
)

// main is the application composition root.
// It loads the street map once, wires the planner behind the HTTP API and
// serves until SIGINT or SIGTERM.
func main() {
	flags := pflag.NewFlagSet("server", pflag.ExitOnError)
	flags.Int("port", 8080, "HTTP listen port")
	flags.String("map", "", "street map data file")
	flags.String("map-source", "", "street map source: file or postgres")
	flags.String("manifests", "", "directory of deliveries files served as named manifests")
	flags.String("cache", "", "leg cache backend: none, memory or redis")
	flags.String("log-level", "", "log level")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load(flags)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.Endpoint)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	var conn *sql.DB
	if cfg.Database.URL != "" {
		conn, err = db.Open(cfg.Database.URL)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer conn.Close()
	}

	sm, err := loadStreetMap(ctx, cfg, conn)
	if err != nil {
		log.Fatalf("street map: %v", err)
	}
	slog.Info("street map loaded", "name", cfg.Map.Name, "nodes", sm.Len(), "segments", sm.SegmentCount())

	legCache, closeCache, err := newLegCache(ctx, cfg)
	if err != nil {
		log.Fatalf("leg cache: %v", err)
	}
	defer closeCache()

	opts := []services.PlannerOption{
		services.WithOptimizer(services.NewTourOptimizer(services.OptimizerOptions{Restarts: cfg.Optimizer.Restarts})),
	}
	if legCache != nil {
		opts = append(opts, services.WithLegCache(legCache))
	}
	if cfg.Optimizer.Seed != 0 {
		opts = append(opts, services.WithSeed(cfg.Optimizer.Seed))
	}
	planner := services.NewPlanner(services.NewRouteSearch(sm), opts...)

	deps := api.Deps{
		Planner: planner,
		Map:     sm,
		MapName: cfg.Map.Name,
	}
	switch {
	case conn != nil:
		deps.Manifests = repositories.NewSQLManifestRepository(conn)
	case cfg.Manifests.Dir != "":
		deps.Manifests = mapdata.NewFileManifestSource(cfg.Manifests.Dir)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           api.NewRouter(deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}

func loadStreetMap(ctx context.Context, cfg *config.Config, conn *sql.DB) (*streetmap.StreetMap, error) {
	var src ports.StreetSource
	switch cfg.Map.Source {
	case "postgres":
		if conn == nil {
			return nil, errors.New("map.source is postgres but no database is configured")
		}
		src = repositories.NewSQLStreetRepository(conn)
	default:
		src = mapdata.NewFileStreetSource(cfg.Map.Path)
	}

	edges, err := src.ListStreetEdges(ctx)
	if err != nil {
		return nil, err
	}
	return streetmap.FromEdges(edges), nil
}

// newLegCache returns a nil cache when caching is disabled.
func newLegCache(ctx context.Context, cfg *config.Config) (ports.LegCache, func(), error) {
	switch cfg.Cache.Backend {
	case "memory":
		return cache.NewMemoryLegCache(cfg.Cache.TTL()), func() {}, nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("ping redis %s: %w", cfg.Redis.Addr, err)
		}
		return cache.NewRedisLegCache(client, cfg.Map.Name, cfg.Cache.TTL()), func() { _ = client.Close() }, nil
	default:
		return nil, func() {}, nil
	}
}
