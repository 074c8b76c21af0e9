package main

import (
	"context"
	"database/sql"
	"delivery-planner/internal/adapters/mapdata"
	"delivery-planner/internal/adapters/repositories"
	"delivery-planner/internal/config"
	"delivery-planner/internal/platform/db"
	"delivery-planner/internal/platform/logging"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
)

// dbtool creates the schema and seeds the street map and manifests from text files.
func main() {
	flags := pflag.NewFlagSet("dbtool", pflag.ExitOnError)
	flags.String("database-url", "", "Postgres connection URL")
	flags.String("map", "", "street map data file to seed")
	flags.String("log-level", "", "log level")
	manifests := flags.StringSlice("manifest", nil, "deliveries file to seed as a manifest (repeatable)")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load(flags)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	if cfg.Database.URL == "" {
		log.Fatal("database.url is required (DELIVERY_DATABASE_URL or --database-url)")
	}

	conn, err := db.Open(cfg.Database.URL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	mapPath := ""
	if flags.Changed("map") || cfg.Map.Source == "file" {
		mapPath = cfg.Map.Path
	}

	if err := initAndSeed(context.Background(), conn, mapPath, *manifests); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(ctx context.Context, conn *sql.DB, mapPath string, manifestPaths []string) error {
	slog.Info("initializing database schema")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	slog.Info("schema ready")

	if mapPath != "" {
		edges, err := mapdata.NewFileStreetSource(mapPath).ListStreetEdges(ctx)
		if err != nil {
			return fmt.Errorf("seeding streets failed: %w", err)
		}
		if err := repositories.SeedStreets(ctx, conn, edges); err != nil {
			return fmt.Errorf("seeding streets failed: %w", err)
		}
		slog.Info("streets seeded", "path", mapPath, "edges", len(edges))
	}

	var errs []error
	for _, path := range manifestPaths {
		m, err := mapdata.LoadManifestFile(ctx, path)
		if err == nil {
			err = repositories.SeedManifest(ctx, conn, m)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("seeding manifest %s failed: %w", path, err))
			continue
		}
		slog.Info("manifest seeded", "name", m.Name, "deliveries", len(m.Deliveries))
	}

	return errors.Join(errs...)
}
