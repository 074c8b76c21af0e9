package repositories

import (
	"context"
	"database/sql"
	"delivery-planner/internal/domain"
	"errors"
	"fmt"
	"strings"
)

// InitSchema creates the street map and manifest tables.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Coordinates are stored as text: the text is their identity.
	createStreetSegmentsQuery := `
	CREATE TABLE IF NOT EXISTS street_segments (
		id BIGSERIAL PRIMARY KEY,
		street_name TEXT NOT NULL,
		start_lat TEXT NOT NULL,
		start_lon TEXT NOT NULL,
		end_lat TEXT NOT NULL,
		end_lon TEXT NOT NULL
	);
	`

	createManifestsQuery := `
	CREATE TABLE IF NOT EXISTS manifests (
		name TEXT PRIMARY KEY,
		depot_lat TEXT NOT NULL,
		depot_lon TEXT NOT NULL
	);
	`

	createDeliveriesQuery := `
	CREATE TABLE IF NOT EXISTS deliveries (
		id BIGSERIAL PRIMARY KEY,
		manifest_name TEXT NOT NULL REFERENCES manifests(name) ON DELETE CASCADE,
		item TEXT NOT NULL,
		lat TEXT NOT NULL,
		lon TEXT NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_deliveries_manifest_name
	ON deliveries(manifest_name, id);
	`

	statements := []string{
		createStreetSegmentsQuery,
		createManifestsQuery,
		createDeliveriesQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// SeedStreets replaces the stored street map with edges, keeping their order.
func SeedStreets(ctx context.Context, db *sql.DB, edges []domain.StreetEdge) error {
	if db == nil {
		return errors.New("seed streets: DB is nil")
	}

	for i, e := range edges {
		if strings.TrimSpace(e.Street) == "" {
			return fmt.Errorf("seed streets: edge #%d: street name cannot be empty", i+1)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed streets: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `TRUNCATE street_segments RESTART IDENTITY;`); err != nil {
		return fmt.Errorf("seed streets: truncate: %w", err)
	}

	query := `
	INSERT INTO street_segments (
		street_name,
		start_lat,
		start_lon,
		end_lat,
		end_lon
	)
	VALUES ($1, $2, $3, $4, $5);
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("seed streets: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range edges {
		if _, err := stmt.ExecContext(ctx, e.Street, e.From.LatText, e.From.LonText, e.To.LatText, e.To.LonText); err != nil {
			return fmt.Errorf("seed streets: insert edge #%d on %q: %w", i+1, e.Street, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed streets: commit tx: %w", err)
	}

	return nil
}

// SeedManifest stores m, replacing any manifest with the same name.
func SeedManifest(ctx context.Context, db *sql.DB, m *domain.Manifest) error {
	if db == nil {
		return errors.New("seed manifest: DB is nil")
	}
	if m == nil || strings.TrimSpace(m.Name) == "" {
		return errors.New("seed manifest: manifest name cannot be empty")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed manifest: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	upsert := `
	INSERT INTO manifests (name, depot_lat, depot_lon)
	VALUES ($1, $2, $3)
	ON CONFLICT (name) DO UPDATE
	SET depot_lat = EXCLUDED.depot_lat,
		depot_lon = EXCLUDED.depot_lon;
	`
	if _, err := tx.ExecContext(ctx, upsert, m.Name, m.Depot.LatText, m.Depot.LonText); err != nil {
		return fmt.Errorf("seed manifest %q: upsert: %w", m.Name, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM deliveries WHERE manifest_name = $1;`, m.Name); err != nil {
		return fmt.Errorf("seed manifest %q: clear deliveries: %w", m.Name, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO deliveries (manifest_name, item, lat, lon)
	VALUES ($1, $2, $3, $4);
	`)
	if err != nil {
		return fmt.Errorf("seed manifest %q: prepare insert: %w", m.Name, err)
	}
	defer stmt.Close()

	for _, d := range m.Deliveries {
		if _, err := stmt.ExecContext(ctx, m.Name, d.Item, d.Location.LatText, d.Location.LonText); err != nil {
			return fmt.Errorf("seed manifest %q: insert item %q: %w", m.Name, d.Item, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed manifest %q: commit tx: %w", m.Name, err)
	}

	return nil
}
