package repositories

import (
	"context"
	"database/sql"
	"delivery-planner/internal/domain"
	"delivery-planner/internal/platform/obs"
	"errors"
	"fmt"
)

// Postgres-backed implementation of the ManifestSource port.
type SQLManifestRepository struct{ DB *sql.DB }

func NewSQLManifestRepository(db *sql.DB) *SQLManifestRepository {
	return &SQLManifestRepository{DB: db}
}

// Return the named manifest with its deliveries in insertion order.
func (s *SQLManifestRepository) GetManifest(ctx context.Context, name string) (_ *domain.Manifest, err error) {
	defer obs.Time(ctx, "manifests.repo.GetManifest")(&err)

	if s.DB == nil {
		return nil, errors.New("manifest repository: DB is nil")
	}

	var depotLat, depotLon string
	err = s.DB.QueryRowContext(ctx,
		`SELECT depot_lat, depot_lon FROM manifests WHERE name = $1;`, name,
	).Scan(&depotLat, &depotLon)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get manifest %q: %w", name, domain.ErrManifestNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get manifest %q: query manifests table: %w", name, err)
	}

	depot, err := domain.ParseCoordinate(depotLat, depotLon)
	if err != nil {
		return nil, fmt.Errorf("get manifest %q: depot: %w", name, err)
	}

	query := `
	SELECT item, lat, lon
	FROM deliveries
	WHERE manifest_name = $1
	ORDER BY id;
	`
	rows, err := s.DB.QueryContext(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("get manifest %q: query deliveries table: %w", name, err)
	}
	defer rows.Close()

	m := &domain.Manifest{Name: name, Depot: depot}
	for rows.Next() {
		var item, lat, lon string
		if err := rows.Scan(&item, &lat, &lon); err != nil {
			return nil, fmt.Errorf("get manifest %q: scan row: %w", name, err)
		}
		loc, err := domain.ParseCoordinate(lat, lon)
		if err != nil {
			return nil, fmt.Errorf("get manifest %q: item %q: %w", name, item, err)
		}
		m.Deliveries = append(m.Deliveries, domain.DeliveryStop{Item: item, Location: loc})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get manifest %q: row iteration: %w", name, err)
	}

	return m, nil
}
