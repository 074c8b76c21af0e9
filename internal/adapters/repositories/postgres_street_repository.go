package repositories

import (
	"context"
	"database/sql"
	"delivery-planner/internal/domain"
	"delivery-planner/internal/platform/obs"
	"errors"
	"fmt"
)

// Postgres-backed implementation of the StreetSource port.
type SQLStreetRepository struct{ DB *sql.DB }

func NewSQLStreetRepository(db *sql.DB) *SQLStreetRepository {
	return &SQLStreetRepository{DB: db}
}

// Return all street edges in the order they were seeded.
func (s *SQLStreetRepository) ListStreetEdges(ctx context.Context) (_ []domain.StreetEdge, err error) {
	defer obs.Time(ctx, "streets.repo.ListStreetEdges")(&err)

	if s.DB == nil {
		return nil, errors.New("street repository: DB is nil")
	}

	query := `
	SELECT
		street_name,
		start_lat,
		start_lon,
		end_lat,
		end_lon
	FROM street_segments
	ORDER BY id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list street edges: query street_segments table: %w", err)
	}
	defer rows.Close()

	edges := make([]domain.StreetEdge, 0, 1024)
	for rows.Next() {
		var name, lat1, lon1, lat2, lon2 string
		if err := rows.Scan(&name, &lat1, &lon1, &lat2, &lon2); err != nil {
			return nil, fmt.Errorf("list street edges: scan row: %w", err)
		}

		from, err := domain.ParseCoordinate(lat1, lon1)
		if err != nil {
			return nil, fmt.Errorf("list street edges: street %q: %w", name, err)
		}
		to, err := domain.ParseCoordinate(lat2, lon2)
		if err != nil {
			return nil, fmt.Errorf("list street edges: street %q: %w", name, err)
		}
		edges = append(edges, domain.StreetEdge{From: from, To: to, Street: name})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list street edges: row iteration: %w", err)
	}

	return edges, nil
}
