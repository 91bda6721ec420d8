package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dkaplan/chartlist/internal/chart"
	"github.com/dkaplan/chartlist/internal/schemas"
)

// GetChart retrieves the cached chart for a normalized genre key.
// Returns (nil, nil) when no row exists, so callers can tell a plain miss
// apart from lookup errors. A row whose payload fails schema validation
// is logged and reported as a miss rather than trusted.
func (db *DB) GetChart(ctx context.Context, genreKey string) (*chart.CacheRecord, error) {
	var payload []byte
	var updatedAt time.Time
	err := db.pool.QueryRow(ctx,
		`SELECT payload, updated_at FROM genre_charts WHERE genre_key = $1`,
		genreKey,
	).Scan(&payload, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get chart %s: %w", genreKey, err)
	}

	if err := schemas.ValidateChartResult(payload); err != nil {
		log.Printf("[DB] cached chart %q failed schema validation, treating as miss: %v", genreKey, err)
		return nil, nil
	}

	var result chart.ChartResult
	if err := json.Unmarshal(payload, &result); err != nil {
		log.Printf("[DB] cached chart %q failed to unmarshal, treating as miss: %v", genreKey, err)
		return nil, nil
	}

	return &chart.CacheRecord{Result: result, UpdatedAt: updatedAt}, nil
}

// UpsertChart stores a resolved chart, replacing the whole row if the key
// already exists (even a stale one). One row per genre key.
func (db *DB) UpsertChart(ctx context.Context, result chart.ChartResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal chart %s: %w", result.GenreKey, err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO genre_charts (id, genre_key, payload, updated_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (genre_key) DO UPDATE SET payload = $3, updated_at = NOW()`,
		uuid.New(), result.GenreKey, payload,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert chart %s: %w", result.GenreKey, err)
	}
	return nil
}
