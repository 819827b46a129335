package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pawtel/collar-telemetry/internal/domain"
)

type Repos struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repos { return &Repos{db: db} }

const insertReadingSQL = `
INSERT INTO readings (collar_id, dog_name, breed, coat_type, height, weight, sex, temperature_irgun, collar_orientation)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, created_at`

const insertMetricSQL = `
INSERT INTO metrics (collar_id, temperature, stepcount, caloriecount, accel_x, accel_y, accel_z, gyro_x, gyro_y, gyro_z, npl_time)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id, created_at`

func readingArgs(rd *domain.Reading) []any {
	return []any{rd.CollarID, rd.DogName, rd.Breed, rd.CoatType, rd.Height,
		rd.Weight, rd.Sex, rd.TemperatureIRGun, rd.CollarOrientation}
}

func metricArgs(m *domain.Metric) []any {
	return []any{m.CollarID, m.Temperature, m.StepCount, m.CalorieCount,
		m.AccelX, m.AccelY, m.AccelZ, m.GyroX, m.GyroY, m.GyroZ, m.NPLTime}
}

func (r *Repos) InsertReading(ctx context.Context, rd *domain.Reading) error {
	err := r.db.QueryRowxContext(ctx, insertReadingSQL, readingArgs(rd)...).
		Scan(&rd.ID, &rd.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert reading: %w", err)
	}
	return nil
}

func (r *Repos) InsertMetric(ctx context.Context, m *domain.Metric) error {
	err := r.db.QueryRowxContext(ctx, insertMetricSQL, metricArgs(m)...).
		Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert metric: %w", err)
	}
	return nil
}

// InsertReadingWithMetric writes the reading and, when metric is non-nil, a
// metric row sharing its collar_id, in one transaction. Either both rows land
// or neither does.
func (r *Repos) InsertReadingWithMetric(ctx context.Context, rd *domain.Reading, m *domain.Metric) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if err := tx.QueryRowxContext(ctx, insertReadingSQL, readingArgs(rd)...).
		Scan(&rd.ID, &rd.CreatedAt); err != nil {
		return fmt.Errorf("insert reading: %w", err)
	}
	if m != nil {
		m.CollarID = rd.CollarID
		if err := tx.QueryRowxContext(ctx, insertMetricSQL, metricArgs(m)...).
			Scan(&m.ID, &m.CreatedAt); err != nil {
			return fmt.Errorf("insert metric: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

const latestMetricSQL = `
SELECT id, collar_id, temperature, stepcount, caloriecount, accel_x, accel_y, accel_z, gyro_x, gyro_y, gyro_z, npl_time, created_at
FROM metrics
WHERE collar_id = $1
ORDER BY COALESCE(npl_time, created_at) DESC
LIMIT 1`

// LatestMetric returns the newest metric for a collar by observation time,
// falling back to insertion time for rows without one. Nil when none exist.
func (r *Repos) LatestMetric(ctx context.Context, collarID string) (*domain.Metric, error) {
	var m domain.Metric
	err := r.db.GetContext(ctx, &m, latestMetricSQL, collarID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest metric: %w", err)
	}
	return &m, nil
}

const latestReadingSQL = `
SELECT id, collar_id, dog_name, breed, coat_type, height, weight, sex, temperature_irgun, collar_orientation, created_at
FROM readings
WHERE collar_id = $1
ORDER BY created_at DESC
LIMIT 1`

func (r *Repos) LatestReading(ctx context.Context, collarID string) (*domain.Reading, error) {
	var rd domain.Reading
	err := r.db.GetContext(ctx, &rd, latestReadingSQL, collarID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest reading: %w", err)
	}
	return &rd, nil
}

const historySQL = `
SELECT
	r.id AS reading_id, r.collar_id, r.dog_name, r.breed, r.coat_type,
	r.height, r.weight, r.sex, r.temperature_irgun, r.collar_orientation,
	r.created_at AS reading_created_at,
	m.id AS metric_id, m.temperature, m.stepcount, m.caloriecount,
	m.accel_x, m.accel_y, m.accel_z, m.gyro_x, m.gyro_y, m.gyro_z,
	m.npl_time, m.created_at AS metric_created_at
FROM readings r
LEFT JOIN metrics m ON m.collar_id = r.collar_id
WHERE r.collar_id = $1
ORDER BY r.created_at DESC, m.created_at DESC NULLS LAST
LIMIT $2 OFFSET $3`

func (r *Repos) History(ctx context.Context, collarID string, limit, offset int) ([]domain.HistoryRow, error) {
	out := []domain.HistoryRow{}
	if err := r.db.SelectContext(ctx, &out, historySQL, collarID, limit, offset); err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return out, nil
}
