package database

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Metrics are linked to readings by a shared collar_id, not a foreign key:
// collars report measurements before (or without) an intake reading existing.
const schema = `
CREATE TABLE IF NOT EXISTS readings (
	id BIGSERIAL PRIMARY KEY,
	collar_id TEXT,
	dog_name TEXT NOT NULL,
	breed TEXT,
	coat_type TEXT,
	height DOUBLE PRECISION,
	weight DOUBLE PRECISION,
	sex TEXT,
	temperature_irgun DOUBLE PRECISION,
	collar_orientation TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS metrics (
	id BIGSERIAL PRIMARY KEY,
	collar_id TEXT,
	temperature DOUBLE PRECISION,
	stepcount BIGINT,
	caloriecount DOUBLE PRECISION,
	accel_x DOUBLE PRECISION,
	accel_y DOUBLE PRECISION,
	accel_z DOUBLE PRECISION,
	gyro_x DOUBLE PRECISION,
	gyro_y DOUBLE PRECISION,
	gyro_z DOUBLE PRECISION,
	npl_time TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_readings_collar ON readings (collar_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_metrics_collar ON metrics (collar_id, created_at DESC);
`

// InitSchema creates both tables if they do not exist yet. Safe to run on
// every startup; a failure here means the process must not start serving.
func InitSchema(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
