package domain

import "time"

// Reading is one intake event describing a dog and its collar context.
// Only the name is mandatory; everything else stays null when not supplied.
type Reading struct {
	ID                int64     `db:"id" json:"id"`
	CollarID          *string   `db:"collar_id" json:"collar_id"`
	DogName           string    `db:"dog_name" json:"dog_name"`
	Breed             *string   `db:"breed" json:"breed"`
	CoatType          *string   `db:"coat_type" json:"coat_type"`
	Height            *float64  `db:"height" json:"height"`
	Weight            *float64  `db:"weight" json:"weight"`
	Sex               *string   `db:"sex" json:"sex"`
	TemperatureIRGun  *float64  `db:"temperature_irgun" json:"temperature_irgun"`
	CollarOrientation *string   `db:"collar_orientation" json:"collar_orientation"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}

// Metric is one derived-measurement event reported by a collar.
// NPLTime is the device's own observation timestamp when it sends one.
type Metric struct {
	ID           int64      `db:"id" json:"id"`
	CollarID     *string    `db:"collar_id" json:"collar_id"`
	Temperature  *float64   `db:"temperature" json:"temperature"`
	StepCount    *int64     `db:"stepcount" json:"stepcount"`
	CalorieCount *float64   `db:"caloriecount" json:"caloriecount"`
	AccelX       *float64   `db:"accel_x" json:"accel_x"`
	AccelY       *float64   `db:"accel_y" json:"accel_y"`
	AccelZ       *float64   `db:"accel_z" json:"accel_z"`
	GyroX        *float64   `db:"gyro_x" json:"gyro_x"`
	GyroY        *float64   `db:"gyro_y" json:"gyro_y"`
	GyroZ        *float64   `db:"gyro_z" json:"gyro_z"`
	NPLTime      *time.Time `db:"npl_time" json:"npl_time"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

// HasData reports whether any measurement field is present. A metric that
// carries nothing but a collar id is not worth a row.
func (m *Metric) HasData() bool {
	return m.Temperature != nil || m.StepCount != nil || m.CalorieCount != nil ||
		m.AccelX != nil || m.AccelY != nil || m.AccelZ != nil ||
		m.GyroX != nil || m.GyroY != nil || m.GyroZ != nil ||
		m.NPLTime != nil
}

// HistoryRow is one row of the joined reading/metric history. Metric columns
// are nullable because the join is a LEFT JOIN on collar_id.
type HistoryRow struct {
	ReadingID         int64      `db:"reading_id" json:"reading_id"`
	CollarID          *string    `db:"collar_id" json:"collar_id"`
	DogName           string     `db:"dog_name" json:"dog_name"`
	Breed             *string    `db:"breed" json:"breed"`
	CoatType          *string    `db:"coat_type" json:"coat_type"`
	Height            *float64   `db:"height" json:"height"`
	Weight            *float64   `db:"weight" json:"weight"`
	Sex               *string    `db:"sex" json:"sex"`
	TemperatureIRGun  *float64   `db:"temperature_irgun" json:"temperature_irgun"`
	CollarOrientation *string    `db:"collar_orientation" json:"collar_orientation"`
	ReadingCreatedAt  time.Time  `db:"reading_created_at" json:"reading_created_at"`
	MetricID          *int64     `db:"metric_id" json:"metric_id"`
	Temperature       *float64   `db:"temperature" json:"temperature"`
	StepCount         *int64     `db:"stepcount" json:"stepcount"`
	CalorieCount      *float64   `db:"caloriecount" json:"caloriecount"`
	AccelX            *float64   `db:"accel_x" json:"accel_x"`
	AccelY            *float64   `db:"accel_y" json:"accel_y"`
	AccelZ            *float64   `db:"accel_z" json:"accel_z"`
	GyroX             *float64   `db:"gyro_x" json:"gyro_x"`
	GyroY             *float64   `db:"gyro_y" json:"gyro_y"`
	GyroZ             *float64   `db:"gyro_z" json:"gyro_z"`
	NPLTime           *time.Time `db:"npl_time" json:"npl_time"`
	MetricCreatedAt   *time.Time `db:"metric_created_at" json:"metric_created_at"`
}
