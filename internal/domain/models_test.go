package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricHasData(t *testing.T) {
	var m Metric
	assert.False(t, m.HasData())

	m.CollarID = Str("3")
	assert.False(t, m.HasData(), "a bare collar id is not a measurement")

	m.Temperature = f(38.2)
	assert.True(t, m.HasData())

	gyro := Metric{GyroZ: f(0.01)}
	assert.True(t, gyro.HasData())

	now := time.Now()
	stamped := Metric{NPLTime: &now}
	assert.True(t, stamped.HasData())
}
