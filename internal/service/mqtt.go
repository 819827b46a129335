package service

import (
	"context"
	"encoding/json"
	"strconv"
)

// Text flattens a decoded JSON value into the string form the coercion
// helpers expect. Collar firmware is inconsistent about quoting numbers.
func Text(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}

// FromMQTT ingests one telemetry payload published by a collar. The payload
// is the same field set as the HTTP ingest endpoint, as a JSON object.
func (s *TelemetryService) FromMQTT(ctx context.Context, payload []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(payload, &raw); err != nil {
		return err
	}
	rin := ReadingInput{
		CollarID:          Text(raw["collar_id"]),
		DogName:           Text(raw["dog_name"]),
		Breed:             Text(raw["breed"]),
		CoatType:          Text(raw["coat_type"]),
		Height:            Text(raw["height"]),
		Weight:            Text(raw["weight"]),
		Sex:               Text(raw["sex"]),
		TemperatureIRGun:  Text(raw["temperature_irgun"]),
		CollarOrientation: Text(raw["collar_orientation"]),
	}
	min := MetricInput{
		CollarID:     Text(raw["collar_id"]),
		Temperature:  Text(raw["temperature"]),
		StepCount:    Text(raw["stepcount"]),
		CalorieCount: Text(raw["caloriecount"]),
		AccelX:       Text(raw["accel_x"]),
		AccelY:       Text(raw["accel_y"]),
		AccelZ:       Text(raw["accel_z"]),
		GyroX:        Text(raw["gyro_x"]),
		GyroY:        Text(raw["gyro_y"]),
		GyroZ:        Text(raw["gyro_z"]),
		NPLTime:      Text(raw["npl_time"]),
	}
	_, _, err := s.Ingest(ctx, rin, min)
	return err
}
