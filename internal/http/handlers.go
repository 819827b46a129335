package http

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/pawtel/collar-telemetry/internal/service"
)

func Register(app *fiber.App, svcs *service.Services) {
	t := svcs.Telemetry

	app.Get("/", usage)
	app.Get("/ingest", ingest(t))
	app.Post("/app", recordReading(t))
	app.Get("/collar", recordMetric(t))
	app.Get("/by-collar", history(t))
	// Static routes above win; only single digits 1-6 reach this one.
	app.Get("/:id<range(1,6)>", latest(t))
}

func usage(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"ok":      true,
		"service": "collar-telemetry",
		"usage": "GET /ingest?dog_name=... | POST /app | GET /collar?collar_id=... | " +
			"GET /{1-6} | GET /by-collar?collar_id=&limit=&offset=",
	})
}

func ingest(t *service.TelemetryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rin := service.ReadingInput{
			CollarID:          c.Query("collar_id"),
			DogName:           c.Query("dog_name"),
			Breed:             c.Query("breed"),
			CoatType:          c.Query("coat_type"),
			Height:            c.Query("height"),
			Weight:            c.Query("weight"),
			Sex:               c.Query("sex"),
			TemperatureIRGun:  c.Query("temperature_irgun"),
			CollarOrientation: c.Query("collar_orientation"),
		}
		min := service.MetricInput{
			CollarID:     c.Query("collar_id"),
			Temperature:  c.Query("temperature"),
			StepCount:    c.Query("stepcount"),
			CalorieCount: c.Query("caloriecount"),
		}
		rd, m, err := t.Ingest(c.UserContext(), rin, min)
		if err != nil {
			return fail(c, err)
		}
		body := fiber.Map{"ok": true, "inserted": rd}
		if m != nil {
			body["metric"] = m
		}
		return c.JSON(body)
	}
}

func recordReading(t *service.TelemetryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var raw map[string]any
		if err := json.Unmarshal(c.Body(), &raw); err != nil {
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"ok": false, "error": "invalid JSON body: " + err.Error()})
		}
		rin := service.ReadingInput{
			CollarID:          service.Text(raw["collar_id"]),
			DogName:           service.Text(raw["dog_name"]),
			Breed:             service.Text(raw["breed"]),
			CoatType:          service.Text(raw["coat_type"]),
			Height:            service.Text(raw["height"]),
			Weight:            service.Text(raw["weight"]),
			Sex:               service.Text(raw["sex"]),
			TemperatureIRGun:  service.Text(raw["temperature_irgun"]),
			CollarOrientation: service.Text(raw["collar_orientation"]),
		}
		rd, err := t.RecordReading(c.UserContext(), rin)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"ok": true, "inserted": rd})
	}
}

func recordMetric(t *service.TelemetryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		min := service.MetricInput{
			CollarID:     c.Query("collar_id"),
			Temperature:  c.Query("temperature"),
			StepCount:    c.Query("stepcount"),
			CalorieCount: c.Query("caloriecount"),
			AccelX:       c.Query("accel_x"),
			AccelY:       c.Query("accel_y"),
			AccelZ:       c.Query("accel_z"),
			GyroX:        c.Query("gyro_x"),
			GyroY:        c.Query("gyro_y"),
			GyroZ:        c.Query("gyro_z"),
			NPLTime:      c.Query("npl_time"),
		}
		m, err := t.RecordMetric(c.UserContext(), min)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"ok": true, "inserted": m})
	}
}

func latest(t *service.TelemetryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		m, rd, err := t.Latest(c.UserContext(), c.Params("id"))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"ok": true, "metric": m, "reading": rd})
	}
}

func history(t *service.TelemetryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rows, err := t.History(c.UserContext(), c.Query("collar_id"),
			c.QueryInt("limit", service.DefaultPageSize), c.QueryInt("offset", 0))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"ok": true, "count": len(rows), "data": rows})
	}
}

// fail maps service errors onto the response envelope. Anything that is not a
// known validation outcome is a store error and gets logged.
func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrMissingDogName), errors.Is(err, service.ErrMissingCollarID):
		status = fiber.StatusBadRequest
	case errors.Is(err, service.ErrNoMetricFields):
		status = fiber.StatusMethodNotAllowed
	case errors.Is(err, service.ErrNotFound):
		status = fiber.StatusNotFound
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("store error")
	}
	return c.Status(status).JSON(fiber.Map{"ok": false, "error": err.Error()})
}
