package main

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/pawtel/collar-telemetry/internal/config"
	"github.com/pawtel/collar-telemetry/internal/database"
	httpHandlers "github.com/pawtel/collar-telemetry/internal/http"
	"github.com/pawtel/collar-telemetry/internal/repository"
	"github.com/pawtel/collar-telemetry/internal/service"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	_ = godotenv.Load()
	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}
	defer db.Close()

	if err := database.InitSchema(context.Background(), db); err != nil {
		log.Fatal().Err(err).Msg("schema init failed")
	}

	svcs := service.New(repository.New(db))
	app := fiber.New()
	app.Use(cors.New(cors.Config{AllowOrigins: config.CORSOrigins()}))

	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })

	httpHandlers.Register(app, svcs)

	addr := config.APIAddr()
	log.Info().Str("addr", addr).Msg("api listening")
	log.Fatal().Err(app.Listen(addr)).Msg("server exit")
}
