package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/pinkbears/internal/apperrors"
	"github.com/example/pinkbears/internal/config"
	"github.com/example/pinkbears/internal/database"
	"github.com/example/pinkbears/internal/realtime"
	"github.com/example/pinkbears/internal/routes"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg)
	hub := realtime.NewHub()

	app := fiber.New(fiber.Config{
		AppName:      "Pink Bears Gifts Backend",
		ErrorHandler: apperrors.FiberHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	routes.Register(app, db, cfg, hub)

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}
