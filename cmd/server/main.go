package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/priyankaj04/Gymlogs/internal/config"
	"github.com/priyankaj04/Gymlogs/internal/database"
	"github.com/priyankaj04/Gymlogs/internal/routes"
	"github.com/priyankaj04/Gymlogs/internal/wire"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.RequireServer(); err != nil {
		log.Fatalf("Invalid server config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := database.DefaultPoolOptions()
	opts.MaxConns = int32(cfg.DBMaxConns)
	opts.MinConns = int32(cfg.DBMinConns)
	pool, err := database.ConnectDB(ctx, cfg.DBUrl, opts)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	app, err := newServer(cfg, pool)
	if err != nil {
		log.Fatalf("Failed to register routes: %v", err)
	}

	go func() {
		<-ctx.Done()
		log.Printf("Shutting down")
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("Server starting on port %s (%s)", cfg.Port, cfg.AppEnv)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

func newServer(cfg *config.Config, pool *pgxpool.Pool) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		AppName:      "gymlogs",
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if err := routes.RegisterRoutes(app, cfg, pool); err != nil {
		return nil, err
	}
	return app, nil
}

// errorHandler renders errors that escape the handlers, unknown routes
// included, in the same body shape the handlers use.
func errorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "Internal server error"

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
		message = fiberErr.Message
	} else {
		log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	}

	return c.Status(status).JSON(wire.ErrorBody{
		Error:   utils.StatusMessage(status),
		Message: message,
	})
}
