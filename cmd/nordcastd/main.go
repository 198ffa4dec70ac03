package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"golang.org/x/time/rate"

	httpapi "nordcast/internal/api/http"
	"nordcast/internal/config"
	"nordcast/internal/forecast"
	"nordcast/internal/scheduler"
	"nordcast/internal/store"
	"nordcast/pkg/locationforecast"
	"nordcast/pkg/locationforecast/limit"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound origin calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	client, err := locationforecast.NewClient(cfg.UserAgent, locationforecast.WithHTTPClient(httpClient))
	if err != nil {
		log.Fatalf("failed to create forecast client: %v", err)
	}

	// Traffic policy lives outside the client: circuit breaker closest to
	// the origin, then the rate limit, then the in-flight cap.
	fetcher := limit.ConcurrencyLimited(
		limit.RateLimited(
			limit.Breaking(client, "locationforecast"),
			rate.Limit(cfg.RateLimitRPS), 1,
		),
		cfg.MaxInFlight,
	)

	recordStore := store.NewMemoryStore()
	service := forecast.NewService(fetcher, recordStore)

	// Warm the cache once before serving.
	warmCtx, warmCancel := context.WithTimeout(context.Background(), 30*time.Second)
	for _, loc := range cfg.Locations {
		if err := service.Refresh(warmCtx, loc); err != nil {
			log.Printf("initial refresh failed for %s: %v", loc.Name, err)
		}
	}
	warmCancel()

	// Scheduler that keeps the records revalidated.
	sched := scheduler.New(cfg.Locations, cfg.RefreshInterval, service)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "nordcastd",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "nordcastd",
		})
	})

	httpapi.RegisterRoutes(app, service, cfg.Locations, cfg.DisplayTimezone)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
