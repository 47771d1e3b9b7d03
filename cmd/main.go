package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/template/html/v2"
	"github.com/latestcomment/livepoll/internal/config"
	"github.com/latestcomment/livepoll/internal/handlers"
	"github.com/latestcomment/livepoll/internal/services"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.Load()

	logg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logg)

	engine := html.New(cfg.TemplateDir, ".html")
	app := fiber.New(fiber.Config{
		Views: engine,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.ClientOrigin,
		AllowMethods: "GET,POST",
	}))

	hub := services.NewHub(cfg.SendBuffer, logg)
	service := services.NewPollService(hub, services.Options{
		Scheduler:          services.NewTimeScheduler(),
		DefaultDurationSec: cfg.DefaultDurationSec,
		MaxDurationSec:     cfg.MaxDurationSec,
		Logger:             logg,
	})
	h := handlers.NewHandler(service)
	ws := handlers.NewWebSocketHandler(service, hub, logg)

	handlers.Register(app, h, ws)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logg.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(ctx); err != nil {
			logg.Error("shutdown failed", "error", err)
		}
	}()

	logg.Info("livepoll server running", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
