package main

import (
	"log"

	"github.com/gofiber/fiber/v3"

	"github.com/kevinmilly/yt-breeze/internal/config"
	"github.com/kevinmilly/yt-breeze/internal/handler"
	"github.com/kevinmilly/yt-breeze/internal/middleware"
	"github.com/kevinmilly/yt-breeze/internal/router"
	"github.com/kevinmilly/yt-breeze/internal/service"
)

func main() {
	cfg := config.Load()

	middleware.InitLogger(cfg.LogLevel, "yt-breeze")

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	stats := &service.Stats{}
	quota := service.NewQuotaService(cfg.FreeTierLimit, cfg.RateWindow)
	transcripts := service.NewTranscriptClient(cfg.TranscriptAPIURL, cfg.TranscriptAPIKey, cfg.ProviderTimeout)
	metadata := service.NewOEmbedClient("", cfg.ProviderTimeout)
	completer := service.NewGeminiClient(cfg.GeminiModel, cfg.GeminiAPIKey)

	analyzeSvc := service.NewAnalyzeService(
		transcripts, metadata, completer,
		cache, quota, stats,
		cfg.ModelTimeout,
	)

	handler.InitMetrics(stats)

	app := fiber.New(fiber.Config{
		AppName:      "yt-breeze API",
		ServerHeader: "yt-breeze",
		ErrorHandler: handler.ErrorHandler,
	})

	router.Setup(app, &router.Handlers{
		Analyze: handler.NewAnalyzeHandler(analyzeSvc, cfg.IPHashSalt),
		Health:  handler.NewHealthHandler(cache.Client()),
		Stats:   handler.NewStatsHandler(stats),
	}, cfg.CORSOrigins)

	log.Printf("yt-breeze backend starting on :%s (env=%s, model=%s)", cfg.Port, cfg.Environment, cfg.GeminiModel)
	log.Fatal(app.Listen(":" + cfg.Port))
}
