package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/kevinmilly/yt-breeze/internal/service"
)

type StatsHandler struct {
	stats *service.Stats
}

func NewStatsHandler(stats *service.Stats) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// GetStats handles GET /api/stats — in-process usage counters since startup.
func (h *StatsHandler) GetStats(c fiber.Ctx) error {
	return c.JSON(h.stats.Snapshot())
}
