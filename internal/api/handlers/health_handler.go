package handlers

import (
	"context"
	"time"

	"spendio/internal/dto"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db      Pinger
	version string
	logger  *zap.Logger
}

func NewHealthHandler(db Pinger, version string, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		db:      db,
		version: version,
		logger:  logger,
	}
}

// Health godoc
// @Summary Liveness and database check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Failure 503 {object} dto.HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), pingTimeout)
	defer cancel()

	resp := dto.HealthResponse{Status: "healthy", Database: "connected", Version: h.version}
	if err := h.db.Ping(ctx); err != nil {
		h.logger.Error("Database ping failed", zap.Error(err))
		resp.Status = "unhealthy"
		resp.Database = "disconnected"
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}
