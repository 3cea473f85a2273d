package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"skillmatch/internal/database"
	"skillmatch/internal/pkg/response"
)

type HealthHandler struct {
	db database.DB
}

// NewHealthHandler accepts a nil db when the service runs without storage.
func NewHealthHandler(db database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	dbStatus := "disabled"
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			dbStatus = "down"
		} else {
			dbStatus = "up"
		}
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{
		"status":   "ok",
		"database": dbStatus,
	})
}
