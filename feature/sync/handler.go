package sync

import (
	"catalog-sync/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP sync triggers.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/sync", h.HandleSync)
}

// HandleSync runs a synchronization and returns its result.
// Concurrent requests with the same mode receive the same result.
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	opts := Options{DryRun: c.QueryBool("dry_run", false)}
	l := logger.WithRayID(h.service.logger, c)

	result, shared, err := h.service.Trigger(c.UserContext(), opts)
	if err != nil {
		l.Error("Sync failed", zap.Error(err), zap.Bool("shared", shared))
		body := fiber.Map{"error": err.Error()}
		if result != nil {
			body["result"] = result
		}
		return c.Status(fiber.StatusInternalServerError).JSON(body)
	}

	return c.JSON(fiber.Map{
		"shared": shared,
		"result": result,
	})
}
