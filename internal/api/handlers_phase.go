package api

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/terraincognita07/pregcare/internal/services"
)

// GetPhase describes the current cycle as of ?today=, defaulting to the
// server's local date.
func (handler *Handler) GetPhase(c *fiber.Ctx) error {
	today, err := parseOptionalDay(c.Query("today"), handler.today())
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid today")
	}

	cycle, err := handler.cycleService.Current(handler.profileID)
	if err != nil {
		return handler.serviceAPIError(c, err)
	}

	descriptor, err := services.ComputePhase(cycle, today)
	if err != nil {
		return handler.serviceAPIError(c, err)
	}

	if descriptor.Fallback {
		handler.logger.Warn("unknown phase tag rendered as normal",
			zap.Uint("cycle_id", cycle.ID),
			zap.String("tag", cycle.Phase),
		)
	}
	handler.metrics.ObservePhase(descriptor)

	return c.JSON(descriptor)
}
