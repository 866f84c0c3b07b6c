package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/terraincognita07/pregcare/internal/services"
)

// serviceAPIError maps service sentinel errors onto HTTP responses. Server
// side failures are logged with the underlying cause.
func (handler *Handler) serviceAPIError(c *fiber.Ctx, err error) error {
	status, message := serviceErrorStatus(err)
	if status >= fiber.StatusInternalServerError {
		handler.logger.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}
	return apiError(c, status, message)
}

func serviceErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrNoActiveCycle):
		return fiber.StatusNotFound, "no active cycle"
	case errors.Is(err, services.ErrCycleNotFound):
		return fiber.StatusNotFound, "cycle not found"
	case errors.Is(err, services.ErrProfileNotFound):
		return fiber.StatusNotFound, "profile not found"
	case errors.Is(err, services.ErrCycleNotStarted):
		return fiber.StatusUnprocessableEntity, "cycle has not started yet"
	case errors.Is(err, services.ErrInvalidMonth):
		return fiber.StatusBadRequest, "invalid month"
	case errors.Is(err, services.ErrInvalidCycleLength):
		return fiber.StatusBadRequest, "invalid cycle length"
	case errors.Is(err, services.ErrInvalidPeriodLength):
		return fiber.StatusBadRequest, "invalid period length"
	case errors.Is(err, services.ErrCycleStartRequired):
		return fiber.StatusBadRequest, "start date is required"
	case errors.Is(err, services.ErrInvalidCycleRange):
		return fiber.StatusBadRequest, "end date before start date"
	case errors.Is(err, services.ErrUnknownSymptom):
		return fiber.StatusBadRequest, "unknown symptom"
	case errors.Is(err, services.ErrInvalidSymptomSeverity):
		return fiber.StatusBadRequest, "invalid severity"
	case errors.Is(err, services.ErrInvalidSymptomRange):
		return fiber.StatusBadRequest, "invalid date range"
	case errors.Is(err, services.ErrNotificationNotFound):
		return fiber.StatusNotFound, "notification not found"
	case errors.Is(err, services.ErrInvalidNotificationStatus):
		return fiber.StatusBadRequest, "invalid notification status"
	case errors.Is(err, services.ErrInvalidNotificationLeadDays):
		return fiber.StatusBadRequest, "invalid lead days"
	case errors.Is(err, services.ErrLoadProfileFailed):
		return fiber.StatusInternalServerError, "failed to load profile"
	case errors.Is(err, services.ErrUpdateProfileFailed):
		return fiber.StatusInternalServerError, "failed to update profile"
	case errors.Is(err, services.ErrLoadCyclesFailed):
		return fiber.StatusInternalServerError, "failed to load cycles"
	case errors.Is(err, services.ErrCreateCycleFailed):
		return fiber.StatusInternalServerError, "failed to create cycle"
	case errors.Is(err, services.ErrUpdateCycleFailed):
		return fiber.StatusInternalServerError, "failed to update cycle"
	case errors.Is(err, services.ErrLoadSymptomsFailed):
		return fiber.StatusInternalServerError, "failed to load symptoms"
	case errors.Is(err, services.ErrToggleSymptomFailed):
		return fiber.StatusInternalServerError, "failed to toggle symptom"
	case errors.Is(err, services.ErrLogSymptomsFailed):
		return fiber.StatusInternalServerError, "failed to log symptoms"
	case errors.Is(err, services.ErrClearSymptomsFailed):
		return fiber.StatusInternalServerError, "failed to clear symptoms"
	case errors.Is(err, services.ErrGenerateAnalysisFailed):
		return fiber.StatusInternalServerError, "failed to generate analysis"
	case errors.Is(err, services.ErrLoadAnalysisFailed):
		return fiber.StatusInternalServerError, "failed to load analysis"
	case errors.Is(err, services.ErrLoadNotificationsFailed):
		return fiber.StatusInternalServerError, "failed to load notifications"
	case errors.Is(err, services.ErrUpdateNotificationsFailed):
		return fiber.StatusInternalServerError, "failed to update notifications"
	case errors.Is(err, services.ErrDispatchNotificationsFailed):
		return fiber.StatusInternalServerError, "failed to dispatch notifications"
	case errors.Is(err, services.ErrLoadNotificationPrefsFailed):
		return fiber.StatusInternalServerError, "failed to load notification preferences"
	case errors.Is(err, services.ErrUpdateNotificationPrefsFailed):
		return fiber.StatusInternalServerError, "failed to update notification preferences"
	default:
		return fiber.StatusInternalServerError, "internal error"
	}
}
