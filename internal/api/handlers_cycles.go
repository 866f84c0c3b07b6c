package api

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/pregcare/internal/services"
)

func (handler *Handler) ListCycles(c *fiber.Ctx) error {
	cycles, err := handler.cycleService.List(handler.profileID)
	if err != nil {
		return handler.serviceAPIError(c, err)
	}
	return c.JSON(newCycleViews(cycles))
}

func (handler *Handler) CurrentCycle(c *fiber.Ctx) error {
	cycle, err := handler.cycleService.Current(handler.profileID)
	if err != nil {
		return handler.serviceAPIError(c, err)
	}
	if cycle == nil {
		return handler.serviceAPIError(c, services.ErrNoActiveCycle)
	}
	return c.JSON(newCycleView(*cycle))
}

func (handler *Handler) QuickLogCycle(c *fiber.Ctx) error {
	payload := quickLogInput{}
	if err := handler.bindJSON(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	start, end, err := parseCycleDates(payload.StartDate, payload.EndDate)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	cycle, err := handler.cycleService.QuickLog(handler.profileID, services.QuickLogInput{
		StartDate:   start,
		EndDate:     end,
		CycleLength: payload.CycleLength,
		Notes:       payload.Notes,
	}, handler.today())
	if err != nil {
		return handler.serviceAPIError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newCycleView(cycle))
}

func (handler *Handler) UpdateCycleDates(c *fiber.Ctx) error {
	cycleID, err := parseUintParam(c.Params("id"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid cycle id")
	}

	payload := cycleDatesInput{}
	if err := handler.bindJSON(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	start, end, err := parseCycleDates(payload.StartDate, payload.EndDate)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	cycle, err := handler.cycleService.UpdateDates(handler.profileID, cycleID, start, end, handler.today())
	if err != nil {
		return handler.serviceAPIError(c, err)
	}
	return c.JSON(newCycleView(cycle))
}

func parseCycleDates(rawStart string, rawEnd *string) (time.Time, *time.Time, error) {
	start, err := parseDayParam(rawStart)
	if err != nil {
		return time.Time{}, nil, err
	}
	if rawEnd == nil || *rawEnd == "" {
		return start, nil, nil
	}
	end, err := parseDayParam(*rawEnd)
	if err != nil {
		return time.Time{}, nil, err
	}
	return start, &end, nil
}
