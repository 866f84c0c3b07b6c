package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/pregcare/internal/calendarfeed"
	"github.com/terraincognita07/pregcare/internal/services"
)

func (handler *Handler) GetCalendar(c *fiber.Ctx) error {
	today := handler.today()

	year, err := parseOptionalInt(c.Query("year"), today.Year())
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid year")
	}
	month, err := parseOptionalInt(c.Query("month"), int(today.Month()))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid month")
	}

	cells, err := handler.calendarService.MonthGrid(handler.profileID, year, month)
	if err != nil {
		return handler.serviceAPIError(c, err)
	}

	return c.JSON(calendarView{
		Year:         year,
		Month:        month,
		DaysInMonth:  services.DaysInMonth(year, month),
		FirstWeekday: services.FirstWeekday(year, month),
		Cells:        cells,
	})
}

func (handler *Handler) GetCalendarFeed(c *fiber.Ctx) error {
	cycle, err := handler.cycleService.Current(handler.profileID)
	if err != nil {
		return handler.serviceAPIError(c, err)
	}

	payload, err := calendarfeed.Render(cycle, handler.feedName, handler.now())
	if err != nil {
		return handler.serviceAPIError(c, err)
	}

	c.Set(fiber.HeaderContentType, calendarfeed.ContentType)
	c.Set(fiber.HeaderContentDisposition, `inline; filename="pregcare.ics"`)
	return c.Send(payload)
}
