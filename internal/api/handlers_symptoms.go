package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/pregcare/internal/services"
)

func (handler *Handler) GetSymptomCatalog(c *fiber.Ctx) error {
	return c.JSON(handler.symptomService.Catalog())
}

// ListSymptoms returns rows between ?from= and ?to= inclusive. Both default to
// the current month.
func (handler *Handler) ListSymptoms(c *fiber.Ctx) error {
	today := handler.today()
	monthStart := today.AddDate(0, 0, 1-today.Day())
	monthEnd := monthStart.AddDate(0, 1, -1)

	from, err := parseOptionalDay(c.Query("from"), monthStart)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid from date")
	}
	to, err := parseOptionalDay(c.Query("to"), monthEnd)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid to date")
	}

	rows, err := handler.symptomService.ListRange(handler.profileID, from, to)
	if err != nil {
		return handler.serviceAPIError(c, err)
	}
	return c.JSON(newSymptomViews(rows))
}

func (handler *Handler) GetSymptomSelection(c *fiber.Ctx) error {
	day, err := parseDayParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	selection, err := handler.symptomService.SelectionForDate(handler.profileID, day)
	if err != nil {
		return handler.serviceAPIError(c, err)
	}
	return c.JSON(selectionView{Date: services.FormatISODate(day), Selection: selection})
}

func (handler *Handler) ToggleSymptom(c *fiber.Ctx) error {
	day, err := parseDayParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	payload := symptomToggleInput{}
	if err := handler.bindJSON(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	selection, err := handler.symptomService.ToggleForDate(handler.profileID, day, payload.SymptomID)
	if err != nil {
		return handler.serviceAPIError(c, err)
	}
	return c.JSON(selectionView{Date: services.FormatISODate(day), Selection: selection})
}

// LogSymptoms records several symptoms with severity and notes for one date.
func (handler *Handler) LogSymptoms(c *fiber.Ctx) error {
	day, err := parseDayParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	payload := symptomLogInput{}
	if err := handler.bindJSON(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	entries := make([]services.SymptomEntry, 0, len(payload.Symptoms))
	for _, entry := range payload.Symptoms {
		entries = append(entries, services.SymptomEntry{
			SymptomID: entry.SymptomID,
			Severity:  entry.Severity,
			Notes:     entry.Notes,
		})
	}

	rows, err := handler.symptomService.LogSymptoms(handler.profileID, day, entries)
	if err != nil {
		return handler.serviceAPIError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newSymptomViews(rows))
}

func (handler *Handler) ClearSymptoms(c *fiber.Ctx) error {
	day, err := parseDayParam(c.Params("date"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	deleted, err := handler.symptomService.ClearDate(handler.profileID, day)
	if err != nil {
		return handler.serviceAPIError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true, "deleted": deleted})
}
