package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/pregcare/internal/services"
)

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	profile, err := handler.profileService.Get(handler.profileID)
	if err != nil {
		return handler.serviceAPIError(c, err)
	}
	return c.JSON(newProfileView(profile))
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	payload := profileInput{}
	if err := handler.bindJSON(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	profile, err := handler.profileService.UpdateAverages(handler.profileID, services.ProfileAveragesUpdate{
		AverageCycleLength:  payload.AverageCycleLength,
		AveragePeriodLength: payload.AveragePeriodLength,
	})
	if err != nil {
		return handler.serviceAPIError(c, err)
	}
	return c.JSON(newProfileView(profile))
}
