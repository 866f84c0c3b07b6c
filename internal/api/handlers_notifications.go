package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/terraincognita07/pregcare/internal/services"
)

func (handler *Handler) ListNotifications(c *fiber.Ctx) error {
	limit, err := parseOptionalInt(c.Query("limit"), services.DefaultNotificationListLimit)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid limit")
	}

	notifications, err := handler.notificationService.List(handler.profileID, strings.TrimSpace(c.Query("status")), limit)
	if err != nil {
		return handler.serviceAPIError(c, err)
	}
	unread, err := handler.notificationService.UnreadCount(handler.profileID)
	if err != nil {
		return handler.serviceAPIError(c, err)
	}
	return c.JSON(notificationListView{
		Notifications: newNotificationViews(notifications),
		UnreadCount:   unread,
	})
}

func (handler *Handler) UnreadNotificationCount(c *fiber.Ctx) error {
	unread, err := handler.notificationService.UnreadCount(handler.profileID)
	if err != nil {
		return handler.serviceAPIError(c, err)
	}
	return c.JSON(fiber.Map{"unread_count": unread})
}

func (handler *Handler) MarkAllNotificationsRead(c *fiber.Ctx) error {
	updated, err := handler.notificationService.MarkAllRead(handler.profileID)
	if err != nil {
		return handler.serviceAPIError(c, err)
	}
	return c.JSON(fiber.Map{"updated": updated})
}

// DispatchNotifications runs the reminder triggers for today outside the
// nightly rollover.
func (handler *Handler) DispatchNotifications(c *fiber.Ctx) error {
	created, err := handler.notificationService.Dispatch(handler.profileID, handler.today())
	if err != nil {
		return handler.serviceAPIError(c, err)
	}
	return c.JSON(fiber.Map{"created": created})
}

func (handler *Handler) GetNotification(c *fiber.Ctx) error {
	notificationID, err := parseUintParam(c.Params("id"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid notification id")
	}

	notification, err := handler.notificationService.Get(handler.profileID, notificationID)
	if err != nil {
		return handler.serviceAPIError(c, err)
	}
	return c.JSON(newNotificationView(notification))
}

func (handler *Handler) MarkNotificationRead(c *fiber.Ctx) error {
	notificationID, err := parseUintParam(c.Params("id"))
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid notification id")
	}

	notification, err := handler.notificationService.MarkRead(handler.profileID, notificationID)
	if err != nil {
		return handler.serviceAPIError(c, err)
	}
	return c.JSON(newNotificationView(notification))
}

func (handler *Handler) GetNotificationPreferences(c *fiber.Ctx) error {
	preference, err := handler.notificationService.Preferences(handler.profileID)
	if err != nil {
		return handler.serviceAPIError(c, err)
	}
	return c.JSON(newNotificationPreferenceView(preference))
}

func (handler *Handler) UpdateNotificationPreferences(c *fiber.Ctx) error {
	payload := notificationPreferenceInput{}
	if err := handler.bindJSON(c, &payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	preference, err := handler.notificationService.UpdatePreferences(handler.profileID, services.NotificationPreferenceUpdate{
		Enabled:           payload.Enabled,
		CycleReminders:    payload.CycleReminders,
		FertileAlerts:     payload.FertileAlerts,
		PeriodPredictions: payload.PeriodPredictions,
		PeriodLeadDays:    payload.PeriodLeadDays,
		FertileLeadDays:   payload.FertileLeadDays,
	})
	if err != nil {
		return handler.serviceAPIError(c, err)
	}
	return c.JSON(newNotificationPreferenceView(preference))
}
