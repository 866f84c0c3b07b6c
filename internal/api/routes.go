package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	if handler.metrics != nil {
		app.Get("/metrics", handler.metrics.FiberHandler())
	}

	registerAPIRoutes(app, handler)
	app.Use(handler.NotFound)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	api.Get("/profile", handler.GetProfile)
	api.Put("/profile", handler.UpdateProfile)

	cycles := api.Group("/cycles")
	cycles.Get("", handler.ListCycles)
	cycles.Get("/current", handler.CurrentCycle)
	cycles.Post("/quick-log", handler.QuickLogCycle)
	cycles.Patch("/:id/dates", handler.UpdateCycleDates)

	api.Get("/phase", handler.GetPhase)
	api.Get("/calendar", handler.GetCalendar)
	api.Get("/calendar.ics", handler.GetCalendarFeed)

	symptoms := api.Group("/symptoms")
	symptoms.Get("", handler.ListSymptoms)
	symptoms.Get("/catalog", handler.GetSymptomCatalog)
	symptoms.Get("/:date/selection", handler.GetSymptomSelection)
	symptoms.Post("/:date/toggle", handler.ToggleSymptom)
	symptoms.Post("/:date/log", handler.LogSymptoms)
	symptoms.Delete("/:date", handler.ClearSymptoms)

	analysis := api.Group("/analysis")
	analysis.Post("/generate", handler.GenerateAnalysis)
	analysis.Get("/latest", handler.LatestAnalysis)

	notifications := api.Group("/notifications")
	notifications.Get("", handler.ListNotifications)
	notifications.Get("/unread-count", handler.UnreadNotificationCount)
	notifications.Post("/mark-all-read", handler.MarkAllNotificationsRead)
	notifications.Post("/dispatch", handler.DispatchNotifications)
	notifications.Get("/preferences", handler.GetNotificationPreferences)
	notifications.Put("/preferences", handler.UpdateNotificationPreferences)
	notifications.Get("/:id", handler.GetNotification)
	notifications.Post("/:id/read", handler.MarkNotificationRead)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
