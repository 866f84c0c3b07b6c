package api

import (
	"gorm.io/gorm"

	"github.com/terraincognita07/pregcare/internal/db"
	"github.com/terraincognita07/pregcare/internal/services"
)

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	handler.repositories = db.NewRepositories(database)
	handler.profileService = services.NewProfileService(handler.repositories.Profiles)
	handler.cycleService = services.NewCycleService(
		handler.repositories.Cycles,
		handler.repositories.Profiles,
		handler.defaultCycleLength,
		handler.lutealPhaseDays,
	)
	handler.calendarService = services.NewCalendarService(
		handler.repositories.Cycles,
		handler.repositories.Symptoms,
		handler.lutealPhaseDays,
	)
	handler.symptomService = services.NewSymptomService(handler.repositories.Symptoms, nil)
	handler.analysisService = services.NewAnalysisService(handler.repositories.Cycles, handler.repositories.Analyses)
	handler.notificationService = services.NewNotificationService(
		handler.repositories.Notifications,
		handler.repositories.Cycles,
		handler.defaultCycleLength,
		handler.lutealPhaseDays,
		handler.now,
	)
	return handler
}
