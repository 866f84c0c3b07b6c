package db

import "gorm.io/gorm"

type Repositories struct {
	Profiles *ProfileRepository
	Cycles   *CycleRepository
	Symptoms *SymptomRepository
	Analyses *AnalysisRepository

	Notifications *NotificationRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Profiles: NewProfileRepository(database),
		Cycles:   NewCycleRepository(database),
		Symptoms: NewSymptomRepository(database),
		Analyses: NewAnalysisRepository(database),

		Notifications: NewNotificationRepository(database),
	}
}
