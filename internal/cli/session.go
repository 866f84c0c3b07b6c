package cli

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/terraincognita07/pregcare/internal/db"
	"github.com/terraincognita07/pregcare/internal/models"
	"github.com/terraincognita07/pregcare/internal/services"
)

// Options carries the settings shared by every offline command.
type Options struct {
	DBPath             string
	Location           *time.Location
	DefaultCycleLength int
	LutealPhaseDays    int
	Logger             *zap.Logger
	Now                func() time.Time
}

type session struct {
	profile  models.Profile
	profiles *services.ProfileService
	cycles   *services.CycleService
	calendar *services.CalendarService
	analyses *services.AnalysisService
	notify   *services.NotificationService
	today    time.Time
	options  Options
	close    func()
}

func openSession(options Options) (*session, error) {
	if options.Location == nil {
		options.Location = time.Local
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	if options.LutealPhaseDays <= 0 {
		options.LutealPhaseDays = models.DefaultLutealPhaseDays
	}
	if options.DefaultCycleLength <= 0 {
		options.DefaultCycleLength = models.DefaultCycleLength
	}

	database, err := db.OpenSQLite(options.DBPath, options.Logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}

	repositories := db.NewRepositories(database)
	profiles := services.NewProfileService(repositories.Profiles)
	profile, err := profiles.EnsureDefault()
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("load profile: %w", err)
	}

	return &session{
		profile:  profile,
		profiles: profiles,
		cycles:   services.NewCycleService(repositories.Cycles, repositories.Profiles, options.DefaultCycleLength, options.LutealPhaseDays),
		calendar: services.NewCalendarService(repositories.Cycles, repositories.Symptoms, options.LutealPhaseDays),
		analyses: services.NewAnalysisService(repositories.Cycles, repositories.Analyses),
		notify:   services.NewNotificationService(repositories.Notifications, repositories.Cycles, options.DefaultCycleLength, options.LutealPhaseDays, options.Now),
		today:    services.LocalCalendarDate(options.Now(), options.Location),
		options:  options,
		close: func() {
			_ = sqlDB.Close()
		},
	}, nil
}
