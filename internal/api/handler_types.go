package api

import (
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/terraincognita07/pregcare/internal/db"
	"github.com/terraincognita07/pregcare/internal/metrics"
	"github.com/terraincognita07/pregcare/internal/models"
	"github.com/terraincognita07/pregcare/internal/services"
)

const defaultFeedName = "PregCare"

type Handler struct {
	db        *gorm.DB
	location  *time.Location
	logger    *zap.Logger
	metrics   *metrics.Metrics
	validate  *validator.Validate
	now       func() time.Time
	feedName  string
	profileID uint

	defaultCycleLength int
	lutealPhaseDays    int

	repositories    *db.Repositories
	profileService  *services.ProfileService
	cycleService    *services.CycleService
	calendarService *services.CalendarService
	symptomService  *services.SymptomService
	analysisService *services.AnalysisService

	notificationService *services.NotificationService
}

type HandlerOptions struct {
	Location           *time.Location
	Logger             *zap.Logger
	Metrics            *metrics.Metrics
	FeedName           string
	DefaultCycleLength int
	LutealPhaseDays    int
	Now                func() time.Time
}

func NewHandler(database *gorm.DB, options HandlerOptions) (*Handler, error) {
	if options.Location == nil {
		options.Location = time.Local
	}
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	if options.FeedName == "" {
		options.FeedName = defaultFeedName
	}
	if options.DefaultCycleLength <= 0 {
		options.DefaultCycleLength = models.DefaultCycleLength
	}
	if options.LutealPhaseDays <= 0 {
		options.LutealPhaseDays = models.DefaultLutealPhaseDays
	}

	handler := &Handler{
		db:                 database,
		location:           options.Location,
		logger:             options.Logger.Named("api"),
		metrics:            options.Metrics,
		validate:           newValidator(),
		now:                options.Now,
		feedName:           options.FeedName,
		defaultCycleLength: options.DefaultCycleLength,
		lutealPhaseDays:    options.LutealPhaseDays,
	}
	handler.withDependencies(database)

	profile, err := handler.profileService.EnsureDefault()
	if err != nil {
		return nil, err
	}
	handler.profileID = profile.ID

	return handler, nil
}

// CycleService exposes the cycle workflows to the scheduler wiring in cmd.
func (handler *Handler) CycleService() *services.CycleService {
	return handler.cycleService
}

func (handler *Handler) AnalysisService() *services.AnalysisService {
	return handler.analysisService
}

func (handler *Handler) NotificationService() *services.NotificationService {
	return handler.notificationService
}

func (handler *Handler) ProfileService() *services.ProfileService {
	return handler.profileService
}
