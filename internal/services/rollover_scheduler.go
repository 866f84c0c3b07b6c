package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/terraincognita07/pregcare/internal/models"
)

const DefaultRolloverSchedule = "5 0 * * *"

var ErrInvalidRolloverSchedule = errors.New("invalid rollover schedule")

type PhaseRefresher interface {
	RefreshCurrentPhases(today time.Time) (int, error)
}

type AnalysisGenerator interface {
	Generate(profileID uint, today time.Time) (CycleAnalysisResult, error)
}

// NotificationDispatcher raises the day's reminders for one profile.
type NotificationDispatcher interface {
	Dispatch(profileID uint, today time.Time) (int, error)
}

type ProfileLister interface {
	ListAll() ([]models.Profile, error)
}

// RolloverObserver receives the outcome of every rollover run.
type RolloverObserver interface {
	ObserveRollover(report RolloverReport, err error)
}

type RolloverReport struct {
	Day                  time.Time
	PhasesUpdated        int
	AnalysesGenerated    int
	NotificationsCreated int
	Duration             time.Duration
}

type RolloverOptions struct {
	Schedule      string
	Location      *time.Location
	Phases        PhaseRefresher
	Analyses      AnalysisGenerator
	Notifications NotificationDispatcher
	Profiles      ProfileLister
	Logger        *zap.Logger
	Observer      RolloverObserver
	Now           func() time.Time
}

// RolloverScheduler runs the daily phase refresh, analysis regeneration and
// reminder dispatch on a cron schedule. Notifications are optional.
type RolloverScheduler struct {
	cron          *cron.Cron
	schedule      string
	location      *time.Location
	phases        PhaseRefresher
	analyses      AnalysisGenerator
	notifications NotificationDispatcher
	profiles      ProfileLister
	logger        *zap.Logger
	observer      RolloverObserver
	now           func() time.Time
}

func NewRolloverScheduler(options RolloverOptions) (*RolloverScheduler, error) {
	if options.Schedule == "" {
		options.Schedule = DefaultRolloverSchedule
	}
	if options.Location == nil {
		options.Location = time.UTC
	}
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	if options.Phases == nil || options.Analyses == nil || options.Profiles == nil {
		return nil, errors.New("rollover scheduler requires phase, analysis and profile dependencies")
	}
	if _, err := cron.ParseStandard(options.Schedule); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRolloverSchedule, err)
	}

	logger := options.Logger.Named("rollover")
	scheduler := &RolloverScheduler{
		schedule:      options.Schedule,
		location:      options.Location,
		phases:        options.Phases,
		analyses:      options.Analyses,
		notifications: options.Notifications,
		profiles:      options.Profiles,
		logger:        logger,
		observer:      options.Observer,
		now:           options.Now,
	}

	cronLog := cronLogger{logger: logger.Sugar()}
	scheduler.cron = cron.New(
		cron.WithLocation(options.Location),
		cron.WithLogger(cronLog),
		cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
	)
	if _, err := scheduler.cron.AddFunc(options.Schedule, scheduler.runScheduled); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRolloverSchedule, err)
	}

	return scheduler, nil
}

func (scheduler *RolloverScheduler) Start() {
	scheduler.logger.Info("rollover scheduler started",
		zap.String("schedule", scheduler.schedule),
		zap.String("location", scheduler.location.String()),
	)
	scheduler.cron.Start()
}

// Stop halts the schedule and waits for a running job to finish.
func (scheduler *RolloverScheduler) Stop() {
	<-scheduler.cron.Stop().Done()
	scheduler.logger.Info("rollover scheduler stopped")
}

// Run starts the scheduler and blocks until ctx is cancelled.
func (scheduler *RolloverScheduler) Run(ctx context.Context) error {
	scheduler.Start()
	<-ctx.Done()
	scheduler.Stop()
	return nil
}

// RunOnce performs a single rollover for the current local day.
func (scheduler *RolloverScheduler) RunOnce() (RolloverReport, error) {
	started := scheduler.now()
	report := RolloverReport{Day: LocalCalendarDate(started, scheduler.location)}

	updated, err := scheduler.phases.RefreshCurrentPhases(report.Day)
	report.PhasesUpdated = updated
	if err != nil {
		report.Duration = scheduler.now().Sub(started)
		return report, err
	}

	profiles, err := scheduler.profiles.ListAll()
	if err != nil {
		report.Duration = scheduler.now().Sub(started)
		return report, err
	}

	var errs []error
	for _, profile := range profiles {
		result, err := scheduler.analyses.Generate(profile.ID, report.Day)
		if err != nil {
			errs = append(errs, fmt.Errorf("profile %d: %w", profile.ID, err))
		} else if result.HasData() {
			report.AnalysesGenerated++
		}

		if scheduler.notifications == nil {
			continue
		}
		created, err := scheduler.notifications.Dispatch(profile.ID, report.Day)
		report.NotificationsCreated += created
		if err != nil {
			errs = append(errs, fmt.Errorf("profile %d notifications: %w", profile.ID, err))
		}
	}

	report.Duration = scheduler.now().Sub(started)
	return report, errors.Join(errs...)
}

func (scheduler *RolloverScheduler) runScheduled() {
	report, err := scheduler.RunOnce()
	if scheduler.observer != nil {
		scheduler.observer.ObserveRollover(report, err)
	}

	fields := []zap.Field{
		zap.String("day", FormatISODate(report.Day)),
		zap.Int("phases_updated", report.PhasesUpdated),
		zap.Int("analyses_generated", report.AnalysesGenerated),
		zap.Int("notifications_created", report.NotificationsCreated),
		zap.Duration("duration", report.Duration),
	}
	if err != nil {
		scheduler.logger.Error("rollover failed", append(fields, zap.Error(err))...)
		return
	}
	scheduler.logger.Info("rollover completed", fields...)
}

type cronLogger struct {
	logger *zap.SugaredLogger
}

func (log cronLogger) Info(msg string, keysAndValues ...interface{}) {
	log.logger.Debugw(msg, keysAndValues...)
}

func (log cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	log.logger.Errorw(msg, append(keysAndValues, "error", err)...)
}
