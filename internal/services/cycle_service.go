package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/pregcare/internal/models"
)

var (
	ErrCycleNotFound      = errors.New("cycle not found")
	ErrCycleStartRequired = errors.New("cycle start date is required")
	ErrInvalidCycleRange  = errors.New("cycle end date before start date")
	ErrLoadCyclesFailed   = errors.New("load cycles failed")
	ErrCreateCycleFailed  = errors.New("create cycle failed")
	ErrUpdateCycleFailed  = errors.New("update cycle failed")
)

type CycleRepository interface {
	ListByProfile(profileID uint) ([]models.Cycle, error)
	FindCurrent(profileID uint) (*models.Cycle, error)
	FindByIDForProfile(cycleID uint, profileID uint) (*models.Cycle, error)
	ListCurrent() ([]models.Cycle, error)
	CreateCurrent(cycle *models.Cycle) error
	Save(cycle *models.Cycle) error
	UpdatePhase(cycleID uint, phase string) error
}

type CycleProfileRepository interface {
	FindByID(profileID uint) (*models.Profile, error)
	UpdateByID(profileID uint, updates map[string]any) error
}

type CycleService struct {
	cycles             CycleRepository
	profiles           CycleProfileRepository
	defaultCycleLength int
	lutealDays         int
}

type QuickLogInput struct {
	StartDate   time.Time
	EndDate     *time.Time
	CycleLength int
	Notes       string
}

func NewCycleService(cycles CycleRepository, profiles CycleProfileRepository, defaultCycleLength int, lutealDays int) *CycleService {
	if defaultCycleLength <= 0 {
		defaultCycleLength = models.DefaultCycleLength
	}
	if lutealDays <= 0 {
		lutealDays = models.DefaultLutealPhaseDays
	}
	return &CycleService{
		cycles:             cycles,
		profiles:           profiles,
		defaultCycleLength: defaultCycleLength,
		lutealDays:         lutealDays,
	}
}

func (service *CycleService) LutealDays() int {
	return service.lutealDays
}

// QuickLog records a new current cycle, predicts its dates and stores the
// chosen cycle length as the profile's average.
func (service *CycleService) QuickLog(profileID uint, input QuickLogInput, today time.Time) (models.Cycle, error) {
	profile, err := service.profiles.FindByID(profileID)
	if err != nil {
		return models.Cycle{}, fmt.Errorf("%w: %v", ErrLoadProfileFailed, err)
	}
	if profile == nil {
		return models.Cycle{}, ErrProfileNotFound
	}

	cycleLength := input.CycleLength
	if cycleLength == 0 {
		cycleLength = profile.AverageCycleLength
	}
	if cycleLength == 0 {
		cycleLength = service.defaultCycleLength
	}
	if err := ValidateCycleLength(cycleLength); err != nil {
		return models.Cycle{}, err
	}

	cycle := models.Cycle{
		ProfileID:   profileID,
		CycleLength: cycleLength,
		Notes:       strings.TrimSpace(input.Notes),
	}
	if err := service.applyDates(&cycle, input.StartDate, input.EndDate, today); err != nil {
		return models.Cycle{}, err
	}

	if err := service.cycles.CreateCurrent(&cycle); err != nil {
		return models.Cycle{}, fmt.Errorf("%w: %v", ErrCreateCycleFailed, err)
	}

	updates := map[string]any{"average_cycle_length": cycleLength}
	if cycle.PeriodLength > 0 {
		updates["average_period_length"] = cycle.PeriodLength
	}
	if err := service.profiles.UpdateByID(profileID, updates); err != nil {
		return models.Cycle{}, fmt.Errorf("%w: %v", ErrUpdateProfileFailed, err)
	}

	return cycle, nil
}

func (service *CycleService) UpdateDates(profileID uint, cycleID uint, start time.Time, end *time.Time, today time.Time) (models.Cycle, error) {
	cycle, err := service.cycles.FindByIDForProfile(cycleID, profileID)
	if err != nil {
		return models.Cycle{}, fmt.Errorf("%w: %v", ErrLoadCyclesFailed, err)
	}
	if cycle == nil {
		return models.Cycle{}, ErrCycleNotFound
	}

	cycle.EndDate = nil
	cycle.PeriodLength = 0
	if err := service.applyDates(cycle, start, end, today); err != nil {
		return models.Cycle{}, err
	}

	if err := service.cycles.Save(cycle); err != nil {
		return models.Cycle{}, fmt.Errorf("%w: %v", ErrUpdateCycleFailed, err)
	}
	return *cycle, nil
}

func (service *CycleService) Current(profileID uint) (*models.Cycle, error) {
	cycle, err := service.cycles.FindCurrent(profileID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadCyclesFailed, err)
	}
	return cycle, nil
}

func (service *CycleService) List(profileID uint) ([]models.Cycle, error) {
	cycles, err := service.cycles.ListByProfile(profileID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadCyclesFailed, err)
	}
	return cycles, nil
}

// CurrentPhase runs ComputePhase over the profile's current cycle.
func (service *CycleService) CurrentPhase(profileID uint, today time.Time) (PhaseDescriptor, error) {
	cycle, err := service.Current(profileID)
	if err != nil {
		return PhaseDescriptor{}, err
	}
	return ComputePhase(cycle, today)
}

// RefreshCurrentPhases stores today's phase on every current cycle and reports
// how many rows changed.
func (service *CycleService) RefreshCurrentPhases(today time.Time) (int, error) {
	cycles, err := service.cycles.ListCurrent()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrLoadCyclesFailed, err)
	}

	updated := 0
	for _, cycle := range cycles {
		phase := DisplayPhaseOn(cycle, today, service.lutealDays)
		if phase == cycle.Phase {
			continue
		}
		if err := service.cycles.UpdatePhase(cycle.ID, phase); err != nil {
			return updated, fmt.Errorf("%w: %v", ErrUpdateCycleFailed, err)
		}
		updated++
	}
	return updated, nil
}

func (service *CycleService) applyDates(cycle *models.Cycle, start time.Time, end *time.Time, today time.Time) error {
	if start.IsZero() {
		return ErrCycleStartRequired
	}
	cycle.StartDate = CalendarDate(start)

	if end != nil {
		endDay := CalendarDate(*end)
		if endDay.Before(cycle.StartDate) {
			return ErrInvalidCycleRange
		}
		if err := ValidatePeriodLength(DaysBetween(cycle.StartDate, endDay) + 1); err != nil {
			return err
		}
		cycle.EndDate = &endDay
	}

	CalculateCycleData(cycle, service.defaultCycleLength, service.lutealDays)
	cycle.Phase = DisplayPhaseOn(*cycle, today, service.lutealDays)
	return nil
}
