package services

import (
	"errors"
	"fmt"

	"github.com/terraincognita07/pregcare/internal/models"
)

var (
	ErrProfileNotFound     = errors.New("profile not found")
	ErrInvalidCycleLength  = errors.New("invalid cycle length")
	ErrInvalidPeriodLength = errors.New("invalid period length")
	ErrLoadProfileFailed   = errors.New("load profile failed")
	ErrUpdateProfileFailed = errors.New("update profile failed")
)

type ProfileRepository interface {
	EnsureDefault() (models.Profile, error)
	FindByID(profileID uint) (*models.Profile, error)
	ListAll() ([]models.Profile, error)
	UpdateByID(profileID uint, updates map[string]any) error
}

type ProfileService struct {
	profiles ProfileRepository
}

type ProfileAveragesUpdate struct {
	AverageCycleLength  int
	AveragePeriodLength int
}

func NewProfileService(profiles ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

func ValidateCycleLength(cycleLength int) error {
	if cycleLength < models.MinCycleLength || cycleLength > models.MaxCycleLength {
		return ErrInvalidCycleLength
	}
	return nil
}

func ValidatePeriodLength(periodLength int) error {
	if periodLength < models.MinPeriodLength || periodLength > models.MaxPeriodLength {
		return ErrInvalidPeriodLength
	}
	return nil
}

func (service *ProfileService) EnsureDefault() (models.Profile, error) {
	profile, err := service.profiles.EnsureDefault()
	if err != nil {
		return models.Profile{}, fmt.Errorf("%w: %v", ErrLoadProfileFailed, err)
	}
	return profile, nil
}

func (service *ProfileService) Get(profileID uint) (models.Profile, error) {
	profile, err := service.profiles.FindByID(profileID)
	if err != nil {
		return models.Profile{}, fmt.Errorf("%w: %v", ErrLoadProfileFailed, err)
	}
	if profile == nil {
		return models.Profile{}, ErrProfileNotFound
	}
	return *profile, nil
}

func (service *ProfileService) ListAll() ([]models.Profile, error) {
	profiles, err := service.profiles.ListAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadProfileFailed, err)
	}
	return profiles, nil
}

func (service *ProfileService) UpdateAverages(profileID uint, update ProfileAveragesUpdate) (models.Profile, error) {
	if err := ValidateCycleLength(update.AverageCycleLength); err != nil {
		return models.Profile{}, err
	}
	if err := ValidatePeriodLength(update.AveragePeriodLength); err != nil {
		return models.Profile{}, err
	}
	if update.AveragePeriodLength >= update.AverageCycleLength {
		return models.Profile{}, ErrInvalidPeriodLength
	}

	if _, err := service.Get(profileID); err != nil {
		return models.Profile{}, err
	}

	if err := service.profiles.UpdateByID(profileID, map[string]any{
		"average_cycle_length":  update.AverageCycleLength,
		"average_period_length": update.AveragePeriodLength,
	}); err != nil {
		return models.Profile{}, fmt.Errorf("%w: %v", ErrUpdateProfileFailed, err)
	}
	return service.Get(profileID)
}
