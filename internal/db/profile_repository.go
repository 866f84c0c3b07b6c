package db

import (
	"errors"

	"github.com/terraincognita07/pregcare/internal/models"
	"gorm.io/gorm"
)

type ProfileRepository struct {
	database *gorm.DB
}

func NewProfileRepository(database *gorm.DB) *ProfileRepository {
	return &ProfileRepository{database: database}
}

// EnsureDefault returns the single owner profile, creating it on first launch.
func (repo *ProfileRepository) EnsureDefault() (models.Profile, error) {
	profile := models.Profile{}
	err := repo.database.
		Where(models.Profile{Name: models.DefaultProfileName}).
		Attrs(models.Profile{
			AverageCycleLength:  models.DefaultCycleLength,
			AveragePeriodLength: models.DefaultPeriodLength,
		}).
		FirstOrCreate(&profile).Error
	if err != nil {
		return models.Profile{}, err
	}
	return profile, nil
}

func (repo *ProfileRepository) FindByID(profileID uint) (*models.Profile, error) {
	profile := models.Profile{}
	err := repo.database.First(&profile, profileID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (repo *ProfileRepository) ListAll() ([]models.Profile, error) {
	profiles := make([]models.Profile, 0)
	if err := repo.database.Order("id ASC").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (repo *ProfileRepository) UpdateByID(profileID uint, updates map[string]any) error {
	return repo.database.Model(&models.Profile{}).Where("id = ?", profileID).Updates(updates).Error
}
