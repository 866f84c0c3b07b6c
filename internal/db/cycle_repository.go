package db

import (
	"errors"

	"github.com/terraincognita07/pregcare/internal/models"
	"gorm.io/gorm"
)

type CycleRepository struct {
	database *gorm.DB
}

func NewCycleRepository(database *gorm.DB) *CycleRepository {
	return &CycleRepository{database: database}
}

func (repo *CycleRepository) ListByProfile(profileID uint) ([]models.Cycle, error) {
	cycles := make([]models.Cycle, 0)
	if err := repo.database.
		Where("profile_id = ?", profileID).
		Order("start_date DESC, id DESC").
		Find(&cycles).Error; err != nil {
		return nil, err
	}
	return cycles, nil
}

// FindCurrent returns nil without an error when the profile has no current cycle.
func (repo *CycleRepository) FindCurrent(profileID uint) (*models.Cycle, error) {
	cycle := models.Cycle{}
	err := repo.database.
		Where("profile_id = ? AND is_current = ?", profileID, true).
		Order("start_date DESC, id DESC").
		First(&cycle).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cycle, nil
}

func (repo *CycleRepository) FindByIDForProfile(cycleID uint, profileID uint) (*models.Cycle, error) {
	cycle := models.Cycle{}
	err := repo.database.
		Where("id = ? AND profile_id = ?", cycleID, profileID).
		First(&cycle).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cycle, nil
}

func (repo *CycleRepository) ListCurrent() ([]models.Cycle, error) {
	cycles := make([]models.Cycle, 0)
	if err := repo.database.
		Where("is_current = ?", true).
		Order("profile_id ASC, id ASC").
		Find(&cycles).Error; err != nil {
		return nil, err
	}
	return cycles, nil
}

// CreateCurrent clears the current flag on the profile's other cycles and
// inserts cycle as the new current one in a single transaction.
func (repo *CycleRepository) CreateCurrent(cycle *models.Cycle) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Cycle{}).
			Where("profile_id = ? AND is_current = ?", cycle.ProfileID, true).
			Update("is_current", false).Error; err != nil {
			return err
		}
		cycle.IsCurrent = true
		return tx.Create(cycle).Error
	})
}

func (repo *CycleRepository) Save(cycle *models.Cycle) error {
	return repo.database.Save(cycle).Error
}

func (repo *CycleRepository) UpdatePhase(cycleID uint, phase string) error {
	return repo.database.Model(&models.Cycle{}).Where("id = ?", cycleID).Update("phase", phase).Error
}
