package db

import (
	"time"

	"github.com/terraincognita07/pregcare/internal/models"
	"gorm.io/gorm"
)

type SymptomRepository struct {
	database *gorm.DB
}

func NewSymptomRepository(database *gorm.DB) *SymptomRepository {
	return &SymptomRepository{database: database}
}

func (repo *SymptomRepository) ListByProfileRange(profileID uint, from time.Time, to time.Time) ([]models.Symptom, error) {
	return listSymptomsInRange(repo.database, profileID, from, to)
}

// MutateDay hands the rows stored in [dayStart, dayEnd) to mutate and applies
// the rows it returns for insertion and the ids it returns for deletion in the
// same transaction.
func (repo *SymptomRepository) MutateDay(
	profileID uint,
	dayStart time.Time,
	dayEnd time.Time,
	mutate func(existing []models.Symptom) ([]models.Symptom, []uint, error),
) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		existing, err := listSymptomsInRange(tx, profileID, dayStart, dayEnd)
		if err != nil {
			return err
		}

		create, deleteIDs, err := mutate(existing)
		if err != nil {
			return err
		}

		if len(deleteIDs) > 0 {
			if err := tx.Where("profile_id = ? AND id IN ?", profileID, deleteIDs).
				Delete(&models.Symptom{}).Error; err != nil {
				return err
			}
		}
		if len(create) > 0 {
			if err := tx.Create(&create).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (repo *SymptomRepository) DeleteByProfileRange(profileID uint, from time.Time, to time.Time) (int64, error) {
	result := repo.database.
		Where("profile_id = ? AND date >= ? AND date < ?", profileID, from, to).
		Delete(&models.Symptom{})
	return result.RowsAffected, result.Error
}

func listSymptomsInRange(database *gorm.DB, profileID uint, from time.Time, to time.Time) ([]models.Symptom, error) {
	symptoms := make([]models.Symptom, 0)
	if err := database.
		Where("profile_id = ? AND date >= ? AND date < ?", profileID, from, to).
		Order("date ASC, symptom_type ASC").
		Find(&symptoms).Error; err != nil {
		return nil, err
	}
	return symptoms, nil
}
