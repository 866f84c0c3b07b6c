package db

import (
	"errors"
	"time"

	"github.com/terraincognita07/pregcare/internal/models"
	"gorm.io/gorm"
)

type AnalysisRepository struct {
	database *gorm.DB
}

func NewAnalysisRepository(database *gorm.DB) *AnalysisRepository {
	return &AnalysisRepository{database: database}
}

// SaveForDate stores analysis as the single row for its profile and
// analysis date, replacing the content of a row already written that day.
func (repo *AnalysisRepository) SaveForDate(analysis *models.CycleAnalysis) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		dayStart := analysis.AnalysisDate
		existing := models.CycleAnalysis{}
		err := tx.
			Where("profile_id = ? AND analysis_date >= ? AND analysis_date < ?", analysis.ProfileID, dayStart, dayStart.Add(24*time.Hour)).
			Order("id ASC").
			First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(analysis).Error
		}
		if err != nil {
			return err
		}

		analysis.ID = existing.ID
		analysis.CreatedAt = existing.CreatedAt
		return tx.Save(analysis).Error
	})
}

func (repo *AnalysisRepository) LatestByProfile(profileID uint) (*models.CycleAnalysis, error) {
	analysis := models.CycleAnalysis{}
	err := repo.database.
		Where("profile_id = ?", profileID).
		Order("analysis_date DESC, id DESC").
		First(&analysis).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &analysis, nil
}
