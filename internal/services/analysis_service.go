package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/terraincognita07/pregcare/internal/models"
)

var (
	ErrGenerateAnalysisFailed = errors.New("generate analysis failed")
	ErrLoadAnalysisFailed     = errors.New("load analysis failed")
)

type AnalysisCycleRepository interface {
	ListByProfile(profileID uint) ([]models.Cycle, error)
}

type AnalysisRepository interface {
	SaveForDate(analysis *models.CycleAnalysis) error
	LatestByProfile(profileID uint) (*models.CycleAnalysis, error)
}

type AnalysisService struct {
	cycles   AnalysisCycleRepository
	analyses AnalysisRepository
}

func NewAnalysisService(cycles AnalysisCycleRepository, analyses AnalysisRepository) *AnalysisService {
	return &AnalysisService{cycles: cycles, analyses: analyses}
}

// Generate analyses the profile's history and stores the result when there
// was enough data to classify it. Repeated runs on one day overwrite that
// day's row.
func (service *AnalysisService) Generate(profileID uint, today time.Time) (CycleAnalysisResult, error) {
	cycles, err := service.cycles.ListByProfile(profileID)
	if err != nil {
		return CycleAnalysisResult{}, fmt.Errorf("%w: %v", ErrLoadCyclesFailed, err)
	}

	result := AnalyzeCycles(cycles)
	result.AnalysisDate = CalendarDate(today)
	if !result.HasData() {
		return result, nil
	}

	analysis := result.ToModel(profileID)
	if err := service.analyses.SaveForDate(&analysis); err != nil {
		return CycleAnalysisResult{}, fmt.Errorf("%w: %v", ErrGenerateAnalysisFailed, err)
	}
	return result, nil
}

func (service *AnalysisService) Latest(profileID uint, today time.Time) (CycleAnalysisResult, error) {
	analysis, err := service.analyses.LatestByProfile(profileID)
	if err != nil {
		return CycleAnalysisResult{}, fmt.Errorf("%w: %v", ErrLoadAnalysisFailed, err)
	}
	if analysis == nil {
		return service.Generate(profileID, today)
	}
	return analysisResultFromModel(*analysis), nil
}
