package services

import (
	"fmt"
	"time"

	"github.com/terraincognita07/pregcare/internal/models"
)

type CalendarCycleRepository interface {
	ListByProfile(profileID uint) ([]models.Cycle, error)
}

type CalendarSymptomRepository interface {
	ListByProfileRange(profileID uint, from time.Time, to time.Time) ([]models.Symptom, error)
}

type CalendarService struct {
	cycles     CalendarCycleRepository
	symptoms   CalendarSymptomRepository
	lutealDays int
}

func NewCalendarService(cycles CalendarCycleRepository, symptoms CalendarSymptomRepository, lutealDays int) *CalendarService {
	return &CalendarService{cycles: cycles, symptoms: symptoms, lutealDays: lutealDays}
}

func (service *CalendarService) MonthAnnotations(profileID uint, year int, month int) (map[string]DayAnnotation, error) {
	if month < 1 || month > 12 {
		return nil, ErrInvalidMonth
	}

	cycles, err := service.cycles.ListByProfile(profileID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadCyclesFailed, err)
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	symptoms, err := service.symptoms.ListByProfileRange(profileID, from, from.AddDate(0, 1, 0))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadSymptomsFailed, err)
	}

	return BuildMonthAnnotations(cycles, symptoms, year, month, service.lutealDays)
}

func (service *CalendarService) MonthGrid(profileID uint, year int, month int) ([]CalendarDayCell, error) {
	annotations, err := service.MonthAnnotations(profileID, year, month)
	if err != nil {
		return nil, err
	}
	return BuildMonthGrid(year, month, annotations)
}
