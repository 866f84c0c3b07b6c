package services

import (
	"errors"
	"testing"

	"github.com/terraincognita07/pregcare/internal/models"
)

func TestCalendarServiceMonthGrid(t *testing.T) {
	t.Parallel()

	cycle := makeCycle(1, "2026-02-01", 28)
	cycle.EndDate = dayPtr("2026-02-05")
	cycle.IsCurrent = true
	CalculateCycleData(&cycle, 28, 14)

	symptoms := &stubSymptomRepo{rows: []models.Symptom{
		{ID: 1, ProfileID: 1, Date: mustParseDay("2026-02-03"), SymptomType: "cramps"},
		{ID: 2, ProfileID: 1, Date: mustParseDay("2026-03-03"), SymptomType: "acne"},
	}}
	service := NewCalendarService(&stubCycleRepo{cycles: []models.Cycle{cycle}}, symptoms, 14)

	cells, err := service.MonthGrid(1, 2026, 2)
	if err != nil {
		t.Fatalf("MonthGrid() unexpected error: %v", err)
	}
	if len(cells) != 28 {
		t.Fatalf("expected 28 cells, got %d", len(cells))
	}
	third := cells[2]
	if third.PhaseTag == nil || *third.PhaseTag != models.PhaseMenstruation {
		t.Fatalf("expected menstruation on 2026-02-03, got %+v", third)
	}
	if !third.HasSymptoms || len(third.SymptomIDs) != 1 || third.SymptomIDs[0] != "cramps" {
		t.Fatalf("expected cramps on 2026-02-03, got %+v", third)
	}
	if cells[14].PhaseTag == nil || *cells[14].PhaseTag != models.PhaseOvulation {
		t.Fatalf("expected ovulation on 2026-02-15, got %+v", cells[14])
	}
}

func TestCalendarServiceRejectsInvalidMonthBeforeLoading(t *testing.T) {
	t.Parallel()

	service := NewCalendarService(&stubCycleRepo{listErr: errors.New("should not load")}, &stubSymptomRepo{}, 14)
	if _, err := service.MonthGrid(1, 2026, 0); !errors.Is(err, ErrInvalidMonth) {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}
}
