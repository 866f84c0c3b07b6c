package services

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/terraincognita07/pregcare/internal/models"
)

func TestBuildMonthAnnotationsPrefersCurrentCycle(t *testing.T) {
	t.Parallel()

	previous := makeCycle(1, "2026-01-04", 28)
	previous.EndDate = dayPtr("2026-01-08")
	CalculateCycleData(&previous, 28, 14)

	current := makeCycle(2, "2026-02-01", 28)
	current.EndDate = dayPtr("2026-02-04")
	current.IsCurrent = true
	CalculateCycleData(&current, 28, 14)

	annotations, err := BuildMonthAnnotations([]models.Cycle{previous, current}, nil, 2026, 1, 14)
	if err != nil {
		t.Fatalf("BuildMonthAnnotations() unexpected error: %v", err)
	}

	if len(annotations) != 31 {
		t.Fatalf("expected every January date annotated, got %d", len(annotations))
	}
	// January dates lie before the current cycle, so the previous one decides them.
	if got := annotations["2026-01-05"].Phase; got != models.PhaseMenstruation {
		t.Fatalf("expected menstruation from previous cycle, got %s", got)
	}
	if got := annotations["2026-01-18"].Phase; got != models.PhaseOvulation {
		t.Fatalf("expected ovulation from previous cycle, got %s", got)
	}
	if got := annotations["2026-01-01"].Phase; got != models.PhaseNormal {
		t.Fatalf("expected uncovered date to collapse to normal, got %s", got)
	}

	february, err := BuildMonthAnnotations([]models.Cycle{previous, current}, nil, 2026, 2, 14)
	if err != nil {
		t.Fatalf("BuildMonthAnnotations() unexpected error: %v", err)
	}
	if got := february["2026-02-02"].Phase; got != models.PhaseMenstruation {
		t.Fatalf("expected menstruation from current cycle, got %s", got)
	}
}

func TestBuildMonthAnnotationsGroupsSymptoms(t *testing.T) {
	t.Parallel()

	symptoms := []models.Symptom{
		{Date: mustParseDay("2026-02-10"), SymptomType: "headache"},
		{Date: mustParseDay("2026-02-10"), SymptomType: "cramps"},
		{Date: mustParseDay("2026-02-10"), SymptomType: "cramps"},
		{Date: mustParseDay("2026-03-01"), SymptomType: "acne"},
	}

	annotations, err := BuildMonthAnnotations(nil, symptoms, 2026, 2, 14)
	if err != nil {
		t.Fatalf("BuildMonthAnnotations() unexpected error: %v", err)
	}

	want := map[string]DayAnnotation{
		"2026-02-10": {HasSymptoms: true, SymptomIDs: []string{"cramps", "headache"}},
	}
	if diff := cmp.Diff(want, annotations); diff != "" {
		t.Fatalf("unexpected annotations (-want +got):\n%s", diff)
	}

	cells, err := BuildMonthGrid(2026, 2, annotations)
	if err != nil {
		t.Fatalf("BuildMonthGrid() unexpected error: %v", err)
	}
	if cells[9].PhaseTag != nil || !cells[9].HasSymptoms {
		t.Fatalf("expected symptom-only cell without phase, got %+v", cells[9])
	}
}

func TestBuildMonthAnnotationsUsesLatestCycleWhenNoneCurrent(t *testing.T) {
	t.Parallel()

	older := makeCycle(1, "2025-12-01", 28)
	older.EndDate = dayPtr("2025-12-05")
	CalculateCycleData(&older, 28, 14)
	latest := makeCycle(2, "2026-02-01", 28)
	latest.EndDate = dayPtr("2026-02-03")
	CalculateCycleData(&latest, 28, 14)

	annotations, err := BuildMonthAnnotations([]models.Cycle{older, latest}, nil, 2026, 2, 14)
	if err != nil {
		t.Fatalf("BuildMonthAnnotations() unexpected error: %v", err)
	}
	if got := annotations["2026-02-02"].Phase; got != models.PhaseMenstruation {
		t.Fatalf("expected latest cycle to decide February, got %s", got)
	}
}

func TestBuildMonthAnnotationsRejectsInvalidMonth(t *testing.T) {
	t.Parallel()

	if _, err := BuildMonthAnnotations(nil, nil, 2026, 13, 14); !errors.Is(err, ErrInvalidMonth) {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}
}
