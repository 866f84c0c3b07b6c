package services

import (
	"time"

	"github.com/terraincognita07/pregcare/internal/models"
)

// BuildMonthAnnotations resolves the phase and symptoms of every date in the
// month. The current cycle (or the latest one when none is flagged) decides a
// date first; any other cycle with a specific phase for that date overrides a
// normal or out-of-cycle result. Without cycles only symptom dates are annotated.
func BuildMonthAnnotations(cycles []models.Cycle, symptoms []models.Symptom, year int, month int, lutealDays int) (map[string]DayAnnotation, error) {
	if month < 1 || month > 12 {
		return nil, ErrInvalidMonth
	}

	annotations := make(map[string]DayAnnotation)
	primary := primaryCycle(cycles)
	firstDay := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)

	if primary != nil {
		for offset := 0; offset < DaysInMonth(year, month); offset++ {
			day := firstDay.AddDate(0, 0, offset)
			annotations[FormatISODate(day)] = DayAnnotation{
				Phase:      resolvePhaseForDay(*primary, cycles, day, lutealDays),
				SymptomIDs: []string{},
			}
		}
	}

	for _, symptom := range symptoms {
		day := CalendarDate(symptom.Date)
		if day.Year() != year || int(day.Month()) != month {
			continue
		}
		key := FormatISODate(day)
		annotation := annotations[key]
		annotation.SymptomIDs = append(annotation.SymptomIDs, symptom.SymptomType)
		annotation.HasSymptoms = true
		annotations[key] = annotation
	}

	for key, annotation := range annotations {
		annotation.SymptomIDs = sortedUniqueStrings(annotation.SymptomIDs)
		annotations[key] = annotation
	}

	return annotations, nil
}

func primaryCycle(cycles []models.Cycle) *models.Cycle {
	var latest *models.Cycle
	for index := range cycles {
		cycle := &cycles[index]
		if cycle.IsCurrent {
			return cycle
		}
		if latest == nil || cycle.StartDate.After(latest.StartDate) {
			latest = cycle
		}
	}
	return latest
}

func resolvePhaseForDay(primary models.Cycle, cycles []models.Cycle, day time.Time, lutealDays int) string {
	phase := PhaseOn(primary, day, lutealDays)
	if IsKnownPhase(phase) && phase != models.PhaseNormal {
		return phase
	}

	for _, cycle := range cycles {
		if cycle.ID == primary.ID {
			continue
		}
		candidate := PhaseOn(cycle, day, lutealDays)
		if IsKnownPhase(candidate) && candidate != models.PhaseNormal {
			return candidate
		}
	}

	return models.PhaseNormal
}
