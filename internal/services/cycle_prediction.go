package services

import (
	"time"

	"github.com/terraincognita07/pregcare/internal/models"
)

// Tags PhaseOn returns for dates the cycle does not cover.
const (
	PhaseUnknown     = "unknown"
	PhaseBeforeCycle = "before_cycle"
	PhaseAfterCycle  = "after_cycle"
)

const (
	fertileDaysBeforeOvulation = 5
	fertileDaysAfterOvulation  = 1
)

// CalculateCycleData fills the derived fields of cycle: period length from its
// end date, the cycle length fallback, ovulation, fertile window and the next
// predicted period.
func CalculateCycleData(cycle *models.Cycle, defaultCycleLength int, lutealDays int) {
	if cycle == nil || cycle.StartDate.IsZero() {
		return
	}
	if defaultCycleLength <= 0 {
		defaultCycleLength = models.DefaultCycleLength
	}
	if lutealDays <= 0 {
		lutealDays = models.DefaultLutealPhaseDays
	}

	cycle.StartDate = CalendarDate(cycle.StartDate)
	if cycle.EndDate != nil {
		end := CalendarDate(*cycle.EndDate)
		cycle.EndDate = &end
		cycle.PeriodLength = DaysBetween(cycle.StartDate, end) + 1
	}
	if cycle.CycleLength <= 0 {
		cycle.CycleLength = defaultCycleLength
	}

	ovulation := addDays(cycle.StartDate, cycle.CycleLength-lutealDays)
	cycle.OvulationDate = datePtr(ovulation)
	cycle.FertileWindowStart = datePtr(addDays(ovulation, -fertileDaysBeforeOvulation))
	cycle.FertileWindowEnd = datePtr(addDays(ovulation, fertileDaysAfterOvulation))
	cycle.NextPeriodDate = datePtr(addDays(cycle.StartDate, cycle.CycleLength))
}

// PhaseOn classifies date against cycle. Dates outside the cycle yield
// PhaseBeforeCycle or PhaseAfterCycle, and a cycle without a start or length
// yields PhaseUnknown.
func PhaseOn(cycle models.Cycle, date time.Time, lutealDays int) string {
	if cycle.StartDate.IsZero() || cycle.CycleLength <= 0 {
		return PhaseUnknown
	}
	if lutealDays <= 0 {
		lutealDays = models.DefaultLutealPhaseDays
	}

	day := CalendarDate(date)
	offset := DaysBetween(cycle.StartDate, day)
	if offset < 0 {
		return PhaseBeforeCycle
	}
	if offset >= cycle.CycleLength {
		return PhaseAfterCycle
	}

	if cycle.EndDate != nil && !day.After(CalendarDate(*cycle.EndDate)) {
		return models.PhaseMenstruation
	}
	if cycle.FertileWindowStart != nil && cycle.FertileWindowEnd != nil &&
		!day.Before(CalendarDate(*cycle.FertileWindowStart)) &&
		!day.After(CalendarDate(*cycle.FertileWindowEnd)) {
		if cycle.OvulationDate != nil && day.Equal(CalendarDate(*cycle.OvulationDate)) {
			return models.PhaseOvulation
		}
		return models.PhaseFertile
	}

	if cycle.PeriodLength > 0 {
		if offset < cycle.CycleLength-lutealDays {
			return models.PhaseFollicular
		}
		return models.PhaseLuteal
	}

	return models.PhaseNormal
}

// DisplayPhaseOn is PhaseOn with the out-of-cycle tags folded into normal.
func DisplayPhaseOn(cycle models.Cycle, date time.Time, lutealDays int) string {
	return NormalizePhase(PhaseOn(cycle, date, lutealDays))
}
