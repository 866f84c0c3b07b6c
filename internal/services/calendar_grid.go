package services

import (
	"errors"
	"sort"
	"time"
)

var ErrInvalidMonth = errors.New("invalid month")

// DayAnnotation carries the per-date data a month grid is decorated with.
type DayAnnotation struct {
	Phase       string   `json:"phase"`
	HasSymptoms bool     `json:"has_symptoms"`
	SymptomIDs  []string `json:"symptom_ids"`
}

// CalendarDayCell is one cell of a Sunday-first month grid. Leading
// placeholder cells have nil DayOfMonth and ISODate.
type CalendarDayCell struct {
	DayOfMonth  *int     `json:"day_of_month"`
	ISODate     *string  `json:"iso_date"`
	PhaseTag    *string  `json:"phase_tag"`
	HasSymptoms bool     `json:"has_symptoms"`
	SymptomIDs  []string `json:"symptom_ids"`
}

func (cell CalendarDayCell) IsPlaceholder() bool {
	return cell.DayOfMonth == nil
}

func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func DaysInMonth(year int, month int) int {
	switch month {
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

// FirstWeekday is the weekday of the first of the month, Sunday = 0.
func FirstWeekday(year int, month int) int {
	return int(time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// BuildMonthGrid lays the month out as leading placeholders followed by one
// cell per day. Trailing cells are never padded.
func BuildMonthGrid(year int, month int, annotations map[string]DayAnnotation) ([]CalendarDayCell, error) {
	if month < 1 || month > 12 {
		return nil, ErrInvalidMonth
	}

	leading := FirstWeekday(year, month)
	days := DaysInMonth(year, month)
	cells := make([]CalendarDayCell, 0, leading+days)

	for index := 0; index < leading; index++ {
		cells = append(cells, CalendarDayCell{SymptomIDs: []string{}})
	}

	for day := 1; day <= days; day++ {
		isoDate := FormatISODate(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC))
		cell := CalendarDayCell{
			DayOfMonth: intPtr(day),
			ISODate:    &isoDate,
			SymptomIDs: []string{},
		}

		if annotation, ok := annotations[isoDate]; ok {
			if annotation.Phase != "" {
				phase := NormalizePhase(annotation.Phase)
				cell.PhaseTag = &phase
			}
			cell.SymptomIDs = sortedUniqueStrings(annotation.SymptomIDs)
			cell.HasSymptoms = annotation.HasSymptoms || len(cell.SymptomIDs) > 0
		}

		cells = append(cells, cell)
	}

	return cells, nil
}

func sortedUniqueStrings(values []string) []string {
	result := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		if _, exists := seen[value]; exists {
			continue
		}
		seen[value] = struct{}{}
		result = append(result, value)
	}
	sort.Strings(result)
	return result
}
