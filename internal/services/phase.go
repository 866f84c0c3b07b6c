package services

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/pregcare/internal/models"
)

var (
	ErrNoActiveCycle   = errors.New("no active cycle")
	ErrCycleNotStarted = errors.New("cycle has not started yet")
)

// PhaseDescriptor is the display summary of a cycle on a given day.
type PhaseDescriptor struct {
	HasCycle         bool    `json:"has_cycle"`
	CycleID          uint    `json:"cycle_id,omitempty"`
	Phase            string  `json:"phase"`
	DayNumber        int     `json:"day_number"`
	TotalDays        int     `json:"total_days"`
	DaysToOvulation  *int    `json:"days_to_ovulation"`
	DaysToNextPeriod *int    `json:"days_to_next_period"`
	Name             string  `json:"name"`
	ColorToken       string  `json:"color_token"`
	Description      string  `json:"description"`
	ProgressPercent  float64 `json:"progress_percent"`

	// Fallback is set when the stored phase tag was not recognised.
	Fallback bool `json:"-"`
}

type phaseDisplay struct {
	Name        string
	ColorToken  string
	Description string
}

var phaseDisplays = map[string]phaseDisplay{
	models.PhaseMenstruation: {Name: "Menstruasi", ColorToken: "red", Description: "Fase peluruhan dinding rahim"},
	models.PhaseFollicular:   {Name: "Folikuler", ColorToken: "blue", Description: "Folikel berkembang di ovarium"},
	models.PhaseOvulation:    {Name: "Ovulasi", ColorToken: "purple", Description: "Sel telur dilepaskan - puncak kesuburan"},
	models.PhaseFertile:      {Name: "Masa Subur", ColorToken: "green", Description: "Waktu optimal untuk program hamil"},
	models.PhaseLuteal:       {Name: "Luteal", ColorToken: "orange", Description: "Tubuh mempersiapkan kemungkinan kehamilan"},
	models.PhaseNormal:       {Name: "Normal", ColorToken: "gray", Description: "Fase normal siklus"},
}

func IsKnownPhase(tag string) bool {
	_, ok := phaseDisplays[strings.ToLower(strings.TrimSpace(tag))]
	return ok
}

// NormalizePhase maps tag onto one of the six display phases.
func NormalizePhase(tag string) string {
	normalized := strings.ToLower(strings.TrimSpace(tag))
	if _, ok := phaseDisplays[normalized]; ok {
		return normalized
	}
	return models.PhaseNormal
}

// ComputePhase derives the day number, countdowns and display descriptor of
// cycle as seen on today. A nil cycle yields a zero descriptor and ErrNoActiveCycle.
func ComputePhase(cycle *models.Cycle, today time.Time) (PhaseDescriptor, error) {
	if cycle == nil || cycle.StartDate.IsZero() {
		return PhaseDescriptor{}, ErrNoActiveCycle
	}

	elapsed := DaysBetween(cycle.StartDate, today)
	if elapsed < 0 {
		return PhaseDescriptor{}, ErrCycleNotStarted
	}

	totalDays := cycle.CycleLength
	if totalDays <= 0 {
		totalDays = models.DefaultCycleLength
	}

	phase := NormalizePhase(cycle.Phase)
	display := phaseDisplays[phase]

	descriptor := PhaseDescriptor{
		HasCycle:        true,
		CycleID:         cycle.ID,
		Phase:           phase,
		DayNumber:       elapsed + 1,
		TotalDays:       totalDays,
		Name:            display.Name,
		ColorToken:      display.ColorToken,
		Description:     display.Description,
		ProgressPercent: ProgressPercent(elapsed+1, totalDays),
		Fallback:        strings.TrimSpace(cycle.Phase) != "" && !IsKnownPhase(cycle.Phase),
	}
	if cycle.OvulationDate != nil {
		descriptor.DaysToOvulation = intPtr(DaysBetween(today, *cycle.OvulationDate))
	}
	if cycle.NextPeriodDate != nil {
		descriptor.DaysToNextPeriod = intPtr(DaysBetween(today, *cycle.NextPeriodDate))
	}

	return descriptor, nil
}

// ProgressPercent is value/max as a percentage clamped to [0, 100].
func ProgressPercent(value int, max int) float64 {
	if max <= 0 {
		return 0
	}
	percent := float64(value) / float64(max) * 100
	switch {
	case percent < 0:
		return 0
	case percent > 100:
		return 100
	default:
		return percent
	}
}
