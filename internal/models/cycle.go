package models

import "time"

const (
	DefaultCycleLength     = 28
	DefaultPeriodLength    = 5
	DefaultLutealPhaseDays = 14

	MinCycleLength  = 21
	MaxCycleLength  = 40
	MinPeriodLength = 1
	MaxPeriodLength = 10
)

const (
	PhaseMenstruation = "menstruation"
	PhaseFollicular   = "follicular"
	PhaseOvulation    = "ovulation"
	PhaseFertile      = "fertile"
	PhaseLuteal       = "luteal"
	PhaseNormal       = "normal"
)

// Cycle is one menstrual cycle anchored at the first bleeding day.
// Predicted dates are derived on save and stored alongside the record.
type Cycle struct {
	ID                 uint       `gorm:"primaryKey"`
	ProfileID          uint       `gorm:"not null;index"`
	StartDate          time.Time  `gorm:"type:date;not null"`
	EndDate            *time.Time `gorm:"type:date"`
	CycleLength        int        `gorm:"not null;default:28"`
	PeriodLength       int        `gorm:"not null;default:0"`
	Phase              string     `gorm:"not null;default:normal"`
	OvulationDate      *time.Time `gorm:"type:date"`
	FertileWindowStart *time.Time `gorm:"type:date"`
	FertileWindowEnd   *time.Time `gorm:"type:date"`
	NextPeriodDate     *time.Time `gorm:"type:date"`
	IsCurrent          bool       `gorm:"not null;default:false"`
	Notes              string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
