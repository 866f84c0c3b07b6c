package models

import "time"

const (
	AnalysisNormal           = "normal"
	AnalysisIrregular        = "irregular"
	AnalysisShort            = "short"
	AnalysisLong             = "long"
	AnalysisInsufficientData = "insufficient_data"

	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)

type CycleAnalysis struct {
	ID                 uint      `gorm:"primaryKey"`
	ProfileID          uint      `gorm:"not null;index"`
	AnalysisDate       time.Time `gorm:"type:date;not null"`
	AverageCycleLength float64   `gorm:"not null"`
	CycleVariability   float64   `gorm:"not null"`
	AnalysisType       string    `gorm:"not null;default:normal"`
	Message            string    `gorm:"not null"`
	Recommendations    []string  `gorm:"serializer:json"`
	PotentialCauses    []string  `gorm:"serializer:json"`
	CyclesAnalyzed     int       `gorm:"not null"`
	ConfidenceLevel    string    `gorm:"not null;default:low"`
	CreatedAt          time.Time
}
