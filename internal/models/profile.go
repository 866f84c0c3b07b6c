package models

import "time"

const DefaultProfileName = "default"

type Profile struct {
	ID                  uint   `gorm:"primaryKey"`
	Name                string `gorm:"uniqueIndex;not null"`
	AverageCycleLength  int    `gorm:"not null;default:28"`
	AveragePeriodLength int    `gorm:"not null;default:5"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
