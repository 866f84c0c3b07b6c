package models

import "time"

const (
	NotificationCategoryCycleReminder    = "cycle_reminder"
	NotificationCategoryFertileWindow    = "fertile_window"
	NotificationCategoryPeriodPrediction = "period_prediction"
	NotificationCategorySystem           = "system"

	NotificationStatusSent = "sent"
	NotificationStatusRead = "read"

	NotificationPriorityNormal = "normal"
	NotificationPriorityHigh   = "high"

	DefaultPeriodLeadDays   = 2
	DefaultFertileLeadDays  = 1
	MaxNotificationLeadDays = 7
)

// Notification is an in-app message raised by the nightly rollover. DedupeKey
// is unique per profile so a trigger fires once per event.
type Notification struct {
	ID        uint              `gorm:"primaryKey"`
	ProfileID uint              `gorm:"not null;uniqueIndex:uidx_notifications_profile_dedupe"`
	DedupeKey string            `gorm:"not null;uniqueIndex:uidx_notifications_profile_dedupe"`
	Category  string            `gorm:"not null"`
	Priority  string            `gorm:"not null"`
	Subject   string            `gorm:"not null"`
	Body      string            `gorm:"not null"`
	Status    string            `gorm:"not null"`
	Metadata  map[string]string `gorm:"serializer:json"`
	SentAt    *time.Time
	ReadAt    *time.Time
	CreatedAt time.Time
}

func (notification Notification) IsRead() bool {
	return notification.Status == NotificationStatusRead
}

type NotificationPreference struct {
	ID                uint `gorm:"primaryKey"`
	ProfileID         uint `gorm:"not null;uniqueIndex"`
	Enabled           bool
	CycleReminders    bool
	FertileAlerts     bool
	PeriodPredictions bool
	PeriodLeadDays    int `gorm:"not null"`
	FertileLeadDays   int `gorm:"not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// DefaultNotificationPreference enables every category.
func DefaultNotificationPreference(profileID uint) NotificationPreference {
	return NotificationPreference{
		ProfileID:         profileID,
		Enabled:           true,
		CycleReminders:    true,
		FertileAlerts:     true,
		PeriodPredictions: true,
		PeriodLeadDays:    DefaultPeriodLeadDays,
		FertileLeadDays:   DefaultFertileLeadDays,
	}
}

// Allows reports whether category may be raised. System messages ignore the
// per-category switches.
func (preference NotificationPreference) Allows(category string) bool {
	if !preference.Enabled {
		return false
	}
	switch category {
	case NotificationCategoryCycleReminder:
		return preference.CycleReminders
	case NotificationCategoryFertileWindow:
		return preference.FertileAlerts
	case NotificationCategoryPeriodPrediction:
		return preference.PeriodPredictions
	default:
		return true
	}
}
