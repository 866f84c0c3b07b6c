package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/terraincognita07/pregcare/internal/models"
)

var (
	ErrNotificationNotFound          = errors.New("notification not found")
	ErrInvalidNotificationStatus     = errors.New("invalid notification status")
	ErrInvalidNotificationLeadDays   = errors.New("invalid notification lead days")
	ErrLoadNotificationsFailed       = errors.New("load notifications failed")
	ErrUpdateNotificationsFailed     = errors.New("update notifications failed")
	ErrDispatchNotificationsFailed   = errors.New("dispatch notifications failed")
	ErrLoadNotificationPrefsFailed   = errors.New("load notification preferences failed")
	ErrUpdateNotificationPrefsFailed = errors.New("update notification preferences failed")
)

const (
	DefaultNotificationListLimit = 50
	MaxNotificationListLimit     = 200
)

type NotificationRepository interface {
	CreateIfAbsent(notification *models.Notification) (bool, error)
	ListByProfile(profileID uint, status string, limit int) ([]models.Notification, error)
	CountByStatus(profileID uint, status string) (int64, error)
	FindByIDForProfile(notificationID uint, profileID uint) (*models.Notification, error)
	MarkRead(profileID uint, notificationID uint, at time.Time) error
	MarkAllRead(profileID uint, at time.Time) (int64, error)
	EnsurePreference(defaults models.NotificationPreference) (models.NotificationPreference, error)
	UpdatePreference(profileID uint, updates map[string]any) error
}

type NotificationCycleRepository interface {
	FindCurrent(profileID uint) (*models.Cycle, error)
}

// NotificationPreferenceUpdate carries a partial preference change. Nil fields
// are left untouched.
type NotificationPreferenceUpdate struct {
	Enabled           *bool
	CycleReminders    *bool
	FertileAlerts     *bool
	PeriodPredictions *bool
	PeriodLeadDays    *int
	FertileLeadDays   *int
}

type NotificationService struct {
	notifications      NotificationRepository
	cycles             NotificationCycleRepository
	defaultCycleLength int
	lutealDays         int
	now                func() time.Time
}

func NewNotificationService(
	notifications NotificationRepository,
	cycles NotificationCycleRepository,
	defaultCycleLength int,
	lutealDays int,
	now func() time.Time,
) *NotificationService {
	if now == nil {
		now = time.Now
	}
	return &NotificationService{
		notifications:      notifications,
		cycles:             cycles,
		defaultCycleLength: defaultCycleLength,
		lutealDays:         lutealDays,
		now:                now,
	}
}

// Dispatch stores the notifications due for the profile on today and returns
// how many were new. Running it twice on one day creates nothing the second
// time.
func (service *NotificationService) Dispatch(profileID uint, today time.Time) (int, error) {
	preference, err := service.notifications.EnsurePreference(models.DefaultNotificationPreference(profileID))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrLoadNotificationPrefsFailed, err)
	}
	if !preference.Enabled {
		return 0, nil
	}

	cycle, err := service.cycles.FindCurrent(profileID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrLoadCyclesFailed, err)
	}
	if cycle != nil && (cycle.FertileWindowStart == nil || cycle.NextPeriodDate == nil) {
		predicted := *cycle
		CalculateCycleData(&predicted, service.defaultCycleLength, service.lutealDays)
		cycle = &predicted
	}

	sentAt := service.now().UTC()
	created := 0
	for _, notification := range DueNotifications(profileID, cycle, preference, today) {
		notification.Status = models.NotificationStatusSent
		notification.SentAt = &sentAt
		inserted, err := service.notifications.CreateIfAbsent(&notification)
		if err != nil {
			return created, fmt.Errorf("%w: %v", ErrDispatchNotificationsFailed, err)
		}
		if inserted {
			created++
		}
	}
	return created, nil
}

// DueNotifications evaluates the reminder triggers for today:
//
//   - a daily reminder to log cycle data,
//   - a fertile window alert from FertileLeadDays before the window opens,
//   - a period alert from PeriodLeadDays before the predicted start.
//
// cycle must already carry its predictions and may be nil.
func DueNotifications(
	profileID uint,
	cycle *models.Cycle,
	preference models.NotificationPreference,
	today time.Time,
) []models.Notification {
	today = CalendarDate(today)
	todayISO := FormatISODate(today)
	due := make([]models.Notification, 0, 3)

	if preference.Allows(models.NotificationCategoryCycleReminder) {
		due = append(due, models.Notification{
			ProfileID: profileID,
			DedupeKey: models.NotificationCategoryCycleReminder + ":" + todayISO,
			Category:  models.NotificationCategoryCycleReminder,
			Priority:  models.NotificationPriorityNormal,
			Subject:   "Pengingat Input Data Siklus",
			Body: "Jangan lupa catat siklus hari ini. " +
				"Pencatatan rutin membantu prediksi dan analisis siklus yang lebih akurat.",
			Metadata: map[string]string{"date": todayISO},
		})
	}
	if cycle == nil {
		return due
	}

	if preference.Allows(models.NotificationCategoryFertileWindow) && cycle.FertileWindowStart != nil {
		start := CalendarDate(*cycle.FertileWindowStart)
		days := DaysBetween(today, start)
		if days >= 0 && days <= preference.FertileLeadDays {
			subject := fmt.Sprintf("Masa Subur Dimulai dalam %d Hari", days)
			if days == 0 {
				subject = "Masa Subur Dimulai Hari Ini"
			}
			metadata := map[string]string{
				"fertile_start": FormatISODate(start),
				"days_until":    strconv.Itoa(days),
			}
			body := fmt.Sprintf("Masa subur Anda dimulai %s.", formatIndonesianDate(start))
			if cycle.OvulationDate != nil {
				ovulation := CalendarDate(*cycle.OvulationDate)
				metadata["ovulation_date"] = FormatISODate(ovulation)
				body = fmt.Sprintf("Masa subur Anda dimulai %s dan ovulasi diperkirakan %s.",
					formatIndonesianDate(start), formatIndonesianDate(ovulation))
			}
			due = append(due, models.Notification{
				ProfileID: profileID,
				DedupeKey: fmt.Sprintf("%s:%d:%s", models.NotificationCategoryFertileWindow, cycle.ID, todayISO),
				Category:  models.NotificationCategoryFertileWindow,
				Priority:  models.NotificationPriorityHigh,
				Subject:   subject,
				Body:      body + " Ini adalah waktu optimal untuk program kehamilan Anda.",
				Metadata:  metadata,
			})
		}
	}

	if preference.Allows(models.NotificationCategoryPeriodPrediction) && cycle.NextPeriodDate != nil {
		predicted := CalendarDate(*cycle.NextPeriodDate)
		days := DaysBetween(today, predicted)
		if days >= 0 && days <= preference.PeriodLeadDays {
			subject := fmt.Sprintf("Prediksi Menstruasi dalam %d Hari", days)
			if days == 0 {
				subject = "Menstruasi Diprediksi Dimulai Hari Ini"
			}
			due = append(due, models.Notification{
				ProfileID: profileID,
				DedupeKey: fmt.Sprintf("%s:%d:%s", models.NotificationCategoryPeriodPrediction, cycle.ID, todayISO),
				Category:  models.NotificationCategoryPeriodPrediction,
				Priority:  models.NotificationPriorityNormal,
				Subject:   subject,
				Body: fmt.Sprintf("Berdasarkan pola siklus Anda, menstruasi diprediksi dimulai pada %s. "+
					"Pastikan Anda sudah mempersiapkan keperluan dan menjaga kesehatan.", formatIndonesianDate(predicted)),
				Metadata: map[string]string{
					"predicted_date": FormatISODate(predicted),
					"days_until":     strconv.Itoa(days),
				},
			})
		}
	}

	return due
}

// List returns the newest notifications first. status may be empty, "sent" or
// "read"; limit is clamped to MaxNotificationListLimit.
func (service *NotificationService) List(profileID uint, status string, limit int) ([]models.Notification, error) {
	switch status {
	case "", models.NotificationStatusSent, models.NotificationStatusRead:
	default:
		return nil, ErrInvalidNotificationStatus
	}
	if limit <= 0 {
		limit = DefaultNotificationListLimit
	}
	if limit > MaxNotificationListLimit {
		limit = MaxNotificationListLimit
	}

	notifications, err := service.notifications.ListByProfile(profileID, status, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadNotificationsFailed, err)
	}
	return notifications, nil
}

func (service *NotificationService) UnreadCount(profileID uint) (int64, error) {
	count, err := service.notifications.CountByStatus(profileID, models.NotificationStatusSent)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrLoadNotificationsFailed, err)
	}
	return count, nil
}

func (service *NotificationService) Get(profileID uint, notificationID uint) (models.Notification, error) {
	notification, err := service.notifications.FindByIDForProfile(notificationID, profileID)
	if err != nil {
		return models.Notification{}, fmt.Errorf("%w: %v", ErrLoadNotificationsFailed, err)
	}
	if notification == nil {
		return models.Notification{}, ErrNotificationNotFound
	}
	return *notification, nil
}

// MarkRead marks one notification read. Already read notifications keep their
// original read time.
func (service *NotificationService) MarkRead(profileID uint, notificationID uint) (models.Notification, error) {
	if _, err := service.Get(profileID, notificationID); err != nil {
		return models.Notification{}, err
	}
	if err := service.notifications.MarkRead(profileID, notificationID, service.now().UTC()); err != nil {
		return models.Notification{}, fmt.Errorf("%w: %v", ErrUpdateNotificationsFailed, err)
	}
	return service.Get(profileID, notificationID)
}

func (service *NotificationService) MarkAllRead(profileID uint) (int64, error) {
	updated, err := service.notifications.MarkAllRead(profileID, service.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUpdateNotificationsFailed, err)
	}
	return updated, nil
}

func (service *NotificationService) Preferences(profileID uint) (models.NotificationPreference, error) {
	preference, err := service.notifications.EnsurePreference(models.DefaultNotificationPreference(profileID))
	if err != nil {
		return models.NotificationPreference{}, fmt.Errorf("%w: %v", ErrLoadNotificationPrefsFailed, err)
	}
	return preference, nil
}

func (service *NotificationService) UpdatePreferences(
	profileID uint,
	update NotificationPreferenceUpdate,
) (models.NotificationPreference, error) {
	for _, lead := range []*int{update.PeriodLeadDays, update.FertileLeadDays} {
		if lead != nil && (*lead < 0 || *lead > models.MaxNotificationLeadDays) {
			return models.NotificationPreference{}, ErrInvalidNotificationLeadDays
		}
	}
	if _, err := service.Preferences(profileID); err != nil {
		return models.NotificationPreference{}, err
	}

	updates := map[string]any{}
	if update.Enabled != nil {
		updates["enabled"] = *update.Enabled
	}
	if update.CycleReminders != nil {
		updates["cycle_reminders"] = *update.CycleReminders
	}
	if update.FertileAlerts != nil {
		updates["fertile_alerts"] = *update.FertileAlerts
	}
	if update.PeriodPredictions != nil {
		updates["period_predictions"] = *update.PeriodPredictions
	}
	if update.PeriodLeadDays != nil {
		updates["period_lead_days"] = *update.PeriodLeadDays
	}
	if update.FertileLeadDays != nil {
		updates["fertile_lead_days"] = *update.FertileLeadDays
	}
	if len(updates) > 0 {
		if err := service.notifications.UpdatePreference(profileID, updates); err != nil {
			return models.NotificationPreference{}, fmt.Errorf("%w: %v", ErrUpdateNotificationPrefsFailed, err)
		}
	}
	return service.Preferences(profileID)
}

var indonesianMonths = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// formatIndonesianDate renders a day as "10 Maret 2026".
func formatIndonesianDate(value time.Time) string {
	return fmt.Sprintf("%d %s %d", value.Day(), indonesianMonths[value.Month()-1], value.Year())
}
