package db

import (
	"errors"
	"time"

	"github.com/terraincognita07/pregcare/internal/models"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	database *gorm.DB
}

func NewNotificationRepository(database *gorm.DB) *NotificationRepository {
	return &NotificationRepository{database: database}
}

// CreateIfAbsent inserts notification unless the profile already holds one
// with the same dedupe key. It reports whether a row was written.
func (repo *NotificationRepository) CreateIfAbsent(notification *models.Notification) (bool, error) {
	created := false
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Notification{}).
			Where("profile_id = ? AND dedupe_key = ?", notification.ProfileID, notification.DedupeKey).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		if err := tx.Create(notification).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	return created, err
}

// ListByProfile returns the newest notifications first. An empty status lists
// every status.
func (repo *NotificationRepository) ListByProfile(profileID uint, status string, limit int) ([]models.Notification, error) {
	query := repo.database.Where("profile_id = ?", profileID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	notifications := make([]models.Notification, 0)
	if err := query.Order("created_at DESC, id DESC").Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (repo *NotificationRepository) CountByStatus(profileID uint, status string) (int64, error) {
	var count int64
	err := repo.database.Model(&models.Notification{}).
		Where("profile_id = ? AND status = ?", profileID, status).
		Count(&count).Error
	return count, err
}

func (repo *NotificationRepository) FindByIDForProfile(notificationID uint, profileID uint) (*models.Notification, error) {
	notification := models.Notification{}
	err := repo.database.
		Where("id = ? AND profile_id = ?", notificationID, profileID).
		First(&notification).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

func (repo *NotificationRepository) MarkRead(profileID uint, notificationID uint, at time.Time) error {
	return repo.database.Model(&models.Notification{}).
		Where("id = ? AND profile_id = ? AND status <> ?", notificationID, profileID, models.NotificationStatusRead).
		Updates(map[string]any{"status": models.NotificationStatusRead, "read_at": at}).Error
}

func (repo *NotificationRepository) MarkAllRead(profileID uint, at time.Time) (int64, error) {
	result := repo.database.Model(&models.Notification{}).
		Where("profile_id = ? AND status <> ?", profileID, models.NotificationStatusRead).
		Updates(map[string]any{"status": models.NotificationStatusRead, "read_at": at})
	return result.RowsAffected, result.Error
}

// EnsurePreference returns the stored preference of the profile in defaults,
// creating it from defaults on first use.
func (repo *NotificationRepository) EnsurePreference(defaults models.NotificationPreference) (models.NotificationPreference, error) {
	preference := models.NotificationPreference{}
	err := repo.database.Where("profile_id = ?", defaults.ProfileID).First(&preference).Error
	if err == nil {
		return preference, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NotificationPreference{}, err
	}

	preference = defaults
	if err := repo.database.Create(&preference).Error; err != nil {
		return models.NotificationPreference{}, err
	}
	return preference, nil
}

func (repo *NotificationRepository) UpdatePreference(profileID uint, updates map[string]any) error {
	return repo.database.Model(&models.NotificationPreference{}).
		Where("profile_id = ?", profileID).
		Updates(updates).Error
}
