package persistent

import (
	"time"

	"barangay-egov/internal/entity"
	"barangay-egov/internal/model"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	GetFrameworkNotifications(userID string, limit int) ([]*entity.FrameworkNotification, error)
	GetResidentNotifications(residentID string, limit int) ([]*entity.ResidentNotification, error)
	FindFrameworkNotification(id, userID string) (*entity.FrameworkNotification, error)
	MarkFrameworkRead(id string, readAt time.Time) error
	FindResidentNotification(id int64, residentID string) (*entity.ResidentNotification, error)
	MarkResidentRead(id int64, readAt time.Time) error
	MarkAllRead(userID, residentID string, readAt time.Time) error
	CreateFrameworkNotification(notification *entity.FrameworkNotification) error
	GetResidentUserIDs() ([]string, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) GetFrameworkNotifications(userID string, limit int) ([]*entity.FrameworkNotification, error) {
	var models []model.UserNotificationModel
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	notifications := make([]*entity.FrameworkNotification, len(models))
	for i := range models {
		notifications[i] = ToFrameworkNotificationEntity(&models[i])
	}
	return notifications, nil
}

func (r *notificationRepository) GetResidentNotifications(residentID string, limit int) ([]*entity.ResidentNotification, error) {
	var models []model.ResidentNotificationModel
	err := r.db.Preload("Program").
		Where("resident_id = ?", residentID).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	notifications := make([]*entity.ResidentNotification, len(models))
	for i := range models {
		notifications[i] = ToResidentNotificationEntity(&models[i])
	}
	return notifications, nil
}

func (r *notificationRepository) FindFrameworkNotification(id, userID string) (*entity.FrameworkNotification, error) {
	var notificationModel model.UserNotificationModel
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&notificationModel).Error
	if err != nil {
		return nil, err
	}
	return ToFrameworkNotificationEntity(&notificationModel), nil
}

func (r *notificationRepository) MarkFrameworkRead(id string, readAt time.Time) error {
	return r.db.Model(&model.UserNotificationModel{}).
		Where("id = ?", id).
		Update("read_at", readAt).Error
}

func (r *notificationRepository) FindResidentNotification(id int64, residentID string) (*entity.ResidentNotification, error) {
	var notificationModel model.ResidentNotificationModel
	err := r.db.Where("id = ? AND resident_id = ?", id, residentID).First(&notificationModel).Error
	if err != nil {
		return nil, err
	}
	return ToResidentNotificationEntity(&notificationModel), nil
}

func (r *notificationRepository) MarkResidentRead(id int64, readAt time.Time) error {
	return r.db.Model(&model.ResidentNotificationModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_read": true, "read_at": readAt}).Error
}

// MarkAllRead flips unread rows in both stores inside one transaction, so a
// failure on either table leaves nothing half-marked.
func (r *notificationRepository) MarkAllRead(userID, residentID string, readAt time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.UserNotificationModel{}).
			Where("user_id = ? AND read_at IS NULL", userID).
			Update("read_at", readAt).Error; err != nil {
			return err
		}
		return tx.Model(&model.ResidentNotificationModel{}).
			Where("resident_id = ? AND is_read = ?", residentID, false).
			Updates(map[string]interface{}{"is_read": true, "read_at": readAt}).Error
	})
}

func (r *notificationRepository) CreateFrameworkNotification(notification *entity.FrameworkNotification) error {
	notificationModel := &model.UserNotificationModel{
		ID:     notification.ID,
		UserID: notification.UserID,
		Data:   model.JSONMap(notification.Data),
	}
	if err := r.db.Create(notificationModel).Error; err != nil {
		return err
	}
	notification.ID = notificationModel.ID
	notification.CreatedAt = notificationModel.CreatedAt
	notification.UpdatedAt = notificationModel.UpdatedAt
	return nil
}

func (r *notificationRepository) GetResidentUserIDs() ([]string, error) {
	var userIDs []string
	err := r.db.Model(&model.UserModel{}).
		Where("role IN ? AND email IS NOT NULL", []string{"resident", "residents"}).
		Pluck("id", &userIDs).Error
	if err != nil {
		return nil, err
	}
	return userIDs, nil
}
