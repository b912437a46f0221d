package repositories

import (
	"github.com/hirebridge/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	CreateNotifications(notifications []models.Notification) error
	GetByRecipient(recipientID uint, kind models.PartyKind, page, limit int) ([]models.Notification, int64, error)
	GetUnreadCount(recipientID uint, kind models.PartyKind) (int64, error)
	MarkAsRead(notificationID, recipientID uint, kind models.PartyKind) error
	MarkAllAsRead(recipientID uint, kind models.PartyKind) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// CreateNotifications inserts a batch in one statement.
func (r *postgresNotificationRepository) CreateNotifications(notifications []models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return r.db.Create(&notifications).Error
}

func (r *postgresNotificationRepository) GetByRecipient(recipientID uint, kind models.PartyKind, page, limit int) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	var total int64

	if err := r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND recipient_kind = ?", recipientID, kind).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.db.Where("recipient_id = ? AND recipient_kind = ?", recipientID, kind).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&notifications).Error

	return notifications, total, err
}

func (r *postgresNotificationRepository) GetUnreadCount(recipientID uint, kind models.PartyKind) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND recipient_kind = ? AND is_read = ?", recipientID, kind, false).
		Count(&count).Error
	return count, err
}

// MarkAsRead scopes the update to the recipient so one party cannot mark
// another party's notification.
func (r *postgresNotificationRepository) MarkAsRead(notificationID, recipientID uint, kind models.PartyKind) error {
	result := r.db.Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ? AND recipient_kind = ?", notificationID, recipientID, kind).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *postgresNotificationRepository) MarkAllAsRead(recipientID uint, kind models.PartyKind) error {
	return r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND recipient_kind = ? AND is_read = ?", recipientID, kind, false).
		Update("is_read", true).Error
}
