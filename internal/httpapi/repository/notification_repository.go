package repository

import (
	"context"
	"fmt"
	"time"

	"libraryhub/internal/httpapi/models"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetUnreadByMember(ctx context.Context, memberID int64) ([]models.Notification, error)
	MarkAsRead(ctx context.Context, notificationID int64) error
	MarkAllAsRead(ctx context.Context, memberID int64) error

	// DeleteByRequestID removes all notifications tied to a request. Returns
	// the number of rows removed.
	DeleteByRequestID(ctx context.Context, requestID string) (int64, error)

	// ListUnemailed returns notifications whose email never went out.
	ListUnemailed(ctx context.Context, limit int) ([]models.Notification, error)

	StampEmailed(ctx context.Context, notificationID int64, at time.Time) error
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	return nil
}

func (r *notificationRepository) GetUnreadByMember(ctx context.Context, memberID int64) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.WithContext(ctx).
		Where("member_id = ? AND read = false", memberID).
		Order("created_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("list unread notifications: %w", err)
	}
	return notifications, nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, notificationID int64) error {
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ?", notificationID).
		Update("read", true).Error
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, memberID int64) error {
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("member_id = ?", memberID).
		Update("read", true).Error
}

func (r *notificationRepository) DeleteByRequestID(ctx context.Context, requestID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("related_request_id = ?", requestID).
		Delete(&models.Notification{})

	if result.Error != nil {
		return 0, fmt.Errorf("delete notifications for request %s: %w", requestID, result.Error)
	}
	return result.RowsAffected, nil
}

func (r *notificationRepository) ListUnemailed(ctx context.Context, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.WithContext(ctx).
		Preload("Member").
		Where("emailed_at IS NULL AND read = false").
		Order("created_at ASC").
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, fmt.Errorf("list unemailed notifications: %w", err)
	}
	return notifications, nil
}

func (r *notificationRepository) StampEmailed(ctx context.Context, notificationID int64, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ?", notificationID).
		Update("emailed_at", at).Error
}
