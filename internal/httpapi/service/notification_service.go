package service

import (
	"context"
	"errors"

	"libraryhub/internal/httpapi/models"
	"libraryhub/internal/httpapi/repository"
)

type NotificationService interface {
	GetUnread(ctx context.Context, memberID int64) ([]models.Notification, error)
	MarkAsRead(ctx context.Context, memberID, notificationID int64) error
	MarkAllAsRead(ctx context.Context, memberID int64) error
}

type notificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) GetUnread(ctx context.Context, memberID int64) ([]models.Notification, error) {
	return s.repo.GetUnreadByMember(ctx, memberID)
}

func (s *notificationService) MarkAsRead(ctx context.Context, memberID, notificationID int64) error {
	// Verify notification belongs to member
	notifications, err := s.repo.GetUnreadByMember(ctx, memberID)
	if err != nil {
		return err
	}

	found := false
	for _, n := range notifications {
		if n.ID == notificationID {
			found = true
			break
		}
	}

	if !found {
		return errors.New("notification not found or already read")
	}

	return s.repo.MarkAsRead(ctx, notificationID)
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, memberID int64) error {
	return s.repo.MarkAllAsRead(ctx, memberID)
}
