package dto

import (
	"time"

	"libraryhub/internal/httpapi/models"
)

type NotificationResponse struct {
	ID               int64      `json:"id"`
	Type             string     `json:"type"`
	Title            string     `json:"title"`
	Message          string     `json:"message"`
	RelatedRequestID *string    `json:"related_request_id,omitempty"`
	Read             bool       `json:"read"`
	EmailedAt        *time.Time `json:"emailed_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Total         int                    `json:"total"`
}

func FromNotificationModel(notification models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:               notification.ID,
		Type:             notification.Type,
		Title:            notification.Title,
		Message:          notification.Message,
		RelatedRequestID: notification.RelatedRequestID,
		Read:             notification.Read,
		EmailedAt:        notification.EmailedAt,
		CreatedAt:        notification.CreatedAt,
	}
}
