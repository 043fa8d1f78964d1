package models

import "time"

// Notification types
const (
	NotificationBookRequest      = "book_request"
	NotificationBookApproved     = "book_approved"
	NotificationBookDeclined     = "book_declined"
	NotificationBookReceived     = "book_received"
	NotificationDeadlineReminder = "deadline_reminder"
	NotificationOverdueNotice    = "overdue_notice"
)

type Notification struct {
	ID               int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	MemberID         int64      `gorm:"not null;index" json:"member_id"`
	Type             string     `gorm:"not null" json:"type"`
	Title            string     `json:"title"`
	Message          string     `json:"message"`
	RelatedRequestID *string    `gorm:"size:26;index" json:"related_request_id,omitempty"`
	Read             bool       `gorm:"default:false" json:"read"`
	EmailedAt        *time.Time `json:"emailed_at,omitempty"`
	CreatedAt        time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	// Associations
	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}
