package models

import (
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type BookRequest struct {
	ID            string     `gorm:"primaryKey;size:26" json:"id"`
	MemberID      int64      `gorm:"not null;index" json:"member_id"`
	BookID        int64      `gorm:"not null;index" json:"book_id"`
	RequestedDays int        `gorm:"not null" json:"requested_days"`
	RequestDate   time.Time  `gorm:"not null" json:"request_date"`
	DueDate       time.Time  `gorm:"not null" json:"due_date"`
	ProcessedDate *time.Time `json:"processed_date,omitempty"`
	Status        string     `gorm:"not null;default:'pending';index" json:"status"`

	// Snapshot fields copied at creation time so the request survives later
	// edits or deletes of the referenced book/member rows.
	BookTitle   string `json:"book_title"`
	BookAuthor  string `json:"book_author"`
	BookSubject string `json:"book_subject"`
	MemberName  string `json:"member_name"`
	MemberEmail string `json:"member_email"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	Book   *Book   `gorm:"foreignKey:BookID" json:"book,omitempty"`
}

// BeforeCreate hook to set a ULID before creating a BookRequest
func (r *BookRequest) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		t := time.Now().UTC()
		id, err := ulid.New(ulid.Timestamp(t), ulid.Monotonic(rand.Reader, 0))
		if err != nil {
			return err
		}
		r.ID = id.String()
	}
	return
}

func (BookRequest) TableName() string {
	return "book_requests"
}
