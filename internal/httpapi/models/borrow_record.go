package models

import "time"

const (
	BorrowStatusBorrowed = "borrowed"
	BorrowStatusReturned = "returned"
)

type BorrowRecord struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	MemberID     int64     `gorm:"not null;index" json:"member_id"`
	BookID       int64     `gorm:"not null;index" json:"book_id"`
	BorrowedDate time.Time `gorm:"not null" json:"borrowed_date"`
	DueDate      time.Time `gorm:"not null" json:"due_date"`
	Status       string    `gorm:"not null;default:'borrowed'" json:"status"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	// Associations
	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
	Book   *Book   `gorm:"foreignKey:BookID" json:"book,omitempty"`
}

func (BorrowRecord) TableName() string {
	return "borrow_records"
}
