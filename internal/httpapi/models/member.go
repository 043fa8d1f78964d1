package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Member struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PublicID  string    `gorm:"type:uuid;uniqueIndex;not null" json:"public_id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate hook to set the public UUID before creating a Member
func (member *Member) BeforeCreate(tx *gorm.DB) (err error) {
	// If the ID is not already set, generate a new one.
	if member.PublicID == "" {
		member.PublicID = uuid.New().String()
	}
	return
}

func (Member) TableName() string {
	return "members"
}
