package models

import "time"

type Book struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string    `gorm:"not null;index" json:"title"`
	Author    string    `gorm:"not null" json:"author"`
	Subject   string    `json:"subject"`
	Quantity  int       `gorm:"not null;default:0" json:"quantity"`
	Available bool      `gorm:"not null;default:false" json:"available"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}
