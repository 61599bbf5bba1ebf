package models

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"      json:"id"`
	Email        string    `gorm:"size:320;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null"             json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Note struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"index;not null"           json:"user_id"`
	Title     string    `gorm:"size:200;not null"        json:"title"`
	Content   string    `gorm:"type:text;not null"       json:"content"`
	CreatedAt time.Time `gorm:"index"                    json:"created_at"`
	UpdatedAt time.Time `gorm:"index"                    json:"updated_at"`

	User User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
