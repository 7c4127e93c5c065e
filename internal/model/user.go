package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// User is the stored form of an account. Role selects the account variant on load.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role         Role      `json:"role" gorm:"size:50;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeSave trims the username and role tag before they reach the store.
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.Username = strings.TrimSpace(u.Username)
	u.Role = Role(strings.TrimSpace(string(u.Role)))
	return nil
}

// TableName keeps the table named after what it stores.
func (User) TableName() string {
	return "accounts"
}
