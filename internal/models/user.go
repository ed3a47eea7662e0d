package models

import "time"

// User represents a registered account.
type User struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Email       string     `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Username    string     `json:"username" gorm:"uniqueIndex;type:varchar(50);not null"`
	Password    string     `json:"-" gorm:"column:password_hash;type:varchar(255);not null"` // bcrypt hash, never serialized
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
