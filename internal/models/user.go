package models

import "time"

// User represents a registered account. Accounts are immutable after
// registration; Password holds the bcrypt hash and is never serialized.
type User struct {
	ID        string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username  string `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=32"`
	Email     string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password  string `gorm:"type:varchar(255)"` // No json tag for security
	CreatedAt time.Time
	UpdatedAt time.Time
}
