package models

import (
	"time"

	"gorm.io/gorm"
)

// Admin represents an operator allowed to view registrations
type Admin struct {
	gorm.Model
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Password  string    `json:"-"`
	LastLogin time.Time `json:"last_login"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
}

// BlacklistedToken stores admin JWTs invalidated by logout
type BlacklistedToken struct {
	gorm.Model
	Token     string    `gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`
}
