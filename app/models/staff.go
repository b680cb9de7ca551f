package models

import "gorm.io/gorm"

// Staff is an authenticated back-office user.
type Staff struct {
	gorm.Model
	Username  string `gorm:"uniqueIndex;size:100;not null" json:"username"`
	Email     string `gorm:"size:255" json:"email"`
	Password  string `gorm:"size:255;not null" json:"-"` // bcrypt hash, never serialised
	FirstName string `gorm:"size:100" json:"first_name"`
	LastName  string `gorm:"size:100" json:"last_name"`
	// No gorm default tag, same as Product.IsActive: the tag makes gorm
	// skip an explicit false on insert.
	IsActive bool `json:"is_active"`
}

func (Staff) TableName() string { return "staff" }
