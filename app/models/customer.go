package models

import (
	"strings"

	"gorm.io/gorm"
)

// Customer is a restaurant customer.
//
// FullName is derived storage: it is recomputed from the name parts in a
// BeforeSave hook on every insert and update, so it can never drift from
// its components.
type Customer struct {
	gorm.Model
	Prefix      string  `gorm:"size:20" json:"prefix"`
	FirstName   string  `gorm:"size:100;not null" json:"first_name" validate:"required,max=100"`
	LastName    string  `gorm:"size:100;not null" json:"last_name" validate:"required,max=100"`
	Suffix      string  `gorm:"size:20" json:"suffix"`
	FullName    string  `gorm:"size:220" json:"full_name"`
	PhoneNumber string  `gorm:"size:30" json:"phone_number"`
	Email       string  `gorm:"size:255" json:"email" validate:"nullable,email"`
	Orders      []Order `gorm:"constraint:OnDelete:CASCADE" json:"orders,omitempty"`
}

func (Customer) TableName() string { return "customers" }

// BeforeSave recomputes the derived full name.
func (c *Customer) BeforeSave(tx *gorm.DB) error {
	c.FullName = strings.TrimSpace(c.FirstName + " " + c.LastName)
	return nil
}
