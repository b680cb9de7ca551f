package models

import "gorm.io/gorm"

// Allergen is one of the fixed 14 declarable allergens, linked many-to-many
// to the products that contain it. AllergenName is a key of AllergenNames.
type Allergen struct {
	gorm.Model
	AllergenName string    `gorm:"uniqueIndex;size:50;not null" json:"allergen_name"`
	Description  string    `gorm:"type:text" json:"description"`
	Products     []Product `gorm:"many2many:allergen_products" json:"products,omitempty"`
}

func (Allergen) TableName() string { return "allergens" }

// DisplayName returns the catalogue label for the allergen.
func (a *Allergen) DisplayName() string { return AllergenNames[a.AllergenName] }
