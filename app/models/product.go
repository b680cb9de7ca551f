package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a menu item.
//
// ProductPrice is the listed menu price; order line items snapshot it at the
// moment they are created, so later price changes never touch existing orders.
type Product struct {
	gorm.Model
	ProductName        string          `gorm:"size:255;not null" json:"product_name" validate:"required,max=255"`
	ProductPrice       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"product_price" validate:"gte=0"`
	ProductType        string          `gorm:"size:20;not null;default:other" json:"product_type"`
	ProductSuitability string          `gorm:"size:20;not null;default:none" json:"product_suitability"`
	// No gorm default tag: gorm skips zero-valued fields with a default,
	// which would silently store an explicit false as true.
	IsActive bool `json:"is_active"`
	Allergens          []Allergen      `gorm:"many2many:allergen_products" json:"allergens,omitempty"`
}

func (Product) TableName() string { return "products" }

// TypeLabel returns the display label for the product type.
func (p *Product) TypeLabel() string { return ProductTypes[p.ProductType] }

// SuitabilityLabel returns the display label for the suitability value.
func (p *Product) SuitabilityLabel() string { return ProductSuitabilities[p.ProductSuitability] }
