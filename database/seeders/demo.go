package seeders

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fennwick/brasserie/app/models"
	"github.com/fennwick/brasserie/pkg/auth"
)

func init() {
	Register("staff", SeedStaff)
	Register("products", SeedProducts)
}

// SeedStaff creates the default admin account if no staff exists.
func SeedStaff(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Staff{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword("changeme")
	if err != nil {
		return err
	}
	return db.Create(&models.Staff{
		Username:  "admin",
		Email:     "admin@example.com",
		Password:  hash,
		FirstName: "Admin",
		IsActive:  true,
	}).Error
}

// SeedProducts inserts a small starter menu on an empty products table.
func SeedProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	menu := []models.Product{
		{ProductName: "French Onion Soup", ProductPrice: decimal.NewFromFloat(6.50), ProductType: models.ProductTypeStarter, ProductSuitability: models.SuitabilityVegetarian, IsActive: true},
		{ProductName: "Steak Frites", ProductPrice: decimal.NewFromFloat(18.90), ProductType: models.ProductTypeMain, ProductSuitability: models.SuitabilityNone, IsActive: true},
		{ProductName: "Ratatouille", ProductPrice: decimal.NewFromFloat(13.50), ProductType: models.ProductTypeMain, ProductSuitability: models.SuitabilityVegan, IsActive: true},
		{ProductName: "Crème Brûlée", ProductPrice: decimal.NewFromFloat(7.20), ProductType: models.ProductTypeDessert, ProductSuitability: models.SuitabilityVegetarian, IsActive: true},
		{ProductName: "House Red (Glass)", ProductPrice: decimal.NewFromFloat(5.00), ProductType: models.ProductTypeBeverage, ProductSuitability: models.SuitabilityVegan, IsActive: true},
	}
	return db.Create(&menu).Error
}
