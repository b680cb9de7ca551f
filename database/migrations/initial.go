package migrations

import (
	"gorm.io/gorm"

	"github.com/fennwick/brasserie/app/models"
	"github.com/fennwick/brasserie/pkg/migration"
)

func init() {
	migration.Register("20260301000000_create_staff_table", &CreateStaffTable{})
	migration.Register("20260301000001_create_customers_table", &CreateCustomersTable{})
	migration.Register("20260301000002_create_allergens_table", &CreateAllergensTable{})
	migration.Register("20260301000003_create_products_table", &CreateProductsTable{})
	migration.Register("20260301000004_create_orders_table", &CreateOrdersTable{})
}

// -------- 0001: staff --------

type CreateStaffTable struct{}

func (m *CreateStaffTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Staff{})
}

func (m *CreateStaffTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("staff")
}

// -------- 0002: customers --------

type CreateCustomersTable struct{}

func (m *CreateCustomersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Customer{})
}

func (m *CreateCustomersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("customers")
}

// -------- 0003: allergens --------

type CreateAllergensTable struct{}

func (m *CreateAllergensTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Allergen{})
}

func (m *CreateAllergensTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("allergens")
}

// -------- 0004: products (and the allergen join table) --------

type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{})
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	if err := db.Migrator().DropTable("allergen_products"); err != nil {
		return err
	}
	return db.Migrator().DropTable("products")
}

// -------- 0005: orders and line items --------

type CreateOrdersTable struct{}

func (m *CreateOrdersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{}, &models.OrderLineItem{})
}

func (m *CreateOrdersTable) Down(db *gorm.DB) error {
	if err := db.Migrator().DropTable("order_line_items"); err != nil {
		return err
	}
	return db.Migrator().DropTable("orders")
}
