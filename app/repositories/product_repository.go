package repositories

import (
	"gorm.io/gorm"

	"github.com/fennwick/brasserie/app/models"
	"github.com/fennwick/brasserie/pkg/filter"
)

// ProductFilters are the query parameters honoured by the product list.
type ProductFilters struct {
	Search      string
	Type        string
	Suitability string
	ActiveOnly  bool
}

// ProductRepository handles database access for Product.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// All returns products ordered by name, filtered per ProductFilters.
func (r *ProductRepository) All(f ProductFilters) ([]models.Product, error) {
	var products []models.Product
	err := r.db.
		Scopes(
			filter.Search(f.Search, "product_name", "product_type", "product_suitability"),
			filter.Eq("product_type", f.Type),
			filter.Eq("product_suitability", f.Suitability),
			filter.True("is_active", f.ActiveOnly),
		).
		Order("product_name").
		Find(&products).Error
	return products, err
}

// FindByID looks up a product with its allergens preloaded.
func (r *ProductRepository) FindByID(id uint) (models.Product, error) {
	var product models.Product
	err := r.db.Preload("Allergens").First(&product, id).Error
	return product, err
}

// Create persists a new product.
func (r *ProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update persists changes to an existing product.
func (r *ProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// Delete removes a product, its allergen links, and any order line items
// that reference it. Orders that lose a line item get their totals
// recomputed in the same transaction so the total invariant holds.
func (r *ProductRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var affectedOrders []uint
		if err := tx.Model(&models.OrderLineItem{}).
			Where("product_id = ?", id).
			Distinct().
			Pluck("order_id", &affectedOrders).Error; err != nil {
			return err
		}

		if err := tx.Where("product_id = ?", id).
			Delete(&models.OrderLineItem{}).Error; err != nil {
			return err
		}

		for _, orderID := range affectedOrders {
			if err := recalculateOrderTotal(tx, orderID); err != nil {
				return err
			}
		}
		product := models.Product{Model: gorm.Model{ID: id}}
		if err := tx.Model(&product).Association("Allergens").Clear(); err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
}

// CountActive returns the number of active products.
func (r *ProductRepository) CountActive() int64 {
	var count int64
	r.db.Model(&models.Product{}).Where("is_active = ?", true).Count(&count)
	return count
}
