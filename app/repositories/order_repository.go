package repositories

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fennwick/brasserie/app/models"
	"github.com/fennwick/brasserie/pkg/filter"
)

// OrderFilters are the query parameters honoured by the order list.
type OrderFilters struct {
	CustomerID uint
	Status     string
	DateFrom   string
	DateTo     string
}

// OrderRepository handles read access for Order. All mutations of orders and
// line items go through OrderService, which owns the transactions.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// All returns orders newest-first with customer and line items preloaded.
func (r *OrderRepository) All(f OrderFilters) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.
		Scopes(
			filter.EqUint("customer_id", f.CustomerID),
			filter.Eq("status", f.Status),
			filter.DateFrom("order_placed", f.DateFrom),
			filter.DateTo("order_placed", f.DateTo),
		).
		Preload("Customer").
		Preload("LineItems.Product").
		Order("order_placed DESC").
		Find(&orders).Error
	return orders, err
}

// FindByID looks up an order with customer and line items preloaded.
func (r *OrderRepository) FindByID(id uint) (models.Order, error) {
	var order models.Order
	err := r.db.
		Preload("Customer").
		Preload("LineItems.Product").
		First(&order, id).Error
	return order, err
}

// Recent returns the n newest orders by creation time.
func (r *OrderRepository) Recent(n int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.
		Preload("Customer").
		Order("created_at DESC").
		Limit(n).
		Find(&orders).Error
	return orders, err
}

// Count returns the number of orders, optionally restricted to a status.
func (r *OrderRepository) Count(status string) int64 {
	var count int64
	q := r.db.Model(&models.Order{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	q.Count(&count)
	return count
}

// recalculateOrderTotal recomputes an order's total from its current line
// items with decimal arithmetic and persists it. Shared by the order
// aggregate and by product deletion; must run inside the caller's
// transaction.
func recalculateOrderTotal(tx *gorm.DB, orderID uint) error {
	var items []models.OrderLineItem
	if err := tx.Where("order_id = ?", orderID).Find(&items).Error; err != nil {
		return err
	}

	total := decimal.Zero
	for _, li := range items {
		total = total.Add(li.LineTotal())
	}

	return tx.Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("total_price", total).Error
}
