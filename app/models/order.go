package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order is the aggregate root of the consistency core: TotalPrice must equal
// the sum of UnitPrice × Quantity over the current line items at every commit.
// Only OrderService mutates orders and their line items.
type Order struct {
	gorm.Model
	CustomerID      uint            `gorm:"not null;index" json:"customer_id"`
	Customer        *Customer       `gorm:"constraint:OnDelete:CASCADE" json:"customer,omitempty"`
	TotalPrice      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"total_price"`
	MethodOfPayment string          `gorm:"size:20;not null;default:cash" json:"method_of_payment"`
	Status          string          `gorm:"size:20;not null;default:pending" json:"status"`
	OrderPlaced     time.Time       `json:"order_placed"`
	OrderDue        *time.Time      `json:"order_due"`
	Comments        string          `gorm:"type:text" json:"comments"`
	LineItems       []OrderLineItem `gorm:"constraint:OnDelete:CASCADE" json:"line_items,omitempty"`
}

func (Order) TableName() string { return "orders" }

// StatusLabel returns the display label for the order status.
func (o *Order) StatusLabel() string { return OrderStatuses[o.Status] }

// PaymentLabel returns the display label for the payment method.
func (o *Order) PaymentLabel() string { return PaymentMethods[o.MethodOfPayment] }

// OrderLineItem links an order to a product with a quantity and a price
// snapshot. One row per (order, product): adding the same product again
// accumulates the quantity instead of creating a second row.
//
// Line items hard-delete (no DeletedAt): a soft-deleted row would keep
// occupying the (order_id, product_id) unique index and block re-adding a
// removed product.
type OrderLineItem struct {
	ID        uint            `gorm:"primarykey" json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	OrderID   uint            `gorm:"not null;uniqueIndex:idx_order_product" json:"order_id"`
	ProductID uint            `gorm:"not null;uniqueIndex:idx_order_product" json:"product_id"`
	Product   *Product        `gorm:"constraint:OnDelete:CASCADE" json:"product,omitempty"`
	Quantity  int             `gorm:"not null;default:1" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
}

func (OrderLineItem) TableName() string { return "order_line_items" }

// LineTotal is the derived UnitPrice × Quantity. Serialized, never stored.
func (li *OrderLineItem) LineTotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}
