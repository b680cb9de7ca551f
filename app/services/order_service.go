package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fennwick/brasserie/app/models"
	"github.com/fennwick/brasserie/pkg/apperr"
	"github.com/fennwick/brasserie/pkg/event"
	"github.com/fennwick/brasserie/pkg/metrics"
)

// Order lifecycle event names. Payload is an OrderEvent.
const (
	EventOrderCreated = "order.created"
	EventOrderUpdated = "order.updated"
	EventOrderDeleted = "order.deleted"
)

// OrderEvent is the payload fired on order lifecycle events and broadcast
// over the websocket feed.
type OrderEvent struct {
	Event      string `json:"event"`
	OrderID    uint   `json:"order_id"`
	Status     string `json:"status"`
	TotalPrice string `json:"total_price"`
}

// LineItemInput is one entry of a nested products payload.
type LineItemInput struct {
	ProductID uint             `json:"product_id"`
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price"` // optional; nil snapshots the product price
}

// CreateOrderInput is the payload for creating an order.
type CreateOrderInput struct {
	CustomerID      uint            `json:"customer_id"`
	MethodOfPayment string          `json:"method_of_payment"`
	Status          string          `json:"status"`
	OrderPlaced     *time.Time      `json:"order_placed"`
	OrderDue        *time.Time      `json:"order_due"`
	Comments        string          `json:"comments"`
	Products        []LineItemInput `json:"products"`
}

// UpdateOrderInput is the payload for updating an order. Nil fields are left
// unchanged; a non-nil Products slice replaces the whole line item set.
type UpdateOrderInput struct {
	CustomerID      *uint            `json:"customer_id"`
	MethodOfPayment *string          `json:"method_of_payment"`
	Status          *string          `json:"status"`
	OrderPlaced     *time.Time       `json:"order_placed"`
	OrderDue        *time.Time       `json:"order_due"`
	Comments        *string          `json:"comments"`
	Products        *[]LineItemInput `json:"products"`
}

// OrderService owns the order aggregate: every mutation of an order and its
// line items goes through here, inside a single transaction, and leaves
// total_price equal to the sum of line totals.
type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// ─── Create ───────────────────────────────────────────────────────────────────

// Create validates the payload and creates the order with its line items and
// computed total in one transaction. Unknown customer, unknown product, or a
// non-positive quantity fail validation and nothing is written.
func (s *OrderService) Create(input CreateOrderInput) (models.Order, error) {
	if input.MethodOfPayment == "" {
		input.MethodOfPayment = models.PaymentCash
	}
	if input.Status == "" {
		input.Status = models.StatusPending
	}

	if errs := s.validateOrderFields(input.CustomerID, input.MethodOfPayment, input.Status); len(errs) > 0 {
		return models.Order{}, apperr.ValidationFields(errs)
	}
	items, errs := s.buildLineItems(input.Products)
	if len(errs) > 0 {
		return models.Order{}, apperr.ValidationFields(errs)
	}

	placed := time.Now()
	if input.OrderPlaced != nil {
		placed = *input.OrderPlaced
	}

	order := models.Order{
		CustomerID:      input.CustomerID,
		MethodOfPayment: input.MethodOfPayment,
		Status:          input.Status,
		OrderPlaced:     placed,
		OrderDue:        input.OrderDue,
		Comments:        input.Comments,
		TotalPrice:      decimal.Zero,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		return s.recalculate(tx, &order)
	})
	if err != nil {
		return models.Order{}, err
	}

	metrics.OrdersCreated.WithLabelValues(order.MethodOfPayment).Inc()
	s.fire(EventOrderCreated, order)
	return s.reload(order.ID)
}

// ─── Update / ReplaceLineItems ────────────────────────────────────────────────

// Update applies partial field changes and, when Products is present,
// replaces the entire line item set. Runs in one transaction.
func (s *OrderService) Update(id uint, input UpdateOrderInput) (models.Order, error) {
	order, err := s.find(id)
	if err != nil {
		return models.Order{}, err
	}

	fieldErrs := map[string]string{}

	if input.CustomerID != nil {
		order.CustomerID = *input.CustomerID
	}
	if input.MethodOfPayment != nil {
		order.MethodOfPayment = *input.MethodOfPayment
	}
	if input.Status != nil {
		order.Status = *input.Status
	}
	if input.OrderPlaced != nil {
		order.OrderPlaced = *input.OrderPlaced
	}
	if input.OrderDue != nil {
		order.OrderDue = input.OrderDue
	}
	if input.Comments != nil {
		order.Comments = *input.Comments
	}

	for k, v := range s.validateOrderFields(order.CustomerID, order.MethodOfPayment, order.Status) {
		fieldErrs[k] = v
	}

	var items []models.OrderLineItem
	if input.Products != nil {
		var itemErrs map[string]string
		items, itemErrs = s.buildLineItems(*input.Products)
		for k, v := range itemErrs {
			fieldErrs[k] = v
		}
	}

	if len(fieldErrs) > 0 {
		return models.Order{}, apperr.ValidationFields(fieldErrs)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		order.LineItems = nil // field updates only; items are managed below
		if err := tx.Save(&order).Error; err != nil {
			return err
		}
		if input.Products != nil {
			if err := tx.Where("order_id = ?", order.ID).
				Delete(&models.OrderLineItem{}).Error; err != nil {
				return err
			}
			for i := range items {
				items[i].OrderID = order.ID
			}
			if len(items) > 0 {
				if err := tx.Create(&items).Error; err != nil {
					return err
				}
			}
			metrics.OrderItemMutations.WithLabelValues("replace").Inc()
		}
		return s.recalculate(tx, &order)
	})
	if err != nil {
		return models.Order{}, err
	}

	s.fire(EventOrderUpdated, order)
	return s.reload(order.ID)
}

// ─── AddProduct / RemoveProduct ───────────────────────────────────────────────

// AddProduct adds quantity of a product to an order. If the order already
// has a line item for the product the quantity accumulates and the existing
// price snapshot is kept; otherwise a new line item snapshots the current
// product price. Unknown order or product is a not-found error.
func (s *OrderService) AddProduct(orderID, productID uint, quantity int) (models.Order, error) {
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return models.Order{}, apperr.ValidationFields(map[string]string{
			"quantity": "Quantity must be a positive integer.",
		})
	}

	order, err := s.find(orderID)
	if err != nil {
		return models.Order{}, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Looked up inside the transaction so a concurrent product delete
		// cannot slip between the check and the insert.
		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Product")
			}
			return err
		}

		var item models.OrderLineItem
		findErr := tx.Where("order_id = ? AND product_id = ?", orderID, productID).
			First(&item).Error

		switch {
		case findErr == nil:
			item.Quantity += quantity
			if err := tx.Save(&item).Error; err != nil {
				return err
			}
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			item = models.OrderLineItem{
				OrderID:   orderID,
				ProductID: productID,
				Quantity:  quantity,
				UnitPrice: product.ProductPrice,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		default:
			return findErr
		}

		return s.recalculate(tx, &order)
	})
	if err != nil {
		return models.Order{}, err
	}

	metrics.OrderItemMutations.WithLabelValues("add").Inc()
	s.fire(EventOrderUpdated, order)
	return s.reload(orderID)
}

// RemoveProduct removes a product's line item from an order entirely,
// regardless of quantity. Removing a product that is not on the order is a
// not-found error, so a repeated removal fails rather than succeeding
// silently.
func (s *OrderService) RemoveProduct(orderID, productID uint) (models.Order, error) {
	order, err := s.find(orderID)
	if err != nil {
		return models.Order{}, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("order_id = ? AND product_id = ?", orderID, productID).
			Delete(&models.OrderLineItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound("Product in order")
		}
		return s.recalculate(tx, &order)
	})
	if err != nil {
		return models.Order{}, err
	}

	metrics.OrderItemMutations.WithLabelValues("remove").Inc()
	s.fire(EventOrderUpdated, order)
	return s.reload(orderID)
}

// ─── Delete / Recalculate ─────────────────────────────────────────────────────

// Delete removes an order and its line items.
func (s *OrderService) Delete(id uint) error {
	order, err := s.find(id)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).
			Delete(&models.OrderLineItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, id).Error
	})
	if err != nil {
		return err
	}

	s.fire(EventOrderDeleted, order)
	return nil
}

// RecalculateTotal recomputes and persists the order total from its current
// line items, returning the order with the fresh total. This is the
// reconciliation operation: it never changes line items.
func (s *OrderService) RecalculateTotal(id uint) (models.Order, error) {
	order, err := s.find(id)
	if err != nil {
		return models.Order{}, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.recalculate(tx, &order)
	})
	if err != nil {
		return models.Order{}, err
	}

	return s.reload(id)
}

// ─── Internals ────────────────────────────────────────────────────────────────

func (s *OrderService) find(id uint) (models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, apperr.NotFound("Order")
		}
		return models.Order{}, err
	}
	return order, nil
}

func (s *OrderService) reload(id uint) (models.Order, error) {
	var order models.Order
	err := s.db.
		Preload("Customer").
		Preload("LineItems.Product").
		First(&order, id).Error
	return order, err
}

// validateOrderFields checks the customer reference and enum fields.
func (s *OrderService) validateOrderFields(customerID uint, payment, status string) map[string]string {
	errs := map[string]string{}

	if customerID == 0 {
		errs["customer_id"] = "The customer_id field is required."
	} else {
		var count int64
		s.db.Model(&models.Customer{}).Where("id = ?", customerID).Count(&count)
		if count == 0 {
			errs["customer_id"] = fmt.Sprintf("Customer %d does not exist.", customerID)
		}
	}

	if _, ok := models.PaymentMethods[payment]; !ok {
		errs["method_of_payment"] = "The selected method_of_payment is invalid."
	}
	if _, ok := models.OrderStatuses[status]; !ok {
		errs["status"] = "The selected status is invalid."
	}

	return errs
}

// buildLineItems validates a nested products payload and returns line items
// ready to attach to an order. Duplicate product entries merge by summing
// quantities; the first entry's price wins.
func (s *OrderService) buildLineItems(inputs []LineItemInput) ([]models.OrderLineItem, map[string]string) {
	errs := map[string]string{}
	byProduct := map[uint]*models.OrderLineItem{}
	var ordered []uint

	for i, in := range inputs {
		field := fmt.Sprintf("products[%d]", i)

		if in.Quantity <= 0 {
			errs[field] = "Quantity must be a positive integer."
			continue
		}

		var product models.Product
		if err := s.db.First(&product, in.ProductID).Error; err != nil {
			errs[field] = fmt.Sprintf("Product %d does not exist.", in.ProductID)
			continue
		}

		if existing, ok := byProduct[in.ProductID]; ok {
			existing.Quantity += in.Quantity
			continue
		}

		price := product.ProductPrice
		if in.UnitPrice != nil {
			price = *in.UnitPrice
		}

		byProduct[in.ProductID] = &models.OrderLineItem{
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			UnitPrice: price,
		}
		ordered = append(ordered, in.ProductID)
	}

	if len(errs) > 0 {
		return nil, errs
	}

	items := make([]models.OrderLineItem, 0, len(ordered))
	for _, pid := range ordered {
		items = append(items, *byProduct[pid])
	}
	return items, nil
}

// recalculate recomputes the total from the line items visible inside tx and
// updates both the row and the in-memory order.
func (s *OrderService) recalculate(tx *gorm.DB, order *models.Order) error {
	var items []models.OrderLineItem
	if err := tx.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
		return err
	}

	total := decimal.Zero
	for _, li := range items {
		total = total.Add(li.LineTotal())
	}

	order.TotalPrice = total
	return tx.Model(&models.Order{}).
		Where("id = ?", order.ID).
		Update("total_price", total).Error
}

func (s *OrderService) fire(name string, order models.Order) {
	event.Fire(name, OrderEvent{
		Event:      name,
		OrderID:    order.ID,
		Status:     order.Status,
		TotalPrice: order.TotalPrice.StringFixed(2),
	})
}
