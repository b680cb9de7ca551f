package controllers

import (
	"strconv"

	"gorm.io/gorm"

	"github.com/fennwick/brasserie/app/models"
	"github.com/fennwick/brasserie/app/repositories"
	"github.com/fennwick/brasserie/app/services"
	"github.com/fennwick/brasserie/pkg/collection"
	"github.com/fennwick/brasserie/pkg/ctx"
)

type OrderController struct {
	repo    *repositories.OrderRepository
	service *services.OrderService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{
		repo:    repositories.NewOrderRepository(db),
		service: services.NewOrderService(db),
	}
}

// Index handles GET /api/orders/ with ?customer=, ?status=, ?date_from=
// and ?date_to= filters.
func (ctl *OrderController) Index(c *ctx.Context) {
	customerID, _ := parseUintQuery(c, "customer")
	orders, err := ctl.repo.All(repositories.OrderFilters{
		CustomerID: customerID,
		Status:     c.Query("status"),
		DateFrom:   c.Query("date_from"),
		DateTo:     c.Query("date_to"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(orders)
}

// Show handles GET /api/orders/{id}/.
func (ctl *OrderController) Show(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound("Order not found")
		return
	}

	order, err := ctl.repo.FindByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(order)
}

// Store handles POST /api/orders/ with an optional nested products payload.
func (ctl *OrderController) Store(c *ctx.Context) {
	var input services.CreateOrderInput
	if !c.BindJSON(&input) {
		return
	}

	order, err := ctl.service.Create(input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Created(order)
}

// Update handles PUT and PATCH /api/orders/{id}/. A products array in the
// body replaces the entire line item set.
func (ctl *OrderController) Update(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound("Order not found")
		return
	}

	var input services.UpdateOrderInput
	if !c.BindJSON(&input) {
		return
	}

	order, err := ctl.service.Update(id, input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(order)
}

// Destroy handles DELETE /api/orders/{id}/.
func (ctl *OrderController) Destroy(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound("Order not found")
		return
	}

	if err := ctl.service.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.SuccessMessage("Order deleted")
}

// Products handles GET /api/orders/{id}/products/ — the order's line items
// with denormalized product details and computed line totals.
func (ctl *OrderController) Products(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound("Order not found")
		return
	}

	order, err := ctl.repo.FindByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	type lineItemDTO struct {
		ID                 uint   `json:"id"`
		ProductID          uint   `json:"product_id"`
		ProductName        string `json:"product_name"`
		ProductType        string `json:"product_type"`
		ProductSuitability string `json:"product_suitability"`
		Quantity           int    `json:"quantity"`
		UnitPrice          string `json:"unit_price"`
		LineTotal          string `json:"line_total"`
	}

	c.Success(collection.Map(order.LineItems, func(li models.OrderLineItem) lineItemDTO {
		dto := lineItemDTO{
			ID:        li.ID,
			ProductID: li.ProductID,
			Quantity:  li.Quantity,
			UnitPrice: li.UnitPrice.StringFixed(2),
			LineTotal: li.LineTotal().StringFixed(2),
		}
		if li.Product != nil {
			dto.ProductName = li.Product.ProductName
			dto.ProductType = li.Product.ProductType
			dto.ProductSuitability = li.Product.ProductSuitability
		}
		return dto
	}))
}

// AddProduct handles POST /api/orders/{id}/add_product/.
func (ctl *OrderController) AddProduct(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound("Order not found")
		return
	}

	var input struct {
		ProductID uint `json:"product_id" validate:"required"`
		Quantity  int  `json:"quantity"`
	}
	if !c.BindJSON(&input) {
		return
	}

	order, err := ctl.service.AddProduct(id, input.ProductID, input.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(order)
}

// RemoveProduct handles POST /api/orders/{id}/remove_product/. The whole
// line item goes, whatever its quantity; removing an absent product is 404.
func (ctl *OrderController) RemoveProduct(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound("Order not found")
		return
	}

	var input struct {
		ProductID uint `json:"product_id" validate:"required"`
	}
	if !c.BindJSON(&input) {
		return
	}

	order, err := ctl.service.RemoveProduct(id, input.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(order)
}

// Recalculate handles POST /api/orders/{id}/recalculate/ — reconciles the
// stored total against the current line items.
func (ctl *OrderController) Recalculate(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound("Order not found")
		return
	}

	order, err := ctl.service.RecalculateTotal(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(order)
}

// PaymentMethods handles GET /api/orders/payment_methods/.
func (ctl *OrderController) PaymentMethods(c *ctx.Context) {
	c.Success(models.PaymentMethods)
}

// Statuses handles GET /api/orders/statuses/.
func (ctl *OrderController) Statuses(c *ctx.Context) {
	c.Success(models.OrderStatuses)
}

func parseUintQuery(c *ctx.Context, key string) (uint, bool) {
	n, err := strconv.ParseUint(c.Query(key), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}
