package controllers

import (
	"gorm.io/gorm"

	"github.com/fennwick/brasserie/app/models"
	"github.com/fennwick/brasserie/app/repositories"
	"github.com/fennwick/brasserie/pkg/collection"
	"github.com/fennwick/brasserie/pkg/ctx"
)

type CustomerController struct {
	repo *repositories.CustomerRepository
}

func NewCustomerController(db *gorm.DB) *CustomerController {
	return &CustomerController{repo: repositories.NewCustomerRepository(db)}
}

// Index handles GET /api/customers/ with an optional ?search= filter.
func (ctl *CustomerController) Index(c *ctx.Context) {
	customers, err := ctl.repo.All(c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(customers)
}

// ListSimple handles GET /api/customers/list_simple/ — reduced payloads
// for dropdowns.
func (ctl *CustomerController) ListSimple(c *ctx.Context) {
	customers, err := ctl.repo.All("")
	if err != nil {
		respondError(c, err)
		return
	}

	type simple struct {
		ID       uint   `json:"id"`
		FullName string `json:"full_name"`
	}
	c.Success(collection.Map(customers, func(cu models.Customer) simple {
		return simple{ID: cu.ID, FullName: cu.FullName}
	}))
}

// Show handles GET /api/customers/{id}/.
func (ctl *CustomerController) Show(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound("Customer not found")
		return
	}

	customer, err := ctl.repo.FindByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(customer)
}

// Store handles POST /api/customers/.
func (ctl *CustomerController) Store(c *ctx.Context) {
	var customer models.Customer
	if !c.BindJSON(&customer) {
		return
	}

	if err := ctl.repo.Create(&customer); err != nil {
		respondError(c, err)
		return
	}
	c.Created(customer)
}

// Update handles PUT and PATCH /api/customers/{id}/. The body is merged
// into the stored record, so omitted fields keep their current values.
func (ctl *CustomerController) Update(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound("Customer not found")
		return
	}

	customer, err := ctl.repo.FindByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	if !c.BindJSON(&customer) {
		return
	}
	customer.ID = id // body cannot move the record

	if err := ctl.repo.Update(&customer); err != nil {
		respondError(c, err)
		return
	}
	c.Success(customer)
}

// Destroy handles DELETE /api/customers/{id}/: the customer's orders and
// their line items go with it.
func (ctl *CustomerController) Destroy(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound("Customer not found")
		return
	}

	if _, err := ctl.repo.FindByID(id); err != nil {
		respondError(c, err)
		return
	}

	if err := ctl.repo.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.SuccessMessage("Customer deleted")
}
