package controllers

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fennwick/brasserie/app/models"
	"github.com/fennwick/brasserie/app/repositories"
	"github.com/fennwick/brasserie/pkg/collection"
	"github.com/fennwick/brasserie/pkg/ctx"
)

// productInput is the create/update payload. Nil fields are left unchanged
// on update; AllergenIDs, when present, replaces the allergen links.
type productInput struct {
	ProductName        *string          `json:"product_name"`
	ProductPrice       *decimal.Decimal `json:"product_price"`
	ProductType        *string          `json:"product_type"`
	ProductSuitability *string          `json:"product_suitability"`
	IsActive           *bool            `json:"is_active"`
	AllergenIDs        *[]uint          `json:"allergen_ids"`
}

type ProductController struct {
	db   *gorm.DB
	repo *repositories.ProductRepository
}

func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{db: db, repo: repositories.NewProductRepository(db)}
}

// Index handles GET /api/products/ with ?search=, ?type=, ?suitability=
// and ?active_only=true filters.
func (ctl *ProductController) Index(c *ctx.Context) {
	products, err := ctl.repo.All(repositories.ProductFilters{
		Search:      c.Query("search"),
		Type:        c.Query("type"),
		Suitability: c.Query("suitability"),
		ActiveOnly:  c.QueryBool("active_only"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(products)
}

// ListSimple handles GET /api/products/list_simple/ — reduced payloads for
// dropdowns, active products only.
func (ctl *ProductController) ListSimple(c *ctx.Context) {
	products, err := ctl.repo.All(repositories.ProductFilters{ActiveOnly: true})
	if err != nil {
		respondError(c, err)
		return
	}

	type simple struct {
		ID           uint   `json:"id"`
		ProductName  string `json:"product_name"`
		ProductPrice string `json:"product_price"`
	}
	c.Success(collection.Map(products, func(p models.Product) simple {
		return simple{ID: p.ID, ProductName: p.ProductName, ProductPrice: p.ProductPrice.StringFixed(2)}
	}))
}

// Show handles GET /api/products/{id}/.
func (ctl *ProductController) Show(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound("Product not found")
		return
	}

	product, err := ctl.repo.FindByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(product)
}

// Store handles POST /api/products/.
func (ctl *ProductController) Store(c *ctx.Context) {
	var input productInput
	if !c.BindJSON(&input) {
		return
	}

	product := models.Product{
		ProductType:        models.ProductTypeOther,
		ProductSuitability: models.SuitabilityNone,
		IsActive:           true,
	}

	errs := applyProductInput(&product, input)
	if input.ProductName == nil || *input.ProductName == "" {
		errs["product_name"] = "The product_name field is required."
	}
	if input.ProductPrice == nil {
		errs["product_price"] = "The product_price field is required."
	}
	if len(errs) > 0 {
		c.ValidationError(errs)
		return
	}

	if err := ctl.repo.Create(&product); err != nil {
		respondError(c, err)
		return
	}
	if err := ctl.syncAllergens(&product, input.AllergenIDs); err != nil {
		respondError(c, err)
		return
	}

	created, err := ctl.repo.FindByID(product.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Created(created)
}

// Update handles PUT and PATCH /api/products/{id}/.
func (ctl *ProductController) Update(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound("Product not found")
		return
	}

	product, err := ctl.repo.FindByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	var input productInput
	if !c.BindJSON(&input) {
		return
	}

	if errs := applyProductInput(&product, input); len(errs) > 0 {
		c.ValidationError(errs)
		return
	}

	product.Allergens = nil // association managed explicitly below
	if err := ctl.repo.Update(&product); err != nil {
		respondError(c, err)
		return
	}
	if err := ctl.syncAllergens(&product, input.AllergenIDs); err != nil {
		respondError(c, err)
		return
	}

	updated, err := ctl.repo.FindByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(updated)
}

// Destroy handles DELETE /api/products/{id}/.
func (ctl *ProductController) Destroy(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound("Product not found")
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
	c.SuccessMessage("Product deleted")
}

// Types handles GET /api/products/types/.
func (ctl *ProductController) Types(c *ctx.Context) {
	c.Success(models.ProductTypes)
}

// Suitabilities handles GET /api/products/suitabilities/.
func (ctl *ProductController) Suitabilities(c *ctx.Context) {
	c.Success(models.ProductSuitabilities)
}

// applyProductInput merges non-nil fields into product and validates enums
// and the price bound.
func applyProductInput(product *models.Product, input productInput) map[string]string {
	errs := map[string]string{}

	if input.ProductName != nil {
		product.ProductName = *input.ProductName
	}
	if input.ProductPrice != nil {
		product.ProductPrice = *input.ProductPrice
	}
	if input.ProductType != nil {
		product.ProductType = *input.ProductType
	}
	if input.ProductSuitability != nil {
		product.ProductSuitability = *input.ProductSuitability
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if product.ProductPrice.IsNegative() {
		errs["product_price"] = "The product_price must be at least 0."
	}
	if _, ok := models.ProductTypes[product.ProductType]; !ok {
		errs["product_type"] = "The selected product_type is invalid."
	}
	if _, ok := models.ProductSuitabilities[product.ProductSuitability]; !ok {
		errs["product_suitability"] = "The selected product_suitability is invalid."
	}

	return errs
}

// syncAllergens replaces the product's allergen links when ids is present.
func (ctl *ProductController) syncAllergens(product *models.Product, ids *[]uint) error {
	if ids == nil {
		return nil
	}

	var allergens []models.Allergen
	if len(*ids) > 0 {
		if err := ctl.db.Find(&allergens, *ids).Error; err != nil {
			return err
		}
	}
	return ctl.db.Model(product).Association("Allergens").Replace(allergens)
}
