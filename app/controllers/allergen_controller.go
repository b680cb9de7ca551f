package controllers

import (
	"gorm.io/gorm"

	"github.com/fennwick/brasserie/app/models"
	"github.com/fennwick/brasserie/app/repositories"
	"github.com/fennwick/brasserie/pkg/collection"
	"github.com/fennwick/brasserie/pkg/ctx"
)

// allergenInput is the create/update payload. AllergenName must be one of
// the fixed catalogue keys; nil fields are left unchanged on update.
type allergenInput struct {
	AllergenName *string `json:"allergen_name"`
	Description  *string `json:"description"`
}

type AllergenController struct {
	repo *repositories.AllergenRepository
}

func NewAllergenController(db *gorm.DB) *AllergenController {
	return &AllergenController{repo: repositories.NewAllergenRepository(db)}
}

// Index handles GET /api/allergens/.
func (ctl *AllergenController) Index(c *ctx.Context) {
	allergens, err := ctl.repo.All()
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(allergens)
}

// Show handles GET /api/allergens/{id}/.
func (ctl *AllergenController) Show(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound("Allergen not found")
		return
	}

	allergen, err := ctl.repo.FindByID(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Success(allergen)
}

// Store handles POST /api/allergens/.
func (ctl *AllergenController) Store(c *ctx.Context) {
	var input allergenInput
	if !c.BindJSON(&input) {
		return
	}

	var allergen models.Allergen
	errs := applyAllergenInput(&allergen, input)
	if input.AllergenName == nil || *input.AllergenName == "" {
		errs["allergen_name"] = "The allergen_name field is required."
	}
	if len(errs) > 0 {
		c.ValidationError(errs)
		return
	}

	if err := ctl.repo.Create(&allergen); err != nil {
		respondError(c, err)
		return
	}
	c.Created(allergen)
}

// Update handles PUT and PATCH /api/allergens/{id}/.
func (ctl *AllergenController) Update(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound("Allergen not found")
		return
	}

	allergen, err := ctl.repo.FindByID(id)
	if err != nil {
		respondError(c, err)
		return
	}

	var input allergenInput
	if !c.BindJSON(&input) {
		return
	}

	if errs := applyAllergenInput(&allergen, input); len(errs) > 0 {
		c.ValidationError(errs)
		return
	}

	if err := ctl.repo.Update(&allergen); err != nil {
		respondError(c, err)
		return
	}
	c.Success(allergen)
}

// Destroy handles DELETE /api/allergens/{id}/: product links are cleared,
// the products themselves stay.
func (ctl *AllergenController) Destroy(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		c.NotFound("Allergen not found")
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
	c.SuccessMessage("Allergen deleted")
}

// Types handles GET /api/allergens/types/ — the fixed catalogue of
// declarable allergens.
func (ctl *AllergenController) Types(c *ctx.Context) {
	c.Success(models.AllergenNames)
}

// AllInfo handles GET /api/allergens/all_info/ — every allergen with its
// display name and the names of the products that contain it.
func (ctl *AllergenController) AllInfo(c *ctx.Context) {
	allergens, err := ctl.repo.AllWithProducts()
	if err != nil {
		respondError(c, err)
		return
	}

	type info struct {
		ID           uint     `json:"id"`
		AllergenName string   `json:"allergen_name"`
		DisplayName  string   `json:"display_name"`
		Description  string   `json:"description"`
		Products     []string `json:"products"`
	}
	c.Success(collection.Map(allergens, func(a models.Allergen) info {
		return info{
			ID:           a.ID,
			AllergenName: a.AllergenName,
			DisplayName:  a.DisplayName(),
			Description:  a.Description,
			Products: collection.Map(a.Products, func(p models.Product) string {
				return p.ProductName
			}),
		}
	}))
}

// applyAllergenInput merges non-nil fields into allergen and validates the
// name against the catalogue.
func applyAllergenInput(allergen *models.Allergen, input allergenInput) map[string]string {
	errs := map[string]string{}

	if input.AllergenName != nil {
		allergen.AllergenName = *input.AllergenName
	}
	if input.Description != nil {
		allergen.Description = *input.Description
	}

	if allergen.AllergenName != "" {
		if _, ok := models.AllergenNames[allergen.AllergenName]; !ok {
			errs["allergen_name"] = "The selected allergen_name is invalid."
		}
	}

	return errs
}
