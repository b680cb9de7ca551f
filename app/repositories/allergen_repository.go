package repositories

import (
	"gorm.io/gorm"

	"github.com/fennwick/brasserie/app/models"
)

// AllergenRepository handles database access for Allergen.
type AllergenRepository struct {
	db *gorm.DB
}

func NewAllergenRepository(db *gorm.DB) *AllergenRepository {
	return &AllergenRepository{db: db}
}

// All returns allergens ordered by name.
func (r *AllergenRepository) All() ([]models.Allergen, error) {
	var allergens []models.Allergen
	err := r.db.Order("allergen_name").Find(&allergens).Error
	return allergens, err
}

// AllWithProducts returns allergens with their products preloaded.
func (r *AllergenRepository) AllWithProducts() ([]models.Allergen, error) {
	var allergens []models.Allergen
	err := r.db.Preload("Products").Order("allergen_name").Find(&allergens).Error
	return allergens, err
}

// FindByID looks up an allergen with its products preloaded.
func (r *AllergenRepository) FindByID(id uint) (models.Allergen, error) {
	var allergen models.Allergen
	err := r.db.Preload("Products").First(&allergen, id).Error
	return allergen, err
}

// Create persists a new allergen.
func (r *AllergenRepository) Create(allergen *models.Allergen) error {
	return r.db.Create(allergen).Error
}

// Update persists changes to an existing allergen.
func (r *AllergenRepository) Update(allergen *models.Allergen) error {
	return r.db.Save(allergen).Error
}

// Delete removes an allergen and its product links.
func (r *AllergenRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		allergen := models.Allergen{Model: gorm.Model{ID: id}}
		if err := tx.Model(&allergen).Association("Products").Clear(); err != nil {
			return err
		}
		return tx.Delete(&allergen).Error
	})
}
