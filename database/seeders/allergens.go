package seeders

import (
	"sort"

	"gorm.io/gorm"

	"github.com/fennwick/brasserie/app/models"
)

func init() {
	Register("allergens", SeedAllergens)
}

// SeedAllergens creates one row per catalogue allergen. Safe to re-run:
// existing rows are left untouched.
func SeedAllergens(db *gorm.DB) error {
	names := make([]string, 0, len(models.AllergenNames))
	for name := range models.AllergenNames {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		allergen := models.Allergen{AllergenName: name}
		err := db.Where("allergen_name = ?", name).
			FirstOrCreate(&allergen).Error
		if err != nil {
			return err
		}
	}
	return nil
}
