package repositories

import (
	"gorm.io/gorm"

	"github.com/fennwick/brasserie/app/models"
)

// StaffRepository handles database access for Staff.
type StaffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

// FindByUsername looks up a staff member by username.
func (r *StaffRepository) FindByUsername(username string) (models.Staff, error) {
	var staff models.Staff
	err := r.db.Where("username = ?", username).First(&staff).Error
	return staff, err
}

// FindByID looks up a staff member by primary key.
func (r *StaffRepository) FindByID(id uint) (models.Staff, error) {
	var staff models.Staff
	err := r.db.First(&staff, id).Error
	return staff, err
}

// UsernameTaken reports whether a staff row already uses the username.
func (r *StaffRepository) UsernameTaken(username string) bool {
	var count int64
	r.db.Model(&models.Staff{}).Where("username = ?", username).Count(&count)
	return count > 0
}

// Create persists a new staff record.
func (r *StaffRepository) Create(staff *models.Staff) error {
	return r.db.Create(staff).Error
}

// Update persists changes to an existing staff record.
func (r *StaffRepository) Update(staff *models.Staff) error {
	return r.db.Save(staff).Error
}
