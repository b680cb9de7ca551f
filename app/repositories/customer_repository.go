package repositories

import (
	"gorm.io/gorm"

	"github.com/fennwick/brasserie/app/models"
	"github.com/fennwick/brasserie/pkg/filter"
)

// CustomerRepository handles database access for Customer.
type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// All returns customers ordered by last then first name, optionally filtered
// by a case-insensitive search over name, email and phone number.
func (r *CustomerRepository) All(search string) ([]models.Customer, error) {
	var customers []models.Customer
	err := r.db.
		Scopes(filter.Search(search, "first_name", "last_name", "email", "phone_number")).
		Order("last_name, first_name").
		Find(&customers).Error
	return customers, err
}

// FindByID looks up a customer by primary key.
func (r *CustomerRepository) FindByID(id uint) (models.Customer, error) {
	var customer models.Customer
	err := r.db.First(&customer, id).Error
	return customer, err
}

// Exists reports whether a customer row exists.
func (r *CustomerRepository) Exists(id uint) bool {
	var count int64
	r.db.Model(&models.Customer{}).Where("id = ?", id).Count(&count)
	return count > 0
}

// Create persists a new customer.
func (r *CustomerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

// Update persists changes to an existing customer.
func (r *CustomerRepository) Update(customer *models.Customer) error {
	return r.db.Save(customer).Error
}

// Delete removes the customer together with its orders and their line items,
// all in one transaction. SQLite does not enforce the declared cascades by
// default, so the chain is deleted explicitly.
func (r *CustomerRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var orderIDs []uint
		if err := tx.Model(&models.Order{}).
			Where("customer_id = ?", id).
			Pluck("id", &orderIDs).Error; err != nil {
			return err
		}

		if len(orderIDs) > 0 {
			if err := tx.Where("order_id IN ?", orderIDs).
				Delete(&models.OrderLineItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("customer_id = ?", id).
				Delete(&models.Order{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&models.Customer{}, id).Error
	})
}

// Count returns the number of customers.
func (r *CustomerRepository) Count() int64 {
	var count int64
	r.db.Model(&models.Customer{}).Count(&count)
	return count
}
