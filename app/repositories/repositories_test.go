package repositories_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fennwick/brasserie/app/models"
	"github.com/fennwick/brasserie/app/repositories"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Staff{}, &models.Customer{}, &models.Allergen{},
		&models.Product{}, &models.Order{}, &models.OrderLineItem{},
	))
	return db
}

func TestCustomerSearchMatchesNameParts(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewCustomerRepository(db)

	require.NoError(t, db.Create(&[]models.Customer{
		{FirstName: "Marie", LastName: "Laurent"},
		{FirstName: "Jean", LastName: "Dubois"},
	}).Error)

	got, err := repo.All("laur")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Marie Laurent", got[0].FullName)

	got, err = repo.All("")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestProductFilters(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewProductRepository(db)

	require.NoError(t, db.Create(&[]models.Product{
		{ProductName: "Onion Soup", ProductPrice: decimal.New(650, -2), ProductType: models.ProductTypeStarter, ProductSuitability: models.SuitabilityVegetarian, IsActive: true},
		{ProductName: "Steak Frites", ProductPrice: decimal.New(1890, -2), ProductType: models.ProductTypeMain, ProductSuitability: models.SuitabilityNone, IsActive: true},
		{ProductName: "Old Special", ProductPrice: decimal.New(400, -2), ProductType: models.ProductTypeMain, ProductSuitability: models.SuitabilityNone, IsActive: false},
	}).Error)

	got, err := repo.All(repositories.ProductFilters{Type: models.ProductTypeMain})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = repo.All(repositories.ProductFilters{Type: models.ProductTypeMain, ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Steak Frites", got[0].ProductName)

	got, err = repo.All(repositories.ProductFilters{Search: "soup"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Onion Soup", got[0].ProductName)
}

func TestOrderFiltersByStatusAndDate(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewOrderRepository(db)

	customer := models.Customer{FirstName: "Marie", LastName: "Laurent"}
	require.NoError(t, db.Create(&customer).Error)

	day := func(d string) time.Time {
		ts, err := time.Parse("2006-01-02", d)
		require.NoError(t, err)
		return ts
	}
	require.NoError(t, db.Create(&[]models.Order{
		{CustomerID: customer.ID, Status: models.StatusPending, MethodOfPayment: models.PaymentCash, OrderPlaced: day("2026-03-01")},
		{CustomerID: customer.ID, Status: models.StatusCompleted, MethodOfPayment: models.PaymentCard, OrderPlaced: day("2026-03-10")},
	}).Error)

	got, err := repo.All(repositories.OrderFilters{Status: models.StatusPending})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	got, err = repo.All(repositories.OrderFilters{DateFrom: "2026-03-05"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, models.StatusCompleted, got[0].Status)

	got, err = repo.All(repositories.OrderFilters{DateTo: "2026-03-01"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, models.StatusPending, got[0].Status)

	assert.EqualValues(t, 2, repo.Count(""))
	assert.EqualValues(t, 1, repo.Count(models.StatusPending))
}

func TestAllergenDeleteClearsProductLinks(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewAllergenRepository(db)

	allergen := models.Allergen{AllergenName: "gluten"}
	require.NoError(t, db.Create(&allergen).Error)
	product := models.Product{
		ProductName:  "Baguette",
		ProductPrice: decimal.New(250, -2),
		ProductType:  models.ProductTypeSide,
		IsActive:     true,
		Allergens:    []models.Allergen{allergen},
	}
	require.NoError(t, db.Create(&product).Error)

	require.NoError(t, repo.Delete(allergen.ID))

	var links int64
	db.Table("allergen_products").Count(&links)
	assert.Zero(t, links)

	var products int64
	db.Model(&models.Product{}).Count(&products)
	assert.EqualValues(t, 1, products)
}
