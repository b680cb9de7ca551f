package services_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fennwick/brasserie/app/models"
	"github.com/fennwick/brasserie/app/repositories"
	"github.com/fennwick/brasserie/app/services"
	"github.com/fennwick/brasserie/pkg/apperr"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// A named shared-cache memory DB so every pooled connection sees the
	// same data.
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

func seedCustomer(t *testing.T, db *gorm.DB) models.Customer {
	t.Helper()
	c := models.Customer{FirstName: "Marie", LastName: "Laurent"}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func seedProduct(t *testing.T, db *gorm.DB, name, price string) models.Product {
	t.Helper()
	p := models.Product{
		ProductName:        name,
		ProductPrice:       decimal.RequireFromString(price),
		ProductType:        models.ProductTypeMain,
		ProductSuitability: models.SuitabilityNone,
		IsActive:           true,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func TestCreateOrderComputesTotal(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewOrderService(db)
	customer := seedCustomer(t, db)
	soup := seedProduct(t, db, "Onion Soup", "6.50")
	steak := seedProduct(t, db, "Steak Frites", "18.90")

	order, err := svc.Create(services.CreateOrderInput{
		CustomerID: customer.ID,
		Products: []services.LineItemInput{
			{ProductID: soup.ID, Quantity: 2},
			{ProductID: steak.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "31.90", order.TotalPrice.StringFixed(2))
	assert.Len(t, order.LineItems, 2)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, models.PaymentCash, order.MethodOfPayment)
}

func TestCreateOrderWithoutProducts(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewOrderService(db)
	customer := seedCustomer(t, db)

	order, err := svc.Create(services.CreateOrderInput{CustomerID: customer.ID})
	require.NoError(t, err)
	assert.Equal(t, "0.00", order.TotalPrice.StringFixed(2))
	assert.Empty(t, order.LineItems)
}

func TestCreateOrderUnknownProductWritesNothing(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewOrderService(db)
	customer := seedCustomer(t, db)

	_, err := svc.Create(services.CreateOrderInput{
		CustomerID: customer.ID,
		Products:   []services.LineItemInput{{ProductID: 999, Quantity: 1}},
	})
	require.Error(t, err)
	_, ok := apperr.IsValidation(err)
	assert.True(t, ok)

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateOrderInvalidStatus(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewOrderService(db)
	customer := seedCustomer(t, db)

	_, err := svc.Create(services.CreateOrderInput{
		CustomerID: customer.ID,
		Status:     "teleported",
	})
	require.Error(t, err)
	_, ok := apperr.IsValidation(err)
	assert.True(t, ok)
}

func TestCreateOrderUnknownCustomer(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewOrderService(db)

	_, err := svc.Create(services.CreateOrderInput{CustomerID: 42})
	require.Error(t, err)
	_, ok := apperr.IsValidation(err)
	assert.True(t, ok)
}

func TestCreateOrderMergesDuplicateProducts(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewOrderService(db)
	customer := seedCustomer(t, db)
	soup := seedProduct(t, db, "Onion Soup", "6.50")

	order, err := svc.Create(services.CreateOrderInput{
		CustomerID: customer.ID,
		Products: []services.LineItemInput{
			{ProductID: soup.ID, Quantity: 2},
			{ProductID: soup.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)

	require.Len(t, order.LineItems, 1)
	assert.Equal(t, 5, order.LineItems[0].Quantity)
	assert.Equal(t, "32.50", order.TotalPrice.StringFixed(2))
}

func TestAddProductAccumulatesAndKeepsPriceSnapshot(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewOrderService(db)
	customer := seedCustomer(t, db)
	brulee := seedProduct(t, db, "Crème Brûlée", "9.99")

	order, err := svc.Create(services.CreateOrderInput{CustomerID: customer.ID})
	require.NoError(t, err)

	order, err = svc.AddProduct(order.ID, brulee.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, "19.98", order.TotalPrice.StringFixed(2))

	// Raise the menu price; the snapshot on the order must not move.
	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", brulee.ID).
		Update("product_price", decimal.RequireFromString("12.00")).Error)

	order, err = svc.AddProduct(order.ID, brulee.ID, 1)
	require.NoError(t, err)

	require.Len(t, order.LineItems, 1)
	assert.Equal(t, 3, order.LineItems[0].Quantity)
	assert.Equal(t, "9.99", order.LineItems[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "29.97", order.TotalPrice.StringFixed(2))
}

func TestAddProductDefaultsQuantityToOne(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewOrderService(db)
	customer := seedCustomer(t, db)
	soup := seedProduct(t, db, "Onion Soup", "6.50")

	order, err := svc.Create(services.CreateOrderInput{CustomerID: customer.ID})
	require.NoError(t, err)

	order, err = svc.AddProduct(order.ID, soup.ID, 0)
	require.NoError(t, err)
	require.Len(t, order.LineItems, 1)
	assert.Equal(t, 1, order.LineItems[0].Quantity)
}

func TestAddProductNegativeQuantityFails(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewOrderService(db)
	customer := seedCustomer(t, db)
	soup := seedProduct(t, db, "Onion Soup", "6.50")

	order, err := svc.Create(services.CreateOrderInput{CustomerID: customer.ID})
	require.NoError(t, err)

	_, err = svc.AddProduct(order.ID, soup.ID, -2)
	require.Error(t, err)
	_, ok := apperr.IsValidation(err)
	assert.True(t, ok)
}

func TestAddProductUnknownOrderOrProduct(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewOrderService(db)
	customer := seedCustomer(t, db)
	soup := seedProduct(t, db, "Onion Soup", "6.50")

	_, err := svc.AddProduct(999, soup.ID, 1)
	_, ok := apperr.IsNotFound(err)
	assert.True(t, ok)

	order, err := svc.Create(services.CreateOrderInput{CustomerID: customer.ID})
	require.NoError(t, err)

	_, err = svc.AddProduct(order.ID, 999, 1)
	_, ok = apperr.IsNotFound(err)
	assert.True(t, ok)
}

func TestAddProductAfterProductDeleted(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewOrderService(db)
	customer := seedCustomer(t, db)
	soup := seedProduct(t, db, "Onion Soup", "6.50")

	order, err := svc.Create(services.CreateOrderInput{CustomerID: customer.ID})
	require.NoError(t, err)

	require.NoError(t, db.Delete(&models.Product{}, soup.ID).Error)

	_, err = svc.AddProduct(order.ID, soup.ID, 1)
	require.Error(t, err)
	_, ok := apperr.IsNotFound(err)
	assert.True(t, ok)

	var items int64
	db.Model(&models.OrderLineItem{}).Count(&items)
	assert.Zero(t, items)
}

func TestRemoveProductRecomputesTotal(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewOrderService(db)
	customer := seedCustomer(t, db)
	soup := seedProduct(t, db, "Onion Soup", "6.50")
	steak := seedProduct(t, db, "Steak Frites", "18.90")

	order, err := svc.Create(services.CreateOrderInput{
		CustomerID: customer.ID,
		Products: []services.LineItemInput{
			{ProductID: soup.ID, Quantity: 2},
			{ProductID: steak.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	order, err = svc.RemoveProduct(order.ID, steak.ID)
	require.NoError(t, err)
	require.Len(t, order.LineItems, 1)
	assert.Equal(t, "13.00", order.TotalPrice.StringFixed(2))

	order, err = svc.RemoveProduct(order.ID, soup.ID)
	require.NoError(t, err)
	assert.Empty(t, order.LineItems)
	assert.Equal(t, "0.00", order.TotalPrice.StringFixed(2))
}

func TestRemoveProductTwiceFails(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewOrderService(db)
	customer := seedCustomer(t, db)
	soup := seedProduct(t, db, "Onion Soup", "6.50")

	order, err := svc.Create(services.CreateOrderInput{
		CustomerID: customer.ID,
		Products:   []services.LineItemInput{{ProductID: soup.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = svc.RemoveProduct(order.ID, soup.ID)
	require.NoError(t, err)

	// The line item is gone; removing again is a not-found, not a no-op.
	_, err = svc.RemoveProduct(order.ID, soup.ID)
	_, ok := apperr.IsNotFound(err)
	assert.True(t, ok)
}

func TestRemoveThenReAddProduct(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewOrderService(db)
	customer := seedCustomer(t, db)
	soup := seedProduct(t, db, "Onion Soup", "6.50")

	order, err := svc.Create(services.CreateOrderInput{
		CustomerID: customer.ID,
		Products:   []services.LineItemInput{{ProductID: soup.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	_, err = svc.RemoveProduct(order.ID, soup.ID)
	require.NoError(t, err)

	order, err = svc.AddProduct(order.ID, soup.ID, 1)
	require.NoError(t, err)
	require.Len(t, order.LineItems, 1)
	assert.Equal(t, 1, order.LineItems[0].Quantity)
	assert.Equal(t, "6.50", order.TotalPrice.StringFixed(2))
}

func TestUpdateReplacesLineItems(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewOrderService(db)
	customer := seedCustomer(t, db)
	soup := seedProduct(t, db, "Onion Soup", "6.50")
	steak := seedProduct(t, db, "Steak Frites", "18.90")

	order, err := svc.Create(services.CreateOrderInput{
		CustomerID: customer.ID,
		Products:   []services.LineItemInput{{ProductID: soup.ID, Quantity: 3}},
	})
	require.NoError(t, err)

	newItems := []services.LineItemInput{{ProductID: steak.ID, Quantity: 2}}
	status := models.StatusConfirmed
	order, err = svc.Update(order.ID, services.UpdateOrderInput{
		Status:   &status,
		Products: &newItems,
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusConfirmed, order.Status)
	require.Len(t, order.LineItems, 1)
	assert.Equal(t, steak.ID, order.LineItems[0].ProductID)
	assert.Equal(t, "37.80", order.TotalPrice.StringFixed(2))
}

func TestUpdateFieldsOnlyKeepsLineItems(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewOrderService(db)
	customer := seedCustomer(t, db)
	soup := seedProduct(t, db, "Onion Soup", "6.50")

	order, err := svc.Create(services.CreateOrderInput{
		CustomerID: customer.ID,
		Products:   []services.LineItemInput{{ProductID: soup.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	comments := "table 9"
	order, err = svc.Update(order.ID, services.UpdateOrderInput{Comments: &comments})
	require.NoError(t, err)

	assert.Equal(t, "table 9", order.Comments)
	require.Len(t, order.LineItems, 1)
	assert.Equal(t, "13.00", order.TotalPrice.StringFixed(2))
}

func TestUpdateInvalidStatusRejected(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewOrderService(db)
	customer := seedCustomer(t, db)

	order, err := svc.Create(services.CreateOrderInput{CustomerID: customer.ID})
	require.NoError(t, err)

	bad := "vanished"
	_, err = svc.Update(order.ID, services.UpdateOrderInput{Status: &bad})
	require.Error(t, err)
	_, ok := apperr.IsValidation(err)
	assert.True(t, ok)
}

func TestRecalculateRepairsDriftedTotal(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewOrderService(db)
	customer := seedCustomer(t, db)
	soup := seedProduct(t, db, "Onion Soup", "6.50")

	order, err := svc.Create(services.CreateOrderInput{
		CustomerID: customer.ID,
		Products:   []services.LineItemInput{{ProductID: soup.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	// Corrupt the stored total out-of-band.
	require.NoError(t, db.Model(&models.Order{}).
		Where("id = ?", order.ID).
		Update("total_price", decimal.RequireFromString("99.99")).Error)

	order, err = svc.RecalculateTotal(order.ID)
	require.NoError(t, err)
	assert.Equal(t, "13.00", order.TotalPrice.StringFixed(2))
}

func TestDeleteOrderRemovesLineItems(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewOrderService(db)
	customer := seedCustomer(t, db)
	soup := seedProduct(t, db, "Onion Soup", "6.50")

	order, err := svc.Create(services.CreateOrderInput{
		CustomerID: customer.ID,
		Products:   []services.LineItemInput{{ProductID: soup.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(order.ID))

	var items int64
	db.Model(&models.OrderLineItem{}).Where("order_id = ?", order.ID).Count(&items)
	assert.Zero(t, items)

	_, err = svc.RecalculateTotal(order.ID)
	_, ok := apperr.IsNotFound(err)
	assert.True(t, ok)
}

func TestCustomerDeleteCascadesToOrders(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewOrderService(db)
	customers := repositories.NewCustomerRepository(db)
	customer := seedCustomer(t, db)
	soup := seedProduct(t, db, "Onion Soup", "6.50")

	order, err := svc.Create(services.CreateOrderInput{
		CustomerID: customer.ID,
		Products:   []services.LineItemInput{{ProductID: soup.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	require.NoError(t, customers.Delete(customer.ID))

	var orders, items int64
	db.Model(&models.Order{}).Where("id = ?", order.ID).Count(&orders)
	db.Model(&models.OrderLineItem{}).Where("order_id = ?", order.ID).Count(&items)
	assert.Zero(t, orders)
	assert.Zero(t, items)
}

func TestProductDeleteRecalculatesAffectedOrders(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewOrderService(db)
	products := repositories.NewProductRepository(db)
	customer := seedCustomer(t, db)
	soup := seedProduct(t, db, "Onion Soup", "6.50")
	steak := seedProduct(t, db, "Steak Frites", "18.90")

	order, err := svc.Create(services.CreateOrderInput{
		CustomerID: customer.ID,
		Products: []services.LineItemInput{
			{ProductID: soup.ID, Quantity: 2},
			{ProductID: steak.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	require.NoError(t, products.Delete(steak.ID))

	order, err = services.NewOrderService(db).RecalculateTotal(order.ID)
	require.NoError(t, err)
	assert.Equal(t, "13.00", order.TotalPrice.StringFixed(2))
}
