package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fennwick/brasserie/app/models"
	"github.com/fennwick/brasserie/app/services"
)

func TestDashboardStats(t *testing.T) {
	db := newTestDB(t)
	orders := services.NewOrderService(db)
	dashboard := services.NewDashboardService(db)
	customer := seedCustomer(t, db)
	soup := seedProduct(t, db, "Onion Soup", "6.50")

	_, err := orders.Create(services.CreateOrderInput{
		CustomerID: customer.ID,
		Products:   []services.LineItemInput{{ProductID: soup.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	_, err = orders.Create(services.CreateOrderInput{
		CustomerID: customer.ID,
		Status:     models.StatusCompleted,
	})
	require.NoError(t, err)

	stats, err := dashboard.Stats(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 1, stats.TotalCustomers)
	assert.EqualValues(t, 1, stats.TotalProducts)
	assert.EqualValues(t, 2, stats.TotalOrders)
	assert.EqualValues(t, 1, stats.PendingOrders)
	require.Len(t, stats.RecentOrders, 2)
	assert.Equal(t, "Marie Laurent", stats.RecentOrders[0].CustomerName)
}

func TestDashboardStatsCountsOnlyActiveProducts(t *testing.T) {
	db := newTestDB(t)
	dashboard := services.NewDashboardService(db)
	seedProduct(t, db, "Onion Soup", "6.50")
	retired := seedProduct(t, db, "Old Special", "4.00")
	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", retired.ID).
		Update("is_active", false).Error)

	stats, err := dashboard.Stats(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.TotalProducts)
}
