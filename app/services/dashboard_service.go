package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/fennwick/brasserie/app/models"
	"github.com/fennwick/brasserie/app/repositories"
	"github.com/fennwick/brasserie/pkg/cache"
	"github.com/fennwick/brasserie/pkg/collection"
	"github.com/fennwick/brasserie/pkg/event"
	"github.com/fennwick/brasserie/pkg/logger"
)

const (
	dashboardCacheKey = "dashboard:stats"
	dashboardCacheTTL = 30 * time.Second
)

// RecentOrder is the reduced order shape shown on the dashboard.
type RecentOrder struct {
	ID           uint   `json:"id"`
	CustomerName string `json:"customer_name"`
	Status       string `json:"status"`
	TotalPrice   string `json:"total_price"`
	OrderPlaced  string `json:"order_placed"`
}

// DashboardStats is the payload of GET /api/dashboard/stats/.
type DashboardStats struct {
	TotalCustomers int64         `json:"total_customers"`
	TotalProducts  int64         `json:"total_products"`
	TotalOrders    int64         `json:"total_orders"`
	PendingOrders  int64         `json:"pending_orders"`
	RecentOrders   []RecentOrder `json:"recent_orders"`
}

// DashboardService aggregates counts for the back-office landing page.
// Stats are cached in Redis for a short TTL; any order lifecycle event
// invalidates the cache so the numbers never lag a mutation.
type DashboardService struct {
	customers *repositories.CustomerRepository
	products  *repositories.ProductRepository
	orders    *repositories.OrderRepository
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	s := &DashboardService{
		customers: repositories.NewCustomerRepository(db),
		products:  repositories.NewProductRepository(db),
		orders:    repositories.NewOrderRepository(db),
	}

	invalidate := func(interface{}) {
		if err := cache.Delete(context.Background(), dashboardCacheKey); err != nil {
			logger.Warn("dashboard: cache invalidation failed", "error", err)
		}
	}
	event.Listen(EventOrderCreated, invalidate)
	event.Listen(EventOrderUpdated, invalidate)
	event.Listen(EventOrderDeleted, invalidate)

	return s
}

// Stats returns the dashboard numbers, served from cache when fresh.
func (s *DashboardService) Stats(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats
	if cache.Get(ctx, dashboardCacheKey, &stats) {
		return stats, nil
	}

	recent, err := s.orders.Recent(5)
	if err != nil {
		return DashboardStats{}, err
	}

	stats = DashboardStats{
		TotalCustomers: s.customers.Count(),
		TotalProducts:  s.products.CountActive(),
		TotalOrders:    s.orders.Count(""),
		PendingOrders:  s.orders.Count(models.StatusPending),
		RecentOrders: collection.Map(recent, func(o models.Order) RecentOrder {
			name := ""
			if o.Customer != nil {
				name = o.Customer.FullName
			}
			return RecentOrder{
				ID:           o.ID,
				CustomerName: name,
				Status:       o.Status,
				TotalPrice:   o.TotalPrice.StringFixed(2),
				OrderPlaced:  o.OrderPlaced.Format(time.RFC3339),
			}
		}),
	}

	if err := cache.Set(ctx, dashboardCacheKey, stats, dashboardCacheTTL); err != nil {
		logger.Warn("dashboard: cache write failed", "error", err)
	}
	return stats, nil
}
