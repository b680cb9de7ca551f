package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/fennwick/brasserie/app/models"
	"github.com/fennwick/brasserie/app/repositories"
	"github.com/fennwick/brasserie/pkg/logger"
	"github.com/fennwick/brasserie/pkg/storage"
)

// ExportService writes order reports through the storage manager, so the
// file lands on local disk in development and in a bucket in production.
type ExportService struct {
	orders *repositories.OrderRepository
}

func NewExportService(db *gorm.DB) *ExportService {
	return &ExportService{orders: repositories.NewOrderRepository(db)}
}

// ExportOrdersCSV writes all orders matching the filters as CSV to the
// named disk ("" = default disk) and returns the stored path.
func (s *ExportService) ExportOrdersCSV(disk string, filters repositories.OrderFilters) (string, error) {
	orders, err := s.orders.All(filters)
	if err != nil {
		return "", fmt.Errorf("export: load orders: %w", err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"order_id", "customer", "status", "method_of_payment",
		"order_placed", "total_price", "items",
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, o := range orders {
		if err := w.Write(s.row(o)); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	path := fmt.Sprintf("exports/orders-%s.csv", time.Now().Format("20060102-150405"))

	var writeErr error
	if disk == "" {
		writeErr = storage.Put(path, buf.Bytes())
	} else {
		writeErr = storage.Use(disk).Put(path, buf.Bytes())
	}
	if writeErr != nil {
		return "", fmt.Errorf("export: write %s: %w", path, writeErr)
	}

	logger.Info("export: orders written", "path", path, "rows", len(orders))
	return path, nil
}

func (s *ExportService) row(o models.Order) []string {
	customer := ""
	if o.Customer != nil {
		customer = o.Customer.FullName
	}

	items := 0
	for _, li := range o.LineItems {
		items += li.Quantity
	}

	return []string{
		fmt.Sprintf("%d", o.ID),
		customer,
		o.Status,
		o.MethodOfPayment,
		o.OrderPlaced.Format(time.RFC3339),
		o.TotalPrice.StringFixed(2),
		fmt.Sprintf("%d", items),
	}
}
