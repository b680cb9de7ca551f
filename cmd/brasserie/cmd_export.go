package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fennwick/brasserie/app/repositories"
	"github.com/fennwick/brasserie/app/services"
	"github.com/fennwick/brasserie/pkg/database"
	"github.com/fennwick/brasserie/pkg/storage"
)

var (
	exportDisk     string
	exportStatus   string
	exportDateFrom string
	exportDateTo   string
)

// brasserie export:orders — write matching orders as CSV to a storage disk.
var exportOrdersCmd = &cobra.Command{
	Use:   "export:orders",
	Short: "Export orders as CSV to a storage disk",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootDB(); err != nil {
			return err
		}
		storage.Connect()

		path, err := services.NewExportService(database.DB).ExportOrdersCSV(exportDisk, repositories.OrderFilters{
			Status:   exportStatus,
			DateFrom: exportDateFrom,
			DateTo:   exportDateTo,
		})
		if err != nil {
			return err
		}
		fmt.Println("Exported:", path)
		return nil
	},
}

func init() {
	exportOrdersCmd.Flags().StringVar(&exportDisk, "disk", "", "target disk (default: STORAGE_DEFAULT)")
	exportOrdersCmd.Flags().StringVar(&exportStatus, "status", "", "filter by order status")
	exportOrdersCmd.Flags().StringVar(&exportDateFrom, "from", "", "orders placed on or after (YYYY-MM-DD)")
	exportOrdersCmd.Flags().StringVar(&exportDateTo, "to", "", "orders placed on or before (YYYY-MM-DD)")
}
