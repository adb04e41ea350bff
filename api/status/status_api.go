package status

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"saebridge/api"
)

func init() {
	api.RegisterModule(RegisterStatusRoutes)
}

var statusTables = []string{
	"customers", "suppliers", "products", "invoices", "invoice_items",
	"purchases", "purchase_items", "inventory_movements", "receivables",
	"associated_documents",
}

// RegisterStatusRoutes exposes per-table row counts of the target store, a
// cheap liveness view of migration progress.
func RegisterStatusRoutes(apiGroup *echo.Group, db *gorm.DB) {
	apiGroup.GET("/status", func(c echo.Context) error {
		counts := make(map[string]int64, len(statusTables))
		for _, table := range statusTables {
			var n int64
			if err := db.Table(table).Count(&n).Error; err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
			}
			counts[table] = n
		}
		return c.JSON(http.StatusOK, echo.Map{"tables": counts})
	})
}
