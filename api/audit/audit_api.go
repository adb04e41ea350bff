package audit

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"saebridge/api"
	"saebridge/config"
	"saebridge/core/cache"
	"saebridge/service/legacy"
	migrateService "saebridge/service/migrate"
)

const cacheKey = "audit:report"

func init() {
	api.RegisterModule(RegisterAuditRoutes)
}

// RegisterAuditRoutes exposes the reconciliation report. The report hits both
// databases with aggregate queries, so responses are cached for a minute.
func RegisterAuditRoutes(apiGroup *echo.Group, db *gorm.DB) {
	apiGroup.GET("/audit", func(c echo.Context) error {
		if v, ok := cache.GetInstance().Get(cacheKey); ok {
			return c.JSON(http.StatusOK, v)
		}

		params, err := config.LoadRunParams()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		legacyDB, err := config.NewLegacyDB()
		if err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": err.Error()})
		}
		defer legacyDB.Close()

		run := migrateService.NewRun(params, legacy.NewSQLSource(legacyDB), db, nil)
		report, err := migrateService.RunAudit(run)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}

		body := echo.Map{
			"ok":      report.OK(),
			"results": report.Results,
		}
		cache.GetInstance().Set(cacheKey, body, 60, []string{"audit"})
		return c.JSON(http.StatusOK, body)
	})
}
