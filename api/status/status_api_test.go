package status

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	entity "saebridge/model/entity"
)

func statusDB(t *testing.T) *gorm.DB {
	t.Helper()
	tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("status_test_%d.db", time.Now().UnixNano()))
	t.Cleanup(func() { os.Remove(tmpFile) })
	db, err := gorm.Open(sqlite.Open(tmpFile), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&entity.Customer{}, &entity.Supplier{}, &entity.Product{},
		&entity.Invoice{}, &entity.InvoiceItem{},
		&entity.Purchase{}, &entity.PurchaseItem{},
		&entity.InventoryMovement{}, &entity.Receivable{},
		&entity.AssociatedDocument{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestStatusRoute(t *testing.T) {
	db := statusDB(t)
	customers := []entity.Customer{
		{ID: "c1", RFC: "A_1", RazonSocial: "Uno", StoreID: "s1"},
		{ID: "c2", RFC: "B_2", RazonSocial: "Dos", StoreID: "s1"},
	}
	if err := db.Create(&customers).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	e := echo.New()
	RegisterStatusRoutes(e.Group("/api"), db)

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Tables map[string]int64 `json:"tables"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Tables["customers"] != 2 {
		t.Fatalf("customers = %d, want 2", body.Tables["customers"])
	}
	if body.Tables["invoices"] != 0 {
		t.Fatalf("invoices = %d, want 0", body.Tables["invoices"])
	}
}
