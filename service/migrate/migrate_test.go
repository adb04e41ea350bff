package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"saebridge/config"
	entity "saebridge/model/entity"
	"saebridge/service/legacy"
)

// testDB opens a temp-file sqlite store with the full target schema.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("saebridge_test_%s_%d.db", strings.ReplaceAll(t.Name(), "/", "_"), time.Now().UnixNano()))
	t.Cleanup(func() { os.Remove(tmpFile) })
	db, err := gorm.Open(sqlite.Open(tmpFile), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")

	if err := db.AutoMigrate(
		&entity.Store{},
		&entity.Customer{},
		&entity.Supplier{},
		&entity.Product{},
		&entity.Invoice{},
		&entity.InvoiceItem{},
		&entity.Purchase{},
		&entity.PurchaseItem{},
		&entity.InventoryMovement{},
		&entity.Receivable{},
		&entity.AssociatedDocument{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// fakeSource serves canned legacy rows. Exact (whitespace-normalized) query
// matches win; otherwise the first registered token contained in the query.
type fakeSource struct {
	data map[string][]legacy.Row
}

func (f *fakeSource) Select(query string, args ...any) ([]legacy.Row, error) {
	norm := strings.Join(strings.Fields(query), " ")
	if rows, ok := f.data[norm]; ok {
		return rows, nil
	}
	for token, rows := range f.data {
		if strings.Contains(norm, token) {
			return rows, nil
		}
	}
	return nil, nil
}

func row(values ...any) legacy.Row {
	return legacy.Row(values)
}

func testRun(t *testing.T, db *gorm.DB, src legacy.Source) *Run {
	t.Helper()
	params := config.RunParams{
		StoreID:        "default-store",
		Now:            "2024-06-15",
		Epsilon:        0.1,
		AuditPrecision: 2,
		BatchSize:      100,
	}
	log := config.GetLogger()
	return NewRun(params, src, db, log)
}
