package migrate

import (
	"testing"

	entity "saebridge/model/entity"
	"saebridge/service/legacy"
)

func TestMigrateWarehouseStock(t *testing.T) {
	db := testDB(t)
	whA, whB := "2", "3"
	stores := []entity.Store{
		{ID: "default-store", Name: "Matriz"},
		{ID: "store-branch-a", Name: "Sucursal A", LegacyKey: &whA},
		{ID: "store-branch-b", Name: "Sucursal B", LegacyKey: &whB},
	}
	if err := db.Create(&stores).Error; err != nil {
		t.Fatalf("seed stores: %v", err)
	}

	src := &fakeSource{data: map[string][]legacy.Row{
		// CVE_ART, CVE_ALM, EXIST, STOCK_MIN, STOCK_MAX
		"FROM MULT01": {
			row("SKU-1", "2", 20.0, 1.0, 100.0),
			row("SKU-1", "3", 30.0, 1.0, 100.0),
			row("SKU-2", "2", 5.0, 0.0, 10.0),
			row("SKU-2", "9", 7.0, 0.0, 10.0), // unmapped warehouse
		},
		// CVE_ART, DESCR, LIN_PROD, EXIST, PRECIO, UNI_MED
		"FROM INVE01 i": {
			row("SKU-1", "Widget", "L1", 50.0, 19.99, "PZA"),
			row("SKU-2", "Gadget", "L1", 12.0, 9.99, "PZA"), // includes warehouse 9's 7
		},
	}}

	res, err := MigrateWarehouseStock(testRun(t, db, src))
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if res.Inserted != 3 {
		t.Fatalf("inserted=%d, want 3", res.Inserted)
	}
	if res.DroppedWarehouses["9"] != 1 {
		t.Fatalf("dropped[9]=%d, want 1", res.DroppedWarehouses["9"])
	}
	// SKU-1 sums to 50 and matches; SKU-2 lost the unmapped row (12 vs 5).
	if res.AggregateMismatch != 1 {
		t.Fatalf("mismatches=%d, want 1", res.AggregateMismatch)
	}

	var got entity.Product
	if err := db.Where("store_id = ? AND sku = ?", "store-branch-a", "SKU-1").First(&got).Error; err != nil {
		t.Fatalf("branch row missing: %v", err)
	}
	if got.Stock != 20 || got.Description != "Widget" {
		t.Fatalf("branch row: stock=%v descr=%q", got.Stock, got.Description)
	}

	// Re-run keeps the same deterministic ids and updates in place.
	firstID := got.ID
	res, err = MigrateWarehouseStock(testRun(t, db, src))
	if err != nil {
		t.Fatalf("rerun: %v", err)
	}
	if res.Inserted != 0 || res.Updated != 3 {
		t.Fatalf("rerun: inserted=%d updated=%d", res.Inserted, res.Updated)
	}
	db.Where("store_id = ? AND sku = ?", "store-branch-a", "SKU-1").First(&got)
	if got.ID != firstID {
		t.Fatal("rerun changed a branch row id")
	}
}

func TestMigrateWarehouseStock_MalformedMaster(t *testing.T) {
	db := testDB(t)
	whA := "2"
	stores := []entity.Store{
		{ID: "default-store", Name: "Matriz"},
		{ID: "store-branch-a", Name: "Sucursal A", LegacyKey: &whA},
	}
	if err := db.Create(&stores).Error; err != nil {
		t.Fatalf("seed stores: %v", err)
	}

	src := &fakeSource{data: map[string][]legacy.Row{
		"FROM MULT01": {
			row("SKU-OK", "2", 4.0, 0.0, 10.0),
			row("SKU-BAD", "2", 3.0, 0.0, 10.0),
		},
		"FROM INVE01 i": {
			row("SKU-OK", "Widget", "L1", 4.0, 19.99, "PZA"),
			row("SKU-BAD", "Broken", "L1", "not-a-number", 9.99, "PZA"),
		},
	}}

	res, err := MigrateWarehouseStock(testRun(t, db, src))
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if res.Inserted != 1 {
		t.Fatalf("inserted=%d, want 1", res.Inserted)
	}
	// Skips: the malformed master row plus the detail row it orphans.
	if res.Skipped != 2 {
		t.Fatalf("skipped=%d, want 2", res.Skipped)
	}
	if len(res.Warnings) < 2 {
		t.Fatalf("warnings=%d, want at least 2", len(res.Warnings))
	}
	var count int64
	db.Table("products").Where("sku = ?", "SKU-BAD").Count(&count)
	if count != 0 {
		t.Fatal("malformed master row was written anyway")
	}
}
