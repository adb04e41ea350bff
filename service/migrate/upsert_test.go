package migrate

import (
	"testing"

	"github.com/shopspring/decimal"

	entity "saebridge/model/entity"
)

func TestUpsert_InsertThenUpdate(t *testing.T) {
	db := testDB(t)

	rows := []entity.Customer{
		{ID: "id-1", RFC: "AAA_C001", RazonSocial: "Primero", StoreID: "s1", Saldo: decimal.NewFromInt(10)},
		{ID: "id-2", RFC: "BBB_C002", RazonSocial: "Segundo", StoreID: "s1"},
	}
	keyOf := func(c entity.Customer) string { return c.RFC }

	up, err := Upsert(db, customerUpsert, rows, nil, keyOf, 100)
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if up.Inserted != 2 || up.Updated != 0 {
		t.Fatalf("first pass: inserted=%d updated=%d", up.Inserted, up.Updated)
	}

	// Second pass with fresh ids must hit the business key, not insert.
	rows[0].ID = "id-ignored"
	rows[0].RazonSocial = "Primero SA de CV"
	existing := map[string]bool{"AAA_C001": true, "BBB_C002": true}
	up, err = Upsert(db, customerUpsert, rows, existing, keyOf, 100)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if up.Inserted != 0 || up.Updated != 2 {
		t.Fatalf("second pass: inserted=%d updated=%d", up.Inserted, up.Updated)
	}

	var count int64
	db.Table("customers").Count(&count)
	if count != 2 {
		t.Fatalf("row count = %d, want 2", count)
	}

	var got entity.Customer
	if err := db.Where("rfc = ?", "AAA_C001").First(&got).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.ID != "id-1" {
		t.Fatalf("conflict update replaced the primary key: %s", got.ID)
	}
	if got.RazonSocial != "Primero SA de CV" {
		t.Fatalf("mutable column not updated: %s", got.RazonSocial)
	}
}

func TestUpsert_InsertOrIgnore(t *testing.T) {
	db := testDB(t)

	items := []entity.InvoiceItem{{ID: "item-1", InvoiceID: "inv-1", Cantidad: 2, Importe: decimal.NewFromInt(50)}}
	keyOf := func(i entity.InvoiceItem) string { return i.ID }

	if _, err := Upsert(db, invoiceItemUpsert, items, nil, keyOf, 100); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	items[0].Cantidad = 99
	if _, err := Upsert(db, invoiceItemUpsert, items, nil, keyOf, 100); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	var got entity.InvoiceItem
	db.First(&got, "id = ?", "item-1")
	if got.Cantidad != 2 {
		t.Fatalf("insert-or-ignore overwrote the row: cantidad=%v", got.Cantidad)
	}
}

func TestUpsert_EmptyBatch(t *testing.T) {
	db := testDB(t)
	up, err := Upsert(db, customerUpsert, []entity.Customer{}, nil,
		func(c entity.Customer) string { return c.RFC }, 100)
	if err != nil {
		t.Fatalf("empty batch: %v", err)
	}
	if up.Inserted != 0 || up.Updated != 0 {
		t.Fatal("empty batch produced counts")
	}
}
