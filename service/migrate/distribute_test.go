package migrate

import "testing"

func TestDistribute_DropsUnmappedWarehouses(t *testing.T) {
	r := NewResolver()
	r.Prime(EntityWarehouse, map[string]string{"1": "store-a", "2": "store-b"})

	details := []WarehouseDetail{
		{WarehouseKey: "1", SKU: "SKU-1", Quantity: 20},
		{WarehouseKey: "2", SKU: "SKU-1", Quantity: 30},
		{WarehouseKey: "9", SKU: "SKU-1", Quantity: 5},
		{WarehouseKey: "9", SKU: "SKU-2", Quantity: 7},
	}
	res := Distribute(r, details)

	if len(res.Records) != 2 {
		t.Fatalf("got %d records, want 2", len(res.Records))
	}
	if res.Dropped["9"] != 2 {
		t.Fatalf("dropped[9] = %d, want 2", res.Dropped["9"])
	}
	for _, rec := range res.Records {
		if rec.StoreID != "store-a" && rec.StoreID != "store-b" {
			t.Fatalf("record resolved to unknown partition %s", rec.StoreID)
		}
	}
}

func TestVerifyAggregate(t *testing.T) {
	records := []StockDistribution{
		{SKU: "SKU-1", Quantity: 20},
		{SKU: "SKU-1", Quantity: 30},
		{SKU: "SKU-2", Quantity: 5},
	}
	if !VerifyAggregate("SKU-1", 50, records, 0.1) {
		t.Fatal("matching aggregate flagged as mismatch")
	}
	if VerifyAggregate("SKU-1", 49, records, 0.1) {
		t.Fatal("stale aggregate not flagged")
	}
	// Only the product's own rows count.
	if !VerifyAggregate("SKU-2", 5, records, 0.1) {
		t.Fatal("other products' rows leaked into the sum")
	}
}
