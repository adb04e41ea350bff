package migrate

import (
	"testing"

	"gorm.io/gorm"

	entity "saebridge/model/entity"
	"saebridge/service/legacy"
)

func reconcileLegacy() map[string][]legacy.Row {
	return map[string][]legacy.Row{
		"SELECT COUNT(*) FROM CLIE01":       {row(int64(2))},
		"SELECT COUNT(*) FROM INVE01":       {row(int64(2))},
		"SELECT SUM(EXIST) FROM INVE01":     {row(50.0)},
		"SELECT COUNT(*) FROM FACTF01":      {row(int64(1))},
		"SELECT COUNT(*) FROM FACTV01":      {row(int64(1))},
		"SELECT SUM(CAN_TOT) FROM FACTF01":  {row(100.0)},
		"SELECT SUM(CAN_TOT) FROM FACTV01":  {row(200.0)},
		"SELECT SUM(IMPORTE) FROM FACTF01":  {row(116.0)},
		"SELECT SUM(IMPORTE) FROM FACTV01":  {row(200.0)},
		"SELECT COUNT(*) FROM PAR_FACTF01":  {row(int64(2))},
		"SELECT COUNT(*) FROM PAR_FACTV01":  {row(int64(1))},
	}
}

func seedReconcileTarget(t *testing.T, db *gorm.DB) {
	t.Helper()
	customers := []entity.Customer{
		{ID: "c1", RFC: "A_1", RazonSocial: "Uno", StoreID: "default-store"},
		{ID: "c2", RFC: "B_2", RazonSocial: "Dos", StoreID: "default-store"},
	}
	products := []entity.Product{
		{ID: "p1", SKU: "SKU-1", Description: "Widget", Stock: 20, StoreID: "default-store"},
		{ID: "p2", SKU: "SKU-2", Description: "Gadget", Stock: 30, StoreID: "default-store"},
	}
	invoices := []entity.Invoice{
		{ID: "i1", UUID: "U-1", CustomerID: "c1", Subtotal: d(100), Total: d(116), StoreID: "default-store"},
		{ID: "i2", UUID: "U-2", CustomerID: "c1", Subtotal: d(200), Total: d(200), StoreID: "default-store"},
	}
	items := []entity.InvoiceItem{
		{ID: "it1", InvoiceID: "i1"},
		{ID: "it2", InvoiceID: "i1"},
		{ID: "it3", InvoiceID: "i2"},
	}
	for _, seed := range []any{&customers, &products, &invoices, &items} {
		if err := db.Create(seed).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func TestRunAudit_AllMatch(t *testing.T) {
	db := testDB(t)
	seedReconcileTarget(t, db)

	report, err := RunAudit(testRun(t, db, &fakeSource{data: reconcileLegacy()}))
	if err != nil {
		t.Fatalf("audit: %v", err)
	}
	if !report.OK() {
		t.Fatalf("expected clean audit, mismatches: %+v", report.Mismatches())
	}
	if len(report.Results) != 7 {
		t.Fatalf("got %d metrics, want 7", len(report.Results))
	}
}

func TestRunAudit_DetectsDrift(t *testing.T) {
	db := testDB(t)
	seedReconcileTarget(t, db)

	data := reconcileLegacy()
	data["SELECT COUNT(*) FROM CLIE01"] = []legacy.Row{row(int64(5))}
	data["SELECT SUM(IMPORTE) FROM FACTF01"] = []legacy.Row{row(999.0)}

	report, err := RunAudit(testRun(t, db, &fakeSource{data: data}))
	if err != nil {
		t.Fatalf("audit: %v", err)
	}
	if report.OK() {
		t.Fatal("drift not detected")
	}
	if got := len(report.Mismatches()); got != 2 {
		t.Fatalf("got %d mismatches, want 2", got)
	}
}
