package migrate

import (
	"testing"
	"time"

	entity "saebridge/model/entity"
	"saebridge/service/legacy"
)

func customerRows() []legacy.Row {
	return []legacy.Row{
		// CLAVE, RFC, NOMBRE, MAIL, CALLE, NUMEXT, COLONIA, CODIGO,
		// MUNICIPIO, ESTADO, PAIS, TELEFONO, LIMCRED, DIASCRED, SALDO, CVE_VEND
		row("C001", "ABC010101XYZ", "Acme SA", "ventas@acme.mx",
			"Av. Juarez", "12", "Centro", "06000", "CDMX", "CDMX", "MEXICO",
			"5550001", 50000.0, int64(30), 1200.50, "V01"),
		row("C002", []byte("  DEF020202QRS "), "Beta SA", nil,
			"Calle 2", nil, nil, nil, nil, nil, nil,
			nil, nil, nil, nil, nil),
		row("C003", "GHI030303TUV", "Mal Formado", nil,
			"Calle 3", nil, nil, nil, nil, nil, nil,
			nil, "not-a-number", nil, nil, nil),
	}
}

func TestMigrateCustomers(t *testing.T) {
	db := testDB(t)
	src := &fakeSource{data: map[string][]legacy.Row{"FROM CLIE01": customerRows()}}

	res, err := MigrateCustomers(testRun(t, db, src))
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if res.TotalRows != 3 || res.Inserted != 2 || res.Skipped != 1 {
		t.Fatalf("total=%d inserted=%d skipped=%d", res.TotalRows, res.Inserted, res.Skipped)
	}
	if len(res.Warnings) == 0 {
		t.Fatal("malformed row produced no warning")
	}

	var got entity.Customer
	if err := db.Where("rfc = ?", "ABC010101XYZ_C001").First(&got).Error; err != nil {
		t.Fatalf("composite business key not stored: %v", err)
	}
	if got.Calle != "Av. Juarez 12" {
		t.Fatalf("street not joined with exterior number: %q", got.Calle)
	}
	if got.DiasCredito != 30 {
		t.Fatalf("dias_credito = %d", got.DiasCredito)
	}

	// Padded []byte RFC is trimmed before composing the key.
	if err := db.Where("rfc = ?", "DEF020202QRS_C002").First(&entity.Customer{}).Error; err != nil {
		t.Fatalf("byte-slice RFC not normalized: %v", err)
	}
}

func TestMigrateCustomers_Rerun(t *testing.T) {
	db := testDB(t)
	src := &fakeSource{data: map[string][]legacy.Row{"FROM CLIE01": customerRows()}}

	if _, err := MigrateCustomers(testRun(t, db, src)); err != nil {
		t.Fatalf("first run: %v", err)
	}
	var firstID string
	db.Table("customers").Where("rfc = ?", "ABC010101XYZ_C001").Select("id").Scan(&firstID)

	// Fresh run context: the dedup filter and resolver are run-scoped.
	res, err := MigrateCustomers(testRun(t, db, src))
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if res.Inserted != 0 || res.Updated != 2 {
		t.Fatalf("rerun: inserted=%d updated=%d", res.Inserted, res.Updated)
	}

	var count int64
	db.Table("customers").Count(&count)
	if count != 2 {
		t.Fatalf("rerun duplicated rows: count=%d", count)
	}
	var secondID string
	db.Table("customers").Where("rfc = ?", "ABC010101XYZ_C001").Select("id").Scan(&secondID)
	if firstID != secondID {
		t.Fatalf("rerun replaced the identifier: %s vs %s", firstID, secondID)
	}
}

func TestMigrateCustomers_RerunDependentsKeepReferences(t *testing.T) {
	db := testDB(t)
	apli := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	src := &fakeSource{data: map[string][]legacy.Row{
		"FROM CLIE01": customerRows(),
		// REFER, CVE_CLIE, NO_FACTURA, FECHA_APLI, FECHA_VENC, IMPORTE
		"FROM CUEN_M01":   {row("F900", "C001", "F-900", apli, apli, 800.0)},
		"FROM CUEN_DET01": {},
	}}

	// First run migrates only customers, as after an aborted pipeline.
	if _, err := MigrateCustomers(testRun(t, db, src)); err != nil {
		t.Fatalf("first run: %v", err)
	}

	// The second run starts with an empty resolver: dependents must point at
	// the ids already stored, not freshly synthesized ones.
	run2 := testRun(t, db, src)
	if _, err := MigrateCustomers(run2); err != nil {
		t.Fatalf("second run customers: %v", err)
	}
	if _, err := MigrateReceivables(run2); err != nil {
		t.Fatalf("second run receivables: %v", err)
	}

	var storedID string
	db.Table("customers").Where("rfc = ?", "ABC010101XYZ_C001").Select("id").Scan(&storedID)
	var rec entity.Receivable
	if err := db.Where("folio = ?", "F-900").First(&rec).Error; err != nil {
		t.Fatalf("receivable missing: %v", err)
	}
	if rec.CustomerID != storedID {
		t.Fatalf("dangling reference: receivable customer_id=%s, stored customer id=%s",
			rec.CustomerID, storedID)
	}
}

func TestMigrateSuppliers_CompositeKey(t *testing.T) {
	db := testDB(t)
	src := &fakeSource{data: map[string][]legacy.Row{
		// CLAVE, NOMBRE, RFC, CALLE, COLONIA, POBLA, ESTADO, TELEFONO, MAIL, CONTACTO, DIASCRED, LIMCRED
		"FROM PROV01": {
			row("P001", "Proveedora SA", "PRV010101AAA",
				"Calle 1", "Col A", "Puebla", "PUE", "2220001", nil, "Ana", int64(15), 10000.0),
			row("P002", "Sin RFC SA", nil,
				"Calle 2", nil, nil, nil, nil, nil, nil, nil, nil),
		},
	}}

	res, err := MigrateSuppliers(testRun(t, db, src))
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if res.Inserted != 2 {
		t.Fatalf("inserted=%d", res.Inserted)
	}

	var got entity.Supplier
	if err := db.Where("rfc = ?", "PRV010101AAA_P001").First(&got).Error; err != nil {
		t.Fatalf("composite key not stored: %v", err)
	}
	if got.Direccion != "Calle 1, Col A, Puebla, PUE" {
		t.Fatalf("direccion = %q", got.Direccion)
	}

	// Missing RFC falls back to the generic placeholder, still unique per code.
	if err := db.Where("rfc = ?", GenericRFC+"_P002").First(&entity.Supplier{}).Error; err != nil {
		t.Fatalf("generic RFC composite not stored: %v", err)
	}
}
