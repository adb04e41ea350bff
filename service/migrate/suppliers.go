package migrate

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	entity "saebridge/model/entity"
	catalogRepo "saebridge/model/repository/catalog"
	"saebridge/service/legacy"
)

// PROV01 is the legacy supplier master.
const supplierQuery = `
	SELECT CLAVE, NOMBRE, RFC, CALLE, COLONIA, POBLA, ESTADO,
	       TELEFONO, MAIL, CONTACTO, DIASCRED, LIMCRED
	FROM PROV01`

var supplierUpsert = UpsertSpec{
	Table:           "suppliers",
	ConflictColumns: []string{"store_id", "rfc"},
	UpdateColumns: []string{
		"razon_social", "direccion", "telefono", "email", "contacto",
		"dias_credito", "limite_credito",
	},
}

// MigrateSuppliers moves the legacy supplier master. Suppliers get the same
// composite-RFC business key as customers so purchase documents can link
// back through the supplier code.
func MigrateSuppliers(run *Run) (*Result, error) {
	start := time.Now()
	res := &Result{Entity: "suppliers"}

	// Reuse stored ids on re-runs so purchases keep valid references.
	repo := catalogRepo.NewCatalogRepository(run.Target)
	knownCodes, err := repo.SupplierCodeMap(run.Params.StoreID)
	if err != nil {
		return nil, err
	}
	run.Resolver.Prime(EntitySupplier, knownCodes)

	rows, err := run.Source.Select(supplierQuery)
	if err != nil {
		return nil, err
	}
	res.TotalRows = len(rows)

	records := make([]entity.Supplier, 0, len(rows))
	keys := make([]string, 0, len(rows))

	for _, row := range rows {
		if run.Dedup.Check([]byte("suppliers|" + fmt.Sprint(row))) {
			res.Skipped++
			continue
		}

		clave := legacy.String(row, 0, "")
		if clave == "" {
			res.Skipped++
			res.warnf("empty supplier code, skipping")
			continue
		}

		diasCred, err1 := legacy.Int(row, 10, 0)
		limCred, err2 := legacy.Float(row, 11, 0)
		if err := errors.Join(err1, err2); err != nil {
			res.Skipped++
			res.warnf("supplier %s: %v", clave, err)
			run.Log.WithFields(logrus.Fields{"entity": "suppliers", "key": clave}).Warn(err)
			continue
		}

		parts := []string{
			legacy.String(row, 3, ""),
			legacy.String(row, 4, ""),
			legacy.String(row, 5, ""),
			legacy.String(row, 6, ""),
		}
		direccion := strings.Trim(strings.Join(parts, ", "), ", ")

		rfc := CompositeRFC(legacy.String(row, 2, ""), clave)
		s := entity.Supplier{
			ID:            run.Resolver.Resolve(EntitySupplier, clave),
			RFC:           rfc,
			RazonSocial:   legacy.String(row, 1, "Proveedor "+clave),
			Direccion:     direccion,
			Telefono:      legacy.StringPtr(row, 7),
			Email:         legacy.StringPtr(row, 8),
			Contacto:      legacy.StringPtr(row, 9),
			DiasCredito:   diasCred,
			LimiteCredito: decimal.NewFromFloat(limCred),
			StoreID:       run.Params.StoreID,
			UserID:        run.UserID(),
		}
		records = append(records, s)
		keys = append(keys, rfc)
	}

	existing, err := repo.ExistingKeys("suppliers", "rfc", run.Params.StoreID, keys, run.Params.BatchSize)
	if err != nil {
		return nil, err
	}

	up, err := Upsert(run.Target, supplierUpsert, records, existing,
		func(s entity.Supplier) string { return s.RFC }, run.Params.BatchSize)
	if err != nil {
		return nil, err
	}
	res.Inserted, res.Updated = up.Inserted, up.Updated
	res.Elapsed = time.Since(start)

	run.Log.WithFields(logrus.Fields{
		"entity": "suppliers", "inserted": res.Inserted, "updated": res.Updated, "skipped": res.Skipped,
	}).Info("migration step done")
	return res, nil
}
