package migrate

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	entity "saebridge/model/entity"
	catalogRepo "saebridge/model/repository/catalog"
	"saebridge/service/legacy"
)

// CLIE01 is the legacy customer master.
const customerQuery = `
	SELECT CLAVE, RFC, NOMBRE, MAIL,
	       CALLE, NUMEXT, COLONIA, CODIGO, MUNICIPIO, ESTADO, PAIS,
	       TELEFONO, LIMCRED, DIASCRED, SALDO, CVE_VEND
	FROM CLIE01`

var customerUpsert = UpsertSpec{
	Table:           "customers",
	ConflictColumns: []string{"store_id", "rfc"},
	UpdateColumns: []string{
		"razon_social", "email", "calle", "colonia", "codigo_postal",
		"municipio", "estado", "telefono", "limite_credito", "dias_credito",
		"saldo", "vendedor_id",
	},
}

// MigrateCustomers moves the legacy customer master into the target store.
// The business key is the composite RFC (raw tax id + legacy code) because
// raw RFCs repeat in the legacy source.
func MigrateCustomers(run *Run) (*Result, error) {
	start := time.Now()
	res := &Result{Entity: "customers"}

	// Re-runs must reuse the ids already stored, or dependents written later
	// in the run would reference customers that do not exist.
	repo := catalogRepo.NewCatalogRepository(run.Target)
	knownCodes, err := repo.CustomerCodeMap(run.Params.StoreID)
	if err != nil {
		return nil, err
	}
	run.Resolver.Prime(EntityCustomer, knownCodes)

	rows, err := run.Source.Select(customerQuery)
	if err != nil {
		return nil, err
	}
	res.TotalRows = len(rows)

	records := make([]entity.Customer, 0, len(rows))
	keys := make([]string, 0, len(rows))

	for _, row := range rows {
		if run.Dedup.Check([]byte("customers|" + fmt.Sprint(row))) {
			res.Skipped++
			continue
		}

		clave := legacy.String(row, 0, "")
		if clave == "" {
			res.Skipped++
			res.warnf("empty client code, skipping")
			continue
		}

		limCred, err1 := legacy.Float(row, 12, 0)
		diasCred, err2 := legacy.Int(row, 13, 0)
		saldo, err3 := legacy.Float(row, 14, 0)
		if err := errors.Join(err1, err2, err3); err != nil {
			res.Skipped++
			res.warnf("client %s: %v", clave, err)
			run.Log.WithFields(logrus.Fields{"entity": "customers", "key": clave}).Warn(err)
			continue
		}

		rfc := CompositeRFC(legacy.String(row, 1, ""), clave)
		calle := legacy.String(row, 4, "")
		if numExt := legacy.String(row, 5, ""); numExt != "" {
			calle = calle + " " + numExt
		}

		c := entity.Customer{
			ID:            run.Resolver.Resolve(EntityCustomer, clave),
			RFC:           rfc,
			RazonSocial:   legacy.String(row, 2, "Cliente "+clave),
			Email:         legacy.StringPtr(row, 3),
			Calle:         calle,
			Colonia:       legacy.StringPtr(row, 6),
			CodigoPostal:  legacy.StringPtr(row, 7),
			Municipio:     legacy.StringPtr(row, 8),
			Estado:        legacy.StringPtr(row, 9),
			Pais:          legacy.String(row, 10, "MEXICO"),
			Telefono:      legacy.StringPtr(row, 11),
			LimiteCredito: decimal.NewFromFloat(limCred),
			DiasCredito:   diasCred,
			Saldo:         decimal.NewFromFloat(saldo),
			VendedorID:    legacy.StringPtr(row, 15),
			StoreID:       run.Params.StoreID,
			UserID:        run.UserID(),
		}
		records = append(records, c)
		keys = append(keys, rfc)
	}

	existing, err := repo.ExistingKeys("customers", "rfc", run.Params.StoreID, keys, run.Params.BatchSize)
	if err != nil {
		return nil, err
	}

	up, err := Upsert(run.Target, customerUpsert, records, existing,
		func(c entity.Customer) string { return c.RFC }, run.Params.BatchSize)
	if err != nil {
		return nil, err
	}
	res.Inserted, res.Updated = up.Inserted, up.Updated
	res.Elapsed = time.Since(start)

	run.Log.WithFields(logrus.Fields{
		"entity": "customers", "inserted": res.Inserted, "updated": res.Updated, "skipped": res.Skipped,
	}).Info("migration step done")
	return res, nil
}
