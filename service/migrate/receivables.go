package migrate

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	entity "saebridge/model/entity"
	catalogRepo "saebridge/model/repository/catalog"
	"saebridge/service/legacy"
)

// CUEN_M01 carries the charges (SIGNO=+1), CUEN_DET01 the payments
// (SIGNO=-1). The account key is (client code, reference) — neither field is
// unique on its own.
const (
	chargesQuery = `
	SELECT REFER, CVE_CLIE, NO_FACTURA, FECHA_APLI, FECHA_VENC, IMPORTE
	FROM CUEN_M01
	WHERE SIGNO = 1`
	paymentsQuery = `SELECT REFER, CVE_CLIE, IMPORTE FROM CUEN_DET01 WHERE SIGNO = -1`
)

var receivableUpsert = UpsertSpec{
	Table:           "receivables",
	ConflictColumns: []string{"id"},
	// Balances are recomputed from the full entry set each run, never
	// partially updated.
	UpdateColumns: []string{"importe_original", "saldo", "estatus", "fecha_emision", "fecha_vencimiento"},
}

// MigrateReceivables reconstructs accounts-receivable aging from the raw
// ledger: fold charges and payments per account key, derive balances and
// status, and write one receivable per account. Charges for customers that
// never resolved are skipped and counted; orphan payments are ignored by the
// aggregator's policy.
func MigrateReceivables(run *Run) (*Result, error) {
	start := time.Now()
	res := &Result{Entity: "receivables"}

	repo := catalogRepo.NewCatalogRepository(run.Target)
	customerCodes, err := repo.CustomerCodeMap(run.Params.StoreID)
	if err != nil {
		return nil, err
	}
	run.Resolver.Prime(EntityCustomer, customerCodes)

	chargeRows, err := run.Source.Select(chargesQuery)
	if err != nil {
		return nil, err
	}
	res.TotalRows = len(chargeRows)

	charges := make([]LedgerEntry, 0, len(chargeRows))
	for _, row := range chargeRows {
		refer := legacy.String(row, 0, "")
		client := legacy.String(row, 1, "")
		if _, ok := run.Resolver.Lookup(EntityCustomer, client); !ok {
			res.Skipped++
			res.warnf("account (%s,%s): %v", client, refer, ErrUnresolvedReference)
			continue
		}

		emitted, err1 := legacy.Date(row, 3)
		due, err2 := legacy.Date(row, 4)
		amount, err3 := legacy.Float(row, 5, 0)
		if err := errors.Join(err1, err2, err3); err != nil {
			res.Skipped++
			res.warnf("account (%s,%s): %v", client, refer, err)
			run.Log.WithFields(logrus.Fields{"entity": "receivables", "client": client, "refer": refer}).Warn(err)
			continue
		}

		charges = append(charges, LedgerEntry{
			Key:     AccountKey{Client: client, Reference: refer},
			Folio:   legacy.String(row, 2, ""),
			Emitted: emitted,
			Due:     due,
			Amount:  decimal.NewFromFloat(amount),
		})
	}

	paymentRows, err := run.Source.Select(paymentsQuery)
	if err != nil {
		return nil, err
	}
	payments := make([]LedgerEntry, 0, len(paymentRows))
	for _, row := range paymentRows {
		amount, err := legacy.Float(row, 2, 0)
		if err != nil {
			res.Skipped++
			res.warnf("payment: %v", err)
			continue
		}
		payments = append(payments, LedgerEntry{
			Key: AccountKey{
				Client:    legacy.String(row, 1, ""),
				Reference: legacy.String(row, 0, ""),
			},
			Amount: decimal.NewFromFloat(amount),
		})
	}

	epsilon := decimal.NewFromFloat(run.Params.Epsilon)
	balances := Aggregate(charges, payments, epsilon, run.Params.NowTime())

	records := make([]entity.Receivable, 0, len(balances))
	for key, bal := range balances {
		customerID, _ := run.Resolver.Lookup(EntityCustomer, key.Client)
		records = append(records, entity.Receivable{
			ID:               DeterministicID("receivable", key.Client, key.Reference),
			CustomerID:       customerID,
			Folio:            bal.Folio,
			FechaEmision:     bal.Emitted,
			FechaVencimiento: bal.Due,
			ImporteOriginal:  bal.Original,
			Saldo:            bal.Balance,
			Estatus:          bal.Status,
			StoreID:          run.Params.StoreID,
			UserID:           run.UserID(),
		})
	}

	keys := make([]string, len(records))
	for i, rec := range records {
		keys[i] = rec.ID
	}
	existing, err := repo.ExistingKeys("receivables", "id", "", keys, run.Params.BatchSize)
	if err != nil {
		return nil, err
	}

	up, err := Upsert(run.Target, receivableUpsert, records, existing,
		func(r entity.Receivable) string { return r.ID }, run.Params.BatchSize)
	if err != nil {
		return nil, err
	}
	res.Inserted, res.Updated = up.Inserted, up.Updated
	res.Elapsed = time.Since(start)

	run.Log.WithFields(logrus.Fields{
		"entity": "receivables", "accounts": len(balances),
		"inserted": res.Inserted, "updated": res.Updated, "skipped": res.Skipped,
	}).Info("migration step done")
	return res, nil
}
