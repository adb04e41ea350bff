package migrate

import (
	"errors"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	entity "saebridge/model/entity"
	catalogRepo "saebridge/model/repository/catalog"
	"saebridge/service/legacy"
)

// COMPC01 joins PROV01 for the supplier RFC so the composite business key can
// be rebuilt exactly as the supplier migration stored it.
const (
	purchaseHeaderQuery = `
	SELECT c.CVE_DOC, c.CVE_CLPV, c.FECHA_DOC, c.IMPORTE, p.RFC
	FROM COMPC01 c
	LEFT JOIN PROV01 p ON c.CVE_CLPV = p.CLAVE`
	purchaseItemQuery = `SELECT CVE_DOC, CVE_ART, CANT, COST, TOT_PARTIDA FROM PAR_COMPC01`
)

var purchaseUpsert = UpsertSpec{
	Table:           "purchases",
	ConflictColumns: []string{"legacy_doc"},
	UpdateColumns:   []string{"total", "subtotal", "fecha", "status"},
}

var purchaseItemUpsert = UpsertSpec{
	Table:           "purchase_items",
	ConflictColumns: []string{"id"},
}

// MigratePurchases moves purchase documents and their line items. Suppliers
// and products must be migrated first; orphan purchases (unresolved supplier)
// and items with unknown SKUs are skipped and counted.
func MigratePurchases(run *Run) (*Result, error) {
	start := time.Now()
	res := &Result{Entity: "purchases"}

	repo := catalogRepo.NewCatalogRepository(run.Target)
	supplierRFCs, err := repo.SupplierRFCMap(run.Params.StoreID)
	if err != nil {
		return nil, err
	}
	productSKUs, err := repo.ProductSKUMap(run.Params.StoreID)
	if err != nil {
		return nil, err
	}
	existingDocs, err := repo.IDMap("purchases", "legacy_doc", run.Params.StoreID)
	if err != nil {
		return nil, err
	}
	run.Resolver.Prime(EntityPurchase, existingDocs)

	rows, err := run.Source.Select(purchaseHeaderQuery)
	if err != nil {
		return nil, err
	}
	res.TotalRows = len(rows)

	headers := make([]entity.Purchase, 0, len(rows))
	keys := make([]string, 0, len(rows))

	for _, row := range rows {
		cveDoc := legacy.String(row, 0, "")
		if cveDoc == "" {
			res.Skipped++
			continue
		}
		cveClpv := legacy.String(row, 1, "")
		lookupRFC := CompositeRFC(legacy.String(row, 4, ""), cveClpv)

		supplierID, ok := supplierRFCs[lookupRFC]
		if !ok {
			res.Skipped++
			res.warnf("purchase %s: %v (supplier %s)", cveDoc, ErrUnresolvedReference, lookupRFC)
			run.Log.WithFields(logrus.Fields{
				"entity": "purchases", "doc": cveDoc, "supplier": lookupRFC,
			}).Warn(ErrUnresolvedReference)
			continue
		}

		fecha, err1 := legacy.Date(row, 2)
		total, err2 := legacy.Float(row, 3, 0)
		if err := errors.Join(err1, err2); err != nil {
			res.Skipped++
			res.warnf("purchase %s: %v", cveDoc, err)
			continue
		}

		headers = append(headers, entity.Purchase{
			ID:         run.Resolver.Resolve(EntityPurchase, cveDoc),
			LegacyDoc:  cveDoc,
			SupplierID: supplierID,
			StoreID:    run.Params.StoreID,
			UserID:     run.UserID(),
			Fecha:      fecha,
			Status:     "COMPLETED",
			// Tax breakdown is unknown in the legacy header.
			Total:    decimal.NewFromFloat(total),
			Subtotal: decimal.NewFromFloat(total),
		})
		keys = append(keys, cveDoc)
	}

	existing, err := repo.ExistingKeys("purchases", "legacy_doc", "", keys, run.Params.BatchSize)
	if err != nil {
		return nil, err
	}
	up, err := Upsert(run.Target, purchaseUpsert, headers, existing,
		func(p entity.Purchase) string { return p.LegacyDoc }, run.Params.BatchSize)
	if err != nil {
		return nil, err
	}
	res.Inserted, res.Updated = up.Inserted, up.Updated

	itemRows, err := run.Source.Select(purchaseItemQuery)
	if err != nil {
		return nil, err
	}
	items := make([]entity.PurchaseItem, 0, len(itemRows))
	seq := make(map[string]int)
	for _, row := range itemRows {
		cveDoc := legacy.String(row, 0, "")
		purchaseID, ok := run.Resolver.Lookup(EntityPurchase, cveDoc)
		if !ok {
			res.Skipped++
			continue
		}
		sku := legacy.String(row, 1, "")
		if _, ok := productSKUs[sku]; !ok {
			res.Skipped++
			res.warnf("purchase %s: %v (sku %s)", cveDoc, ErrUnresolvedReference, sku)
			continue
		}

		cant, err1 := legacy.Float(row, 2, 0)
		cost, err2 := legacy.Float(row, 3, 0)
		tot, err3 := legacy.Float(row, 4, 0)
		if err := errors.Join(err1, err2, err3); err != nil {
			res.Skipped++
			res.warnf("purchase %s item: %v", cveDoc, err)
			continue
		}

		// Content-keyed occurrence count keeps ids stable when the legacy
		// source returns the item rows in a different order.
		fp := purchaseID + "|" + sku + "|" +
			strconv.FormatFloat(cant, 'f', -1, 64) + "|" +
			strconv.FormatFloat(cost, 'f', -1, 64) + "|" +
			strconv.FormatFloat(tot, 'f', -1, 64)
		seq[fp]++
		items = append(items, entity.PurchaseItem{
			ID:          DeterministicID("purchase-item", fp, strconv.Itoa(seq[fp])),
			PurchaseID:  purchaseID,
			SKU:         sku,
			Cantidad:    cant,
			Costo:       decimal.NewFromFloat(cost),
			Importe:     decimal.NewFromFloat(tot),
			Descripcion: "Importado del ERP legado",
		})
	}

	if _, err := Upsert(run.Target, purchaseItemUpsert, items, nil,
		func(i entity.PurchaseItem) string { return i.ID }, run.Params.BatchSize); err != nil {
		return nil, err
	}
	res.Elapsed = time.Since(start)

	run.Log.WithFields(logrus.Fields{
		"entity": "purchases", "inserted": res.Inserted, "updated": res.Updated,
		"skipped": res.Skipped, "items": len(items),
	}).Info("migration step done")
	return res, nil
}
