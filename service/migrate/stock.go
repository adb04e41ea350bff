package migrate

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	entity "saebridge/model/entity"
	catalogRepo "saebridge/model/repository/catalog"
	storeRepo "saebridge/model/repository/store"
	"saebridge/service/legacy"
)

// MULT01 holds per-warehouse stock detail; INVE01 EXIST is the aggregate.
const (
	warehouseDetailQuery = `SELECT CVE_ART, CVE_ALM, EXIST, STOCK_MIN, STOCK_MAX FROM MULT01`
	productMasterQuery   = `
	SELECT i.CVE_ART, i.DESCR, i.LIN_PROD, i.EXIST, p.PRECIO, i.UNI_MED
	FROM INVE01 i
	LEFT JOIN PRECIO_X_PROD01 p ON i.CVE_ART = p.CVE_ART AND p.CVE_PRECIO = 1`
)

// StockResult extends the common counters with distribution diagnostics.
type StockResult struct {
	Result
	DroppedWarehouses map[string]int
	AggregateMismatch int
}

// MigrateWarehouseStock splits the legacy aggregate stock across branch store
// partitions using the per-warehouse detail table, then verifies each
// product's aggregate against the sum of its details. Mismatches are
// warnings, not failures: legacy aggregates go stale.
func MigrateWarehouseStock(run *Run) (*StockResult, error) {
	start := time.Now()
	res := &StockResult{Result: Result{Entity: "warehouse-stock"}}

	// Warehouses must resolve to partitions before distribution.
	partitions, err := storeRepo.NewStoreRepository(run.Target).LegacyKeyMap()
	if err != nil {
		return nil, err
	}
	run.Resolver.Prime(EntityWarehouse, partitions)

	detailRows, err := run.Source.Select(warehouseDetailQuery)
	if err != nil {
		return nil, err
	}
	res.TotalRows = len(detailRows)

	details := make([]WarehouseDetail, 0, len(detailRows))
	for _, row := range detailRows {
		sku := legacy.String(row, 0, "")
		alm := legacy.String(row, 1, "")
		if sku == "" || alm == "" {
			res.Skipped++
			continue
		}
		qty, err1 := legacy.Float(row, 2, 0)
		minLevel, err2 := legacy.Float(row, 3, 0)
		maxLevel, err3 := legacy.Float(row, 4, 0)
		if err := errors.Join(err1, err2, err3); err != nil {
			res.Skipped++
			res.warnf("sku %s alm %s: %v", sku, alm, err)
			continue
		}
		details = append(details, WarehouseDetail{
			WarehouseKey: alm, SKU: sku, Quantity: qty, MinLevel: minLevel, MaxLevel: maxLevel,
		})
	}

	dist := Distribute(run.Resolver, details)
	res.DroppedWarehouses = dist.Dropped
	for alm, n := range dist.Dropped {
		res.Skipped += n
		res.warnf("warehouse %s has no partition, dropped %d rows", alm, n)
	}

	// Master attributes and the aggregate come from INVE01.
	masterRows, err := run.Source.Select(productMasterQuery)
	if err != nil {
		return nil, err
	}
	type masterInfo struct {
		descr, unit string
		line        *string
		aggregate   float64
		price       decimal.Decimal
	}
	master := make(map[string]masterInfo, len(masterRows))
	for _, row := range masterRows {
		sku := legacy.String(row, 0, "")
		if sku == "" {
			continue
		}
		agg, err1 := legacy.Float(row, 3, 0)
		price, err2 := legacy.Float(row, 4, 0)
		if err := errors.Join(err1, err2); err != nil {
			res.Skipped++
			res.warnf("sku %s master: %v", sku, err)
			continue
		}
		master[sku] = masterInfo{
			descr:     legacy.String(row, 1, "Sin Descripción"),
			line:      legacy.StringPtr(row, 2),
			aggregate: agg,
			price:     decimal.NewFromFloat(price),
			unit:      legacy.String(row, 5, "PZA"),
		}
	}

	now := run.Params.NowTime()
	records := make([]entity.Product, 0, len(dist.Records))
	for _, rec := range dist.Records {
		info, ok := master[rec.SKU]
		if !ok {
			res.Skipped++
			res.warnf("sku %s: detail row without master, skipping", rec.SKU)
			continue
		}
		records = append(records, entity.Product{
			ID:           DeterministicID("product", rec.StoreID, rec.SKU),
			SKU:          rec.SKU,
			Description:  info.descr,
			Line:         info.line,
			Stock:        rec.Quantity,
			Price:        info.price,
			UnidadMedida: info.unit,
			StockMin:     rec.MinLevel,
			StockMax:     rec.MaxLevel,
			LastSync:     now,
			StoreID:      rec.StoreID,
			UserID:       run.UserID(),
		})
	}

	// Existence split runs per partition: the business key is (store, sku).
	repo := catalogRepo.NewCatalogRepository(run.Target)
	existing := make(map[string]bool)
	perStore := make(map[string][]string)
	for _, rec := range records {
		perStore[rec.StoreID] = append(perStore[rec.StoreID], rec.SKU)
	}
	for storeID, skus := range perStore {
		found, err := repo.ExistingKeys("products", "sku", storeID, skus, run.Params.BatchSize)
		if err != nil {
			return nil, err
		}
		for sku := range found {
			existing[storeID+"|"+sku] = true
		}
	}

	up, err := Upsert(run.Target, productUpsert, records, existing,
		func(p entity.Product) string { return p.StoreID + "|" + p.SKU }, run.Params.BatchSize)
	if err != nil {
		return nil, err
	}
	res.Inserted, res.Updated = up.Inserted, up.Updated

	// Aggregate verification, only for products that have detail rows.
	detailed := make(map[string]bool, len(dist.Records))
	for _, rec := range dist.Records {
		detailed[rec.SKU] = true
	}
	for sku, info := range master {
		if !detailed[sku] {
			continue
		}
		if !VerifyAggregate(sku, info.aggregate, dist.Records, run.Params.Epsilon) {
			res.AggregateMismatch++
			run.Log.WithFields(logrus.Fields{
				"entity": "warehouse-stock", "sku": sku, "aggregate": info.aggregate,
			}).Warn("aggregate does not match warehouse detail sum")
		}
	}
	res.Elapsed = time.Since(start)

	run.Log.WithFields(logrus.Fields{
		"entity": "warehouse-stock", "inserted": res.Inserted, "updated": res.Updated,
		"skipped": res.Skipped, "mismatches": res.AggregateMismatch,
	}).Info("migration step done")
	return res, nil
}
