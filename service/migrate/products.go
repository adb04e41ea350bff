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

// INVE01 is the legacy product master; price list 1 is the public price.
const productQuery = `
	SELECT i.CVE_ART, i.DESCR, i.LIN_PROD, i.EXIST, p.PRECIO,
	       i.FCH_ULTVTA, i.FCH_ULTCOM,
	       i.COSTO_PROM, i.ULT_COSTO, i.UNI_MED, i.PESO, i.STOCK_MIN, i.STOCK_MAX
	FROM INVE01 i
	LEFT JOIN PRECIO_X_PROD01 p ON i.CVE_ART = p.CVE_ART AND p.CVE_PRECIO = 1`

var productUpsert = UpsertSpec{
	Table:           "products",
	ConflictColumns: []string{"store_id", "sku"},
	UpdateColumns: []string{
		"description", "line", "stock", "price", "last_sale", "last_purchase",
		"costo_promedio", "costo_ultimo", "unidad_medida", "peso",
		"stock_min", "stock_max", "last_sync",
	},
}

// MigrateProducts moves the legacy product master into the default store
// partition. Business key is the SKU.
func MigrateProducts(run *Run) (*Result, error) {
	start := time.Now()
	res := &Result{Entity: "products"}

	// Reuse stored ids on re-runs so purchase items keep valid references.
	repo := catalogRepo.NewCatalogRepository(run.Target)
	knownSKUs, err := repo.ProductSKUMap(run.Params.StoreID)
	if err != nil {
		return nil, err
	}
	run.Resolver.Prime(EntityProduct, knownSKUs)

	rows, err := run.Source.Select(productQuery)
	if err != nil {
		return nil, err
	}
	res.TotalRows = len(rows)

	records := make([]entity.Product, 0, len(rows))
	keys := make([]string, 0, len(rows))
	now := run.Params.NowTime()

	for _, row := range rows {
		if run.Dedup.Check([]byte("products|" + fmt.Sprint(row))) {
			res.Skipped++
			continue
		}

		sku := legacy.String(row, 0, "")
		if sku == "" {
			res.Skipped++
			continue
		}

		stock, err1 := legacy.Float(row, 3, 0)
		price, err2 := legacy.Float(row, 4, 0)
		lastSale, err3 := legacy.Date(row, 5)
		lastPurchase, err4 := legacy.Date(row, 6)
		costoProm, err5 := legacy.Float(row, 7, 0)
		ultCosto, err6 := legacy.Float(row, 8, 0)
		peso, err7 := legacy.Float(row, 10, 0)
		stockMin, err8 := legacy.Float(row, 11, 0)
		stockMax, err9 := legacy.Float(row, 12, 0)
		if err := errors.Join(err1, err2, err3, err4, err5, err6, err7, err8, err9); err != nil {
			res.Skipped++
			res.warnf("sku %s: %v", sku, err)
			run.Log.WithFields(logrus.Fields{"entity": "products", "key": sku}).Warn(err)
			continue
		}

		p := entity.Product{
			ID:            run.Resolver.Resolve(EntityProduct, sku),
			SKU:           sku,
			Description:   legacy.String(row, 1, "Sin Descripción"),
			Line:          legacy.StringPtr(row, 2),
			Stock:         stock,
			Price:         decimal.NewFromFloat(price),
			CostoPromedio: decimal.NewFromFloat(costoProm),
			CostoUltimo:   decimal.NewFromFloat(ultCosto),
			UnidadMedida:  legacy.String(row, 9, "PZA"),
			Peso:          peso,
			StockMin:      stockMin,
			StockMax:      stockMax,
			LastSale:      lastSale,
			LastPurchase:  lastPurchase,
			LastSync:      now,
			StoreID:       run.Params.StoreID,
			UserID:        run.UserID(),
		}
		records = append(records, p)
		keys = append(keys, sku)
	}

	existing, err := repo.ExistingKeys("products", "sku", run.Params.StoreID, keys, run.Params.BatchSize)
	if err != nil {
		return nil, err
	}

	up, err := Upsert(run.Target, productUpsert, records, existing,
		func(p entity.Product) string { return p.SKU }, run.Params.BatchSize)
	if err != nil {
		return nil, err
	}
	res.Inserted, res.Updated = up.Inserted, up.Updated
	res.Elapsed = time.Since(start)

	run.Log.WithFields(logrus.Fields{
		"entity": "products", "inserted": res.Inserted, "updated": res.Updated, "skipped": res.Skipped,
	}).Info("migration step done")
	return res, nil
}
