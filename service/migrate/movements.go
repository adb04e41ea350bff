package migrate

import (
	"errors"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	entity "saebridge/model/entity"
	"saebridge/service/legacy"
)

// MINVE01 is the legacy inventory kardex.
const movementQuery = `SELECT CVE_ART, FECHA_DOCU, CANT, REFER, CVE_CPTO, COSTO FROM MINVE01`

// Concept codes at or below this are entries; everything above is an exit.
const movementEntryMaxConcept = 30

var movementUpsert = UpsertSpec{
	Table:           "inventory_movements",
	ConflictColumns: []string{"id"},
	// Kardex rows are immutable history: insert-or-ignore.
}

// MigrateMovements moves the inventory kardex. Movements reference products
// by SKU only (no FK), so nothing is dropped for unknown products — they are
// merely counted as warnings.
func MigrateMovements(run *Run) (*Result, error) {
	start := time.Now()
	res := &Result{Entity: "movements"}

	rows, err := run.Source.Select(movementQuery)
	if err != nil {
		return nil, err
	}
	res.TotalRows = len(rows)

	records := make([]entity.InventoryMovement, 0, len(rows))
	seq := make(map[string]int)
	now := run.Params.NowTime()

	for _, row := range rows {
		sku := legacy.String(row, 0, "")
		if sku == "" {
			res.Skipped++
			continue
		}

		fecha, err1 := legacy.Date(row, 1)
		cant, err2 := legacy.Float(row, 2, 0)
		cpto, err3 := legacy.Int(row, 4, 0)
		costo, err4 := legacy.Float(row, 5, 0)
		if err := errors.Join(err1, err2, err3, err4); err != nil {
			res.Skipped++
			res.warnf("sku %s: %v", sku, err)
			run.Log.WithFields(logrus.Fields{"entity": "movements", "key": sku}).Warn(err)
			continue
		}
		if fecha == nil {
			fecha = &now
		}

		movType := entity.MovementEntry
		if cpto > movementEntryMaxConcept {
			movType = entity.MovementExit
		}

		ref := legacy.String(row, 3, "Sin Ref")
		concepto := "Migracion Ref:" + ref + " Cpto:" + strconv.Itoa(cpto)

		// Legitimately identical rows are disambiguated by occurrence count
		// so re-runs regenerate the same ids without collapsing them.
		fp := sku + "|" + fecha.Format("2006-01-02") + "|" + ref + "|" +
			strconv.Itoa(cpto) + "|" + strconv.FormatFloat(cant, 'f', -1, 64)
		seq[fp]++

		records = append(records, entity.InventoryMovement{
			ID:             DeterministicID("movement", fp, strconv.Itoa(seq[fp])),
			SKU:            sku,
			StoreID:        run.Params.StoreID,
			UserID:         run.UserID(),
			TipoMovimiento: movType,
			Cantidad:       cant,
			Costo:          decimal.NewFromFloat(costo),
			Fecha:          *fecha,
			Concepto:       concepto,
		})
	}

	up, err := Upsert(run.Target, movementUpsert, records, nil,
		func(m entity.InventoryMovement) string { return m.ID }, run.Params.BatchSize)
	if err != nil {
		return nil, err
	}
	res.Inserted, res.Updated = up.Inserted, up.Updated
	res.Elapsed = time.Since(start)

	run.Log.WithFields(logrus.Fields{
		"entity": "movements", "inserted": res.Inserted, "skipped": res.Skipped,
	}).Info("migration step done")
	return res, nil
}
