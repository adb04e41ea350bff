package migrate

import (
	"github.com/shopspring/decimal"

	"saebridge/service/legacy"
)

// RunAudit compares counts and monetary sums between the legacy source and
// the target store. Pure comparison: no writes on either side. Mismatches are
// diagnostics for manual review, not errors.
func RunAudit(run *Run) (*AuditReport, error) {
	report := NewAuditReport(run.Params.AuditPrecision)

	customers, err := legacyScalar(run, `SELECT COUNT(*) FROM CLIE01`)
	if err != nil {
		return nil, err
	}
	report.Compare("customers.count", customers, targetCount(run, "customers"))

	products, err := legacyScalar(run, `SELECT COUNT(*) FROM INVE01`)
	if err != nil {
		return nil, err
	}
	report.Compare("products.count", products, targetCount(run, "products"))

	stock, err := legacyScalar(run, `SELECT SUM(EXIST) FROM INVE01`)
	if err != nil {
		return nil, err
	}
	report.Compare("products.stock_sum", stock, targetSum(run, "products", "stock"))

	factf, err := legacyScalar(run, `SELECT COUNT(*) FROM FACTF01`)
	if err != nil {
		return nil, err
	}
	factv, err := legacyScalar(run, `SELECT COUNT(*) FROM FACTV01`)
	if err != nil {
		return nil, err
	}
	report.Compare("invoices.count", factf.Add(factv), targetCount(run, "invoices"))

	for _, m := range []struct {
		metric, legacyCol, targetCol string
	}{
		{"invoices.subtotal_sum", "CAN_TOT", "subtotal"},
		{"invoices.total_sum", "IMPORTE", "total"},
	} {
		sumF, err := legacyScalar(run, `SELECT SUM(`+m.legacyCol+`) FROM FACTF01`)
		if err != nil {
			return nil, err
		}
		sumV, err := legacyScalar(run, `SELECT SUM(`+m.legacyCol+`) FROM FACTV01`)
		if err != nil {
			return nil, err
		}
		report.Compare(m.metric, sumF.Add(sumV), targetSum(run, "invoices", m.targetCol))
	}

	itemsF, err := legacyScalar(run, `SELECT COUNT(*) FROM PAR_FACTF01`)
	if err != nil {
		return nil, err
	}
	itemsV, err := legacyScalar(run, `SELECT COUNT(*) FROM PAR_FACTV01`)
	if err != nil {
		return nil, err
	}
	report.Compare("invoice_items.count", itemsF.Add(itemsV), targetCount(run, "invoice_items"))

	return report, nil
}

// legacyScalar reads a single numeric cell from the legacy source. NULL (an
// empty table under SUM) counts as zero.
func legacyScalar(run *Run, query string) (decimal.Decimal, error) {
	rows, err := run.Source.Select(query)
	if err != nil {
		return decimal.Zero, err
	}
	if len(rows) == 0 {
		return decimal.Zero, nil
	}
	v, err := legacy.Float(rows[0], 0, 0)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromFloat(v), nil
}

func targetCount(run *Run, table string) decimal.Decimal {
	var n int64
	run.Target.Table(table).Count(&n)
	return decimal.NewFromInt(n)
}

func targetSum(run *Run, table, column string) decimal.Decimal {
	var v float64
	run.Target.Table(table).Select("COALESCE(SUM(" + column + "), 0)").Scan(&v)
	return decimal.NewFromFloat(v)
}
