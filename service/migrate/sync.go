package migrate

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Step is one entity migration in the full-sync pipeline. Mandatory steps
// abort the run on failure because later steps depend on their output;
// optional steps log and continue.
type Step struct {
	Name      string
	Mandatory bool
	Fn        func(*Run) (*Result, error)
}

// Pipeline is the dependency-ordered full migration. Customers and suppliers
// feed receivables and purchases; products feed stock, invoices, purchases
// and movements.
func Pipeline() []Step {
	return []Step{
		{Name: "customers", Mandatory: true, Fn: MigrateCustomers},
		{Name: "suppliers", Mandatory: true, Fn: MigrateSuppliers},
		{Name: "products", Mandatory: true, Fn: MigrateProducts},
		{Name: "stock", Fn: func(run *Run) (*Result, error) {
			r, err := MigrateWarehouseStock(run)
			if r != nil {
				return &r.Result, err
			}
			return nil, err
		}},
		{Name: "invoices", Fn: MigrateInvoices},
		{Name: "purchases", Fn: MigratePurchases},
		{Name: "movements", Fn: MigrateMovements},
		{Name: "receivables", Fn: MigrateReceivables},
	}
}

// RunFull executes the whole pipeline and returns per-step results in
// execution order. A mandatory step failure stops the run and returns the
// results accumulated so far together with the error.
func RunFull(run *Run) ([]*Result, error) {
	start := time.Now()
	results := make([]*Result, 0, len(Pipeline()))

	for _, step := range Pipeline() {
		res, err := step.Fn(run)
		if err != nil {
			if step.Mandatory {
				run.Log.WithFields(logrus.Fields{"step": step.Name}).Error(err)
				return results, fmt.Errorf("step %s: %w", step.Name, err)
			}
			run.Log.WithFields(logrus.Fields{"step": step.Name}).Warn(err)
			results = append(results, &Result{
				Entity:   step.Name,
				Warnings: []string{err.Error()},
			})
			continue
		}
		results = append(results, res)
	}

	run.Log.WithFields(logrus.Fields{
		"steps": len(results), "elapsed": time.Since(start).String(),
	}).Info("full sync done")
	return results, nil
}
