package migrate

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receivable aging statuses.
const (
	StatusPaid    = "PAID"
	StatusPending = "PENDING"
	StatusOverdue = "OVERDUE"
)

// AccountKey identifies one ledger account: the combination of client code
// and reference number, not either field alone. Compared by value, never by
// string concatenation.
type AccountKey struct {
	Client    string
	Reference string
}

// LedgerEntry is a signed monetary movement against an account. Entries are
// never mutated, only aggregated. Folio and dates are only meaningful on
// charges.
type LedgerEntry struct {
	Key     AccountKey
	Folio   string
	Emitted *time.Time
	Due     *time.Time
	Amount  decimal.Decimal
}

// DerivedBalance is the per-account fold of all charges and payments,
// computed once per run from the full entry set.
type DerivedBalance struct {
	Key      AccountKey
	Folio    string
	Emitted  *time.Time
	Due      *time.Time
	Original decimal.Decimal
	Paid     decimal.Decimal
	Balance  decimal.Decimal
	Status   string
}

// Aggregate folds charges and payments into per-account balances.
//
// Duplicate charge rows for the same account accumulate (the legacy ledger
// repeats header rows); folio and dates come from the first charge seen.
// Payments join by account key; a payment whose key has no matching charge is
// ignored by policy — a payment cannot create a balance.
func Aggregate(charges, payments []LedgerEntry, epsilon decimal.Decimal, now time.Time) map[AccountKey]*DerivedBalance {
	accounts := make(map[AccountKey]*DerivedBalance, len(charges))

	for _, c := range charges {
		acc := accounts[c.Key]
		if acc == nil {
			folio := c.Folio
			if folio == "" {
				folio = c.Key.Reference
			}
			acc = &DerivedBalance{
				Key:     c.Key,
				Folio:   folio,
				Emitted: c.Emitted,
				Due:     c.Due,
			}
			accounts[c.Key] = acc
		}
		acc.Original = acc.Original.Add(c.Amount)
	}

	for _, p := range payments {
		if acc, ok := accounts[p.Key]; ok {
			acc.Paid = acc.Paid.Add(p.Amount)
		}
	}

	for _, acc := range accounts {
		acc.Balance = acc.Original.Sub(acc.Paid)
		acc.Status = deriveStatus(acc.Balance, acc.Due, epsilon, now)
	}
	return accounts
}

// deriveStatus: paid within epsilon (absorbs legacy rounding noise), overdue
// when a known due date has passed, pending otherwise.
func deriveStatus(balance decimal.Decimal, due *time.Time, epsilon decimal.Decimal, now time.Time) string {
	if balance.LessThanOrEqual(epsilon) {
		return StatusPaid
	}
	if due != nil && due.Before(now) {
		return StatusOverdue
	}
	return StatusPending
}
