package migrate

import (
	"github.com/shopspring/decimal"
)

// Comparison is one reconciliation row: a metric compared between the legacy
// source and the target store.
type Comparison struct {
	Metric string          `json:"metric"`
	Legacy decimal.Decimal `json:"legacy"`
	Target decimal.Decimal `json:"target"`
	Match  bool            `json:"match"`
}

// AuditReport is the ordered list of comparisons from one audit pass. No side
// effects on either store; rendering is someone else's job.
type AuditReport struct {
	Results   []Comparison `json:"results"`
	Precision int32        `json:"precision"`
}

func NewAuditReport(precision int32) *AuditReport {
	return &AuditReport{Precision: precision}
}

// Compare appends one metric. Monetary values are rounded to the report's
// precision before comparing, so floating representation noise doesn't flag
// false mismatches.
func (a *AuditReport) Compare(metric string, legacy, target decimal.Decimal) Comparison {
	l := legacy.Round(a.Precision)
	t := target.Round(a.Precision)
	c := Comparison{Metric: metric, Legacy: l, Target: t, Match: l.Equal(t)}
	a.Results = append(a.Results, c)
	return c
}

// CompareCount is Compare for integer counts.
func (a *AuditReport) CompareCount(metric string, legacy, target int64) Comparison {
	return a.Compare(metric, decimal.NewFromInt(legacy), decimal.NewFromInt(target))
}

// OK reports overall run success: every comparison matched.
func (a *AuditReport) OK() bool {
	for _, c := range a.Results {
		if !c.Match {
			return false
		}
	}
	return true
}

// Mismatches returns only the failing rows.
func (a *AuditReport) Mismatches() []Comparison {
	var out []Comparison
	for _, c := range a.Results {
		if !c.Match {
			out = append(out, c)
		}
	}
	return out
}
