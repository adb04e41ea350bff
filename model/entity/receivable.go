package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receivable is one aged accounts-receivable balance, derived once per run
// from the legacy ledger (CUEN_M01 charges + CUEN_DET01 payments).
type Receivable struct {
	ID               string          `gorm:"column:id;primaryKey;type:varchar(36)"`
	CustomerID       string          `gorm:"column:customer_id;type:varchar(36);not null;index"`
	Folio            string          `gorm:"column:folio;type:varchar(32);not null"`
	FechaEmision     *time.Time      `gorm:"column:fecha_emision"`
	FechaVencimiento *time.Time      `gorm:"column:fecha_vencimiento"`
	ImporteOriginal  decimal.Decimal `gorm:"column:importe_original;type:decimal(18,2)"`
	Saldo            decimal.Decimal `gorm:"column:saldo;type:decimal(18,2)"`
	Estatus          string          `gorm:"column:estatus;type:varchar(16);not null"`
	StoreID          string          `gorm:"column:store_id;type:varchar(36);not null"`
	UserID           *string         `gorm:"column:user_id;type:varchar(36)"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Receivable) TableName() string {
	return "receivables"
}
