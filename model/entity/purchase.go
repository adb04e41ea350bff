package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase mirrors the legacy COMPC01 purchase documents.
type Purchase struct {
	ID         string          `gorm:"column:id;primaryKey;type:varchar(36)"`
	LegacyDoc  string          `gorm:"column:legacy_doc;type:varchar(32);not null;uniqueIndex"`
	SupplierID string          `gorm:"column:supplier_id;type:varchar(36);not null;index"`
	StoreID    string          `gorm:"column:store_id;type:varchar(36);not null"`
	UserID     *string         `gorm:"column:user_id;type:varchar(36)"`
	Fecha      *time.Time      `gorm:"column:fecha"`
	Status     string          `gorm:"column:status;type:varchar(32);default:COMPLETED"`
	Total      decimal.Decimal `gorm:"column:total;type:decimal(18,2)"`
	Subtotal   decimal.Decimal `gorm:"column:subtotal;type:decimal(18,2)"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Purchase) TableName() string {
	return "purchases"
}

// PurchaseItem is one line (partida) of a purchase.
type PurchaseItem struct {
	ID          string          `gorm:"column:id;primaryKey;type:varchar(36)"`
	PurchaseID  string          `gorm:"column:purchase_id;type:varchar(36);not null;index"`
	SKU         string          `gorm:"column:sku;type:varchar(32);not null"`
	Cantidad    float64         `gorm:"column:cantidad"`
	Costo       decimal.Decimal `gorm:"column:costo;type:decimal(18,2)"`
	Importe     decimal.Decimal `gorm:"column:importe;type:decimal(18,2)"`
	Descripcion string          `gorm:"column:descripcion;type:varchar(255)"`
}

func (PurchaseItem) TableName() string {
	return "purchase_items"
}
