package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product mirrors the legacy INVE01 master joined with its price list.
// Stock is the quantity held at the owning store partition.
type Product struct {
	ID            string          `gorm:"column:id;primaryKey;type:varchar(36)"`
	SKU           string          `gorm:"column:sku;type:varchar(32);not null;uniqueIndex:idx_products_store_sku,priority:2"`
	Description   string          `gorm:"column:description;type:varchar(255);not null"`
	Line          *string         `gorm:"column:line;type:varchar(16)"`
	Stock         float64         `gorm:"column:stock"`
	Price         decimal.Decimal `gorm:"column:price;type:decimal(18,2)"`
	CostoPromedio decimal.Decimal `gorm:"column:costo_promedio;type:decimal(18,2)"`
	CostoUltimo   decimal.Decimal `gorm:"column:costo_ultimo;type:decimal(18,2)"`
	UnidadMedida  string          `gorm:"column:unidad_medida;type:varchar(16);default:PZA"`
	Peso          float64         `gorm:"column:peso"`
	StockMin      float64         `gorm:"column:stock_min"`
	StockMax      float64         `gorm:"column:stock_max"`
	LastSale      *time.Time      `gorm:"column:last_sale"`
	LastPurchase  *time.Time      `gorm:"column:last_purchase"`
	LastSync      time.Time       `gorm:"column:last_sync"`
	StoreID       string          `gorm:"column:store_id;type:varchar(36);not null;uniqueIndex:idx_products_store_sku,priority:1"`
	UserID        *string         `gorm:"column:user_id;type:varchar(36)"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (Product) TableName() string {
	return "products"
}
