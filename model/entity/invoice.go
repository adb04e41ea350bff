package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice covers both legacy document tables: fiscal invoices (FACTF01) and
// sales notes (FACTV01). UUID is the SAT stamp when present, otherwise a
// deterministic placeholder derived from the legacy document key.
type Invoice struct {
	ID              string          `gorm:"column:id;primaryKey;type:varchar(36)"`
	UUID            string          `gorm:"column:uuid;type:varchar(64);not null;uniqueIndex"`
	Serie           *string         `gorm:"column:serie;type:varchar(16)"`
	Folio           *string         `gorm:"column:folio;type:varchar(32)"`
	FechaEmision    *time.Time      `gorm:"column:fecha_emision"`
	Total           decimal.Decimal `gorm:"column:total;type:decimal(18,2)"`
	Subtotal        decimal.Decimal `gorm:"column:subtotal;type:decimal(18,2)"`
	CustomerID      string          `gorm:"column:customer_id;type:varchar(36);not null;index"`
	TipoComprobante string          `gorm:"column:tipo_comprobante;type:varchar(1);default:I"`
	XMLPath         *string         `gorm:"column:xml_path;type:varchar(255)"`
	IsFiscal        bool            `gorm:"column:is_fiscal"`
	Status          string          `gorm:"column:status;type:varchar(32)"`
	StoreID         string          `gorm:"column:store_id;type:varchar(36);not null"`
	UserID          *string         `gorm:"column:user_id;type:varchar(36)"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceItem is one line (partida) of an invoice.
type InvoiceItem struct {
	ID            string          `gorm:"column:id;primaryKey;type:varchar(36)"`
	InvoiceID     string          `gorm:"column:invoice_id;type:varchar(36);not null;index"`
	Descripcion   string          `gorm:"column:descripcion;type:varchar(255)"`
	Cantidad      float64         `gorm:"column:cantidad"`
	ValorUnitario decimal.Decimal `gorm:"column:valor_unitario;type:decimal(18,2)"`
	Importe       decimal.Decimal `gorm:"column:importe;type:decimal(18,2)"`
	Unidad        string          `gorm:"column:unidad;type:varchar(16);default:PZA"`
}

func (InvoiceItem) TableName() string {
	return "invoice_items"
}
