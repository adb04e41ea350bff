package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier mirrors the legacy PROV01 master. Like customers, RFC carries the
// composite business key so purchases can link back by supplier code.
type Supplier struct {
	ID            string          `gorm:"column:id;primaryKey;type:varchar(36)"`
	RFC           string          `gorm:"column:rfc;type:varchar(64);not null;uniqueIndex:idx_suppliers_store_rfc,priority:2"`
	RazonSocial   string          `gorm:"column:razon_social;type:varchar(255);not null"`
	Direccion     string          `gorm:"column:direccion;type:varchar(512)"`
	Telefono      *string         `gorm:"column:telefono;type:varchar(32)"`
	Email         *string         `gorm:"column:email;type:varchar(128)"`
	Contacto      *string         `gorm:"column:contacto;type:varchar(128)"`
	DiasCredito   int             `gorm:"column:dias_credito"`
	LimiteCredito decimal.Decimal `gorm:"column:limite_credito;type:decimal(18,2)"`
	StoreID       string          `gorm:"column:store_id;type:varchar(36);not null;uniqueIndex:idx_suppliers_store_rfc,priority:1"`
	UserID        *string         `gorm:"column:user_id;type:varchar(36)"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Supplier) TableName() string {
	return "suppliers"
}
