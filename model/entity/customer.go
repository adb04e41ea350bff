package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer mirrors the legacy CLIE01 master. RFC holds the composite
// business key (raw RFC + "_" + legacy client code) because raw tax ids are
// not unique in the legacy source.
type Customer struct {
	ID            string          `gorm:"column:id;primaryKey;type:varchar(36)"`
	RFC           string          `gorm:"column:rfc;type:varchar(64);not null;uniqueIndex:idx_customers_store_rfc,priority:2"`
	RazonSocial   string          `gorm:"column:razon_social;type:varchar(255);not null"`
	Email         *string         `gorm:"column:email;type:varchar(128)"`
	Calle         string          `gorm:"column:calle;type:varchar(255)"`
	Colonia       *string         `gorm:"column:colonia;type:varchar(128)"`
	CodigoPostal  *string         `gorm:"column:codigo_postal;type:varchar(10)"`
	Municipio     *string         `gorm:"column:municipio;type:varchar(128)"`
	Estado        *string         `gorm:"column:estado;type:varchar(128)"`
	Pais          string          `gorm:"column:pais;type:varchar(64);default:MEXICO"`
	Telefono      *string         `gorm:"column:telefono;type:varchar(32)"`
	LimiteCredito decimal.Decimal `gorm:"column:limite_credito;type:decimal(18,2)"`
	DiasCredito   int             `gorm:"column:dias_credito"`
	Saldo         decimal.Decimal `gorm:"column:saldo;type:decimal(18,2)"`
	VendedorID    *string         `gorm:"column:vendedor_id;type:varchar(16)"`
	StoreID       string          `gorm:"column:store_id;type:varchar(36);not null;uniqueIndex:idx_customers_store_rfc,priority:1"`
	UserID        *string         `gorm:"column:user_id;type:varchar(36)"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Customer) TableName() string {
	return "customers"
}
