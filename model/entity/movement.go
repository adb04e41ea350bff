package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Movement type codes. The legacy source encodes direction as a concept
// range (1-30 entries, everything above exits).
const (
	MovementEntry      = "E"
	MovementExit       = "S"
	MovementAdjustment = "A"
)

// InventoryMovement mirrors the legacy MINVE01 kardex.
type InventoryMovement struct {
	ID             string          `gorm:"column:id;primaryKey;type:varchar(36)"`
	SKU            string          `gorm:"column:sku;type:varchar(32);not null;index"`
	StoreID        string          `gorm:"column:store_id;type:varchar(36);not null"`
	UserID         *string         `gorm:"column:user_id;type:varchar(36)"`
	TipoMovimiento string          `gorm:"column:tipo_movimiento;type:varchar(1);not null"`
	Cantidad       float64         `gorm:"column:cantidad"`
	Costo          decimal.Decimal `gorm:"column:costo;type:decimal(18,2)"`
	Fecha          time.Time       `gorm:"column:fecha"`
	Concepto       string          `gorm:"column:concepto;type:varchar(255)"`
}

func (InventoryMovement) TableName() string {
	return "inventory_movements"
}
