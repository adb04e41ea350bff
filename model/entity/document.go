package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssociatedDocument is the extracted metadata of one historical CFDI XML
// file. UUID is the SAT stamp, or a deterministic LEGACY-... id for pre-stamp
// document versions.
type AssociatedDocument struct {
	ID             string          `gorm:"column:id;primaryKey;type:varchar(36)"`
	Filename       string          `gorm:"column:filename;type:varchar(255);not null"`
	FilePath       string          `gorm:"column:file_path;type:varchar(512);not null"`
	UUID           string          `gorm:"column:uuid;type:varchar(128);not null;uniqueIndex"`
	Serie          *string         `gorm:"column:serie;type:varchar(16)"`
	Folio          *string         `gorm:"column:folio;type:varchar(32)"`
	Fecha          *time.Time      `gorm:"column:fecha"`
	RFCEmisor      *string         `gorm:"column:rfc_emisor;type:varchar(16)"`
	NombreEmisor   *string         `gorm:"column:nombre_emisor;type:varchar(255)"`
	RFCReceptor    *string         `gorm:"column:rfc_receptor;type:varchar(16)"`
	NombreReceptor *string         `gorm:"column:nombre_receptor;type:varchar(255)"`
	Total          decimal.Decimal `gorm:"column:total;type:decimal(18,2)"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (AssociatedDocument) TableName() string {
	return "associated_documents"
}
