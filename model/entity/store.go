package entity

import "time"

// Store is a target-side partition. The legacy aggregate warehouse maps to
// the default store; per-warehouse detail maps to branch stores.
type Store struct {
	ID        string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	Name      string    `gorm:"column:name;type:varchar(128);not null"`
	LegacyKey *string   `gorm:"column:legacy_key;type:varchar(16);uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Store) TableName() string {
	return "stores"
}
