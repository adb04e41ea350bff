package store

import (
	"gorm.io/gorm"

	entity "saebridge/model/entity"
)

type StoreRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) *StoreRepository {
	return &StoreRepository{db: db}
}

// DefaultStoreID returns the configured default partition id, falling back to
// the supplied id when the row is missing (seed not applied yet).
func (r *StoreRepository) DefaultStoreID(configured string) string {
	var s entity.Store
	if err := r.db.Where("id = ?", configured).First(&s).Error; err != nil {
		return configured
	}
	return s.ID
}

// LegacyKeyMap returns legacy warehouse key -> store partition id for every
// store that carries a legacy key.
func (r *StoreRepository) LegacyKeyMap() (map[string]string, error) {
	var stores []entity.Store
	if err := r.db.Where("legacy_key IS NOT NULL").Find(&stores).Error; err != nil {
		return nil, err
	}
	m := make(map[string]string, len(stores))
	for _, s := range stores {
		if s.LegacyKey != nil {
			m[*s.LegacyKey] = s.ID
		}
	}
	return m, nil
}
