package catalog

import (
	"strings"

	"gorm.io/gorm"
)

// CatalogRepository primes the run-scoped identity maps from previously
// migrated parent entities. All lookups are batch queries returning
// business-key -> internal-id maps.
type CatalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

type keyRow struct {
	Key string `gorm:"column:k"`
	ID  string `gorm:"column:id"`
}

// CustomerCodeMap returns legacy client code -> customer id. The code is the
// suffix of the stored composite RFC (RAWRFC_CODE).
func (r *CatalogRepository) CustomerCodeMap(storeID string) (map[string]string, error) {
	return r.compositeCodeMap("customers", storeID)
}

// SupplierCodeMap returns legacy supplier code -> supplier id, parsed from
// the stored composite RFC the same way as customers.
func (r *CatalogRepository) SupplierCodeMap(storeID string) (map[string]string, error) {
	return r.compositeCodeMap("suppliers", storeID)
}

func (r *CatalogRepository) compositeCodeMap(table, storeID string) (map[string]string, error) {
	var rows []keyRow
	err := r.db.Table(table).Select("rfc AS k, id").Where("store_id = ?", storeID).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	m := make(map[string]string, len(rows))
	for _, row := range rows {
		idx := strings.LastIndex(row.Key, "_")
		if idx < 0 || idx == len(row.Key)-1 {
			continue
		}
		m[row.Key[idx+1:]] = row.ID
	}
	return m, nil
}

// SupplierRFCMap returns composite RFC -> supplier id.
func (r *CatalogRepository) SupplierRFCMap(storeID string) (map[string]string, error) {
	var rows []keyRow
	err := r.db.Table("suppliers").Select("rfc AS k, id").Where("store_id = ?", storeID).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	m := make(map[string]string, len(rows))
	for _, row := range rows {
		m[strings.TrimSpace(row.Key)] = row.ID
	}
	return m, nil
}

// ProductSKUMap returns SKU -> product id.
func (r *CatalogRepository) ProductSKUMap(storeID string) (map[string]string, error) {
	var rows []keyRow
	err := r.db.Table("products").Select("sku AS k, id").Where("store_id = ?", storeID).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	m := make(map[string]string, len(rows))
	for _, row := range rows {
		m[strings.TrimSpace(row.Key)] = row.ID
	}
	return m, nil
}

// IDMap returns business key -> id for a whole table (optionally scoped to a
// store partition). Used to prime resolvers so re-runs reuse stored ids.
func (r *CatalogRepository) IDMap(table, column, storeID string) (map[string]string, error) {
	var rows []keyRow
	q := r.db.Table(table).Select(column + " AS k, id")
	if storeID != "" {
		q = q.Where("store_id = ?", storeID)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	m := make(map[string]string, len(rows))
	for _, row := range rows {
		m[strings.TrimSpace(row.Key)] = row.ID
	}
	return m, nil
}

// ExistingKeys batch-checks which business keys are already present in a
// table, chunked to keep IN lists bounded.
func (r *CatalogRepository) ExistingKeys(table, column, storeID string, keys []string, batchSize int) (map[string]bool, error) {
	if batchSize <= 0 {
		batchSize = 500
	}
	out := make(map[string]bool, len(keys))
	for i := 0; i < len(keys); i += batchSize {
		end := i + batchSize
		if end > len(keys) {
			end = len(keys)
		}
		var rows []keyRow
		q := r.db.Table(table).Select(column + " AS k, id")
		if storeID != "" {
			q = q.Where("store_id = ?", storeID)
		}
		if err := q.Where(column+" IN ?", keys[i:end]).Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, row := range rows {
			out[row.Key] = true
		}
	}
	return out, nil
}
