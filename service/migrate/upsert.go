package migrate

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UpsertSpec describes how one entity type writes: the conflict target is the
// business key, and only the listed mutable columns are overwritten on
// conflict — identifiers and creation metadata are preserved.
type UpsertSpec struct {
	Table           string
	ConflictColumns []string
	UpdateColumns   []string // empty = insert-or-ignore
}

// UpsertResult counts rows newly inserted vs matched-and-updated (or
// ignored, for insert-only specs).
type UpsertResult struct {
	Inserted int
	Updated  int
}

// Upsert writes a batch atomically: one transaction, chunked inserts with
// ON CONFLICT semantics. existingKeys (business key -> present) splits the
// counts; keyOf extracts the business key from a row. A failure rolls the
// whole batch back and the counts are zero.
func Upsert[T any](db *gorm.DB, spec UpsertSpec, rows []T, existingKeys map[string]bool, keyOf func(T) string, batchSize int) (UpsertResult, error) {
	var res UpsertResult
	if len(rows) == 0 {
		return res, nil
	}
	if batchSize <= 0 {
		batchSize = 500
	}

	for _, row := range rows {
		if existingKeys[keyOf(row)] {
			res.Updated++
		} else {
			res.Inserted++
		}
	}

	oc := clause.OnConflict{Columns: conflictCols(spec.ConflictColumns)}
	if len(spec.UpdateColumns) == 0 {
		oc.DoNothing = true
	} else {
		oc.DoUpdates = clause.AssignmentColumns(spec.UpdateColumns)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(oc).CreateInBatches(rows, batchSize).Error
	})
	if err != nil {
		return UpsertResult{}, fmt.Errorf("upsert %s: %w", spec.Table, err)
	}
	return res, nil
}

func conflictCols(names []string) []clause.Column {
	cols := make([]clause.Column, len(names))
	for i, n := range names {
		cols[i] = clause.Column{Name: n}
	}
	return cols
}
