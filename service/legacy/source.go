package legacy

import (
	"database/sql"
	"fmt"
)

// Row is one legacy result tuple, addressed by column position. Values are
// whatever the driver produced: string, []byte, int64, float64, time.Time or
// nil. The coercion helpers in scan.go normalize them.
type Row []any

// Source executes read-only queries against the legacy ERP store.
type Source interface {
	Select(query string, args ...any) ([]Row, error)
}

// SQLSource adapts a database/sql handle (any driver) to Source.
type SQLSource struct {
	db *sql.DB
}

func NewSQLSource(db *sql.DB) *SQLSource {
	return &SQLSource{db: db}
}

func (s *SQLSource) Select(query string, args ...any) ([]Row, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("legacy query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []Row
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("legacy scan: %w", err)
		}
		out = append(out, Row(values))
	}
	return out, rows.Err()
}
