// Package result holds the positional result sets returned by catalog queries.
//
// A Set is an ordered sequence of Records and a Record is an ordered sequence of
// scalar values. Field identity is positional; Columns is informational only and
// may be empty.
package result

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"
)

// Record is one row of a result set. Values are string, int64, float64, bool,
// time.Time or nil.
type Record []any

// Set is an ordered, finite sequence of records.
type Set struct {
	Columns []string
	Records []Record
}

// New builds a Set from records without column metadata.
func New(records ...Record) *Set {
	return &Set{Records: records}
}

// Len returns the number of records. A nil Set has no records.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Records)
}

// Empty reports whether the set has no records.
func (s *Set) Empty() bool {
	return s.Len() == 0
}

// Width returns the length of the longest record.
func (s *Set) Width() int {
	if s == nil {
		return 0
	}
	width := 0
	for _, rec := range s.Records {
		if len(rec) > width {
			width = len(rec)
		}
	}
	return width
}

// FromRows drains rows into a Set. The caller still owns rows and must close it.
func FromRows(rows *sql.Rows) (*Set, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	set := &Set{Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		valuePtrs := make([]any, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}

		for i, val := range values {
			// Drivers return TEXT as []byte in some modes
			if b, ok := val.([]byte); ok {
				values[i] = string(b)
			}
		}
		set.Records = append(set.Records, Record(values))
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return set, nil
}

// String returns the textual form of a scalar value. Nil renders as the empty string.
func String(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", val)
	}
}
