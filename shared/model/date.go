package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Date is a calendar date kept as YYYY-MM-DD. Postgres returns DATE columns as time.Time,
// SQLite as text; both scan into the same string form.
type Date string

func (d *Date) Scan(src any) error {
	switch value := src.(type) {
	case nil:
		*d = ""
	case time.Time:
		*d = Date(value.Format(dateLayout))
	case []byte:
		*d = Date(truncate(string(value)))
	case string:
		*d = Date(truncate(value))
	default:
		return fmt.Errorf("cannot scan %T into Date", src)
	}

	return nil
}

func (d Date) Value() (driver.Value, error) {
	return string(d), nil
}

func (d Date) String() string {
	return string(d)
}

func truncate(value string) string {
	if len(value) > len(dateLayout) {
		return value[:len(dateLayout)]
	}

	return value
}
