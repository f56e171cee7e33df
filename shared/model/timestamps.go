package model

import "time"

// Timestamps are assigned by the service on create and stamped again on every update.
type Timestamps struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
