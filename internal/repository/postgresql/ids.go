package postgresql

import "github.com/google/uuid"

// newID returns a time-ordered UUIDv7 so primary keys index in insert order.
func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}
