// ABOUTME: Persistent key-value backing contract for the call-note store
// ABOUTME: Durable string-keyed get/set/remove with no transactions
package backing

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when a key has never been set or was removed.
var ErrNotFound = errors.New("backing: key not found")

// Store is durable string-keyed storage. Implementations need not be
// transactional; each call is applied independently.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
