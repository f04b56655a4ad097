package checkout

import (
	"context"
	"time"
)

// IdempotencyStore remembers checkout request keys so that a retried
// request with the same Idempotency-Key header does not place a second
// order.
type IdempotencyStore interface {
	// PutIfAbsent records the key if it has not been seen. Returns false
	// when the key already exists.
	PutIfAbsent(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Remove forgets a key, allowing the client to retry after a failed
	// checkout.
	Remove(ctx context.Context, key string) error
}
