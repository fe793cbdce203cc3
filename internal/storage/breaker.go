package storage

import (
	"context"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/pageza/recipe-share/backend/internal/logging"
)

// BreakerStore fails fast while the wrapped store keeps failing.
type BreakerStore struct {
	inner BlobStore
	cb    *gobreaker.CircuitBreaker[Object]
}

var _ BlobStore = (*BreakerStore)(nil)

// BreakerSettings tunes the breaker. Zero values pick the defaults.
type BreakerSettings struct {
	// ConsecutiveFailures opens the circuit. Default 5.
	ConsecutiveFailures uint32
	// Timeout is how long the circuit stays open. Default 30s.
	Timeout time.Duration
}

func NewBreakerStore(inner BlobStore, settings BreakerSettings) *BreakerStore {
	if settings.ConsecutiveFailures == 0 {
		settings.ConsecutiveFailures = 5
	}
	if settings.Timeout == 0 {
		settings.Timeout = 30 * time.Second
	}

	cb := gobreaker.NewCircuitBreaker[Object](gobreaker.Settings{
		Name:        "blob-store",
		MaxRequests: 1,
		Timeout:     settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= settings.ConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
		},
	})

	return &BreakerStore{inner: inner, cb: cb}
}

func (b *BreakerStore) Put(ctx context.Context, key string, upload *Upload) (Object, error) {
	return b.cb.Execute(func() (Object, error) {
		return b.inner.Put(ctx, key, upload)
	})
}

func (b *BreakerStore) Delete(ctx context.Context, key string) error {
	_, err := b.cb.Execute(func() (Object, error) {
		return Object{}, b.inner.Delete(ctx, key)
	})
	return err
}

// State exposes the breaker state for health reporting.
func (b *BreakerStore) State() string {
	return b.cb.State().String()
}
