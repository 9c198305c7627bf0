package ports

import "context"

// KeySerializer runs fn so that calls sharing a key never overlap. It is used
// around read-modify-write sequences on a single stored key.
type KeySerializer interface {
	Do(ctx context.Context, key string, fn func(ctx context.Context) error) error
}
