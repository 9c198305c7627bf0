package ports

import "context"

// KVStore is the device-local persistence capability keyed by string.
// GetItem reports found=false for an absent key; RemoveItem on an absent
// key is not an error.
type KVStore interface {
	GetItem(ctx context.Context, key string) (value string, found bool, err error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}
