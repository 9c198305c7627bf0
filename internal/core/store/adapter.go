// Package store adapts a raw string key-value capability to the JSON
// values the screens persist.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/homeservices/booking-app/internal/core/domain"
	"github.com/homeservices/booking-app/internal/core/ports"
)

// Adapter encodes values as JSON on top of a ports.KVStore. All failures
// are returned as *domain.StorageError.
type Adapter struct {
	kv ports.KVStore
}

func NewAdapter(kv ports.KVStore) *Adapter {
	return &Adapter{kv: kv}
}

// GetJSON decodes the value at key into dst. It reports false when the key
// is absent, leaving dst untouched.
func (a *Adapter) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	raw, found, err := a.kv.GetItem(ctx, key)
	if err != nil {
		return false, &domain.StorageError{Op: "get", Key: key, Err: err}
	}
	if !found {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, &domain.StorageError{Op: "decode", Key: key, Err: err}
	}
	return true, nil
}

// SetJSON encodes v and stores it at key.
func (a *Adapter) SetJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return &domain.StorageError{Op: "encode", Key: key, Err: fmt.Errorf("marshal: %w", err)}
	}
	if err := a.kv.SetItem(ctx, key, string(b)); err != nil {
		return &domain.StorageError{Op: "set", Key: key, Err: err}
	}
	return nil
}

// GetString returns the raw value at key. Plain-string keys such as
// "username" are stored without JSON quoting.
func (a *Adapter) GetString(ctx context.Context, key string) (string, bool, error) {
	raw, found, err := a.kv.GetItem(ctx, key)
	if err != nil {
		return "", false, &domain.StorageError{Op: "get", Key: key, Err: err}
	}
	return raw, found, nil
}

func (a *Adapter) SetString(ctx context.Context, key, value string) error {
	if err := a.kv.SetItem(ctx, key, value); err != nil {
		return &domain.StorageError{Op: "set", Key: key, Err: err}
	}
	return nil
}

// Remove deletes key. Removing an absent key succeeds.
func (a *Adapter) Remove(ctx context.Context, key string) error {
	if err := a.kv.RemoveItem(ctx, key); err != nil {
		return &domain.StorageError{Op: "remove", Key: key, Err: err}
	}
	return nil
}
