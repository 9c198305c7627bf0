package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultTimeout = 10 * time.Second
	appName        = "homeservices"

	DefaultDatabase   = "homeservices"
	DefaultCollection = "kv_entries"
)

// Config selects the server and the collection holding the device store.
type Config struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

func (c Config) withDefaults() Config {
	if c.Database == "" {
		c.Database = DefaultDatabase
	}
	if c.Collection == "" {
		c.Collection = DefaultCollection
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	return c
}

// Open connects to MongoDB, verifies the server answers a ping and returns
// the key-value store over the configured collection along with the
// client's disconnect func.
func Open(ctx context.Context, cfg Config) (*KVStore, func(context.Context) error, error) {
	cfg = cfg.withDefaults()

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI).SetAppName(appName))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect %s: %w", cfg.Database, err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping %s: %w", cfg.Database, err)
	}

	return NewKVStore(client.Database(cfg.Database), cfg.Collection), client.Disconnect, nil
}
