package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/homeservices/booking-app/internal/api/handler"
	"github.com/homeservices/booking-app/internal/core/ports"
	"github.com/homeservices/booking-app/internal/infrastructure/config"
	"github.com/homeservices/booking-app/internal/infrastructure/db/memory"
	"github.com/homeservices/booking-app/internal/infrastructure/db/mongo"
	"github.com/homeservices/booking-app/internal/infrastructure/db/redis"
	"github.com/homeservices/booking-app/internal/infrastructure/db/sqlite"
)

// kvBackend is a key-value store the readiness probe can ping.
type kvBackend interface {
	ports.KVStore
	handler.Pinger
}

// openStore connects the backend selected by STORE_DRIVER. The returned
// func releases its connection.
func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (kvBackend, func(), error) {
	switch cfg.Store.Driver {
	case "memory":
		log.Warn().Msg("using in-memory store, data is lost on exit")
		return memory.NewKVStore(), func() {}, nil

	case "sqlite":
		db, err := sqlite.Connect(ctx, sqlite.Config{Path: cfg.Sqlite.Path})
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if sqlDB, err := db.DB(); err == nil {
				if err := sqlDB.Close(); err != nil {
					log.Error().Err(err).Msg("error closing sqlite")
				}
			}
		}
		log.Info().Str("path", cfg.Sqlite.Path).Msg("connected to sqlite")
		return sqlite.NewKVStore(db), closeFn, nil

	case "redis":
		client, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := client.Close(); err != nil {
				log.Error().Err(err).Msg("error closing redis")
			}
		}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")
		return redis.NewKVStore(client, cfg.Redis.Prefix), closeFn, nil

	case "mongo":
		kv, disconnect, err := mongo.Open(ctx, mongo.Config{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := disconnect(context.Background()); err != nil {
				log.Error().Err(err).Msg("error disconnecting mongo")
			}
		}
		log.Info().Str("database", cfg.Mongo.Database).Str("collection", cfg.Mongo.Collection).Msg("connected to mongo")
		return kv, closeFn, nil
	}
	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}
