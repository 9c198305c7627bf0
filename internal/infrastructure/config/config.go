package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Addr      string `env:"APP_ADDR,   default=127.0.0.1:8080"`
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	Store   StoreConfig
	Sqlite  SqliteConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Screens ScreenConfig
	Device  DeviceConfig
}

type StoreConfig struct {
	Driver  string `env:"STORE_DRIVER,  default=sqlite"`
	Workers int    `env:"STORE_WORKERS, default=4"`
}

type SqliteConfig struct {
	Path string `env:"SQLITE_PATH, default=homeservices.db"`
}

type MongoConfig struct {
	URI        string `env:"MONGO_URI,        default=mongodb://localhost:27017"`
	Database   string `env:"MONGO_DB,         default=homeservices"`
	Collection string `env:"MONGO_COLLECTION, default=kv_entries"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,   default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,     default=0"`
	Prefix   string `env:"REDIS_PREFIX, default=homeservices"`
}

// ScreenConfig holds the timer periods and policies of the screens.
type ScreenConfig struct {
	TrackingInterval  time.Duration `env:"TRACKING_INTERVAL,   default=5s"`
	ChatReplyDelay    time.Duration `env:"CHAT_REPLY_DELAY,    default=1s"`
	CarouselInterval  time.Duration `env:"CAROUSEL_INTERVAL,   default=2s"`
	BookingCancelMode string        `env:"BOOKING_CANCEL_MODE, default=remove"`
}

type DeviceConfig struct {
	LocationGranted   bool   `env:"DEVICE_LOCATION_GRANTED,   default=true"`
	MicrophoneGranted bool   `env:"DEVICE_MICROPHONE_GRANTED, default=true"`
	City              string `env:"DEVICE_CITY"`
	Region            string `env:"DEVICE_REGION"`
	Country           string `env:"DEVICE_COUNTRY"`
	MediaDir          string `env:"DEVICE_MEDIA_DIR, default=media"`
}

var storeDrivers = map[string]bool{"memory": true, "sqlite": true, "redis": true, "mongo": true}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if !storeDrivers[cfg.Store.Driver] {
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}
	return &cfg, nil
}
