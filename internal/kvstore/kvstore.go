// Package kvstore is the device key-value storage the app state lives in.
package kvstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sudo-hablu/chatter/pkg/database"
)

var ErrNotFound = errors.New("key not found")

// Store maps string keys to string values.
type Store interface {
	// Get returns ErrNotFound for a missing key.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Delete succeeds when the key does not exist.
	Delete(ctx context.Context, key string) error
	Close() error
}

const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverDatabase = "database"
)

type Config struct {
	Driver   string          `mapstructure:"driver"`
	File     FileConfig      `mapstructure:"file"`
	Redis    RedisConfig     `mapstructure:"redis"`
	Database database.Config `mapstructure:"database"`
}

// New opens the backend named by cfg.Driver.
func New(cfg Config) (Store, error) {
	switch strings.ToLower(cfg.Driver) {
	case DriverMemory, "":
		return NewMemoryStore(), nil
	case DriverFile:
		return NewFileStore(cfg.File)
	case DriverRedis:
		return NewRedisStore(cfg.Redis)
	case DriverDatabase:
		return NewGormStore(&cfg.Database)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}
