// Package idgen produces opaque identifiers for messages and sign-up
// challenges. The strategy is chosen by configuration.
package idgen

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Generator produces and checks identifiers of one format.
type Generator interface {
	Generate() (string, error)
	Validate(id string) (bool, string) // (valid, reason)
}

// Supported generator types.
const (
	TypeUUID      = "uuid"
	TypeULID      = "ulid"
	TypeKSUID     = "ksuid"
	TypeNanoID    = "nanoid"
	TypeCUID2     = "cuid2"
	TypeSnowflake = "snowflake"
)

// Config selects and parameterises a generator.
type Config struct {
	Type      string          `mapstructure:"type"`
	NanoID    NanoIDConfig    `mapstructure:"nanoid"`
	CUID2     CUID2Config     `mapstructure:"cuid2"`
	Snowflake SnowflakeConfig `mapstructure:"snowflake"`
}

type NanoIDConfig struct {
	Size     int    `mapstructure:"size"`
	Alphabet string `mapstructure:"alphabet"`
}

type CUID2Config struct {
	Length int `mapstructure:"length"`
}

type SnowflakeConfig struct {
	MachineID int64 `mapstructure:"machine_id"`
	Epoch     int64 `mapstructure:"epoch"` // unix ms
}

// New builds the generator named by cfg.Type. An empty type means ULID.
func New(cfg Config) (Generator, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Type)) {
	case TypeULID, "":
		return NewULIDGenerator(), nil
	case TypeUUID:
		return NewUUIDGenerator(), nil
	case TypeKSUID:
		return NewKSUIDGenerator(), nil
	case TypeNanoID:
		size, alphabet := cfg.NanoID.Size, cfg.NanoID.Alphabet
		if size == 0 {
			size = DefaultNanoIDSize
		}
		if alphabet == "" {
			alphabet = DefaultNanoIDAlphabet
		}
		return NewNanoIDGenerator(size, alphabet)
	case TypeCUID2:
		length := cfg.CUID2.Length
		if length == 0 {
			length = DefaultCUID2Length
		}
		return NewCUID2Generator(length)
	case TypeSnowflake:
		epoch := cfg.Snowflake.Epoch
		if epoch == 0 {
			epoch = DefaultSnowflakeEpoch
		}
		return NewSnowflakeGenerator(cfg.Snowflake.MachineID, epoch)
	default:
		return nil, fmt.Errorf("unsupported id type: %q", cfg.Type)
	}
}

// NewID returns a fresh id from g. Id generation is not allowed to make a
// send fail, so a generator error falls back to a random UUID.
func NewID(g Generator) string {
	if g != nil {
		if id, err := g.Generate(); err == nil {
			return id
		}
	}
	return uuid.NewString()
}
