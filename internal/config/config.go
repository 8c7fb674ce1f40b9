// Package config holds the runtime configuration of wcrypt, populated from flags and
// WCRYPT_* environment variables.
package config

import (
	"errors"
	"fmt"
)

// Config holds the settings of every command.
type Config struct {
	// Key material
	Key         string `label:"--key"         mapstructure:"key"           validate:"exclusive=KeyHex"`
	KeyHex      string `label:"--key-hex"     mapstructure:"key-hex"`
	MaxKeyBytes int    `label:"--max-key-bytes" mapstructure:"max-key-bytes" validate:"min=4"`

	// Engine
	ChunkWords int `label:"--chunk-words" mapstructure:"chunk-words" validate:"min=2,max=134217728"`
	Rotation   int `label:"--rotation"    mapstructure:"rotation"    validate:"rotation"`

	// Processing
	Parallel           int    `label:"--parallel" mapstructure:"parallel" validate:"min=1"`
	Quiet              bool   `mapstructure:"quiet"`
	Stats              bool   `mapstructure:"stats"`
	Dry                bool   `mapstructure:"dry"`
	Delete             bool   `mapstructure:"delete"`
	PreserveTimestamps bool   `mapstructure:"preserve-timestamps"`
	EncryptSuffix      string `label:"--encrypt-ext" mapstructure:"encrypt-ext" validate:"required"`
	DecryptSuffix      string `mapstructure:"decrypt-ext"`
	Output             string `mapstructure:"output"`

	// Key generation
	Size       int    `label:"--size" mapstructure:"size"`
	Passphrase string `mapstructure:"passphrase"`
	Hex        bool   `mapstructure:"hex"`

	// Set by the command, not by flags
	Decrypt bool `mapstructure:"-"`

	// Positional arguments
	Files []string `mapstructure:"-"`
}

// ErrNoKey is returned when a command needs key material and none was given.
var ErrNoKey = errors.New("one of --key or --key-hex is required")

// Validate validates the configuration against the struct tags.
func (c *Config) Validate() error {
	validate, err := newValidator()
	if err != nil {
		return err
	}

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	if c.Output != "" && len(c.Files) > 1 {
		return fmt.Errorf("validating configuration: --output needs exactly one file, got %d", len(c.Files))
	}

	return nil
}

// RequireKey checks that key material was supplied.
func (c *Config) RequireKey() error {
	if c.Key == "" && c.KeyHex == "" {
		return ErrNoKey
	}

	return nil
}
