// Package commands provides the command-line interface for the wcrypt tool.
//
// It implements commands for:
//   - encryption
//   - decryption
//   - batch runs from a manifest
//   - key generation
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/wcrypt/internal/config"
)

// envPrefix prefixes the environment variables bound to flags, e.g. WCRYPT_KEY_HEX.
const envPrefix = "WCRYPT"

// preRun returns a PreRunE handler that binds flags and environment variables into cfg,
// stores the positional args in cfg.Files and validates the configuration.
func preRun(cfg *config.Config) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := bind(cmd, cfg); err != nil {
			return err
		}

		cfg.Files = args

		return cfg.Validate()
	}
}

// bind unmarshals the flags of cmd, overridden by WCRYPT_* variables, into cfg.
func bind(cmd *cobra.Command, cfg *config.Config) error {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	return nil
}
