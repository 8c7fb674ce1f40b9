package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/wcrypt/internal/config"
	"github.com/idelchi/wcrypt/internal/logic"
)

// NewEncryptCommand creates a new cobra command for the encrypt subcommand.
func NewEncryptCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "encrypt [flags] files...",
		Aliases: []string{"enc"},
		Short:   "Encrypt files",
		Args:    cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Decrypt = false

			if err := preRun(cfg)(cmd, args); err != nil {
				return err
			}

			return cfg.RequireKey()
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return logic.Run(cfg)
		},
	}
}
