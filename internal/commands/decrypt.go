package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/wcrypt/internal/config"
	"github.com/idelchi/wcrypt/internal/logic"
)

// NewDecryptCommand creates a new cobra command for the decrypt subcommand.
func NewDecryptCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "decrypt [flags] files...",
		Aliases: []string{"dec"},
		Short:   "Decrypt files and verify their checksums",
		Args:    cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Decrypt = true

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
