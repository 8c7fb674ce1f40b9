package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/wcrypt/internal/config"
	"github.com/idelchi/wcrypt/internal/logic"
)

// NewKeygenCommand creates a new cobra command generating key material.
func NewKeygenCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "keygen [flags]",
		Aliases: []string{"gen"},
		Short:   "Generate key material",
		Args:    cobra.NoArgs,
		PreRunE: preRun(cfg),
		RunE: func(_ *cobra.Command, _ []string) error {
			return logic.RunKeygen(cfg)
		},
	}

	const defaultKeySize = 256

	cmd.Flags().IntP("size", "n", defaultKeySize, "Key size in bytes")
	cmd.Flags().String("passphrase", "", "Derive the key from a passphrase instead of random bytes")
	cmd.Flags().Bool("hex", false, "Write the key hex-encoded")

	return cmd
}
