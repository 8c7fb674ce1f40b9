package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/wcrypt/internal/config"
	"github.com/idelchi/wcrypt/internal/logic"
)

// NewBatchCommand creates a new cobra command running the jobs of a JSONC manifest.
func NewBatchCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "batch [flags] manifest.jsonc",
		Short: "Run the encrypt/decrypt jobs listed in a manifest",
		Long: `Run the jobs listed in a JSONC manifest, for example:

  [
    // direction is "encrypt" or "decrypt"
    {"direction": "encrypt", "input": "notes.txt", "key": "key.bin", "output": "notes.wcr"},
    {"direction": "decrypt", "input": "old.wcr"}
  ]

Entries without a key use --key or --key-hex. Entries without an output derive it from the suffixes.`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return preRun(cfg)(cmd, nil)
		},
		RunE: func(_ *cobra.Command, args []string) error {
			return logic.RunBatch(cfg, args[0])
		},
	}
}
