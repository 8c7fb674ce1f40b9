package commands

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/idelchi/gogen/pkg/cobraext"
	"github.com/idelchi/wcrypt/internal/config"
	"github.com/idelchi/wcrypt/internal/encryption"
)

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding and flag handling.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	root := cobraext.NewDefaultRootCommand(version)

	root.Use = "wcrypt [flags] command [flags]"
	root.Short = "Chunked word-transform file encryption"
	root.Long = `A file encryption utility that streams files through a keyed, reversible 32-bit word transform.
Every chunk carries a checksum word, verified once decryption completes.

The transform is not a vetted cipher and provides no real confidentiality.`
	root.SilenceUsage = true
	root.SilenceErrors = true

	flags := root.PersistentFlags()

	flags.IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	flags.BoolP("quiet", "q", false, "Suppress non-error output")
	flags.Bool("stats", false, "Print statistics and throughput when done")
	flags.Bool("dry", false, "Show what would be processed without doing it")
	flags.Bool("delete", false, "Delete the original file after successful encryption/decryption")
	flags.Bool("preserve-timestamps", false, "Give outputs the modification time of their inputs")
	flags.StringP("output", "o", "", "Output path, only valid for a single input")

	flags.StringP("key", "k", "", "Path to the key file")
	flags.String("key-hex", "", "Key material, hex-encoded")
	flags.Int("max-key-bytes", encryption.DefaultMaxKeyBytes, "Maximum number of key bytes used")

	flags.Int("chunk-words", encryption.DefaultMaxChunkWords, "Words held in memory per chunk, checksum included")
	flags.Int("rotation", encryption.DefaultRotation, "Rotation of the word transform in bits (8, 16 or 24)")

	flags.String("encrypt-ext", ".wcr", "Suffix to append to encrypted files")
	flags.String("decrypt-ext", "", "Suffix to append to decrypted files, after stripping the encrypted suffix")

	root.AddCommand(
		NewEncryptCommand(cfg),
		NewDecryptCommand(cfg),
		NewBatchCommand(cfg),
		NewKeygenCommand(cfg),
	)

	return root
}
