// Command wcrypt encrypts and decrypts files with a chunked, checksummed word transform.
package main

import (
	"fmt"
	"os"

	"github.com/idelchi/wcrypt/internal/commands"
	"github.com/idelchi/wcrypt/internal/config"
)

// version is set at build time.
var version = "unknown - unofficial build"

func main() {
	cfg := &config.Config{}

	root := commands.NewRootCommand(cfg, version)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
