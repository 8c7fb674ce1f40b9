package logic

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tink-crypto/tink-go/v2/subtle/random"
	"golang.org/x/crypto/hkdf"

	"github.com/idelchi/wcrypt/internal/config"
)

const (
	// MinKeySize is the smallest key that yields one word.
	MinKeySize = 4
	// MaxPassphraseKeySize is the most HKDF-SHA256 can expand a passphrase to.
	MaxPassphraseKeySize = 255 * sha256.Size

	keygenInfo = "wcrypt/keygen"
)

// ErrKeySize is returned for key sizes that cannot be generated.
var ErrKeySize = errors.New("invalid key size")

// GenerateKey returns size bytes of key material. Without a passphrase the bytes are random;
// with one they are derived deterministically from it.
func GenerateKey(size int, passphrase string) ([]byte, error) {
	if size < MinKeySize {
		return nil, fmt.Errorf("%w: %d bytes, need at least %d", ErrKeySize, size, MinKeySize)
	}

	if passphrase == "" {
		return random.GetRandomBytes(uint32(size)), nil //nolint:gosec // size is bounded by the caller
	}

	if size > MaxPassphraseKeySize {
		return nil, fmt.Errorf("%w: %d bytes, passphrase keys hold at most %d", ErrKeySize, size, MaxPassphraseKeySize)
	}

	material := make([]byte, size)

	reader := hkdf.New(sha256.New, []byte(passphrase), nil, []byte(keygenInfo))
	if _, err := io.ReadFull(reader, material); err != nil {
		return nil, fmt.Errorf("deriving key: %w", err)
	}

	return material, nil
}

// RunKeygen writes generated key material to cfg.Output, or to stdout when unset.
func RunKeygen(cfg *config.Config) error {
	material, err := GenerateKey(cfg.Size, cfg.Passphrase)
	if err != nil {
		return err
	}
	defer clear(material)

	out := material
	if cfg.Hex {
		out = []byte(hex.EncodeToString(material) + "\n")
		defer clear(out)
	}

	if cfg.Output == "" {
		if _, err := os.Stdout.Write(out); err != nil {
			return fmt.Errorf("writing key: %w", err)
		}

		return nil
	}

	const ownerReadWrite = 0o600

	if err := os.WriteFile(filepath.Clean(cfg.Output), out, ownerReadWrite); err != nil {
		return fmt.Errorf("writing key file: %w", err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(os.Stderr, "Wrote %d-byte key to %q\n", len(material), cfg.Output)
	}

	return nil
}
