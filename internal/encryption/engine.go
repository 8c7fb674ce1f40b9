package encryption

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/bits"
	"os"
	"path/filepath"

	"github.com/idelchi/wcrypt/internal/fileutil"
	"github.com/idelchi/wcrypt/internal/keymat"
)

const (
	// WordSize is the number of bytes in one word.
	WordSize = 4

	// MaxChunkWordsLimit caps the chunk size at 512MiB.
	MaxChunkWordsLimit = 1 << 27
	// DefaultMaxChunkWords is the default number of words per chunk, checksum included.
	DefaultMaxChunkWords = MaxChunkWordsLimit
	// DefaultRotation is the default rotation of the word codec, in bits.
	DefaultRotation = 16
	// DefaultMaxKeyBytes is the default number of key bytes used.
	DefaultMaxKeyBytes = 1 << 20

	minChunkWords = 2
)

// Config holds the fixed parameters of an Engine.
type Config struct {
	// MaxChunkWords bounds the words held in memory per chunk, checksum word included.
	MaxChunkWords int
	// Rotation is the codec rotation in bits: a multiple of 8 in (0, 32).
	Rotation int
	// MaxKeyBytes bounds how much of the key source is used.
	MaxKeyBytes int
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		MaxChunkWords: DefaultMaxChunkWords,
		Rotation:      DefaultRotation,
		MaxKeyBytes:   DefaultMaxKeyBytes,
	}
}

// Validate checks the configuration bounds.
func (c Config) Validate() error {
	if c.MaxChunkWords < minChunkWords || c.MaxChunkWords > MaxChunkWordsLimit {
		return fmt.Errorf("%w: chunk size %d words outside [%d, %d]",
			ErrInvalidArgument, c.MaxChunkWords, minChunkWords, MaxChunkWordsLimit)
	}

	if c.Rotation <= 0 || c.Rotation >= 32 || c.Rotation%8 != 0 {
		return fmt.Errorf("%w: rotation %d is not a multiple of 8 in (0, 32)", ErrInvalidArgument, c.Rotation)
	}

	if c.MaxKeyBytes < keymat.WordSize {
		return fmt.Errorf("%w: maximum key size %d is smaller than one word", ErrInvalidArgument, c.MaxKeyBytes)
	}

	return nil
}

// Engine encrypts and decrypts streams chunk by chunk.
// An Engine may be shared; every operation owns its own chunk buffer and key.
type Engine struct {
	cfg      Config
	codec    Codec
	checksum Checksum
	chunks   chunkPool
}

// New creates an engine using the XorRotate codec and the RotatingXor checksum.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Engine{
		cfg:      cfg,
		codec:    XorRotate{Rotation: cfg.Rotation},
		checksum: RotatingXor{Seed: DefaultChecksumSeed},
	}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// KeyLoader produces the key buffer for one operation.
type KeyLoader func(maxBytes int) (*keymat.Buffer, error)

// KeyFile loads the key from the file at path.
func KeyFile(path string) KeyLoader {
	return func(maxBytes int) (*keymat.Buffer, error) {
		key, err := keymat.LoadFile(path, maxBytes)
		if err != nil {
			if errors.Is(err, keymat.ErrInvalidKey) {
				return nil, fmt.Errorf("key file %q: %w", path, err)
			}

			return nil, &IOError{Role: RoleKey, Op: "load", Path: path, Err: err}
		}

		return key, nil
	}
}

// KeyBytes loads the key from memory. The caller keeps ownership of material and must wipe it.
func KeyBytes(material []byte) KeyLoader {
	return func(maxBytes int) (*keymat.Buffer, error) {
		return keymat.Load(bytes.NewReader(material), maxBytes)
	}
}

// Encrypt encrypts the file at dataPath with the key file at keyPath into outPath.
// It returns the number of data bytes encrypted.
func (e *Engine) Encrypt(dataPath, keyPath, outPath string) (int64, error) {
	size, _, err := e.Run(Encrypt, dataPath, KeyFile(keyPath), outPath)

	return size, err
}

// Decrypt decrypts the file at dataPath with the key file at keyPath into outPath.
// It returns the number of bytes written and whether the embedded checksums matched.
func (e *Engine) Decrypt(dataPath, keyPath, outPath string) (int64, bool, error) {
	return e.Run(Decrypt, dataPath, KeyFile(keyPath), outPath)
}

// Run performs one operation between files.
// Paths naming the same file are rejected before anything is opened.
// The key is erased on every return path. A failure part way through may leave a truncated output.
//
//nolint:nonamedreturns
func (e *Engine) Run(dir Direction, dataPath string, loadKey KeyLoader, outPath string) (size int64, intact bool, err error) {
	same, err := fileutil.SamePath(dataPath, outPath)
	if err != nil {
		return 0, false, fmt.Errorf("%w: comparing paths: %w", ErrInvalidArgument, err)
	}

	if same {
		return 0, false, fmt.Errorf("%w: output %q would overwrite input %q", ErrInvalidArgument, outPath, dataPath)
	}

	in, err := os.Open(filepath.Clean(dataPath))
	if err != nil {
		return 0, false, &IOError{Role: RoleData, Op: "open", Path: dataPath, Err: err}
	}
	defer in.Close()

	key, err := loadKey(e.cfg.MaxKeyBytes)
	if err != nil {
		return 0, false, err
	}
	defer key.Erase()

	const ownerReadWrite = 0o600

	out, err := os.OpenFile(filepath.Clean(outPath), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, ownerReadWrite)
	if err != nil {
		return 0, false, &IOError{Role: RoleOutput, Op: "open", Path: outPath, Err: err}
	}

	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = &IOError{Role: RoleOutput, Op: "close", Path: outPath, Err: cerr}
		}

		var ioErr *IOError
		if errors.As(err, &ioErr) && ioErr.Path == "" {
			switch ioErr.Role {
			case RoleData:
				ioErr.Path = dataPath
			case RoleOutput:
				ioErr.Path = outPath
			}
		}
	}()

	if dir == Decrypt {
		return e.DecryptStream(in, key, out)
	}

	size, err = e.EncryptStream(in, key, out)

	return size, err == nil, err
}

// EncryptStream encrypts in to out.
// Each chunk is written as its checksum word followed by the payload words;
// the final payload word is cut down to the bytes that hold data.
// It returns the number of data bytes encrypted.
func (e *Engine) EncryptStream(in io.ReadSeeker, key KeySchedule, out io.Writer) (int64, error) {
	size, err := fileutil.Size(in)
	if err != nil {
		return 0, &IOError{Role: RoleData, Op: "probe", Err: err}
	}

	if size == 0 {
		return 0, nil
	}

	payloadCapacity := e.capacity() - WordSize

	buf, err := e.chunks.get(int(min(int64(e.cfg.MaxChunkWords), wordsFor(size)+1)))
	if err != nil {
		return 0, err
	}
	defer e.chunks.put(buf)

	for left := size; left > 0; {
		n := min(left, payloadCapacity)
		final := left <= payloadCapacity
		count := int(wordsFor(n))

		// Slot 0 of the byte image is left free for the checksum word.
		payload := buf.raw[WordSize : (count+1)*WordSize]
		clear(payload[n:])

		if _, err := io.ReadFull(in, payload[:n]); err != nil {
			return 0, &IOError{Role: RoleData, Op: "read", Err: err}
		}

		block := buf.words[:count+1]
		decodeWords(block[1:], payload)

		block[0] = e.checksum.Fold(block[1:])

		TransformBlock(e.codec, block, key, Encrypt)

		if final {
			// Undo the codec rotation on the last word so its data bytes keep their
			// plaintext positions and survive truncation to the final byte count.
			block[count] = bits.RotateLeft32(block[count], -e.cfg.Rotation)
		}

		encodeWords(buf.raw, block)

		if _, err := out.Write(buf.raw[:n+WordSize]); err != nil {
			return 0, &IOError{Role: RoleOutput, Op: "write", Err: err}
		}

		left -= n
	}

	return size, nil
}

// DecryptStream decrypts in to out. Output is always written in full; whether the
// per-chunk checksums matched is reported once the whole stream has been processed.
// It returns the number of bytes written.
func (e *Engine) DecryptStream(in io.ReadSeeker, key KeySchedule, out io.Writer) (int64, bool, error) {
	size, err := fileutil.Size(in)
	if err != nil {
		return 0, false, &IOError{Role: RoleData, Op: "probe", Err: err}
	}

	if size == 0 {
		return 0, true, nil
	}

	capacity := e.capacity()

	buf, err := e.chunks.get(int(min(int64(e.cfg.MaxChunkWords), wordsFor(size))))
	if err != nil {
		return 0, false, err
	}
	defer e.chunks.put(buf)

	var written int64

	stored, computed := e.checksum.Begin(), e.checksum.Begin()
	truncated := false

	for left := size; left > 0; {
		n := min(left, capacity)
		final := left <= capacity
		count := int(wordsFor(n))

		left -= n

		raw := buf.raw[:count*WordSize]
		clear(raw[n:])

		if _, err := io.ReadFull(in, raw[:n]); err != nil {
			return written, false, &IOError{Role: RoleData, Op: "read", Err: err}
		}

		if count < minChunkWords {
			// A checksum word with no payload cannot come from EncryptStream.
			truncated = true

			break
		}

		block := buf.words[:count]
		decodeWords(block, raw)

		if final {
			block[count-1] = bits.RotateLeft32(block[count-1], e.cfg.Rotation)
		}

		TransformBlock(e.codec, block, key, Decrypt)

		payload := block[1:]

		if final {
			payload[len(payload)-1] &= lowBytesMask(finalByteCount(n))
		}

		stored.Add(block[0])
		computed.Add(e.checksum.Fold(payload))

		encodeWords(raw, payload)

		if _, err := out.Write(raw[:n-WordSize]); err != nil {
			return written, false, &IOError{Role: RoleOutput, Op: "write", Err: err}
		}

		written += n - WordSize
	}

	return written, !truncated && stored.Sum() == computed.Sum(), nil
}

// capacity is the on-disk size of a full chunk in bytes.
func (e *Engine) capacity() int64 {
	return int64(e.cfg.MaxChunkWords) * WordSize
}

// wordsFor returns the number of words needed to hold n bytes.
func wordsFor(n int64) int64 {
	return (n + WordSize - 1) / WordSize
}

// finalByteCount returns how many bytes of the last word of an n-byte run hold data.
func finalByteCount(n int64) int {
	if rem := int(n % WordSize); rem != 0 {
		return rem
	}

	return WordSize
}

// lowBytesMask keeps the low count bytes of a word.
func lowBytesMask(count int) uint32 {
	const allBytes = ^uint32(0)

	return ^(allBytes << (8 * count))
}
