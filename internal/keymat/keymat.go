// Package keymat loads key material as a bounded, word-aligned buffer that is cycled
// across the data stream and overwritten with a sentinel pattern once it is no longer needed.
package keymat

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

const (
	// WordSize is the number of bytes in one key word.
	WordSize = 4

	// Sentinel is the value every key word holds after Erase.
	Sentinel uint32 = 0xFFFFFFFF
)

// Buffer holds key words loaded once per operation.
// It is read-only until Erase is called.
type Buffer struct {
	mu     sync.Mutex
	words  []uint32
	locked bool
	erased bool
}

// Load reads at most maxBytes from src and keeps the longest prefix that is a whole number of words.
// Words are decoded little-endian. ErrInvalidKey is returned if no complete word remains.
func Load(src io.Reader, maxBytes int) (*Buffer, error) {
	if maxBytes < WordSize {
		return nil, fmt.Errorf("%w: maximum key size %d is smaller than one word", ErrInvalidKey, maxBytes)
	}

	raw, err := readBounded(src, maxBytes)
	defer clear(raw)

	if err != nil {
		return nil, fmt.Errorf("reading key: %w", err)
	}

	count := len(raw) / WordSize
	if count == 0 {
		return nil, fmt.Errorf("%w: key holds %d bytes, need at least %d", ErrInvalidKey, len(raw), WordSize)
	}

	buffer := &Buffer{words: make([]uint32, count)}

	for i := range buffer.words {
		buffer.words[i] = binary.LittleEndian.Uint32(raw[i*WordSize:])
	}

	buffer.locked = lockWords(buffer.words)

	runtime.SetFinalizer(buffer, (*Buffer).Erase)

	return buffer, nil
}

// LoadFile opens path and loads it with Load.
// Open failures are returned unwrapped by ErrInvalidKey so callers can tell them apart.
func LoadFile(path string, maxBytes int) (*Buffer, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err //nolint:wrapcheck // the caller attaches the file role
	}
	defer file.Close()

	return Load(file, maxBytes)
}

// Len returns the number of key words.
func (b *Buffer) Len() int {
	return len(b.words)
}

// WordAt returns the key word for position i, cycling through the buffer.
func (b *Buffer) WordAt(i int) uint32 {
	return b.words[i%len(b.words)]
}

// Erase overwrites every key word with Sentinel and releases the memory lock.
// Calling Erase more than once has no further effect.
func (b *Buffer) Erase() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.erased {
		return
	}

	for i := range b.words {
		b.words[i] = Sentinel
	}

	if b.locked {
		unlockWords(b.words)

		b.locked = false
	}

	b.erased = true

	runtime.SetFinalizer(b, nil)
}

// Erased reports whether Erase has run.
func (b *Buffer) Erased() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.erased
}

// readBounded reads up to limit bytes. Intermediate buffers are zeroed when they are replaced.
func readBounded(src io.Reader, limit int) ([]byte, error) {
	const initialSize = 512

	buf := make([]byte, 0, min(limit, initialSize))

	for len(buf) < limit {
		if len(buf) == cap(buf) {
			grown := make([]byte, len(buf), min(limit, 2*cap(buf)))
			copy(grown, buf)
			clear(buf)

			buf = grown
		}

		n, err := src.Read(buf[len(buf):cap(buf)])
		buf = buf[:len(buf)+n]

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return buf, err
		}
	}

	return buf, nil
}
