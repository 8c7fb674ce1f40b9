package keymat_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/iotest"

	"github.com/idelchi/wcrypt/internal/keymat"
)

func TestLoadTruncation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		key      []byte
		maxBytes int
		want     []uint32
	}{
		{
			name:     "whole words",
			key:      []byte{0xAA, 0xBB, 0xCC, 0xDD, 0x01, 0x02, 0x03, 0x04},
			maxBytes: 1024,
			want:     []uint32{0xDDCCBBAA, 0x04030201},
		},
		{
			name:     "trailing partial word dropped",
			key:      []byte{0xAA, 0xBB, 0xCC, 0xDD, 0x01, 0x02, 0x03},
			maxBytes: 1024,
			want:     []uint32{0xDDCCBBAA},
		},
		{
			name:     "truncated to maximum",
			key:      []byte{1, 0, 0, 0, 2, 0, 0, 0, 3, 0, 0, 0},
			maxBytes: 8,
			want:     []uint32{1, 2},
		},
		{
			name:     "maximum not word aligned",
			key:      []byte{1, 0, 0, 0, 2, 0, 0, 0, 3, 0, 0, 0},
			maxBytes: 7,
			want:     []uint32{1},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			buffer, err := keymat.Load(bytes.NewReader(tc.key), tc.maxBytes)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			defer buffer.Erase()

			if buffer.Len() != len(tc.want) {
				t.Fatalf("Len() = %d, want %d", buffer.Len(), len(tc.want))
			}

			for i, want := range tc.want {
				if got := buffer.WordAt(i); got != want {
					t.Errorf("WordAt(%d) = %#08x, want %#08x", i, got, want)
				}
			}
		})
	}
}

func TestLoadInvalidKey(t *testing.T) {
	t.Parallel()

	for _, key := range [][]byte{nil, {1}, {1, 2, 3}} {
		_, err := keymat.Load(bytes.NewReader(key), 1024)
		if !errors.Is(err, keymat.ErrInvalidKey) {
			t.Errorf("Load(%v) error = %v, want ErrInvalidKey", key, err)
		}
	}

	if _, err := keymat.Load(bytes.NewReader([]byte{1, 2, 3, 4}), 3); !errors.Is(err, keymat.ErrInvalidKey) {
		t.Errorf("Load() with maxBytes 3 error = %v, want ErrInvalidKey", err)
	}
}

func TestLoadReadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")

	_, err := keymat.Load(iotest.ErrReader(boom), 1024)
	if !errors.Is(err, boom) {
		t.Fatalf("Load() error = %v, want %v", err, boom)
	}

	if errors.Is(err, keymat.ErrInvalidKey) {
		t.Errorf("read failure must not be reported as ErrInvalidKey")
	}
}

func TestLoadLargeKeyFromSlowReader(t *testing.T) {
	t.Parallel()

	key := make([]byte, 4096)
	for i := range key {
		key[i] = byte(i)
	}

	buffer, err := keymat.Load(iotest.OneByteReader(bytes.NewReader(key)), 4096)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	defer buffer.Erase()

	if buffer.Len() != 1024 {
		t.Fatalf("Len() = %d, want 1024", buffer.Len())
	}

	if got, want := buffer.WordAt(1023), uint32(0xFFFEFDFC); got != want {
		t.Errorf("WordAt(1023) = %#08x, want %#08x", got, want)
	}
}

func TestWordAtCycles(t *testing.T) {
	t.Parallel()

	buffer, err := keymat.Load(bytes.NewReader([]byte{1, 0, 0, 0, 2, 0, 0, 0, 3, 0, 0, 0}), 1024)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	defer buffer.Erase()

	for i := range 10 {
		if got, want := buffer.WordAt(i), uint32(i%3+1); got != want {
			t.Errorf("WordAt(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestErase(t *testing.T) {
	t.Parallel()

	buffer, err := keymat.Load(bytes.NewReader([]byte("0123456789abcdef")), 1024)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	storage := buffer.Words()

	buffer.Erase()
	buffer.Erase()

	if !buffer.Erased() {
		t.Errorf("Erased() = false after Erase")
	}

	for i, word := range storage {
		if word != keymat.Sentinel {
			t.Errorf("word %d = %#08x after Erase, want %#08x", i, word, keymat.Sentinel)
		}
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "key.bin")

	if err := os.WriteFile(path, []byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE}, 0o600); err != nil {
		t.Fatalf("writing key: %v", err)
	}

	buffer, err := keymat.LoadFile(path, 1024)
	if err != nil {
		t.Fatalf("LoadFile() error: %v", err)
	}
	defer buffer.Erase()

	if buffer.Len() != 1 || buffer.WordAt(0) != 0xDDCCBBAA {
		t.Errorf("LoadFile() loaded %d words, first %#08x", buffer.Len(), buffer.WordAt(0))
	}

	_, err = keymat.LoadFile(filepath.Join(dir, "missing"), 1024)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadFile(missing) error = %v, want os.ErrNotExist", err)
	}
}
