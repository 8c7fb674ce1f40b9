package encryption_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/idelchi/wcrypt/internal/config"
	"github.com/idelchi/wcrypt/internal/encryption"
)

func testConfig() *config.Config {
	return &config.Config{
		MaxKeyBytes:   encryption.DefaultMaxKeyBytes,
		ChunkWords:    8,
		Rotation:      encryption.DefaultRotation,
		Parallel:      4,
		Quiet:         true,
		EncryptSuffix: ".wcr",
	}
}

func TestProcessorRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	key := encryption.KeyBytes([]byte("processor-key"))

	var encrypt, decrypt []encryption.Job

	for i, size := range []int{0, 1, 31, 32, 33, 500} {
		name := filepath.Join(dir, string(rune('a'+i)))
		writeFile(t, name, pattern(size))

		encrypt = append(encrypt, encryption.Job{Direction: encryption.Encrypt, Input: name, Output: name + ".wcr", Key: key})
		decrypt = append(decrypt, encryption.Job{Direction: encryption.Decrypt, Input: name + ".wcr", Output: name + ".out", Key: key})
	}

	proc, err := encryption.NewProcessor(testConfig())
	if err != nil {
		t.Fatalf("NewProcessor() error: %v", err)
	}

	summary, err := proc.Process(encrypt)
	if err != nil {
		t.Fatalf("Process(encrypt) error: %v", err)
	}

	if summary.Processed != len(encrypt) || summary.Corrupt != 0 || summary.Errored != 0 {
		t.Errorf("encrypt summary = %+v", summary)
	}

	if summary.DataSize != 0+1+31+32+33+500 {
		t.Errorf("encrypt DataSize = %d", summary.DataSize)
	}

	summary, err = proc.Process(decrypt)
	if err != nil {
		t.Fatalf("Process(decrypt) error: %v", err)
	}

	if summary.Processed != len(decrypt) || summary.Corrupt != 0 {
		t.Errorf("decrypt summary = %+v", summary)
	}

	for i, job := range encrypt {
		if got, want := readFile(t, decrypt[i].Output), readFile(t, job.Input); string(got) != string(want) {
			t.Errorf("%s: round trip mismatch", job.Input)
		}
	}
}

func TestProcessorCorruptNotDeleted(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	key := encryption.KeyBytes([]byte("processor-key"))

	plain := filepath.Join(dir, "plain")
	good := filepath.Join(dir, "good.wcr")
	bad := filepath.Join(dir, "bad.wcr")

	writeFile(t, plain, pattern(100))

	cfg := testConfig()

	proc, err := encryption.NewProcessor(cfg)
	if err != nil {
		t.Fatalf("NewProcessor() error: %v", err)
	}

	if _, err := proc.Process([]encryption.Job{
		{Direction: encryption.Encrypt, Input: plain, Output: good, Key: key},
	}); err != nil {
		t.Fatalf("Process(encrypt) error: %v", err)
	}

	tampered := readFile(t, good)
	tampered[5] ^= 0x01
	writeFile(t, bad, tampered)

	cfg.Delete = true

	summary, err := proc.Process([]encryption.Job{
		{Direction: encryption.Decrypt, Input: good, Output: filepath.Join(dir, "good.out"), Key: key},
		{Direction: encryption.Decrypt, Input: bad, Output: filepath.Join(dir, "bad.out"), Key: key},
	})
	if err != nil {
		t.Fatalf("Process(decrypt) error: %v", err)
	}

	if summary.Processed != 2 || summary.Corrupt != 1 {
		t.Errorf("summary = %+v, want 2 processed and 1 corrupt", summary)
	}

	if _, err := os.Stat(good); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("intact input %q was not deleted", good)
	}

	if _, err := os.Stat(bad); err != nil {
		t.Errorf("corrupt input %q was deleted: %v", bad, err)
	}
}

func TestProcessorReportsErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	proc, err := encryption.NewProcessor(testConfig())
	if err != nil {
		t.Fatalf("NewProcessor() error: %v", err)
	}

	summary, err := proc.Process([]encryption.Job{{
		Direction: encryption.Encrypt,
		Input:     filepath.Join(dir, "missing"),
		Output:    filepath.Join(dir, "missing.wcr"),
		Key:       encryption.KeyBytes([]byte("processor-key")),
	}})

	if !errors.Is(err, encryption.ErrIO) {
		t.Errorf("Process() error = %v, want ErrIO", err)
	}

	if summary.Errored != 1 {
		t.Errorf("Errored = %d, want 1", summary.Errored)
	}
}

func TestNewProcessorRejectsBadEngineConfig(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Rotation = 12

	if _, err := encryption.NewProcessor(cfg); !errors.Is(err, encryption.ErrInvalidArgument) {
		t.Errorf("NewProcessor() error = %v, want ErrInvalidArgument", err)
	}
}
