// Package logic implements the core business logic for the encryption/decryption.
package logic

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/idelchi/gogen/pkg/key"
	"github.com/idelchi/wcrypt/internal/config"
	"github.com/idelchi/wcrypt/internal/encryption"
)

// ErrIntegrity is returned when at least one decrypted file failed its checksum.
var ErrIntegrity = errors.New("checksum mismatch")

// Run encrypts or decrypts the files named in cfg.Files.
func Run(cfg *config.Config) error {
	start := time.Now()

	loader, wipe, err := keyLoader(cfg)
	if err != nil {
		return err
	}
	defer wipe()

	direction := encryption.Encrypt
	if cfg.Decrypt {
		direction = encryption.Decrypt
	}

	jobs := make([]encryption.Job, 0, len(cfg.Files))

	for _, file := range cfg.Files {
		output := cfg.Output
		if output == "" {
			output = outputPath(file, direction, cfg)
		}

		jobs = append(jobs, encryption.Job{Direction: direction, Input: file, Output: output, Key: loader})
	}

	return execute(cfg, jobs, start)
}

// RunBatch runs the jobs listed in a JSONC manifest.
// Jobs without a key fall back to --key or --key-hex.
func RunBatch(cfg *config.Config, manifest string) error {
	start := time.Now()

	entries, err := LoadManifest(manifest)
	if err != nil {
		return err
	}

	var (
		fallback encryption.KeyLoader
		wipe     = func() {}
	)

	if cfg.RequireKey() == nil {
		fallback, wipe, err = keyLoader(cfg)
		if err != nil {
			return err
		}
	}
	defer wipe()

	jobs := make([]encryption.Job, 0, len(entries))

	for i, entry := range entries {
		job, err := entry.job(cfg, fallback)
		if err != nil {
			return fmt.Errorf("manifest %q entry %d: %w", manifest, i, err)
		}

		jobs = append(jobs, job)
	}

	return execute(cfg, jobs, start)
}

// execute runs the jobs, or only lists them for a dry run, and prints statistics.
func execute(cfg *config.Config, jobs []encryption.Job, start time.Time) error {
	if cfg.Dry {
		return dryRun(cfg, jobs, start)
	}

	proc, err := encryption.NewProcessor(cfg)
	if err != nil {
		return fmt.Errorf("creating processor: %w", err)
	}

	summary, err := proc.Process(jobs)

	if cfg.Stats {
		printStats(len(jobs), summary, time.Since(start))
	}

	if err != nil {
		return fmt.Errorf("running logic: %w", err)
	}

	if summary.Corrupt > 0 {
		return fmt.Errorf("%w: %d file(s) failed the integrity check", ErrIntegrity, summary.Corrupt)
	}

	return nil
}

// keyLoader returns the key source selected by cfg and a function wiping any in-memory copy.
func keyLoader(cfg *config.Config) (encryption.KeyLoader, func(), error) {
	if err := cfg.RequireKey(); err != nil {
		return nil, nil, err
	}

	if cfg.Key != "" {
		return encryption.KeyFile(cfg.Key), func() {}, nil
	}

	material, err := key.FromHex(cfg.KeyHex)
	if err != nil {
		return nil, nil, fmt.Errorf("decoding --key-hex: %w", err)
	}

	return encryption.KeyBytes(material), func() { clear(material) }, nil
}

// dryRun previews what would be processed without actually encrypting/decrypting.
//
//nolint:unparam // signature kept for consistency with execute
func dryRun(cfg *config.Config, jobs []encryption.Job, start time.Time) error {
	var summary encryption.Summary

	for _, job := range jobs {
		if !cfg.Quiet {
			fmt.Printf("Would %s %q -> %q\n", job.Direction, job.Input, job.Output) //nolint:forbidigo
		}

		if info, err := os.Stat(job.Input); err == nil {
			summary.DataSize += info.Size()
		}
	}

	if cfg.Stats {
		printStats(len(jobs), summary, time.Since(start))
	}

	return nil
}

// outputPath derives the output file from the input and the configured suffixes.
func outputPath(filename string, direction encryption.Direction, cfg *config.Config) string {
	ext := cfg.EncryptSuffix

	if direction == encryption.Decrypt {
		filename = strings.TrimSuffix(filename, cfg.EncryptSuffix)
		ext = cfg.DecryptSuffix
	}

	return filepath.Join(filepath.Dir(filename), filepath.Base(filename)+ext)
}

func printStats(jobs int, summary encryption.Summary, duration time.Duration) {
	fmt.Fprintf(os.Stderr, "\nStats\n")
	fmt.Fprintf(os.Stderr, "  Jobs:      %d\n", jobs)
	fmt.Fprintf(os.Stderr, "  Processed: %d\n", summary.Processed)
	fmt.Fprintf(os.Stderr, "  Errors:    %d\n", summary.Errored)
	fmt.Fprintf(os.Stderr, "  Corrupt:   %d\n", summary.Corrupt)
	//nolint:gosec // sizes are always non-negative
	fmt.Fprintf(os.Stderr, "  Size:      %s\n", humanize.IBytes(uint64(max(0, summary.DataSize))))
	fmt.Fprintf(os.Stderr, "  Duration:  %s\n", duration.Round(time.Millisecond))
	fmt.Fprintf(os.Stderr, "  Rate:      %s\n", rate(summary.DataSize, duration))
}

// rate formats a throughput in bytes per second.
func rate(size int64, duration time.Duration) string {
	if duration <= 0 {
		return "n/a"
	}

	perSecond := float64(max(0, size)) / duration.Seconds()

	return humanize.IBytes(uint64(perSecond)) + "/s"
}
