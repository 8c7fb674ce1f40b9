package logic

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/idelchi/wcrypt/internal/config"
	"github.com/idelchi/wcrypt/internal/encryption"
)

// Entry is one job of a batch manifest.
type Entry struct {
	Direction string `json:"direction"`
	Input     string `json:"input"`
	Key       string `json:"key,omitempty"`
	Output    string `json:"output,omitempty"`
}

// LoadManifest reads a JSONC file holding a list of entries.
func LoadManifest(path string) ([]Entry, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is from user-supplied config
	if err != nil {
		return nil, fmt.Errorf("reading manifest %q: %w", path, err)
	}

	clean := jsonc.ToJSONInPlace(data)

	var entries []Entry
	if err := json.Unmarshal(clean, &entries); err != nil {
		return nil, fmt.Errorf("parsing manifest %q: %w", path, err)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("manifest %q lists no jobs", path)
	}

	return entries, nil
}

// job resolves an entry into a job, deriving the output path and key source when absent.
func (e Entry) job(cfg *config.Config, fallback encryption.KeyLoader) (encryption.Job, error) {
	direction, err := encryption.ParseDirection(e.Direction)
	if err != nil {
		return encryption.Job{}, err
	}

	if e.Input == "" {
		return encryption.Job{}, errors.New("input is required")
	}

	job := encryption.Job{
		Direction: direction,
		Input:     e.Input,
		Output:    e.Output,
		Key:       fallback,
	}

	if job.Output == "" {
		job.Output = outputPath(e.Input, direction, cfg)
	}

	if e.Key != "" {
		job.Key = encryption.KeyFile(e.Key)
	}

	if job.Key == nil {
		return encryption.Job{}, config.ErrNoKey
	}

	return job, nil
}
