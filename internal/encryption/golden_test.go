package encryption_test

import (
	"os"
	"testing"

	"github.com/goccy/go-yaml"
)

// CodecCase is a single word transform vector.
type CodecCase struct {
	Word      uint32 `yaml:"word"`
	Key       uint32 `yaml:"key"`
	Rotation  int    `yaml:"rotation"`
	Encrypted uint32 `yaml:"encrypted"`
}

// FoldCase is a single checksum vector.
type FoldCase struct {
	Words []uint32 `yaml:"words"`
	Sum   uint32   `yaml:"sum"`
}

// Group is a named collection of vectors.
type Group struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description,omitempty"`
	Words       []CodecCase `yaml:"words,omitempty"`
	Folds       []FoldCase  `yaml:"folds,omitempty"`
}

// StreamCase is a whole-stream encryption vector; byte fields are hex-encoded.
type StreamCase struct {
	Name       string `yaml:"name"`
	ChunkWords int    `yaml:"chunk_words"`
	Rotation   int    `yaml:"rotation"`
	Key        string `yaml:"key"`
	Plain      string `yaml:"plain"`
	Cipher     string `yaml:"cipher"`
}

// loadGolden decodes testdata/name into out.
func loadGolden(t *testing.T, name string, out any) {
	t.Helper()

	data, err := os.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("reading %s: %v", name, err)
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		t.Fatalf("parsing %s: %v", name, err)
	}
}
