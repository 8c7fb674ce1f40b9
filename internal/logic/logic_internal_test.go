package logic

import (
	"path/filepath"
	"testing"

	"github.com/idelchi/wcrypt/internal/config"
	"github.com/idelchi/wcrypt/internal/encryption"
)

func TestOutputPath(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{EncryptSuffix: ".wcr", DecryptSuffix: ".dec"}

	tests := []struct {
		file      string
		direction encryption.Direction
		want      string
	}{
		{file: "notes.txt", direction: encryption.Encrypt, want: "notes.txt.wcr"},
		{file: filepath.Join("dir", "a"), direction: encryption.Encrypt, want: filepath.Join("dir", "a.wcr")},
		{file: "notes.txt.wcr", direction: encryption.Decrypt, want: "notes.txt.dec"},
		{file: "plain", direction: encryption.Decrypt, want: "plain.dec"},
	}

	for _, tc := range tests {
		if got := outputPath(tc.file, tc.direction, cfg); got != tc.want {
			t.Errorf("outputPath(%q, %v) = %q, want %q", tc.file, tc.direction, got, tc.want)
		}
	}
}

func TestRate(t *testing.T) {
	t.Parallel()

	if got := rate(1024, 0); got != "n/a" {
		t.Errorf("rate with zero duration = %q", got)
	}
}
