package utils

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lukechampine.com/blake3"
)

func TestChunkSizeFor(t *testing.T) {
	const (
		kib = 1 << 10
		mib = 1 << 20
		gib = 1 << 30
	)

	cases := []struct {
		name  string
		input int64
		want  int64
	}{
		{"unknownOrZero", 0, 512 * kib},
		{"negative", -1, 512 * kib},
		{"under4MiB", 3*mib + 512*kib, 512 * kib},
		{"exact4MiB", 4 * mib, 512 * kib},
		{"justOver4MiB", 4*mib + 1, 1 * mib},
		{"exact32MiB", 32 * mib, 1 * mib},
		{"justOver32MiB", 32*mib + 1, 2 * mib},
		{"exact2GiB", 2 * gib, 2 * mib},
		{"above2GiB", 2*gib + 1, 4 * mib},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := chunkSizeFor(tc.input); got != tc.want {
				t.Fatalf("chunkSizeFor(%d) = %d, want %d", tc.input, got, tc.want)
			}
		})
	}
}

func TestBlake3Hash(t *testing.T) {
	t.Parallel()

	msg := []byte(strings.Repeat("pdp data", 1024))
	want := blake3.Sum256(msg)

	got, err := Blake3Hash(msg)
	if err != nil {
		t.Fatalf("Blake3Hash returned error: %v", err)
	}
	if !bytes.Equal(got, want[:]) {
		t.Fatalf("hash mismatch for chunked hashing")
	}
}

func TestBlake3HashEmpty(t *testing.T) {
	t.Parallel()

	want := blake3.Sum256(nil)
	got, err := Blake3Hash(nil)
	if err != nil {
		t.Fatalf("Blake3Hash returned error: %v", err)
	}
	if !bytes.Equal(got, want[:]) {
		t.Fatalf("hash of empty input does not match blake3.Sum256(nil)")
	}
}

func TestBlake3HashFile(t *testing.T) {
	t.Parallel()

	msg := []byte(strings.Repeat("file contents", 4096))
	path := filepath.Join(t.TempDir(), "payload.bin")
	if err := os.WriteFile(path, msg, 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}

	got, err := Blake3HashFile(path)
	if err != nil {
		t.Fatalf("Blake3HashFile returned error: %v", err)
	}
	want := blake3.Sum256(msg)
	if !bytes.Equal(got, want[:]) {
		t.Fatalf("file hash mismatch")
	}
}

func TestGetHashFromBytes(t *testing.T) {
	t.Parallel()

	msg := []byte("content id material")
	want := blake3.Sum256(msg)
	if got := GetHashFromBytes(msg); got != hex.EncodeToString(want[:]) {
		t.Fatalf("GetHashFromBytes = %q, want %q", got, hex.EncodeToString(want[:]))
	}
}
