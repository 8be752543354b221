// Package gencache stores generator output on disk, keyed by the SHA-256 of
// the input that produced it.
package gencache

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/drift-labs/sdkdoc/internal/config"
)

// Dir returns the cache directory path.
func Dir() string {
	return config.GeneratorCacheDir()
}

// Key hashes a cache input.
func Key(input string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(input)))
}

// path returns the sharded file path for a key: tsdef/<first2>/<rest>.json.zst
func path(key string) string {
	return filepath.Join(Dir(), key[:2], key[2:]+".json.zst")
}

// Write stores content under the hash of input.
func Write(input string, content []byte) error {
	p := path(Key(input))
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	var buf bytes.Buffer
	w, err := zstd.NewWriter(&buf)
	if err != nil {
		return fmt.Errorf("creating zstd writer: %w", err)
	}
	if _, err := w.Write(content); err != nil {
		w.Close()
		return fmt.Errorf("compressing cache entry: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing zstd writer: %w", err)
	}

	// Write via rename so concurrent readers never see a partial entry.
	tmp, err := os.CreateTemp(filepath.Dir(p), ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating cache file: %w", err)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing cache file: %w", err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("renaming cache file: %w", err)
	}
	return nil
}

// Read retrieves the content stored for input. A miss returns an error
// satisfying errors.Is(err, fs.ErrNotExist).
func Read(input string) ([]byte, error) {
	key := Key(input)
	f, err := os.Open(path(key))
	if err != nil {
		return nil, fmt.Errorf("reading cache entry %s: %w", key, err)
	}
	defer f.Close()

	r, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("creating zstd reader: %w", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decompressing cache entry %s: %w", key, err)
	}
	return data, nil
}

// Clear removes every cached entry.
func Clear() error {
	if err := os.RemoveAll(Dir()); err != nil {
		return fmt.Errorf("clearing generator cache: %w", err)
	}
	return nil
}
