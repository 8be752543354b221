package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRead(t *testing.T) {
	t.Parallel()

	type doc struct {
		Version int               `json:"version"`
		Symbols map[string]string `json:"symbols"`
	}
	want := doc{Version: 1, Symbols: map[string]string{"driftpy.a": "A"}}

	for _, name := range []string{"index.json", "index.json.zst"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			path := filepath.Join(t.TempDir(), "nested", name)
			require.NoError(t, WriteJSON(path, want))

			var got doc
			require.NoError(t, ReadJSON(path, &got))
			assert.Equal(t, want, got)
		})
	}
}

func TestWrite_CompressesZst(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	payload := []byte(`{"root":0,"index":{},"paths":{}}`)

	plain := filepath.Join(dir, "a.json")
	packed := filepath.Join(dir, "a.json.zst")
	require.NoError(t, Write(plain, payload))
	require.NoError(t, Write(packed, payload))

	raw, err := os.ReadFile(packed)
	require.NoError(t, err)
	assert.NotEqual(t, string(payload), string(raw), "expected .zst artifact to be compressed")

	got, err := ReadAll(packed)
	require.NoError(t, err)
	assert.Equal(t, string(payload), string(got))
}

func TestOpen_Missing(t *testing.T) {
	t.Parallel()

	_, err := Open(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
