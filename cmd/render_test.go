package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drift-labs/sdkdoc/internal/sdkdoc"
)

func TestSymbolFor(t *testing.T) {
	t.Parallel()

	req := sdkdoc.Request{
		TypeScript: &sdkdoc.BlockRequest{Name: "deposit", Owner: "DriftClient"},
		Rust:       &sdkdoc.BlockRequest{Name: "MarketType"},
	}
	tests := []struct {
		label string
		want  string
	}{
		{sdkdoc.LabelTypeScript, "DriftClient.deposit"},
		{sdkdoc.LabelRust, "MarketType"},
		{sdkdoc.LabelPython, ""},
		{"Go", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, symbolFor(req, tt.label), tt.label)
	}
}

func TestWritePage(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	page := pageOutput{
		Path: "guides/trading",
		Blocks: [][]sdkdoc.Tab{
			{{Label: sdkdoc.LabelRust, Heading: "Struct drift_rs::DriftClient"}},
			nil,
		},
	}
	require.NoError(t, writePage(dir, page, true))

	data, err := os.ReadFile(filepath.Join(dir, "guides", "trading.json"))
	require.NoError(t, err)
	var got pageOutput
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, page.Path, got.Path)
	require.Len(t, got.Blocks, 2)
	require.Len(t, got.Blocks[0], 1)
	assert.Equal(t, "Struct drift_rs::DriftClient", got.Blocks[0][0].Heading)

	html, err := os.ReadFile(filepath.Join(dir, "guides", "trading.html"))
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(html), `<section class="sdk-doc">`))
	assert.Contains(t, string(html), sdkdoc.NoSourcesText, "empty block should render the no-sources notice")
}

func TestWritePage_StaysInOutDir(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	out := filepath.Join(root, "out")

	err := writePage(out, pageOutput{Path: "../escaped"}, false)
	require.Error(t, err)
	_, statErr := os.Stat(filepath.Join(root, "escaped.json"))
	assert.True(t, os.IsNotExist(statErr), "nothing written outside the output directory")
}
