package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drift-labs/sdkdoc/internal/sdkdoc"
)

type fakeAssembler struct {
	got []sdkdoc.Request
}

func (f *fakeAssembler) Assemble(_ context.Context, req sdkdoc.Request) []sdkdoc.Tab {
	f.got = append(f.got, req)
	var tabs []sdkdoc.Tab
	if req.Rust != nil {
		tabs = append(tabs, sdkdoc.Tab{Label: sdkdoc.LabelRust, Heading: "Struct drift_rs::" + req.Rust.Name})
	}
	if req.Python != nil {
		tabs = append(tabs, sdkdoc.Tab{Label: sdkdoc.LabelPython, Heading: "Class " + req.Python.Name})
	}
	return tabs
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	content, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return content.Text
}

func TestHandleSdkDoc(t *testing.T) {
	fake := &fakeAssembler{}
	s := NewServer(fake, "test")

	req := mcp.CallToolRequest{Params: mcp.CallToolParams{Arguments: map[string]any{
		"rust": map[string]any{"name": "DriftClient", "kind": "struct"},
	}}}
	res, err := s.handleSdkDoc(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Contains(t, textOf(t, res), "### Struct drift_rs::DriftClient")

	require.Len(t, fake.got, 1)
	require.NotNil(t, fake.got[0].Rust)
	assert.Equal(t, sdkdoc.KindStruct, fake.got[0].Rust.Kind)
	assert.Nil(t, fake.got[0].TypeScript)
}

func TestHandleSdkDoc_JSON(t *testing.T) {
	s := NewServer(&fakeAssembler{}, "test")

	req := mcp.CallToolRequest{Params: mcp.CallToolParams{Arguments: map[string]any{
		"python": map[string]any{"name": "DriftClient"},
		"format": "json",
	}}}
	res, err := s.handleSdkDoc(context.Background(), req)
	require.NoError(t, err)

	var tabs []sdkdoc.Tab
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &tabs))
	require.Len(t, tabs, 1)
	assert.Equal(t, "Class DriftClient", tabs[0].Heading)
}

func TestHandleSdkDoc_InvalidArguments(t *testing.T) {
	s := NewServer(&fakeAssembler{}, "test")

	tests := []struct {
		name string
		args map[string]any
	}{
		{name: "no sources", args: map[string]any{"format": "json"}},
		{name: "missing name", args: map[string]any{"rust": map[string]any{"kind": "struct"}}},
		{name: "wrong shape", args: map[string]any{"rust": "DriftClient"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.handleSdkDoc(context.Background(), mcp.CallToolRequest{Params: mcp.CallToolParams{Arguments: tt.args}})
			require.NoError(t, err)
			assert.True(t, res.IsError)
		})
	}
}

func TestHandleReadResource(t *testing.T) {
	fake := &fakeAssembler{}
	s := NewServer(fake, "test")

	req := mcp.ReadResourceRequest{}
	req.Params.URI = "sdkdoc://rust/drift_rs%3A%3AWallet"
	contents, err := s.handleReadResource(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, "text/markdown", text.MIMEType)
	assert.Contains(t, text.Text, "Struct drift_rs::drift_rs::Wallet")
	require.NotNil(t, fake.got[0].Rust)
	assert.Equal(t, "drift_rs::Wallet", fake.got[0].Rust.Name)

	for _, uri := range []string{"sdkdoc://go/Foo", "sdkdoc://rust/", "sdkdoc://rust"} {
		req.Params.URI = uri
		_, err := s.handleReadResource(context.Background(), req)
		assert.Error(t, err, uri)
	}
}
