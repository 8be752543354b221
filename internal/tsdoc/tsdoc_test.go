package tsdoc

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	calls atomic.Int32
	units []Unit
	def   *Definition
	err   error
}

func (f *fakeGenerator) Generate(_ context.Context, unit Unit) (*Definition, error) {
	f.calls.Add(1)
	f.units = append(f.units, unit)
	return f.def, f.err
}

func TestBuildUnit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		sym  Symbol
		want Unit
	}{
		{
			name: "function",
			sym:  Symbol{Name: "getUserAccountPublicKey"},
			want: Unit{Code: "export { getUserAccountPublicKey } from '@drift-labs/sdk'", ExportName: "getUserAccountPublicKey"},
		},
		{
			name: "class",
			sym:  Symbol{Name: "DriftClient", Kind: "class"},
			want: Unit{Code: "export { DriftClient } from '@drift-labs/sdk'", ExportName: "DriftClient"},
		},
		{
			name: "owned method",
			sym:  Symbol{Name: "deposit", Kind: "method", Owner: "DriftClient"},
			want: Unit{
				Code:       "import { DriftClient } from '@drift-labs/sdk'; export type DriftClient_deposit = DriftClient['deposit']",
				ExportName: "DriftClient_deposit",
			},
		},
		{
			name: "method without owner",
			sym:  Symbol{Name: "deposit", Kind: "method"},
			want: Unit{Code: "export { deposit } from '@drift-labs/sdk'", ExportName: "deposit"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, BuildUnit(DefaultModule, tt.sym))
		})
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ShapeEmpty, Classify(nil))
	assert.Equal(t, ShapeEmpty, Classify(&Definition{Description: "only prose"}))
	assert.Equal(t, ShapeTypeOnly, Classify(&Definition{Type: "number"}))
	assert.Equal(t, ShapeSignatures, Classify(&Definition{Type: "(a: number) => void", Signatures: []Signature{{}}}))
	assert.Equal(t, ShapeEntries, Classify(&Definition{Entries: []Entry{{Name: "a", Type: "number"}}, Signatures: []Signature{{}}}))
}

func TestSanitize(t *testing.T) {
	t.Parallel()

	def := &Definition{
		Description: "See {@link DriftClient}.",
		Tags:        map[string]string{"returns": "a {tx} signature"},
		Entries:     []Entry{{Name: "a", Type: "{ x: number }", Description: "uses {braces}"}},
		Signatures: []Signature{{
			Params:  []Param{{Name: "p", Type: "number", Description: "{@link BN} amount"}},
			Returns: []ReturnField{{Type: "Promise<string>", Description: "{ok}"}},
		}},
	}
	got := Sanitize(def)

	assert.Equal(t, "See DriftClient.", got.Description)
	assert.Equal(t, "a &#123;tx&#125; signature", got.Tags["returns"])
	assert.Equal(t, "uses &#123;braces&#125;", got.Entries[0].Description)
	assert.Equal(t, "{ x: number }", got.Entries[0].Type, "types are left as-is")
	assert.Equal(t, "BN amount", got.Signatures[0].Params[0].Description)
	assert.Equal(t, "&#123;ok&#125;", got.Signatures[0].Returns[0].Description)

	// The input is not modified.
	assert.Equal(t, "See {@link DriftClient}.", def.Description)
	assert.Equal(t, "uses {braces}", def.Entries[0].Description)
}

func TestSynthesize(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{def: &Definition{Name: "deposit", Description: "Deposit {amount}"}}
	s := NewSynthesizer("", gen)

	def, err := s.Synthesize(context.Background(), Symbol{Name: "deposit", Kind: "method", Owner: "DriftClient"})
	require.NoError(t, err)
	assert.Equal(t, "Deposit &#123;amount&#125;", def.Description)
	require.Len(t, gen.units, 1)
	assert.Equal(t, "DriftClient_deposit", gen.units[0].ExportName)
}

func TestSynthesize_Errors(t *testing.T) {
	t.Parallel()

	gen := &fakeGenerator{err: errors.New("export not found")}
	s := NewSynthesizer(DefaultModule, gen)

	_, err := s.Synthesize(context.Background(), Symbol{Name: "missing"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGenerator)
	assert.Contains(t, err.Error(), "export not found")

	_, err = s.Synthesize(context.Background(), Symbol{Name: "  "})
	assert.ErrorIs(t, err, ErrGenerator)
	assert.Equal(t, int32(1), gen.calls.Load(), "empty names never reach the generator")
}

func TestCachedGenerator(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	inner := &fakeGenerator{def: &Definition{Name: "PRICE_PRECISION", Type: "BN"}}
	gen := &CachedGenerator{Next: inner}
	unit := BuildUnit(DefaultModule, Symbol{Name: "PRICE_PRECISION", Kind: "variable"})

	first, err := gen.Generate(context.Background(), unit)
	require.NoError(t, err)
	second, err := gen.Generate(context.Background(), unit)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), inner.calls.Load())
}

func TestCachedGenerator_ErrorsNotCached(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	inner := &fakeGenerator{err: errors.New("boom")}
	gen := &CachedGenerator{Next: inner}
	unit := BuildUnit(DefaultModule, Symbol{Name: "x"})

	_, err := gen.Generate(context.Background(), unit)
	require.Error(t, err)
	_, err = gen.Generate(context.Background(), unit)
	require.Error(t, err)
	assert.Equal(t, int32(2), inner.calls.Load())
}

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestCommandGenerator(t *testing.T) {
	t.Parallel()
	requireShell(t)

	stdin := filepath.Join(t.TempDir(), "stdin.json")
	gen := &CommandGenerator{
		Args:    []string{"sh", "-c", `cat > "$0"; printf '%s' '{"name":"deposit","signatures":[{"params":[{"name":"amount","type":"BN"}],"returns":[{"type":"Promise<string>"}]}]}'`, stdin},
		Timeout: 10 * time.Second,
	}
	unit := BuildUnit(DefaultModule, Symbol{Name: "deposit"})

	def, err := gen.Generate(context.Background(), unit)
	require.NoError(t, err)
	assert.Equal(t, ShapeSignatures, Classify(def))
	assert.Equal(t, "BN", def.Signatures[0].Params[0].Type)

	sent, err := os.ReadFile(stdin)
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"export { deposit } from '@drift-labs/sdk'","exportName":"deposit"}`, string(sent))
}

func TestCommandGenerator_Failures(t *testing.T) {
	t.Parallel()
	requireShell(t)

	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{"no command", nil, "no generator command"},
		{"non-zero exit", []string{"sh", "-c", "echo 'cannot resolve export' >&2; exit 3"}, "cannot resolve export"},
		{"bad json", []string{"sh", "-c", "echo not-json"}, "decoding definition"},
		{"null", []string{"sh", "-c", "echo null"}, "no definition"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			gen := &CommandGenerator{Args: tt.args}
			_, err := gen.Generate(context.Background(), Unit{Code: "x", ExportName: "x"})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestCommandGenerator_Timeout(t *testing.T) {
	t.Parallel()
	requireShell(t)

	gen := &CommandGenerator{Args: []string{"sh", "-c", "exec sleep 5"}, Timeout: 50 * time.Millisecond}
	start := time.Now()
	_, err := gen.Generate(context.Background(), Unit{Code: "x", ExportName: "x"})
	require.Error(t, err)
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestHeadingAndLinks(t *testing.T) {
	t.Parallel()

	l := Links{BaseURL: DefaultDocsBaseURL}
	tests := []struct {
		sym         Symbol
		wantHeading string
		wantURL     string
	}{
		{Symbol{Name: "initialize"}, "Function initialize", DefaultDocsBaseURL + "/functions/initialize.html"},
		{Symbol{Name: "DriftClient", Kind: "class"}, "Class DriftClient", DefaultDocsBaseURL + "/classes/DriftClient.html"},
		{Symbol{Name: "MarketType", Kind: "enum"}, "Enum MarketType", DefaultDocsBaseURL + "/enums/MarketType.html"},
		{Symbol{Name: "QUOTE_PRECISION", Kind: "variable"}, "Variable QUOTE_PRECISION", DefaultDocsBaseURL + "/variables/QUOTE_PRECISION.html"},
		{Symbol{Name: "OrderParams", Kind: "type"}, "Type OrderParams", DefaultDocsBaseURL + "/types/OrderParams.html"},
		{Symbol{Name: "deposit", Kind: "method", Owner: "DriftClient"}, "Method DriftClient.deposit", DefaultDocsBaseURL + "/classes/DriftClient.html#method_deposit"},
		{Symbol{Name: "deposit", Kind: "method"}, "Method deposit", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.wantHeading, Heading(tt.sym))
		assert.Equal(t, tt.wantURL, l.URL(tt.sym))
	}
}
