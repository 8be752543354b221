package rustdoc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drift-labs/sdkdoc/internal/artifact"
)

func loadFixture(t *testing.T) *Index {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "drift_rs.json"))
	require.NoError(t, err)
	crate, err := Parse(data)
	require.NoError(t, err)
	return NewIndex(crate, "drift_rs", nil)
}

func TestResolve(t *testing.T) {
	t.Parallel()
	idx := loadFixture(t)

	tests := []struct {
		name   string
		want   ItemID
		wantOK bool
	}{
		{"DriftClient", "1", true},
		{"  DriftClient  ", "1", true},
		{"drift_rs", "0", true},
		// Two candidates with equal length: first in document order wins.
		{"Wallet", "14", true},
		{"types::Wallet", "12", true},
		{"drift_rs::types::Wallet", "12", true},
		// No exact match falls back to the last segment.
		{"nowhere::Wallet", "14", true},
		{"constants::PRICE_PRECISION", "9", true},
		{"PRICE_PRECISION", "9", true},
		{"math::constants::PRICE_PRECISION", "9", true},
		{"Pubkey", "", false},
		{"solana_sdk::pubkey::Pubkey", "", false},
		{"", "", false},
		{"   ", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := idx.Resolve(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_Deterministic(t *testing.T) {
	t.Parallel()
	idx := loadFixture(t)

	first, _ := idx.Resolve("Wallet")
	for i := 0; i < 50; i++ {
		got, _ := idx.Resolve("Wallet")
		require.Equal(t, first, got, "iteration %d", i)
	}
}

func TestResolveOwner_Empty(t *testing.T) {
	t.Parallel()
	idx := loadFixture(t)

	_, ok := idx.ResolveOwner("")
	assert.False(t, ok, "empty owner should not resolve")

	got, ok := idx.ResolveOwner("DriftClient")
	assert.True(t, ok)
	assert.Equal(t, ItemID("1"), got)
}

func TestExtract_Function(t *testing.T) {
	t.Parallel()
	idx := loadFixture(t)

	ex := idx.Extract("3")
	assert.Equal(t, "function", ex.Kind)
	assert.Equal(t, "Function", ex.DisplayKind())
	assert.Equal(t, []NamedType{
		{Name: "self", Type: "&Self"},
		{Name: "sub_account", Type: "u16"},
		{Name: "authority", Type: "Option<Pubkey>"},
	}, ex.Inputs)
	assert.Equal(t, "SdkResult<User>", ex.Output)
	assert.True(t, ex.IsAsync)
	assert.True(t, ex.HasDocs)
	assert.Equal(t, "Fetch a user account.", ex.Docs)
}

func TestExtract_Kinds(t *testing.T) {
	t.Parallel()
	idx := loadFixture(t)

	t.Run("enum", func(t *testing.T) {
		ex := idx.Extract("4")
		assert.Equal(t, []VariantDoc{{Name: "Spot", Docs: "Spot market"}, {Name: "Perp"}}, ex.Variants)
		assert.Equal(t, []string{"drift_rs", "types", "MarketType"}, ex.Path)
	})

	t.Run("type alias", func(t *testing.T) {
		ex := idx.Extract("11")
		assert.Equal(t, "Result<T, SdkError>", ex.AliasOf)
		assert.Equal(t, "Type", ex.DisplayKind())
	})

	t.Run("constant", func(t *testing.T) {
		ex := idx.Extract("9")
		require.NotNil(t, ex.Constant)
		assert.Equal(t, ConstantValue{Type: "u64", Value: "1000000u64"}, *ex.Constant)
	})

	t.Run("static", func(t *testing.T) {
		ex := idx.Extract("10")
		require.NotNil(t, ex.Constant)
		assert.Equal(t, ConstantValue{Type: "&'static str", Value: `"1.0"`}, *ex.Constant)
	})

	t.Run("empty struct", func(t *testing.T) {
		ex := idx.Extract("15")
		assert.True(t, ex.Empty(), "expected empty extraction, got %+v", ex)
		assert.Equal(t, "struct", ex.Kind)
	})

	t.Run("missing item", func(t *testing.T) {
		ex := idx.Extract("999")
		assert.True(t, ex.Empty())
		assert.Equal(t, "Item", ex.DisplayKind())
	})
}

func TestDeriveMethods(t *testing.T) {
	t.Parallel()
	idx := loadFixture(t)
	methods := idx.Methods()
	require.Len(t, methods, 3)

	getUser, ok := methods["drift_rs::DriftClient::get_user"]
	require.True(t, ok, "missing get_user")
	// The inherent method wins over the trait method of the same name.
	require.NotNil(t, getUser.Docs)
	assert.Equal(t, "Fetch a user account.", *getUser.Docs)
	assert.True(t, getUser.IsAsync)
	require.NotNil(t, getUser.Output)
	assert.Equal(t, "SdkResult<User>", *getUser.Output)

	assert.Nil(t, methods["drift_rs::DriftClient::close"].Output)

	lt := methods["drift_rs::DriftClient::lookup_table"]
	require.NotNil(t, lt.Output)
	assert.Equal(t, "[u8]", *lt.Output)
}

func TestMethod(t *testing.T) {
	t.Parallel()
	idx := loadFixture(t)

	m, ok := idx.Method("DriftClient", "get_user")
	require.True(t, ok)
	assert.Equal(t, "drift_rs::DriftClient::get_user", m.Path)
	assert.Equal(t, "struct", m.OwnerKind)

	for _, tc := range []struct{ owner, name string }{
		{"", "get_user"},
		{"DriftClient", "missing"},
		{"NoSuchOwner", "get_user"},
		{"DriftClient", ""},
	} {
		_, ok := idx.Method(tc.owner, tc.name)
		assert.False(t, ok, "Method(%q, %q) resolved", tc.owner, tc.name)
	}
}

func TestParse_StringIDs(t *testing.T) {
	t.Parallel()

	data := []byte(`{
		"root": "0:0:1",
		"index": {
			"0:0:1": {"id": "0:0:1", "crate_id": 0, "name": "drift_rs", "inner": {"module": {"items": ["0:3:2"]}}},
			"0:3:2": {"id": "0:3:2", "crate_id": 0, "name": "place_order", "docs": "Place an order.",
				"inner": {"function": {"decl": {"inputs": [], "output": {"primitive": "u32"}}, "header": ["async"]}}}
		},
		"paths": {
			"0:0:1": {"crate_id": 0, "path": ["drift_rs"], "kind": "module"},
			"0:3:2": {"crate_id": 0, "path": ["drift_rs", "place_order"], "kind": "function"}
		}
	}`)
	crate, err := Parse(data)
	require.NoError(t, err)
	idx := NewIndex(crate, "", nil)
	assert.Equal(t, "drift_rs", idx.CrateName())

	id, ok := idx.Resolve("place_order")
	require.True(t, ok)
	require.Equal(t, ItemID("0:3:2"), id)

	ex := idx.Extract(id)
	assert.Equal(t, "u32", ex.Output)
	assert.True(t, ex.IsAsync)
}

func TestResolve_FewerSegmentsWin(t *testing.T) {
	t.Parallel()

	data := []byte(`{
		"root": 0,
		"index": {
			"0": {"id": 0, "crate_id": 0, "name": "a", "inner": {"module": {"items": []}}},
			"1": {"id": 1, "crate_id": 0, "name": "Name", "inner": {"struct": {"impls": []}}},
			"2": {"id": 2, "crate_id": 0, "name": "Name", "inner": {"struct": {"impls": []}}}
		},
		"paths": {
			"0": {"crate_id": 0, "path": ["a"], "kind": "module"},
			"2": {"crate_id": 0, "path": ["a", "b", "c", "Name"], "kind": "struct"},
			"1": {"crate_id": 0, "path": ["a", "b", "Name"], "kind": "struct"}
		}
	}`)
	crate, err := Parse(data)
	require.NoError(t, err)
	idx := NewIndex(crate, "", nil)

	id, ok := idx.Resolve("Name")
	assert.True(t, ok)
	assert.Equal(t, ItemID("1"), id, "fewest segments wins")

	id, ok = idx.Resolve("a::b::c::Name")
	assert.True(t, ok)
	assert.Equal(t, ItemID("2"), id, "exact match wins")
}

func TestPrecompute(t *testing.T) {
	t.Parallel()

	data, err := os.ReadFile(filepath.Join("testdata", "drift_rs.json"))
	require.NoError(t, err)
	pre, err := Precompute(data)
	require.NoError(t, err)
	assert.Equal(t, 10, pre.Kept)
	assert.Equal(t, 12, pre.Total)
	assert.Len(t, pre.Methods, 3)

	slim, err := Parse(pre.Slim)
	require.NoError(t, err)
	assert.NotContains(t, slim.Index, ItemID("51"), "external item should be dropped")
	for _, id := range []ItemID{"0", "1", "2", "3", "6", "20", "22"} {
		assert.Contains(t, slim.Index, id)
	}

	// Document order survives the rewrite.
	idx := NewIndex(slim, "drift_rs", pre.Methods)
	got, _ := idx.Resolve("Wallet")
	assert.Equal(t, ItemID("14"), got)
}

func TestLoad_Compressed(t *testing.T) {
	t.Parallel()

	data, err := os.ReadFile(filepath.Join("testdata", "drift_rs.json"))
	require.NoError(t, err)
	pre, err := Precompute(data)
	require.NoError(t, err)

	dir := t.TempDir()
	dump := filepath.Join(dir, "drift_rs.json.zst")
	methods := filepath.Join(dir, "drift_rs.methods.json")
	require.NoError(t, artifact.Write(dump, pre.Slim))
	require.NoError(t, artifact.WriteJSON(methods, pre.Methods))

	idx, err := Load(dump, methods, "drift_rs")
	require.NoError(t, err)
	_, ok := idx.Method("DriftClient", "lookup_table")
	assert.True(t, ok, "expected lookup_table from method map")

	// A missing method map falls back to deriving it.
	idx, err = Load(dump, filepath.Join(dir, "absent.json"), "drift_rs")
	require.NoError(t, err)
	assert.Len(t, idx.Methods(), 3)
}
