package rustdoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemURL(t *testing.T) {
	t.Parallel()
	l := Links{BaseURL: DefaultDocsBaseURL + "/", CrateName: "drift_rs"}
	base := DefaultDocsBaseURL

	tests := []struct {
		path []string
		kind string
		want string
	}{
		{[]string{"drift_rs"}, "module", base + "/drift_rs/index.html"},
		{[]string{"drift_rs", "types"}, "module", base + "/drift_rs/types/index.html"},
		{[]string{"drift_rs", "DriftClient"}, "struct", base + "/drift_rs/struct.DriftClient.html"},
		{[]string{"drift_rs", "types", "MarketType"}, "enum", base + "/drift_rs/types/enum.MarketType.html"},
		{[]string{"drift_rs", "SdkResult"}, "type_alias", base + "/drift_rs/type.SdkResult.html"},
		{[]string{"drift_rs", "math", "constants", "PRICE_PRECISION"}, "constant", base + "/drift_rs/math/constants/constant.PRICE_PRECISION.html"},
		{[]string{"drift_rs", "VERSION"}, "static", base + "/drift_rs/static.VERSION.html"},
		{[]string{"drift_rs", "utils", "decode"}, "function", base + "/drift_rs/utils/fn.decode.html"},
		{[]string{"drift_rs", "Signer"}, "trait", base + "/drift_rs/trait.Signer.html"},
		{[]string{"drift_rs", "types", "Spot"}, "variant", base + "/drift_rs/types/index.html"},
		{[]string{"solana_sdk", "pubkey", "Pubkey"}, "struct", ""},
		{nil, "struct", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, l.ItemURL(tt.path, tt.kind), "%v %s", tt.path, tt.kind)
	}
}

func TestMethodURL(t *testing.T) {
	t.Parallel()
	l := Links{BaseURL: "https://docs.example", CrateName: "drift_rs"}

	tests := []struct {
		owner []string
		kind  string
		want  string
	}{
		{[]string{"drift_rs", "DriftClient"}, "struct", "https://docs.example/drift_rs/struct.DriftClient.html#method.get_user"},
		{[]string{"drift_rs", "types", "MarketType"}, "enum", "https://docs.example/drift_rs/types/enum.MarketType.html#method.get_user"},
		{[]string{"drift_rs", "DriftClient"}, "", "https://docs.example/drift_rs/struct.DriftClient.html#method.get_user"},
		{[]string{"other", "Client"}, "struct", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, l.MethodURL(tt.owner, tt.kind, "get_user"), "%v %s", tt.owner, tt.kind)
	}
}

func TestDocLinks(t *testing.T) {
	t.Parallel()
	idx := loadFixture(t)
	l := Links{BaseURL: "https://docs.example", CrateName: "drift_rs"}

	assert.Equal(t, map[string]string{
		"crate::types::Wallet": "https://docs.example/drift_rs/types/struct.Wallet.html",
	}, idx.DocLinks(l, "1"))
	assert.Nil(t, idx.DocLinks(l, "3"))
}
