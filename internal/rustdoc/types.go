package rustdoc

import (
	"bytes"
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ItemID is an opaque rustdoc item id. Older format versions emit ids as
// strings ("0:123:4567"), newer ones as integers; both decode to the same
// textual form.
type ItemID string

func (id *ItemID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*id = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("decoding item id: %w", err)
		}
		*id = ItemID(s)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("decoding item id: %w", err)
		}
		*id = ItemID(n.String())
	}
	return nil
}

// UnmarshalText lets ItemID be used as a JSON object key.
func (id *ItemID) UnmarshalText(text []byte) error {
	*id = ItemID(text)
	return nil
}

func (id ItemID) MarshalText() ([]byte, error) {
	return []byte(id), nil
}

// Crate is a rustdoc JSON dump. Paths keeps document order so that
// ambiguous short-name lookups break ties deterministically.
type Crate struct {
	Root          ItemID                                    `json:"root"`
	CrateVersion  *string                                   `json:"crate_version"`
	FormatVersion int                                       `json:"format_version"`
	Index         map[ItemID]*Item                          `json:"index"`
	Paths         *orderedmap.OrderedMap[ItemID, PathEntry] `json:"paths"`
}

// PathEntry is a rustdoc item summary.
type PathEntry struct {
	CrateID int      `json:"crate_id"`
	Path    []string `json:"path"`
	Kind    string   `json:"kind"`
}

// Item is one node of the rustdoc item graph.
type Item struct {
	ID         ItemID            `json:"id"`
	CrateID    int               `json:"crate_id"`
	Name       *string           `json:"name"`
	Docs       *string           `json:"docs"`
	Links      map[string]ItemID `json:"links"`
	Visibility json.RawMessage   `json:"visibility"`
	Inner      Inner             `json:"-"`
}

func (it *Item) UnmarshalJSON(b []byte) error {
	type plain Item
	var aux struct {
		plain
		RawInner json.RawMessage `json:"inner"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*it = Item(aux.plain)
	it.Inner = decodeInner(aux.RawInner)
	return nil
}

// Inner is the kind-specific payload of an Item. The set of variants is
// closed; unknown rustdoc kinds decode to Unrecognized.
type Inner interface {
	// Tag returns the rustdoc kind tag, e.g. "function" or "type_alias".
	Tag() string
}

type Function struct {
	Inputs  []Param
	Output  Type
	IsAsync bool
	HasBody bool
}

type Param struct {
	Name string
	Type Type
}

type Struct struct{ Impls []ItemID }

type Enum struct {
	Variants []ItemID
	Impls    []ItemID
}

type Union struct{ Impls []ItemID }

type Trait struct{ Items []ItemID }

type TypeAlias struct{ Type Type }

type Constant struct {
	Type  Type
	Expr  string
	Value string
}

type Static struct {
	Type    Type
	Expr    string
	Mutable bool
}

type Module struct {
	Items   []ItemID
	IsCrate bool
}

// Impl is an impl block. Trait is empty for inherent impls.
type Impl struct {
	Items []ItemID
	Trait string
	For   Type
}

type Variant struct{}

type Unrecognized struct{ Kind string }

func (Function) Tag() string       { return "function" }
func (Struct) Tag() string         { return "struct" }
func (Enum) Tag() string           { return "enum" }
func (Union) Tag() string          { return "union" }
func (Trait) Tag() string          { return "trait" }
func (TypeAlias) Tag() string      { return "type_alias" }
func (Constant) Tag() string       { return "constant" }
func (Static) Tag() string         { return "static" }
func (Module) Tag() string         { return "module" }
func (Impl) Tag() string           { return "impl" }
func (Variant) Tag() string        { return "variant" }
func (u Unrecognized) Tag() string { return u.Kind }

// Type is a rustdoc type expression.
type Type interface {
	isType()
}

type (
	Primitive string
	Generic   string
	// Literal is a type already rendered to text, as found in precomputed
	// method maps.
	Literal string
	Tuple   []Type
	Slice   struct{ Elem Type }
	Array   struct {
		Elem Type
		Len  string
	}
	BorrowedRef struct {
		Lifetime string
		Mutable  bool
		Elem     Type
	}
	RawPointer struct {
		Mutable bool
		Elem    Type
	}
	ResolvedPath struct {
		Name string
		ID   ItemID
		Args []GenericArg
	}
	DynTrait struct {
		Traits   []string
		Lifetime string
	}
	ImplTrait     struct{ Bounds []string }
	QualifiedPath struct {
		Name     string
		SelfType Type
		Trait    string
	}
	Infer   struct{}
	Unknown struct{ Kind string }
)

func (Primitive) isType()     {}
func (Generic) isType()       {}
func (Literal) isType()       {}
func (Tuple) isType()         {}
func (Slice) isType()         {}
func (Array) isType()         {}
func (BorrowedRef) isType()   {}
func (RawPointer) isType()    {}
func (ResolvedPath) isType()  {}
func (DynTrait) isType()      {}
func (ImplTrait) isType()     {}
func (QualifiedPath) isType() {}
func (Infer) isType()         {}
func (Unknown) isType()       {}

// GenericArg is one angle-bracketed argument of a resolved path. Exactly
// one of Type, Lifetime, Const is set.
type GenericArg struct {
	Type     Type
	Lifetime string
	Const    string
}
