package rustdoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Parse decodes rustdoc JSON bytes.
func Parse(data []byte) (*Crate, error) {
	var crate Crate
	if err := json.Unmarshal(data, &crate); err != nil {
		return nil, fmt.Errorf("unmarshaling rustdoc JSON: %w", err)
	}
	if crate.Index == nil {
		crate.Index = make(map[ItemID]*Item)
	}
	return &crate, nil
}

// singleKey splits a rustdoc externally tagged value into its tag and payload.
// Bare string values (unit variants) return an empty payload.
func singleKey(raw json.RawMessage) (string, json.RawMessage, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil, false
	}
	if raw[0] == '"' {
		var tag string
		if err := json.Unmarshal(raw, &tag); err != nil {
			return "", nil, false
		}
		return tag, nil, true
	}
	var outer map[string]json.RawMessage
	if err := json.Unmarshal(raw, &outer); err != nil || len(outer) != 1 {
		return "", nil, false
	}
	for k, v := range outer {
		return k, v, true
	}
	return "", nil, false
}

func decodeInner(raw json.RawMessage) Inner {
	tag, data, ok := singleKey(raw)
	if !ok {
		return nil
	}

	switch tag {
	case "function":
		return decodeFunction(data)
	case "struct", "union":
		var s struct {
			Impls []ItemID `json:"impls"`
		}
		_ = json.Unmarshal(data, &s)
		if tag == "union" {
			return Union{Impls: s.Impls}
		}
		return Struct{Impls: s.Impls}
	case "enum":
		var e struct {
			Variants []ItemID `json:"variants"`
			Impls    []ItemID `json:"impls"`
		}
		_ = json.Unmarshal(data, &e)
		return Enum{Variants: e.Variants, Impls: e.Impls}
	case "trait":
		var t struct {
			Items []ItemID `json:"items"`
		}
		_ = json.Unmarshal(data, &t)
		return Trait{Items: t.Items}
	case "type_alias", "typedef":
		var t struct {
			Type json.RawMessage `json:"type"`
		}
		_ = json.Unmarshal(data, &t)
		return TypeAlias{Type: decodeType(t.Type)}
	case "constant":
		return decodeConstant(data)
	case "static":
		var s struct {
			Type      json.RawMessage `json:"type"`
			Expr      string          `json:"expr"`
			Mutable   bool            `json:"mutable"`
			IsMutable bool            `json:"is_mutable"`
		}
		_ = json.Unmarshal(data, &s)
		return Static{Type: decodeType(s.Type), Expr: s.Expr, Mutable: s.Mutable || s.IsMutable}
	case "module":
		var m struct {
			Items   []ItemID `json:"items"`
			IsCrate bool     `json:"is_crate"`
		}
		_ = json.Unmarshal(data, &m)
		return Module{Items: m.Items, IsCrate: m.IsCrate}
	case "impl":
		var im struct {
			Items []ItemID        `json:"items"`
			Trait json.RawMessage `json:"trait"`
			For   json.RawMessage `json:"for"`
		}
		_ = json.Unmarshal(data, &im)
		return Impl{Items: im.Items, Trait: pathName(im.Trait), For: decodeType(im.For)}
	case "variant":
		return Variant{}
	default:
		return Unrecognized{Kind: tag}
	}
}

func decodeFunction(data json.RawMessage) Function {
	type fnSig struct {
		Inputs []json.RawMessage `json:"inputs"`
		Output json.RawMessage   `json:"output"`
	}
	var fn struct {
		Sig     *fnSig          `json:"sig"`
		Decl    *fnSig          `json:"decl"`
		Header  json.RawMessage `json:"header"`
		HasBody bool            `json:"has_body"`
	}
	_ = json.Unmarshal(data, &fn)

	sig := fn.Sig
	if sig == nil {
		sig = fn.Decl
	}

	out := Function{HasBody: fn.HasBody, IsAsync: isAsyncHeader(fn.Header)}
	if sig == nil {
		return out
	}
	for _, in := range sig.Inputs {
		var pair []json.RawMessage
		if err := json.Unmarshal(in, &pair); err != nil || len(pair) != 2 {
			continue
		}
		var name string
		_ = json.Unmarshal(pair[0], &name)
		out.Inputs = append(out.Inputs, Param{Name: name, Type: decodeType(pair[1])})
	}
	out.Output = decodeType(sig.Output)
	return out
}

// isAsyncHeader accepts both the object header ({"is_async": true}) and the
// older qualifier list (["async"]).
func isAsyncHeader(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false
	}
	if raw[0] == '[' {
		var quals []string
		_ = json.Unmarshal(raw, &quals)
		for _, q := range quals {
			if q == "async" {
				return true
			}
		}
		return false
	}
	var h struct {
		IsAsync bool `json:"is_async"`
		Async   bool `json:"async"`
	}
	_ = json.Unmarshal(raw, &h)
	return h.IsAsync || h.Async
}

func decodeConstant(data json.RawMessage) Constant {
	var c struct {
		Type  json.RawMessage `json:"type"`
		Expr  string          `json:"expr"`
		Value *string         `json:"value"`
		Const *struct {
			Expr  string  `json:"expr"`
			Value *string `json:"value"`
		} `json:"const"`
	}
	_ = json.Unmarshal(data, &c)

	out := Constant{Type: decodeType(c.Type), Expr: c.Expr}
	if c.Value != nil {
		out.Value = *c.Value
	}
	if c.Const != nil {
		if c.Const.Expr != "" {
			out.Expr = c.Const.Expr
		}
		if c.Const.Value != nil {
			out.Value = *c.Const.Value
		}
	}
	return out
}

// decodeType converts a rustdoc Type JSON value. Unknown shapes decode to
// Unknown, a missing value to nil.
func decodeType(raw json.RawMessage) Type {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if s == "infer" {
				return Infer{}
			}
			return Literal(s)
		}
		return Unknown{}
	}

	tag, data, ok := singleKey(raw)
	if !ok {
		return Unknown{}
	}

	switch tag {
	case "primitive":
		var name string
		if json.Unmarshal(data, &name) != nil {
			return Unknown{Kind: tag}
		}
		return Primitive(name)
	case "generic":
		var name string
		if json.Unmarshal(data, &name) != nil {
			return Unknown{Kind: tag}
		}
		return Generic(name)
	case "tuple":
		var elems []json.RawMessage
		if json.Unmarshal(data, &elems) != nil {
			return Unknown{Kind: tag}
		}
		t := make(Tuple, 0, len(elems))
		for _, e := range elems {
			t = append(t, decodeType(e))
		}
		return t
	case "slice":
		return Slice{Elem: decodeType(data)}
	case "array":
		var a struct {
			Type json.RawMessage `json:"type"`
			Len  json.RawMessage `json:"len"`
		}
		if json.Unmarshal(data, &a) != nil {
			return Unknown{Kind: tag}
		}
		return Array{Elem: decodeType(a.Type), Len: scalarText(a.Len)}
	case "borrowed_ref":
		var r struct {
			Lifetime  *string         `json:"lifetime"`
			Mutable   bool            `json:"mutable"`
			IsMutable bool            `json:"is_mutable"`
			Type      json.RawMessage `json:"type"`
		}
		if json.Unmarshal(data, &r) != nil {
			return Unknown{Kind: tag}
		}
		ref := BorrowedRef{Mutable: r.Mutable || r.IsMutable, Elem: decodeType(r.Type)}
		if r.Lifetime != nil {
			ref.Lifetime = *r.Lifetime
		}
		return ref
	case "raw_pointer":
		var p struct {
			Mutable   bool            `json:"mutable"`
			IsMutable bool            `json:"is_mutable"`
			Type      json.RawMessage `json:"type"`
		}
		if json.Unmarshal(data, &p) != nil {
			return Unknown{Kind: tag}
		}
		return RawPointer{Mutable: p.Mutable || p.IsMutable, Elem: decodeType(p.Type)}
	case "resolved_path":
		return decodeResolvedPath(data)
	case "dyn_trait":
		var d struct {
			Traits []struct {
				Trait json.RawMessage `json:"trait"`
			} `json:"traits"`
			Lifetime *string `json:"lifetime"`
		}
		if json.Unmarshal(data, &d) != nil {
			return Unknown{Kind: tag}
		}
		dt := DynTrait{}
		for _, t := range d.Traits {
			if name := pathName(t.Trait); name != "" {
				dt.Traits = append(dt.Traits, name)
			}
		}
		if d.Lifetime != nil {
			dt.Lifetime = *d.Lifetime
		}
		return dt
	case "impl_trait":
		var bounds []struct {
			TraitBound *struct {
				Trait json.RawMessage `json:"trait"`
			} `json:"trait_bound"`
			Outlives *string `json:"outlives"`
		}
		if json.Unmarshal(data, &bounds) != nil {
			return Unknown{Kind: tag}
		}
		it := ImplTrait{}
		for _, b := range bounds {
			switch {
			case b.TraitBound != nil:
				if name := pathName(b.TraitBound.Trait); name != "" {
					it.Bounds = append(it.Bounds, name)
				}
			case b.Outlives != nil:
				it.Bounds = append(it.Bounds, *b.Outlives)
			}
		}
		return it
	case "qualified_path":
		var q struct {
			Name     string          `json:"name"`
			SelfType json.RawMessage `json:"self_type"`
			Trait    json.RawMessage `json:"trait"`
		}
		if json.Unmarshal(data, &q) != nil {
			return Unknown{Kind: tag}
		}
		return QualifiedPath{Name: q.Name, SelfType: decodeType(q.SelfType), Trait: pathName(q.Trait)}
	case "infer":
		return Infer{}
	default:
		return Unknown{Kind: tag}
	}
}

func decodeResolvedPath(data json.RawMessage) Type {
	var rp struct {
		Path string          `json:"path"`
		Name string          `json:"name"`
		ID   ItemID          `json:"id"`
		Args json.RawMessage `json:"args"`
	}
	if json.Unmarshal(data, &rp) != nil {
		return Unknown{Kind: "resolved_path"}
	}
	name := rp.Path
	if name == "" {
		name = rp.Name
	}
	return ResolvedPath{Name: name, ID: rp.ID, Args: decodeGenericArgs(rp.Args)}
}

func decodeGenericArgs(raw json.RawMessage) []GenericArg {
	if len(raw) == 0 {
		return nil
	}
	var args struct {
		AngleBracketed *struct {
			Args []json.RawMessage `json:"args"`
		} `json:"angle_bracketed"`
	}
	if err := json.Unmarshal(raw, &args); err != nil || args.AngleBracketed == nil {
		return nil
	}

	var out []GenericArg
	for _, arg := range args.AngleBracketed.Args {
		tag, data, ok := singleKey(arg)
		if !ok {
			continue
		}
		switch tag {
		case "type":
			out = append(out, GenericArg{Type: decodeType(data)})
		case "lifetime":
			var lt string
			if json.Unmarshal(data, &lt) == nil {
				out = append(out, GenericArg{Lifetime: lt})
			}
		case "const":
			out = append(out, GenericArg{Const: constText(data)})
		case "infer":
			out = append(out, GenericArg{Type: Infer{}})
		}
	}
	return out
}

// pathName extracts the display name of a rustdoc Path object ({path|name, id, args}).
func pathName(raw json.RawMessage) string {
	if len(bytes.TrimSpace(raw)) == 0 {
		return ""
	}
	var p struct {
		Path string `json:"path"`
		Name string `json:"name"`
	}
	if json.Unmarshal(raw, &p) != nil {
		return ""
	}
	if p.Path != "" {
		return p.Path
	}
	return p.Name
}

// constText renders a const generic argument, preferring its source expression.
func constText(raw json.RawMessage) string {
	var c struct {
		Expr  string  `json:"expr"`
		Value *string `json:"value"`
	}
	if err := json.Unmarshal(raw, &c); err == nil {
		if c.Expr != "" {
			return c.Expr
		}
		if c.Value != nil {
			return *c.Value
		}
	}
	return scalarText(raw)
}

// scalarText returns a JSON string's contents or any other scalar's raw text.
func scalarText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}
