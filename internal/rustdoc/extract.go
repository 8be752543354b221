package rustdoc

import (
	"strings"
)

// VariantDoc is a named enum variant.
type VariantDoc struct {
	Name string
	Docs string
}

// ConstantValue is the declared type and value of a constant or static.
type ConstantValue struct {
	Type  string
	Value string
}

// Extraction is everything a tab can show about one item.
type Extraction struct {
	ID       ItemID
	Path     []string
	Kind     string // rustdoc kind tag, empty when the item is missing
	Docs     string
	HasDocs  bool
	Inputs   []NamedType
	Output   string
	IsAsync  bool
	Variants []VariantDoc
	Constant *ConstantValue
	// AliasOf is the rendered target of a type alias.
	AliasOf string
}

// HasSignature reports whether the item is a function with anything to show.
func (e *Extraction) HasSignature() bool {
	return len(e.Inputs) > 0 || e.Output != ""
}

// Empty reports whether there is nothing renderable.
func (e *Extraction) Empty() bool {
	return !e.HasDocs && !e.HasSignature() && len(e.Variants) == 0 && e.AliasOf == "" && e.Constant == nil
}

// DisplayKind is the heading kind: the capitalized tag, with type aliases
// shown as "Type".
func (e *Extraction) DisplayKind() string {
	return DisplayKind(e.Kind)
}

// DisplayKind capitalizes a rustdoc kind tag for headings.
func DisplayKind(kind string) string {
	switch kind {
	case "":
		return "Item"
	case "type_alias", "typedef":
		return "Type"
	}
	return strings.ToUpper(kind[:1]) + kind[1:]
}

// Extract collects docs and kind-specific content for an item.
func (idx *Index) Extract(id ItemID) Extraction {
	ex := Extraction{ID: id}
	if entry, ok := idx.Path(id); ok {
		ex.Path = entry.Path
	}

	item, ok := idx.Item(id)
	if !ok {
		return ex
	}
	if item.Docs != nil && *item.Docs != "" {
		ex.Docs, ex.HasDocs = *item.Docs, true
	}
	if item.Inner == nil {
		return ex
	}
	ex.Kind = item.Inner.Tag()

	switch inner := item.Inner.(type) {
	case Function:
		for _, in := range inner.Inputs {
			ex.Inputs = append(ex.Inputs, NamedType{Name: in.Name, Type: RenderType(in.Type)})
		}
		if inner.Output != nil {
			ex.Output = RenderType(inner.Output)
		}
		ex.IsAsync = inner.IsAsync
	case Enum:
		ex.Variants = idx.variants(inner)
	case TypeAlias:
		if inner.Type != nil {
			ex.AliasOf = RenderType(inner.Type)
		}
	case Constant:
		ex.Constant = constantValue(inner.Type, inner.Value, inner.Expr)
	case Static:
		ex.Constant = constantValue(inner.Type, "", inner.Expr)
	case Struct, Union, Trait, Module, Impl, Variant, Unrecognized:
	}
	return ex
}

func (idx *Index) variants(e Enum) []VariantDoc {
	var out []VariantDoc
	for _, vid := range e.Variants {
		v, ok := idx.Item(vid)
		if !ok || v.Name == nil {
			continue
		}
		doc := VariantDoc{Name: *v.Name}
		if v.Docs != nil {
			doc.Docs = *v.Docs
		}
		out = append(out, doc)
	}
	return out
}

func constantValue(t Type, value, expr string) *ConstantValue {
	c := ConstantValue{Value: value}
	if c.Value == "" {
		c.Value = expr
	}
	if t != nil {
		c.Type = RenderType(t)
	}
	if c.Type == "" && c.Value == "" {
		return nil
	}
	return &c
}

// MethodView is a resolved method map entry.
type MethodView struct {
	Path      string // "<ownerPath>::<method>"
	OwnerPath []string
	OwnerKind string
	Doc       MethodDoc
}

// Method looks up name on owner. The owner is resolved like any symbol and
// its canonical path (or, failing that, the normalized owner name) keys the
// method map.
func (idx *Index) Method(owner, name string) (MethodView, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return MethodView{}, false
	}
	ownerID, ok := idx.ResolveOwner(owner)
	if !ok {
		return MethodView{}, false
	}

	var view MethodView
	if entry, ok := idx.Path(ownerID); ok && len(entry.Path) > 0 {
		view.OwnerPath = entry.Path
		view.OwnerKind = entry.Kind
	} else {
		view.OwnerPath = strings.Split(idx.normalize(owner), "::")
	}
	if view.OwnerKind == "" {
		if it, ok := idx.Item(ownerID); ok && it.Inner != nil {
			view.OwnerKind = it.Inner.Tag()
		}
	}

	view.Path = strings.Join(view.OwnerPath, "::") + "::" + name
	doc, ok := idx.methods[view.Path]
	if !ok {
		return MethodView{}, false
	}
	view.Doc = doc
	return view, true
}
