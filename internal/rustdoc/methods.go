package rustdoc

import "strings"

// NamedType is a rendered (name, type) pair.
type NamedType struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// MethodDoc is a method entry of the method map, keyed "<ownerPath>::<method>".
type MethodDoc struct {
	Docs    *string     `json:"docs"`
	Inputs  []NamedType `json:"inputs"`
	Output  *string     `json:"output"`
	IsAsync bool        `json:"is_async"`
}

// MethodMap maps owner-qualified method paths to their docs.
type MethodMap map[string]MethodDoc

// DeriveMethods walks every struct, enum and union of the root crate and
// collects the functions of their impl blocks. When an inherent impl and a
// trait impl define the same method name, the inherent one wins.
func DeriveMethods(c *Crate) MethodMap {
	methods := make(MethodMap)
	fromTrait := make(map[string]bool)
	if c == nil || c.Paths == nil {
		return methods
	}

	rootCrate, ok := rootCrateID(c)
	if !ok {
		return methods
	}

	for pair := c.Paths.Oldest(); pair != nil; pair = pair.Next() {
		entry := pair.Value
		if entry.CrateID != rootCrate {
			continue
		}
		item := c.Index[pair.Key]
		if item == nil {
			continue
		}

		var impls []ItemID
		switch inner := item.Inner.(type) {
		case Struct:
			impls = inner.Impls
		case Enum:
			impls = inner.Impls
		case Union:
			impls = inner.Impls
		default:
			continue
		}

		ownerPath := strings.Join(entry.Path, "::")
		for _, implID := range impls {
			implItem := c.Index[implID]
			if implItem == nil {
				continue
			}
			impl, ok := implItem.Inner.(Impl)
			if !ok {
				continue
			}
			isTrait := impl.Trait != ""
			for _, fnID := range impl.Items {
				fnItem := c.Index[fnID]
				if fnItem == nil || fnItem.Name == nil {
					continue
				}
				fn, ok := fnItem.Inner.(Function)
				if !ok {
					continue
				}
				key := ownerPath + "::" + *fnItem.Name
				if _, exists := methods[key]; exists && (isTrait || !fromTrait[key]) {
					continue
				}
				methods[key] = methodDoc(fnItem, fn)
				fromTrait[key] = isTrait
			}
		}
	}
	return methods
}

func methodDoc(item *Item, fn Function) MethodDoc {
	doc := MethodDoc{Docs: item.Docs, IsAsync: fn.IsAsync}
	for _, in := range fn.Inputs {
		doc.Inputs = append(doc.Inputs, NamedType{Name: in.Name, Type: RenderType(in.Type)})
	}
	if fn.Output != nil {
		out := RenderType(fn.Output)
		doc.Output = &out
	}
	return doc
}

func rootCrateID(c *Crate) (int, bool) {
	root := c.Index[c.Root]
	if root == nil {
		return 0, false
	}
	return root.CrateID, true
}
