// Package tsdoc synthesizes TypeScript compilation units for SDK exports and
// turns the structural definitions an external generator produces for them
// into documentation.
package tsdoc

import (
	"github.com/drift-labs/sdkdoc/internal/doctext"
)

// Definition is the structural description the generator emits for one
// export. A definition carries either Entries (an object-like shape),
// Signatures (a callable shape), or only a Type.
type Definition struct {
	Name        string            `json:"name,omitempty"`
	Description string            `json:"description,omitempty"`
	Tags        map[string]string `json:"tags,omitempty"`
	Type        string            `json:"type,omitempty"`
	FilePath    string            `json:"filePath,omitempty"`
	Entries     []Entry           `json:"entries,omitempty"`
	Signatures  []Signature       `json:"signatures,omitempty"`
}

// Entry is one named field or property.
type Entry struct {
	Name        string            `json:"name"`
	Type        string            `json:"type"`
	Description string            `json:"description,omitempty"`
	Optional    bool              `json:"optional,omitempty"`
	Tags        map[string]string `json:"tags,omitempty"`
}

// Signature is one overload of a callable.
type Signature struct {
	Params  []Param       `json:"params,omitempty"`
	Returns []ReturnField `json:"returns,omitempty"`
}

type Param struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Optional    bool   `json:"optional,omitempty"`
	Default     string `json:"default,omitempty"`
}

// ReturnField is a return type, or one field of a structured return.
type ReturnField struct {
	Name        string `json:"name,omitempty"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// Shape is how a definition is presented.
type Shape int

const (
	ShapeEmpty Shape = iota
	ShapeEntries
	ShapeSignatures
	ShapeTypeOnly
)

func (s Shape) String() string {
	switch s {
	case ShapeEntries:
		return "entries"
	case ShapeSignatures:
		return "signatures"
	case ShapeTypeOnly:
		return "type-only"
	default:
		return "empty"
	}
}

// Classify picks the presentation for a definition.
func Classify(def *Definition) Shape {
	switch {
	case def == nil:
		return ShapeEmpty
	case len(def.Entries) > 0:
		return ShapeEntries
	case len(def.Signatures) > 0:
		return ShapeSignatures
	case def.Type != "":
		return ShapeTypeOnly
	default:
		return ShapeEmpty
	}
}

// Sanitize returns a copy of def with every piece of prose made safe for
// page markup.
func Sanitize(def *Definition) *Definition {
	if def == nil {
		return nil
	}
	next := *def
	next.Description = doctext.Sanitize(def.Description)
	next.Tags = sanitizeTags(def.Tags)

	if def.Entries != nil {
		next.Entries = make([]Entry, len(def.Entries))
		for i, e := range def.Entries {
			e.Description = doctext.Sanitize(e.Description)
			e.Tags = sanitizeTags(e.Tags)
			next.Entries[i] = e
		}
	}

	if def.Signatures != nil {
		next.Signatures = make([]Signature, len(def.Signatures))
		for i, sig := range def.Signatures {
			out := Signature{}
			for _, p := range sig.Params {
				p.Description = doctext.Sanitize(p.Description)
				out.Params = append(out.Params, p)
			}
			for _, r := range sig.Returns {
				r.Description = doctext.Sanitize(r.Description)
				out.Returns = append(out.Returns, r)
			}
			next.Signatures[i] = out
		}
	}
	return &next
}

func sanitizeTags(tags map[string]string) map[string]string {
	if tags == nil {
		return nil
	}
	out := make(map[string]string, len(tags))
	for k, v := range tags {
		out[k] = doctext.Sanitize(v)
	}
	return out
}
