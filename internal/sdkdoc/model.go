// Package sdkdoc resolves SDK symbols against the TypeScript, Python and
// Rust documentation sources and normalizes them into tabs.
package sdkdoc

import (
	"errors"

	"github.com/drift-labs/sdkdoc/internal/doctext"
)

var (
	// ErrSymbolNotFound means the source has no entry for the request.
	ErrSymbolNotFound = errors.New("symbol not found")
	// ErrEmptyContent means the entry exists but has nothing to show.
	ErrEmptyContent = errors.New("no documentation content")
	// ErrSourceUnavailable means the source itself could not be loaded or
	// is not configured.
	ErrSourceUnavailable = errors.New("documentation source unavailable")
)

// Kind is the declared kind of a requested symbol.
type Kind string

const (
	KindFunction  Kind = "function"
	KindClass     Kind = "class"
	KindMethod    Kind = "method"
	KindEnum      Kind = "enum"
	KindVariable  Kind = "variable"
	KindType      Kind = "type"
	KindModule    Kind = "module"
	KindTrait     Kind = "trait"
	KindConstant  Kind = "constant"
	KindStatic    Kind = "static"
	KindStruct    Kind = "struct"
	KindTypeAlias Kind = "typeAlias"
)

// Tab labels, in output order.
const (
	LabelTypeScript = "TypeScript"
	LabelPython     = "Python"
	LabelRust       = "Rust"
	LabelAPI        = "API"
)

// BlockRequest asks for one symbol from one source.
type BlockRequest struct {
	Name    string `yaml:"name" json:"name"`
	Kind    Kind   `yaml:"kind,omitempty" json:"kind,omitempty"`
	Owner   string `yaml:"owner,omitempty" json:"owner,omitempty"`
	Example string `yaml:"example,omitempty" json:"example,omitempty"`
}

// Request groups the per-language requests for one documentation block.
type Request struct {
	TypeScript *BlockRequest `yaml:"typescript,omitempty" json:"typescript,omitempty"`
	Python     *BlockRequest `yaml:"python,omitempty" json:"python,omitempty"`
	Rust       *BlockRequest `yaml:"rust,omitempty" json:"rust,omitempty"`
	API        *BlockRequest `yaml:"api,omitempty" json:"api,omitempty"`
}

// Empty reports whether no source was requested.
func (r Request) Empty() bool {
	return r.TypeScript == nil && r.Python == nil && r.Rust == nil && r.API == nil
}

type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeWarning NoticeLevel = "warning"
)

// Notice is the message shown in place of documentation.
type Notice struct {
	Level NoticeLevel `json:"level"`
	Text  string      `json:"text"`
}

// Tab is the normalized documentation for one language. A placeholder tab
// has no heading, description, content or link; its notice explains why.
type Tab struct {
	Label       string       `json:"label"`
	Heading     string       `json:"heading,omitempty"`
	Description *doctext.Doc `json:"description,omitempty"`
	Content     *Content     `json:"content,omitempty"`
	Link        string       `json:"link,omitempty"`
	Placeholder bool         `json:"placeholder"`
	Notice      *Notice      `json:"notice,omitempty"`
	Example     string       `json:"example,omitempty"`
	// Reason records why a placeholder was produced, for build reports.
	Reason string `json:"reason,omitempty"`
}

// Content is the structured body of a tab, shared by every source.
type Content struct {
	Signatures []Signature    `json:"signatures,omitempty"`
	Properties []Property     `json:"properties,omitempty"`
	Variants   []Variant      `json:"variants,omitempty"`
	Constant   *ConstantValue `json:"constant,omitempty"`
	TypeAlias  string         `json:"typeAlias,omitempty"`
}

func (c *Content) empty() bool {
	return c == nil || (len(c.Signatures) == 0 && len(c.Properties) == 0 &&
		len(c.Variants) == 0 && c.Constant == nil && c.TypeAlias == "")
}

type Signature struct {
	Params  []Param  `json:"params,omitempty"`
	Returns *Returns `json:"returns,omitempty"`
	Async   bool     `json:"async,omitempty"`
}

type Param struct {
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
	Optional    bool   `json:"optional,omitempty"`
	Default     string `json:"default,omitempty"`
}

// Returns documents a return value; Fields is set for structured returns.
type Returns struct {
	Type        string     `json:"type,omitempty"`
	Description string     `json:"description,omitempty"`
	Fields      []Property `json:"fields,omitempty"`
}

type Property struct {
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
	Optional    bool   `json:"optional,omitempty"`
}

type Variant struct {
	Name string `json:"name"`
	Docs string `json:"docs,omitempty"`
}

type ConstantValue struct {
	Type  string `json:"type,omitempty"`
	Value string `json:"value,omitempty"`
}
