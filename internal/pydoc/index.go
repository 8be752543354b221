// Package pydoc reads the pre-extracted Python SDK index and derives
// headings, links and parameter tables from its entries.
package pydoc

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/drift-labs/sdkdoc/internal/artifact"
)

// Param is one documented parameter.
type Param struct {
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
	Default     string `json:"default,omitempty"`
}

// Returns documents a return value.
type Returns struct {
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

// Symbol is one entry of the flat index.
type Symbol struct {
	FQN       string   `json:"fqn"`
	Kind      string   `json:"kind"`
	Signature string   `json:"signature"`
	Summary   string   `json:"summary"`
	Params    []Param  `json:"params"`
	Returns   *Returns `json:"returns"`
}

// Index is the flat {version, symbols} index keyed by fully-qualified name.
type Index struct {
	Version int               `json:"version"`
	Symbols map[string]Symbol `json:"symbols"`
}

// Load reads a flat index from a .json or .json.zst file.
func Load(path string) (*Index, error) {
	var idx Index
	if err := artifact.ReadJSON(path, &idx); err != nil {
		return nil, fmt.Errorf("loading python index: %w", err)
	}
	if idx.Symbols == nil {
		idx.Symbols = make(map[string]Symbol)
	}
	slog.Debug("loaded python index", "path", path, "version", idx.Version, "symbols", len(idx.Symbols))
	return &idx, nil
}

// Lookup finds a symbol by exact fully-qualified name.
func (idx *Index) Lookup(fqn string) (Symbol, bool) {
	sym, ok := idx.Symbols[strings.TrimSpace(fqn)]
	if ok && sym.FQN == "" {
		sym.FQN = strings.TrimSpace(fqn)
	}
	return sym, ok
}

// Heading returns "<Kind> <name>", with methods shown as "Owner.name". A
// function whose parent segment starts with an upper-case letter is a method.
func Heading(sym Symbol) string {
	parts := strings.Split(sym.FQN, ".")
	name := parts[len(parts)-1]
	var owner string
	if len(parts) >= 2 {
		owner = parts[len(parts)-2]
	}

	isMethod := sym.Kind == "function" && owner != "" && owner[:1] == strings.ToUpper(owner[:1])
	switch {
	case isMethod:
		return "Method " + owner + "." + name
	case sym.Kind == "class":
		return "Class " + name
	case sym.Kind == "attribute":
		return "Variable " + name
	default:
		return "Function " + name
	}
}

// DefaultDocsBaseURL is where the published Python docs live.
const DefaultDocsBaseURL = "https://drift-labs.github.io/driftpy"

// LinkPrefix maps a module prefix to a docs page path.
type LinkPrefix struct {
	Prefix string `mapstructure:"prefix"`
	Path   string `mapstructure:"path"`
}

// DefaultLinkPrefixes mirrors the published site layout.
var DefaultLinkPrefixes = []LinkPrefix{
	{Prefix: "driftpy.drift_client", Path: "/clearing_house/"},
	{Prefix: "driftpy.drift_user", Path: "/clearing_house_user/"},
	{Prefix: "driftpy.accounts", Path: "/accounts/"},
	{Prefix: "driftpy.addresses", Path: "/addresses/"},
}

// Links maps fully-qualified names to doc pages by prefix.
type Links struct {
	BaseURL  string
	Prefixes []LinkPrefix
}

// URL returns the page for fqn: the first matching prefix's page, else the
// site root.
func (l Links) URL(fqn string) string {
	base := strings.TrimSuffix(l.BaseURL, "/")
	for _, p := range l.Prefixes {
		if fqn == p.Prefix || strings.HasPrefix(fqn, p.Prefix+".") {
			return base + p.Path
		}
	}
	return base
}
