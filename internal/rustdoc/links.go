package rustdoc

import (
	"strings"
)

// DefaultDocsBaseURL is where the published crate docs live.
const DefaultDocsBaseURL = "https://docs.rs/drift-rs/latest"

// Links builds docs.rs URLs for items of one crate.
type Links struct {
	BaseURL   string
	CrateName string
}

// pageKind maps a rustdoc kind tag to the docs.rs page prefix.
var pageKind = map[string]string{
	"struct":     "struct",
	"enum":       "enum",
	"union":      "union",
	"trait":      "trait",
	"type_alias": "type",
	"typedef":    "type",
	"function":   "fn",
	"constant":   "constant",
	"static":     "static",
	"macro":      "macro",
}

// ItemURL returns the page for an item at path with the given rustdoc kind.
// Paths outside the crate have no page and return "".
func (l Links) ItemURL(path []string, kind string) string {
	if len(path) == 0 || path[0] != l.CrateName {
		return ""
	}
	if kind == "module" {
		return l.join(path, "index.html")
	}
	prefix, ok := pageKind[kind]
	if !ok {
		return l.join(path[:len(path)-1], "index.html")
	}
	name := path[len(path)-1]
	return l.join(path[:len(path)-1], prefix+"."+name+".html")
}

// MethodURL returns the anchor of a method on its owner's page.
func (l Links) MethodURL(ownerPath []string, ownerKind, method string) string {
	if ownerKind == "" {
		ownerKind = "struct"
	}
	page := l.ItemURL(ownerPath, ownerKind)
	if page == "" {
		return ""
	}
	return page + "#method." + method
}

func (l Links) join(dirs []string, file string) string {
	parts := make([]string, 0, len(dirs)+2)
	parts = append(parts, strings.TrimSuffix(l.BaseURL, "/"))
	parts = append(parts, dirs...)
	parts = append(parts, file)
	return strings.Join(parts, "/")
}

// DocLinks resolves the intra-doc links of an item to docs.rs URLs, keyed by
// the markdown link target as written in the docs.
func (idx *Index) DocLinks(l Links, id ItemID) map[string]string {
	item, ok := idx.Item(id)
	if !ok || len(item.Links) == 0 {
		return nil
	}

	resolved := make(map[string]string, len(item.Links))
	for target, linkID := range item.Links {
		entry, ok := idx.Path(linkID)
		if !ok {
			continue
		}
		if uri := l.ItemURL(entry.Path, entry.Kind); uri != "" {
			resolved[target] = uri
		}
	}
	if len(resolved) == 0 {
		return nil
	}
	return resolved
}
