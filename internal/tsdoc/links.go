package tsdoc

import "strings"

// DefaultDocsBaseURL is where the generated TypeScript reference lives.
const DefaultDocsBaseURL = "https://drift-labs.github.io/protocol-v2/sdk"

// Heading returns "<Kind> <name>", with owned methods shown as "Owner.name".
func Heading(s Symbol) string {
	kind := s.kind()
	name := s.Name
	if kind == "method" && s.Owner != "" {
		name = s.Owner + "." + s.Name
	}
	return strings.ToUpper(kind[:1]) + kind[1:] + " " + name
}

// Links builds typedoc URLs.
type Links struct {
	BaseURL string
}

// URL returns the reference page for s. A method without an owner has none.
func (l Links) URL(s Symbol) string {
	base := strings.TrimSuffix(l.BaseURL, "/")
	switch s.kind() {
	case "class":
		return base + "/classes/" + s.Name + ".html"
	case "enum":
		return base + "/enums/" + s.Name + ".html"
	case "variable":
		return base + "/variables/" + s.Name + ".html"
	case "type":
		return base + "/types/" + s.Name + ".html"
	case "interface":
		return base + "/interfaces/" + s.Name + ".html"
	case "method":
		if s.Owner == "" {
			return ""
		}
		return base + "/classes/" + s.Owner + ".html#method_" + s.Name
	default:
		return base + "/functions/" + s.Name + ".html"
	}
}
