package sdkdoc

import (
	"fmt"
	"strings"

	"github.com/drift-labs/sdkdoc/internal/markdown"
)

// NoSourcesText is shown when a block requested no source at all.
const NoSourcesText = "No SDK documentation sources provided."

var exampleLang = map[string]string{
	LabelTypeScript: "typescript",
	LabelPython:     "python",
	LabelRust:       "rust",
}

// Markdown renders tabs as one markdown document, a second-level section per
// tab.
func Markdown(tabs []Tab) string {
	if len(tabs) == 0 {
		return "> **Note:** " + NoSourcesText + "\n"
	}
	var b strings.Builder
	for i, tab := range tabs {
		if i > 0 {
			b.WriteString("\n")
		}
		writeTab(&b, tab)
	}
	return b.String()
}

// HTML renders tabs to an HTML fragment.
func HTML(tabs []Tab) string {
	return markdown.ToHTML(Markdown(tabs))
}

func writeTab(b *strings.Builder, tab Tab) {
	fmt.Fprintf(b, "## %s\n\n", tab.Label)
	if tab.Example != "" {
		fmt.Fprintf(b, "**Example**\n\n```%s\n%s\n```\n\n", exampleLang[tab.Label], strings.Trim(tab.Example, "\n"))
	}

	if tab.Notice != nil {
		label := "Note"
		if tab.Notice.Level == NoticeWarning {
			label = "Warning"
		}
		fmt.Fprintf(b, "> **%s:** %s\n\n", label, tab.Notice.Text)
	}
	if tab.Heading != "" {
		fmt.Fprintf(b, "### %s\n\n", tab.Heading)
	}
	if md := tab.Description.Markdown(); md != "" {
		b.WriteString(md)
		b.WriteString("\n\n")
	}
	if tab.Content != nil {
		writeContent(b, tab.Content)
	}
	if tab.Link != "" {
		fmt.Fprintf(b, "[View full reference](%s)\n\n", tab.Link)
	}
}

func writeContent(b *strings.Builder, c *Content) {
	for i, sig := range c.Signatures {
		if len(c.Signatures) > 1 {
			fmt.Fprintf(b, "**Overload %d**\n\n", i+1)
		}
		if sig.Async {
			b.WriteString("*async*\n\n")
		}
		if len(sig.Params) > 0 {
			b.WriteString("| Parameter | Type | Required | Description |\n| --- | --- | --- | --- |\n")
			for _, p := range sig.Params {
				desc := p.Description
				if p.Default != "" {
					desc = strings.TrimSpace(desc + " Default: `" + p.Default + "`.")
				}
				fmt.Fprintf(b, "| `%s` | %s | %s | %s |\n", cell(p.Name), code(p.Type), yesNo(!p.Optional), cell(desc))
			}
			b.WriteString("\n")
		}
		if sig.Returns != nil {
			writeReturns(b, sig.Returns)
		}
	}

	if len(c.Properties) > 0 {
		b.WriteString("| Property | Type | Required | Description |\n| --- | --- | --- | --- |\n")
		for _, p := range c.Properties {
			fmt.Fprintf(b, "| `%s` | %s | %s | %s |\n", cell(p.Name), code(p.Type), yesNo(!p.Optional), cell(p.Description))
		}
		b.WriteString("\n")
	}

	if len(c.Variants) > 0 {
		b.WriteString("| Variant | Description |\n| --- | --- |\n")
		for _, v := range c.Variants {
			fmt.Fprintf(b, "| `%s` | %s |\n", cell(v.Name), cell(v.Docs))
		}
		b.WriteString("\n")
	}

	if c.Constant != nil {
		switch {
		case c.Constant.Type != "" && c.Constant.Value != "":
			fmt.Fprintf(b, "`%s = %s`\n\n", c.Constant.Type, c.Constant.Value)
		case c.Constant.Type != "":
			fmt.Fprintf(b, "**Type:** `%s`\n\n", c.Constant.Type)
		default:
			fmt.Fprintf(b, "**Value:** `%s`\n\n", c.Constant.Value)
		}
	}
	if c.TypeAlias != "" {
		fmt.Fprintf(b, "**Type:** `%s`\n\n", c.TypeAlias)
	}
}

func writeReturns(b *strings.Builder, r *Returns) {
	if len(r.Fields) > 0 {
		b.WriteString("**Returns**")
		if r.Description != "" {
			b.WriteString(": " + r.Description)
		}
		b.WriteString("\n\n| Field | Type | Description |\n| --- | --- | --- |\n")
		for _, f := range r.Fields {
			fmt.Fprintf(b, "| `%s` | %s | %s |\n", cell(f.Name), code(f.Type), cell(f.Description))
		}
		b.WriteString("\n")
		return
	}
	b.WriteString("**Returns:**")
	if r.Type != "" {
		b.WriteString(" `" + r.Type + "`")
	}
	if r.Description != "" {
		b.WriteString(" " + r.Description)
	}
	b.WriteString("\n\n")
}

var cellEscaper = strings.NewReplacer("|", `\|`, "\r\n", " ", "\n", " ")

func cell(s string) string {
	return cellEscaper.Replace(s)
}

func code(s string) string {
	if s == "" {
		return ""
	}
	return "`" + cell(s) + "`"
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
