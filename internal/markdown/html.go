package markdown

import (
	gm "github.com/gomarkdown/markdown"
	gmhtml "github.com/gomarkdown/markdown/html"
	gmparser "github.com/gomarkdown/markdown/parser"
)

// ToHTML renders markdown to an HTML fragment. Tables and fenced code are
// enabled; links open in a new tab.
func ToHTML(src string) string {
	p := gmparser.NewWithExtensions(gmparser.CommonExtensions | gmparser.Autolink)
	r := gmhtml.NewRenderer(gmhtml.RendererOptions{
		Flags: gmhtml.CommonFlags | gmhtml.HrefTargetBlank,
	})
	return string(gm.ToHTML([]byte(src), p, r))
}
