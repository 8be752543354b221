package markdown

import (
	"regexp"
	"strings"

	gm "github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	gmparser "github.com/gomarkdown/markdown/parser"
)

// RewriteLinks rewrites rustdoc intra-doc links using linkMap, which maps a
// link target as written in the docs to its URL. Inline and reference
// destinations found in the markdown AST are replaced in place; shortcut
// links such as [`Wallet`] gain an explicit destination.
func RewriteLinks(src string, linkMap map[string]string) string {
	if len(linkMap) == 0 {
		return src
	}

	doc := gm.Parse([]byte(src), gmparser.NewWithExtensions(
		gmparser.CommonExtensions|gmparser.Autolink,
	))

	seen := make(map[string]bool)
	type replacement struct {
		oldDest string
		newDest string
	}
	var replacements []replacement

	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		if link, ok := node.(*ast.Link); ok {
			dest := string(link.Destination)
			if newDest, ok := linkMap[dest]; ok && !seen[dest] {
				seen[dest] = true
				replacements = append(replacements, replacement{dest, newDest})
			}
		}
		return ast.GoToNext
	})

	result := src
	for _, r := range replacements {
		result = strings.ReplaceAll(result, "]("+r.oldDest+")", "]("+r.newDest+")")
	}

	if len(replacements) > 0 {
		lines := strings.Split(result, "\n")
		for i, line := range lines {
			trimmed := strings.TrimSpace(line)
			for _, r := range replacements {
				if strings.HasSuffix(trimmed, "]: "+r.oldDest) {
					lines[i] = strings.Replace(line, "]: "+r.oldDest, "]: "+r.newDest, 1)
					break
				}
			}
		}
		result = strings.Join(lines, "\n")
	}

	return rewriteShortcuts(result, linkMap)
}

// shortcutLink matches [text] not followed by "(", "[" or ":".
var shortcutLink = regexp.MustCompile(`\[([^\[\]\n]+)\]([^(\[:]|$)`)

func rewriteShortcuts(src string, linkMap map[string]string) string {
	return shortcutLink.ReplaceAllStringFunc(src, func(m string) string {
		sub := shortcutLink.FindStringSubmatch(m)
		text, trailer := sub[1], sub[2]
		dest, ok := linkMap[text]
		if !ok {
			dest, ok = linkMap[strings.Trim(text, "`")]
		}
		if !ok {
			return m
		}
		return "[" + text + "](" + dest + ")" + trailer
	})
}
