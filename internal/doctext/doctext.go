// Package doctext turns raw documentation text into ordered prose and code
// blocks.
package doctext

import (
	"regexp"
	"strings"
)

type BlockKind string

const (
	Paragraph BlockKind = "paragraph"
	Code      BlockKind = "code"
)

// Block is one paragraph or fenced code sample.
type Block struct {
	Kind BlockKind `json:"kind"`
	Text string    `json:"text"`
	Lang string    `json:"lang,omitempty"`
}

// Doc is a rendered documentation string.
type Doc struct {
	Blocks []Block `json:"blocks"`
}

// A fence's first line is an info string when it holds no whitespace.
var langTag = regexp.MustCompile(`^\S+$`)

// Render splits docs on ``` fences. Even segments are prose, split into
// paragraphs on blank lines with inner newlines collapsed to spaces; odd
// segments are code, with a bare language tag on the first line stripped.
// Empty blocks are dropped; nil is returned when nothing remains.
func Render(docs string) *Doc {
	if strings.TrimSpace(docs) == "" {
		return nil
	}

	var blocks []Block
	for i, segment := range strings.Split(docs, "```") {
		if i%2 == 1 {
			if b, ok := codeBlock(segment); ok {
				blocks = append(blocks, b)
			}
			continue
		}
		for _, para := range splitParagraphs(segment) {
			blocks = append(blocks, Block{Kind: Paragraph, Text: para})
		}
	}
	if len(blocks) == 0 {
		return nil
	}
	return &Doc{Blocks: blocks}
}

func codeBlock(segment string) (Block, bool) {
	b := Block{Kind: Code}
	first, rest, found := strings.Cut(segment, "\n")
	if found && langTag.MatchString(strings.TrimSpace(first)) {
		b.Lang = strings.TrimSpace(first)
		segment = rest
	} else if !found && langTag.MatchString(strings.TrimSpace(first)) {
		// A fence holding only a language tag has no code.
		return b, false
	}
	b.Text = strings.Trim(segment, "\n")
	if strings.TrimSpace(b.Text) == "" {
		return b, false
	}
	return b, true
}

var blankLine = regexp.MustCompile(`\n[ \t]*\n`)

func splitParagraphs(prose string) []string {
	var out []string
	for _, p := range blankLine.Split(prose, -1) {
		lines := strings.Split(p, "\n")
		for i := range lines {
			lines[i] = strings.TrimSpace(lines[i])
		}
		text := strings.TrimSpace(strings.Join(lines, " "))
		if text != "" {
			out = append(out, text)
		}
	}
	return out
}

// Paragraphs returns the text of every prose block.
func (d *Doc) Paragraphs() []string {
	if d == nil {
		return nil
	}
	var out []string
	for _, b := range d.Blocks {
		if b.Kind == Paragraph {
			out = append(out, b.Text)
		}
	}
	return out
}

// Markdown renders the doc back to markdown with normalized fences.
func (d *Doc) Markdown() string {
	if d == nil {
		return ""
	}
	parts := make([]string, 0, len(d.Blocks))
	for _, b := range d.Blocks {
		if b.Kind == Code {
			parts = append(parts, "```"+b.Lang+"\n"+b.Text+"\n```")
			continue
		}
		parts = append(parts, b.Text)
	}
	return strings.Join(parts, "\n\n")
}

// Summary returns the first paragraph.
func (d *Doc) Summary() string {
	if p := d.Paragraphs(); len(p) > 0 {
		return p[0]
	}
	return ""
}
