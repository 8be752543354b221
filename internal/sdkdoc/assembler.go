package sdkdoc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/drift-labs/sdkdoc/internal/pydoc"
	"github.com/drift-labs/sdkdoc/internal/rustdoc"
	"github.com/drift-labs/sdkdoc/internal/tsdoc"
)

// Options wires an Assembler to its sources.
type Options struct {
	Sources *Sources
	// Synthesizer produces TypeScript definitions; nil leaves every
	// TypeScript tab a placeholder.
	Synthesizer     *tsdoc.Synthesizer
	RustLinks       rustdoc.Links
	PythonLinks     pydoc.Links
	TypeScriptLinks tsdoc.Links
}

// Assembler builds tabs for documentation requests. It is safe for
// concurrent use.
type Assembler struct {
	sources *Sources
	ts      *tsdoc.Synthesizer

	rustLinks   rustdoc.Links
	pythonLinks pydoc.Links
	tsLinks     tsdoc.Links
}

func New(opts Options) *Assembler {
	sources := opts.Sources
	if sources == nil {
		sources = NewSources(nil, nil)
	}
	return &Assembler{
		sources:     sources,
		ts:          opts.Synthesizer,
		rustLinks:   opts.RustLinks,
		pythonLinks: opts.PythonLinks,
		tsLinks:     opts.TypeScriptLinks,
	}
}

// Assemble returns one tab per requested source, always in the order
// TypeScript, Python, Rust, API. A source that cannot document the symbol
// yields a placeholder tab; Assemble itself never fails.
func (a *Assembler) Assemble(ctx context.Context, req Request) []Tab {
	var tabs []Tab
	if req.TypeScript != nil {
		tabs = append(tabs, a.typeScriptTab(ctx, req.TypeScript))
	}
	if req.Python != nil {
		tabs = append(tabs, a.pythonTab(req.Python))
	}
	if req.Rust != nil {
		tabs = append(tabs, a.rustTab(req.Rust))
	}
	if req.API != nil {
		tabs = append(tabs, apiTab(req.API))
	}
	return tabs
}

func placeholder(label string, req *BlockRequest, err error) Tab {
	level := slog.LevelDebug
	if errors.Is(err, tsdoc.ErrGenerator) || errors.Is(err, ErrSourceUnavailable) {
		level = slog.LevelWarn
	}
	slog.Log(context.Background(), level, "placeholder tab", "label", label, "symbol", req.Name, "reason", err)

	return Tab{
		Label:       label,
		Placeholder: true,
		Notice: &Notice{
			Level: NoticeWarning,
			Text:  fmt.Sprintf("%s docs unavailable for `%s`.", label, req.Name),
		},
		Example: req.Example,
		Reason:  err.Error(),
	}
}

func apiTab(req *BlockRequest) Tab {
	return Tab{
		Label:       LabelAPI,
		Placeholder: true,
		Notice: &Notice{
			Level: NoticeInfo,
			Text:  "Remote API docs URL not configured yet.",
		},
		Example: req.Example,
		Reason:  "api docs not configured",
	}
}

// finish turns an assembled tab into a placeholder when it has nothing to
// show.
func finish(tab Tab, req *BlockRequest) Tab {
	if tab.Description == nil && tab.Content.empty() {
		return placeholder(tab.Label, req, fmt.Errorf("%w: %s", ErrEmptyContent, req.Name))
	}
	if tab.Content.empty() {
		tab.Content = nil
	}
	return tab
}

func notFound(name string) error {
	return fmt.Errorf("%w: %s", ErrSymbolNotFound, strings.TrimSpace(name))
}
