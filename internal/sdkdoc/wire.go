package sdkdoc

import (
	"github.com/drift-labs/sdkdoc/internal/config"
	"github.com/drift-labs/sdkdoc/internal/pydoc"
	"github.com/drift-labs/sdkdoc/internal/rustdoc"
	"github.com/drift-labs/sdkdoc/internal/tsdoc"
)

// NewFromConfig builds an Assembler whose sources load lazily from the
// configured artifacts. An empty path or generator command leaves that
// source unavailable.
func NewFromConfig(cfg *config.Config) *Assembler {
	var loadRust func() (*rustdoc.Index, error)
	if cfg.Rust.Dump != "" {
		loadRust = func() (*rustdoc.Index, error) {
			return rustdoc.Load(cfg.Rust.Dump, cfg.Rust.Methods, cfg.Rust.Crate)
		}
	}
	var loadPython func() (*pydoc.Index, error)
	if cfg.Python.Index != "" {
		loadPython = func() (*pydoc.Index, error) {
			return pydoc.Load(cfg.Python.Index)
		}
	}

	var synth *tsdoc.Synthesizer
	if args := cfg.TypeScript.Generator.Args; len(args) > 0 {
		var gen tsdoc.Generator = &tsdoc.CommandGenerator{
			Args:    args,
			Timeout: cfg.GeneratorTimeout(),
		}
		if cfg.TypeScript.Cache {
			gen = &tsdoc.CachedGenerator{Next: gen}
		}
		synth = tsdoc.NewSynthesizer(cfg.TypeScript.Module, gen)
	}

	prefixes := make([]pydoc.LinkPrefix, 0, len(cfg.Python.LinkPrefixes))
	for _, p := range cfg.Python.LinkPrefixes {
		prefixes = append(prefixes, pydoc.LinkPrefix{Prefix: p.Prefix, Path: p.Path})
	}
	if len(prefixes) == 0 {
		prefixes = pydoc.DefaultLinkPrefixes
	}

	return New(Options{
		Sources:     NewSources(loadRust, loadPython),
		Synthesizer: synth,
		RustLinks: rustdoc.Links{
			BaseURL:   orDefault(cfg.Rust.DocsBaseURL, rustdoc.DefaultDocsBaseURL),
			CrateName: cfg.Rust.Crate,
		},
		PythonLinks: pydoc.Links{
			BaseURL:  orDefault(cfg.Python.DocsBaseURL, pydoc.DefaultDocsBaseURL),
			Prefixes: prefixes,
		},
		TypeScriptLinks: tsdoc.Links{
			BaseURL: orDefault(cfg.TypeScript.DocsBaseURL, tsdoc.DefaultDocsBaseURL),
		},
	})
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
