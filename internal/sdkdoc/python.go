package sdkdoc

import (
	"log/slog"
	"strings"

	"github.com/drift-labs/sdkdoc/internal/doctext"
	"github.com/drift-labs/sdkdoc/internal/pydoc"
)

func (a *Assembler) pythonTab(req *BlockRequest) Tab {
	idx, err := a.sources.Python()
	if err != nil {
		return placeholder(LabelPython, req, err)
	}

	sym, ok := idx.Lookup(pythonName(req))
	if !ok {
		return placeholder(LabelPython, req, notFound(req.Name))
	}

	tab := Tab{
		Label:       LabelPython,
		Heading:     pydoc.Heading(sym),
		Description: doctext.Render(sym.Summary),
		Link:        a.pythonLinks.URL(sym.FQN),
		Example:     req.Example,
	}

	parsed := pydoc.ParseSignature(sym.Signature)
	if parsed.Diagnostic != "" && sym.Signature != "" {
		slog.Debug("python signature", "symbol", sym.FQN, "diagnostic", parsed.Diagnostic)
	}

	params := sym.Params
	if len(params) == 0 {
		params = parsed.Params
	}
	returns := sym.Returns
	if returns == nil || (returns.Type == "" && returns.Description == "") {
		returns = parsed.Returns
	}

	if len(params) > 0 || returns != nil {
		sig := Signature{}
		for _, p := range params {
			if p.Name == "self" {
				continue
			}
			sig.Params = append(sig.Params, Param{
				Name:        p.Name,
				Type:        p.Type,
				Description: p.Description,
				Optional:    p.Default != "",
				Default:     p.Default,
			})
		}
		if returns != nil {
			sig.Returns = &Returns{Type: returns.Type, Description: returns.Description}
		}
		tab.Content = &Content{Signatures: []Signature{sig}}
	}
	return finish(tab, req)
}

// pythonName qualifies a bare method name with its owner. The index is keyed
// by fully qualified name, so the owner only helps when it is itself fully
// qualified, e.g. "driftpy.drift_client.DriftClient"; a bare class name
// leaves the symbol unresolved.
func pythonName(req *BlockRequest) string {
	name := strings.TrimSpace(req.Name)
	if req.Kind == KindMethod && req.Owner != "" && !strings.Contains(name, ".") {
		return strings.TrimSpace(req.Owner) + "." + name
	}
	return name
}
