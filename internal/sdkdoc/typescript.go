package sdkdoc

import (
	"context"
	"fmt"

	"github.com/drift-labs/sdkdoc/internal/doctext"
	"github.com/drift-labs/sdkdoc/internal/tsdoc"
)

func (a *Assembler) typeScriptTab(ctx context.Context, req *BlockRequest) Tab {
	if a.ts == nil {
		return placeholder(LabelTypeScript, req, fmt.Errorf("%w: no definition generator configured", ErrSourceUnavailable))
	}

	sym := tsdoc.Symbol{Name: req.Name, Kind: string(req.Kind), Owner: req.Owner}
	def, err := a.ts.Synthesize(ctx, sym)
	if err != nil {
		return placeholder(LabelTypeScript, req, err)
	}

	tab := Tab{
		Label:       LabelTypeScript,
		Heading:     tsdoc.Heading(sym),
		Description: doctext.Render(def.Description),
		Link:        a.tsLinks.URL(sym),
		Example:     req.Example,
		Content:     &Content{},
	}

	switch tsdoc.Classify(def) {
	case tsdoc.ShapeEntries:
		for _, e := range def.Entries {
			tab.Content.Properties = append(tab.Content.Properties, Property{
				Name:        e.Name,
				Type:        e.Type,
				Description: e.Description,
				Optional:    e.Optional,
			})
		}
	case tsdoc.ShapeSignatures:
		for _, s := range def.Signatures {
			tab.Content.Signatures = append(tab.Content.Signatures, tsSignature(s, def.Tags["returns"]))
		}
	case tsdoc.ShapeTypeOnly:
		tab.Content.TypeAlias = def.Type
	case tsdoc.ShapeEmpty:
	}
	return finish(tab, req)
}

// tsSignature converts one overload. A single unnamed return is a type line,
// described by the @returns tag when present; named returns are fields.
func tsSignature(s tsdoc.Signature, returnsTag string) Signature {
	var sig Signature
	for _, p := range s.Params {
		sig.Params = append(sig.Params, Param{
			Name:        p.Name,
			Type:        p.Type,
			Description: p.Description,
			Optional:    p.Optional,
			Default:     p.Default,
		})
	}

	switch {
	case len(s.Returns) == 1 && s.Returns[0].Name == "":
		r := s.Returns[0]
		sig.Returns = &Returns{Type: r.Type, Description: r.Description}
		if returnsTag != "" {
			sig.Returns.Description = returnsTag
		}
	case len(s.Returns) > 0:
		sig.Returns = &Returns{Description: returnsTag}
		for _, r := range s.Returns {
			sig.Returns.Fields = append(sig.Returns.Fields, Property{
				Name:        r.Name,
				Type:        r.Type,
				Description: r.Description,
			})
		}
	case returnsTag != "":
		sig.Returns = &Returns{Description: returnsTag}
	}
	return sig
}
