package sdkdoc

import (
	"strings"

	"github.com/drift-labs/sdkdoc/internal/doctext"
	"github.com/drift-labs/sdkdoc/internal/markdown"
	"github.com/drift-labs/sdkdoc/internal/rustdoc"
)

func (a *Assembler) rustTab(req *BlockRequest) Tab {
	idx, err := a.sources.Rust()
	if err != nil {
		return placeholder(LabelRust, req, err)
	}
	links := a.rustLinks
	if links.CrateName == "" {
		links.CrateName = idx.CrateName()
	}

	if req.Kind == KindMethod {
		return rustMethodTab(idx, links, req)
	}

	id, ok := idx.Resolve(req.Name)
	if !ok {
		return placeholder(LabelRust, req, notFound(req.Name))
	}
	ex := idx.Extract(id)
	if ex.Empty() {
		return placeholder(LabelRust, req, ErrEmptyContent)
	}

	tab := Tab{
		Label:   LabelRust,
		Heading: ex.DisplayKind() + " " + strings.Join(ex.Path, "::"),
		Link:    links.ItemURL(ex.Path, ex.Kind),
		Example: req.Example,
		Content: &Content{},
	}
	if ex.HasDocs {
		tab.Description = doctext.Render(markdown.RewriteLinks(ex.Docs, idx.DocLinks(links, id)))
	}
	if ex.HasSignature() {
		tab.Content.Signatures = []Signature{rustSignature(ex.Inputs, ex.Output, ex.IsAsync)}
	}
	for _, v := range ex.Variants {
		tab.Content.Variants = append(tab.Content.Variants, Variant{Name: v.Name, Docs: v.Docs})
	}
	if ex.Constant != nil {
		tab.Content.Constant = &ConstantValue{Type: ex.Constant.Type, Value: ex.Constant.Value}
	}
	tab.Content.TypeAlias = ex.AliasOf
	return finish(tab, req)
}

func rustMethodTab(idx *rustdoc.Index, links rustdoc.Links, req *BlockRequest) Tab {
	view, ok := idx.Method(req.Owner, req.Name)
	if !ok {
		return placeholder(LabelRust, req, notFound(req.Owner+"::"+req.Name))
	}

	tab := Tab{
		Label:   LabelRust,
		Heading: "Method " + view.Path,
		Link:    links.MethodURL(view.OwnerPath, view.OwnerKind, strings.TrimSpace(req.Name)),
		Example: req.Example,
	}
	if view.Doc.Docs != nil && *view.Doc.Docs != "" {
		tab.Description = doctext.Render(*view.Doc.Docs)
	}
	var output string
	if view.Doc.Output != nil {
		output = *view.Doc.Output
	}
	if len(view.Doc.Inputs) > 0 || output != "" {
		tab.Content = &Content{Signatures: []Signature{rustSignature(view.Doc.Inputs, output, view.Doc.IsAsync)}}
	}
	return finish(tab, req)
}

func rustSignature(inputs []rustdoc.NamedType, output string, async bool) Signature {
	sig := Signature{Async: async}
	for _, in := range inputs {
		if in.Name == "self" {
			continue
		}
		sig.Params = append(sig.Params, Param{
			Name:     in.Name,
			Type:     in.Type,
			Optional: strings.Contains(in.Type, "Option<"),
		})
	}
	if output != "" {
		sig.Returns = &Returns{Type: output}
	}
	return sig
}
