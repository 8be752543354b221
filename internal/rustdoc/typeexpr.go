package rustdoc

import (
	"fmt"
	"strings"
)

// RenderType formats a type expression as Rust source text. A nil type is
// rendered as "void"; shapes it does not know render as "Unknown".
func RenderType(t Type) string {
	switch t := t.(type) {
	case nil:
		return "void"
	case Literal:
		return string(t)
	case Primitive:
		return string(t)
	case Generic:
		return string(t)
	case Tuple:
		return formatTuple(t)
	case Slice:
		return "[" + RenderType(t.Elem) + "]"
	case Array:
		return "[" + RenderType(t.Elem) + "; " + t.Len + "]"
	case BorrowedRef:
		return formatBorrowedRef(t)
	case RawPointer:
		if t.Mutable {
			return "*mut " + RenderType(t.Elem)
		}
		return "*const " + RenderType(t.Elem)
	case ResolvedPath:
		return formatResolvedPath(t)
	case DynTrait:
		return formatDynTrait(t)
	case ImplTrait:
		if len(t.Bounds) == 0 {
			return "Unknown"
		}
		return "impl " + strings.Join(t.Bounds, " + ")
	case QualifiedPath:
		self := RenderType(t.SelfType)
		if t.Trait != "" {
			return fmt.Sprintf("<%s as %s>::%s", self, t.Trait, t.Name)
		}
		return self + "::" + t.Name
	case Infer:
		return "_"
	default:
		return "Unknown"
	}
}

func formatResolvedPath(rp ResolvedPath) string {
	name := rp.Name
	if name == "" {
		name = "Unknown"
	}
	args := formatGenericArgs(rp.Args)
	if args == "" {
		return name
	}
	return name + "<" + args + ">"
}

func formatGenericArgs(args []GenericArg) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		var s string
		switch {
		case a.Type != nil:
			s = RenderType(a.Type)
		case a.Lifetime != "":
			s = a.Lifetime
		default:
			s = a.Const
		}
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

func formatBorrowedRef(r BorrowedRef) string {
	prefix := "&"
	if r.Lifetime != "" {
		prefix += r.Lifetime + " "
	}
	if r.Mutable {
		prefix += "mut "
	}
	return strings.TrimSpace(prefix + RenderType(r.Elem))
}

func formatDynTrait(d DynTrait) string {
	parts := append([]string(nil), d.Traits...)
	if d.Lifetime != "" {
		parts = append(parts, d.Lifetime)
	}
	if len(parts) == 0 {
		return "Unknown"
	}
	return "dyn " + strings.Join(parts, " + ")
}

func formatTuple(t Tuple) string {
	parts := make([]string, 0, len(t))
	for _, e := range t {
		parts = append(parts, RenderType(e))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
