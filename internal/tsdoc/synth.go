package tsdoc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/singleflight"
)

// ErrGenerator wraps every failure to obtain a definition.
var ErrGenerator = errors.New("definition generator failed")

// DefaultModule is the package the synthesized units import from.
const DefaultModule = "@drift-labs/sdk"

// Symbol is a requested TypeScript export.
type Symbol struct {
	Name  string
	Kind  string // function (default), class, method, enum, variable, type, interface
	Owner string
}

func (s Symbol) kind() string {
	if s.Kind == "" {
		return "function"
	}
	return s.Kind
}

// BuildUnit synthesizes the compilation unit that exposes s. Methods with an
// owner are aliased as an indexed access type on the owner class.
func BuildUnit(module string, s Symbol) Unit {
	if s.kind() == "method" && s.Owner != "" {
		alias := s.Owner + "_" + s.Name
		return Unit{
			Code:       fmt.Sprintf("import { %s } from '%s'; export type %s = %s['%s']", s.Owner, module, alias, s.Owner, s.Name),
			ExportName: alias,
		}
	}
	return Unit{
		Code:       fmt.Sprintf("export { %s } from '%s'", s.Name, module),
		ExportName: s.Name,
	}
}

// Synthesizer turns symbols into sanitized definitions. Concurrent requests
// for the same unit share one generator call.
type Synthesizer struct {
	module string
	gen    Generator
	group  singleflight.Group
}

func NewSynthesizer(module string, gen Generator) *Synthesizer {
	if module == "" {
		module = DefaultModule
	}
	return &Synthesizer{module: module, gen: gen}
}

// Synthesize obtains the definition for s. Every failure wraps ErrGenerator.
func (s *Synthesizer) Synthesize(ctx context.Context, sym Symbol) (*Definition, error) {
	if strings.TrimSpace(sym.Name) == "" {
		return nil, fmt.Errorf("%w: empty symbol name", ErrGenerator)
	}
	unit := BuildUnit(s.module, sym)

	v, err, _ := s.group.Do(unit.cacheKey(), func() (interface{}, error) {
		return s.gen.Generate(ctx, unit)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrGenerator, unit.ExportName, err)
	}
	return Sanitize(v.(*Definition)), nil
}
