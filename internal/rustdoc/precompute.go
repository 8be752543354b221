package rustdoc

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/drift-labs/sdkdoc/internal/artifact"
)

type rawDump struct {
	Root            json.RawMessage                                 `json:"root"`
	CrateVersion    json.RawMessage                                 `json:"crate_version"`
	IncludesPrivate json.RawMessage                                 `json:"includes_private"`
	Index           *orderedmap.OrderedMap[string, json.RawMessage] `json:"index"`
	Paths           *orderedmap.OrderedMap[string, json.RawMessage] `json:"paths"`
	ExternalCrates  map[string]json.RawMessage                      `json:"external_crates"`
	Target          json.RawMessage                                 `json:"target,omitempty"`
	FormatVersion   json.RawMessage                                 `json:"format_version"`
}

// Precomputed is the output of the offline slimming step.
type Precomputed struct {
	Slim    []byte
	Methods MethodMap
	Kept    int
	Total   int
}

// Precompute reduces a full rustdoc dump to the root crate's paths and index
// entries and derives its method map. External crates are dropped.
func Precompute(data []byte) (*Precomputed, error) {
	var dump rawDump
	if err := json.Unmarshal(data, &dump); err != nil {
		return nil, fmt.Errorf("unmarshaling rustdoc JSON: %w", err)
	}
	if dump.Index == nil || dump.Paths == nil {
		return nil, errors.New("rustdoc JSON has no index or paths")
	}

	rootKey := scalarText(dump.Root)
	rootRaw, ok := dump.Index.Get(rootKey)
	if !ok {
		return nil, fmt.Errorf("root item %s not in index", rootKey)
	}
	var root struct {
		CrateID int `json:"crate_id"`
	}
	if err := json.Unmarshal(rootRaw, &root); err != nil {
		return nil, fmt.Errorf("decoding root item: %w", err)
	}

	slim := rawDump{
		Root:            dump.Root,
		CrateVersion:    dump.CrateVersion,
		IncludesPrivate: dump.IncludesPrivate,
		Index:           orderedmap.New[string, json.RawMessage](),
		Paths:           orderedmap.New[string, json.RawMessage](),
		ExternalCrates:  map[string]json.RawMessage{},
		Target:          dump.Target,
		FormatVersion:   dump.FormatVersion,
	}

	keep := func(id string) {
		if _, done := slim.Index.Get(id); done {
			return
		}
		if item, ok := dump.Index.Get(id); ok {
			slim.Index.Set(id, item)
		}
	}
	keep(rootKey)

	for pair := dump.Paths.Oldest(); pair != nil; pair = pair.Next() {
		var entry PathEntry
		if err := json.Unmarshal(pair.Value, &entry); err != nil {
			continue
		}
		if entry.CrateID != root.CrateID {
			continue
		}
		if _, ok := dump.Index.Get(pair.Key); !ok {
			continue
		}
		slim.Paths.Set(pair.Key, pair.Value)
		keep(pair.Key)
	}

	// Impl blocks, methods and variants are not in paths but are reached
	// through their owners.
	for pair := slim.Paths.Oldest(); pair != nil; pair = pair.Next() {
		raw, _ := dump.Index.Get(pair.Key)
		var item Item
		if err := json.Unmarshal(raw, &item); err != nil {
			continue
		}
		for _, child := range children(item.Inner) {
			keep(string(child))
			childRaw, ok := dump.Index.Get(string(child))
			if !ok {
				continue
			}
			var childItem Item
			if err := json.Unmarshal(childRaw, &childItem); err != nil {
				continue
			}
			if impl, ok := childItem.Inner.(Impl); ok {
				for _, fn := range impl.Items {
					keep(string(fn))
				}
			}
		}
	}

	out, err := json.Marshal(slim)
	if err != nil {
		return nil, fmt.Errorf("encoding slim dump: %w", err)
	}
	crate, err := Parse(out)
	if err != nil {
		return nil, err
	}

	return &Precomputed{
		Slim:    out,
		Methods: DeriveMethods(crate),
		Kept:    slim.Paths.Len(),
		Total:   dump.Paths.Len(),
	}, nil
}

func children(inner Inner) []ItemID {
	switch in := inner.(type) {
	case Struct:
		return in.Impls
	case Union:
		return in.Impls
	case Enum:
		return append(append([]ItemID(nil), in.Variants...), in.Impls...)
	case Trait:
		return in.Items
	default:
		return nil
	}
}

// Load reads a dump and its method map. A missing or empty methodsPath
// derives the map from the dump instead.
func Load(dumpPath, methodsPath, crateName string) (*Index, error) {
	data, err := artifact.ReadAll(dumpPath)
	if err != nil {
		return nil, err
	}
	crate, err := Parse(data)
	if err != nil {
		return nil, err
	}

	var methods MethodMap
	if methodsPath != "" {
		if err := artifact.ReadJSON(methodsPath, &methods); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("loading method map: %w", err)
			}
			slog.Debug("method map not found, deriving from dump", "path", methodsPath)
			methods = nil
		}
	}

	idx := NewIndex(crate, crateName, methods)
	slog.Debug("loaded rustdoc dump",
		"path", dumpPath,
		"crate", idx.CrateName(),
		"items", len(crate.Index),
		"methods", len(idx.Methods()))
	return idx, nil
}
