package rustdoc

import (
	"strings"
)

// Index answers symbol lookups against a loaded crate. It is read-only after
// construction and safe for concurrent use.
type Index struct {
	crate     *Crate
	crateName string
	rootCrate int
	methods   MethodMap
}

// NewIndex wraps a crate for lookups. crateName is the path prefix used to
// root segmented names; when empty, the root module's name is used. A nil
// methods map is derived from the crate.
func NewIndex(c *Crate, crateName string, methods MethodMap) *Index {
	idx := &Index{crate: c, crateName: crateName, methods: methods}
	if id, ok := rootCrateID(c); ok {
		idx.rootCrate = id
	}
	if idx.crateName == "" {
		if root := c.Index[c.Root]; root != nil && root.Name != nil {
			idx.crateName = *root.Name
		}
	}
	if idx.methods == nil {
		idx.methods = DeriveMethods(c)
	}
	return idx
}

// CrateName returns the crate prefix used for path normalization.
func (idx *Index) CrateName() string { return idx.crateName }

// Crate returns the underlying dump.
func (idx *Index) Crate() *Crate { return idx.crate }

// Methods returns the method map.
func (idx *Index) Methods() MethodMap { return idx.methods }

// normalize trims the name and roots "::"-separated names at the crate.
func (idx *Index) normalize(name string) string {
	name = strings.TrimSpace(name)
	if strings.Contains(name, "::") && !strings.HasPrefix(name, idx.crateName+"::") {
		return idx.crateName + "::" + name
	}
	return name
}

// Resolve finds the item a user-facing name refers to. A segmented name
// that matches a full path exactly wins outright. Otherwise root-crate items
// whose last segment equals the name's last segment are candidates; the one
// with the fewest segments wins, ties going to the entry seen first in the
// dump.
func (idx *Index) Resolve(name string) (ItemID, bool) {
	if idx.crate.Paths == nil {
		return "", false
	}
	raw := strings.TrimSpace(name)
	if raw == "" {
		return "", false
	}
	normalized := idx.normalize(raw)

	if strings.Contains(normalized, "::") {
		for pair := idx.crate.Paths.Oldest(); pair != nil; pair = pair.Next() {
			if strings.Join(pair.Value.Path, "::") == normalized {
				return pair.Key, true
			}
		}
	}

	segments := strings.Split(raw, "::")
	last := segments[len(segments)-1]

	var (
		best    ItemID
		bestLen int
		found   bool
	)
	for pair := idx.crate.Paths.Oldest(); pair != nil; pair = pair.Next() {
		entry := pair.Value
		if entry.CrateID != idx.rootCrate || len(entry.Path) == 0 {
			continue
		}
		if entry.Path[len(entry.Path)-1] != last {
			continue
		}
		if !found || len(entry.Path) < bestLen {
			best, bestLen, found = pair.Key, len(entry.Path), true
		}
	}
	return best, found
}

// ResolveOwner resolves an owner type name. An empty owner never resolves.
func (idx *Index) ResolveOwner(owner string) (ItemID, bool) {
	if strings.TrimSpace(owner) == "" {
		return "", false
	}
	return idx.Resolve(owner)
}

// Path returns the canonical path of an item.
func (idx *Index) Path(id ItemID) (PathEntry, bool) {
	if idx.crate.Paths == nil {
		return PathEntry{}, false
	}
	return idx.crate.Paths.Get(id)
}

// Item returns an item of the index.
func (idx *Index) Item(id ItemID) (*Item, bool) {
	it, ok := idx.crate.Index[id]
	return it, ok && it != nil
}
