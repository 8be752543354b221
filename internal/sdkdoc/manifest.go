package sdkdoc

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manifest lists the documentation blocks of every page to render.
type Manifest struct {
	Pages []Page `yaml:"pages"`
}

// Page is one output page and its blocks, in display order.
type Page struct {
	Path   string    `yaml:"path"`
	Blocks []Request `yaml:"blocks"`
}

// LoadManifest reads a YAML page manifest.
func LoadManifest(file string) (*Manifest, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest decodes a manifest, rejecting unknown fields and pages
// without a path or whose path would leave the output directory.
func ParseManifest(data []byte) (*Manifest, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}

	seen := make(map[string]bool, len(m.Pages))
	for i, p := range m.Pages {
		pagePath := strings.TrimSpace(p.Path)
		if pagePath == "" {
			return nil, fmt.Errorf("parsing manifest: page %d has no path", i)
		}
		if err := checkPagePath(pagePath); err != nil {
			return nil, fmt.Errorf("parsing manifest: page %q: %w", pagePath, err)
		}
		if seen[pagePath] {
			return nil, fmt.Errorf("parsing manifest: duplicate page %q", pagePath)
		}
		seen[pagePath] = true
		m.Pages[i].Path = pagePath
	}
	return &m, nil
}

// checkPagePath requires a relative slash-separated path that stays inside
// the output directory.
func checkPagePath(p string) error {
	if strings.ContainsRune(p, '\\') {
		return fmt.Errorf("path must use forward slashes")
	}
	if path.IsAbs(p) || (len(p) >= 2 && p[1] == ':') {
		return fmt.Errorf("path must be relative")
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return fmt.Errorf("path must not contain \"..\"")
		}
	}
	if clean := path.Clean(p); clean == "." {
		return fmt.Errorf("path names no file")
	}
	return nil
}
