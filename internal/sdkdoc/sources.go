package sdkdoc

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/drift-labs/sdkdoc/internal/pydoc"
	"github.com/drift-labs/sdkdoc/internal/rustdoc"
)

// Sources loads the Rust dump and the Python index on first use. Each is
// loaded at most once per process; a failed load is remembered and every
// later request for that source degrades to a placeholder.
type Sources struct {
	loadRust   func() (*rustdoc.Index, error)
	loadPython func() (*pydoc.Index, error)

	rustOnce sync.Once
	rust     *rustdoc.Index
	rustErr  error

	pythonOnce sync.Once
	python     *pydoc.Index
	pythonErr  error
}

// NewSources takes loaders for each source. A nil loader marks the source
// as unavailable.
func NewSources(loadRust func() (*rustdoc.Index, error), loadPython func() (*pydoc.Index, error)) *Sources {
	return &Sources{loadRust: loadRust, loadPython: loadPython}
}

// StaticSources wraps already loaded indexes.
func StaticSources(rust *rustdoc.Index, python *pydoc.Index) *Sources {
	s := &Sources{}
	if rust != nil {
		s.loadRust = func() (*rustdoc.Index, error) { return rust, nil }
	}
	if python != nil {
		s.loadPython = func() (*pydoc.Index, error) { return python, nil }
	}
	return s
}

// Rust returns the loaded Rust index.
func (s *Sources) Rust() (*rustdoc.Index, error) {
	s.rustOnce.Do(func() {
		if s.loadRust == nil {
			s.rustErr = fmt.Errorf("%w: no rustdoc dump configured", ErrSourceUnavailable)
			return
		}
		idx, err := s.loadRust()
		if err != nil {
			s.rustErr = fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
			slog.Warn("rust docs unavailable", "error", err)
			return
		}
		s.rust = idx
	})
	return s.rust, s.rustErr
}

// Python returns the loaded Python index.
func (s *Sources) Python() (*pydoc.Index, error) {
	s.pythonOnce.Do(func() {
		if s.loadPython == nil {
			s.pythonErr = fmt.Errorf("%w: no python index configured", ErrSourceUnavailable)
			return
		}
		idx, err := s.loadPython()
		if err != nil {
			s.pythonErr = fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
			slog.Warn("python docs unavailable", "error", err)
			return
		}
		s.python = idx
	})
	return s.python, s.pythonErr
}
