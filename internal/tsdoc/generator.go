package tsdoc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/drift-labs/sdkdoc/internal/gencache"
)

// Unit is a synthesized compilation unit and the export to describe.
type Unit struct {
	Code       string `json:"code"`
	ExportName string `json:"exportName"`
}

func (u Unit) cacheKey() string {
	return u.Code + "\x00" + u.ExportName
}

// Generator produces a structural definition for a unit.
type Generator interface {
	Generate(ctx context.Context, unit Unit) (*Definition, error)
}

// CommandGenerator runs an external program that reads a Unit as JSON on
// stdin and writes a Definition as JSON on stdout.
type CommandGenerator struct {
	Args    []string
	Dir     string
	Timeout time.Duration
}

func (g *CommandGenerator) Generate(ctx context.Context, unit Unit) (*Definition, error) {
	if len(g.Args) == 0 {
		return nil, errors.New("no generator command configured")
	}
	if g.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.Timeout)
		defer cancel()
	}

	input, err := json.Marshal(unit)
	if err != nil {
		return nil, fmt.Errorf("encoding unit: %w", err)
	}

	cmd := exec.CommandContext(ctx, g.Args[0], g.Args[1:]...)
	cmd.Dir = g.Dir
	cmd.WaitDelay = 2 * time.Second
	cmd.Stdin = bytes.NewReader(input)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if len(msg) > 500 {
			msg = msg[:500]
		}
		if msg != "" {
			return nil, fmt.Errorf("running %s: %w: %s", g.Args[0], err, msg)
		}
		return nil, fmt.Errorf("running %s: %w", g.Args[0], err)
	}
	slog.Debug("generated definition", "export", unit.ExportName, "elapsed", time.Since(start))

	return decodeDefinition(stdout.Bytes())
}

func decodeDefinition(data []byte) (*Definition, error) {
	var def *Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("decoding definition: %w", err)
	}
	if def == nil {
		return nil, errors.New("generator returned no definition")
	}
	return def, nil
}

// CachedGenerator serves repeated units from the on-disk generator cache.
type CachedGenerator struct {
	Next Generator
}

func (g *CachedGenerator) Generate(ctx context.Context, unit Unit) (*Definition, error) {
	key := unit.cacheKey()
	data, err := gencache.Read(key)
	switch {
	case err == nil:
		if def, err := decodeDefinition(data); err == nil {
			return def, nil
		}
		slog.Warn("discarding corrupt generator cache entry", "export", unit.ExportName)
	case !errors.Is(err, fs.ErrNotExist):
		slog.Warn("reading generator cache", "error", err)
	}

	def, err := g.Next.Generate(ctx, unit)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(def); err == nil {
		if err := gencache.Write(key, data); err != nil {
			slog.Warn("writing generator cache", "error", err)
		}
	}
	return def, nil
}
