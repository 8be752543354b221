package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/drift-labs/sdkdoc/internal/db"
	"github.com/drift-labs/sdkdoc/internal/sdkdoc"
)

var renderCmd = &cobra.Command{
	Use:   "render <manifest.yaml>",
	Short: "Render every documentation block listed in a page manifest",
	Long: `Resolve each block of each page against the configured SDK sources and
write one JSON file of tabs per page. Unresolved symbols become placeholder
tabs; they never fail the build.`,
	Example: `  sdkdoc render docs/sdk-pages.yaml
  sdkdoc render --html --out build/api docs/sdk-pages.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runRender,
}

var (
	renderOut         string
	renderHTML        bool
	renderConcurrency int
	renderNoReport    bool
)

func init() {
	renderCmd.Flags().StringVar(&renderOut, "out", "", "output directory (default from config)")
	renderCmd.Flags().BoolVar(&renderHTML, "html", false, "also write an HTML fragment per page")
	renderCmd.Flags().IntVar(&renderConcurrency, "concurrency", 0, "pages rendered in parallel (default from config)")
	renderCmd.Flags().BoolVar(&renderNoReport, "no-report", false, "skip recording the build report")
}

// pageOutput is the JSON written for one page.
type pageOutput struct {
	Path   string         `json:"path"`
	Blocks [][]sdkdoc.Tab `json:"blocks"`
}

func runRender(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()
	if cmd.Flags().Changed("out") {
		cfg.Render.OutDir = renderOut
	}
	if cmd.Flags().Changed("html") {
		cfg.Render.HTML = renderHTML
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Render.Concurrency = renderConcurrency
	}
	if renderNoReport {
		cfg.Report.Enabled = false
	}

	manifest, err := sdkdoc.LoadManifest(args[0])
	if err != nil {
		log.Fatalf("%v", err)
	}

	var (
		report *db.DB
		run    *db.Run
	)
	if cfg.Report.Enabled {
		report, err = db.New(cfg.Report.Path)
		if err != nil {
			log.Fatalf("failed to open report database: %v", err)
		}
		defer report.Close()
		if run, err = report.BeginRun(); err != nil {
			log.Fatalf("failed to start report: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	assembler := sdkdoc.NewFromConfig(cfg)
	var tabs, placeholders atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	if cfg.Render.Concurrency > 0 {
		g.SetLimit(cfg.Render.Concurrency)
	}
	for _, page := range manifest.Pages {
		g.Go(func() error {
			out := pageOutput{Path: page.Path, Blocks: make([][]sdkdoc.Tab, 0, len(page.Blocks))}
			for i, block := range page.Blocks {
				if err := ctx.Err(); err != nil {
					return err
				}
				blockTabs := assembler.Assemble(ctx, block)
				out.Blocks = append(out.Blocks, blockTabs)

				for _, tab := range blockTabs {
					tabs.Add(1)
					if tab.Placeholder {
						placeholders.Add(1)
					}
					if report == nil {
						continue
					}
					if err := report.InsertTab(&db.TabRecord{
						RunID:       run.ID,
						Page:        page.Path,
						Block:       i,
						Label:       tab.Label,
						Symbol:      symbolFor(block, tab.Label),
						Heading:     tab.Heading,
						Link:        tab.Link,
						Placeholder: tab.Placeholder,
						Reason:      tab.Reason,
					}); err != nil {
						slog.Warn("failed to record tab", "page", page.Path, "error", err)
					}
				}
			}
			return writePage(cfg.Render.OutDir, out, cfg.Render.HTML)
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("render failed: %v", err)
	}

	if report != nil {
		if err := report.FinishRun(run.ID, len(manifest.Pages)); err != nil {
			slog.Warn("failed to finish report", "error", err)
		}
	}

	fmt.Printf("rendered %d pages, %d tabs (%d placeholders) to %s\n",
		len(manifest.Pages), tabs.Load(), placeholders.Load(), cfg.Render.OutDir)
}

func writePage(outDir string, page pageOutput, withHTML bool) error {
	base := filepath.Join(outDir, filepath.FromSlash(strings.TrimSuffix(page.Path, "/")))
	if rel, err := filepath.Rel(outDir, base); err != nil || rel == "." || rel == ".." ||
		strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("page %q leaves the output directory", page.Path)
	}
	if err := os.MkdirAll(filepath.Dir(base), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	data, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", page.Path, err)
	}
	if err := os.WriteFile(base+".json", data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", page.Path, err)
	}

	if !withHTML {
		return nil
	}
	var b strings.Builder
	for _, block := range page.Blocks {
		b.WriteString("<section class=\"sdk-doc\">\n")
		b.WriteString(sdkdoc.HTML(block))
		b.WriteString("</section>\n")
	}
	if err := os.WriteFile(base+".html", []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", page.Path, err)
	}
	return nil
}

func symbolFor(req sdkdoc.Request, label string) string {
	var b *sdkdoc.BlockRequest
	switch label {
	case sdkdoc.LabelTypeScript:
		b = req.TypeScript
	case sdkdoc.LabelPython:
		b = req.Python
	case sdkdoc.LabelRust:
		b = req.Rust
	case sdkdoc.LabelAPI:
		b = req.API
	}
	if b == nil {
		return ""
	}
	if b.Owner != "" {
		return b.Owner + "." + b.Name
	}
	return b.Name
}
