package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/drift-labs/sdkdoc/internal/sdkdoc"
)

var showCmd = &cobra.Command{
	Use:   "show <typescript|python|rust|api|all> <name>",
	Short: "Resolve one symbol and print its tabs",
	Example: `  sdkdoc show rust DriftClient
  sdkdoc show rust get_user --kind method --owner DriftClient
  sdkdoc show python driftpy.drift_client.DriftClient.deposit --kind method
  sdkdoc show all deposit --kind method --owner DriftClient --format json`,
	Args: cobra.ExactArgs(2),
	Run:  runShow,
}

var (
	showKind    string
	showOwner   string
	showExample string
	showFormat  string
)

func init() {
	showCmd.Flags().StringVar(&showKind, "kind", "", "declared symbol kind (function, class, method, enum, ...)")
	showCmd.Flags().StringVar(&showOwner, "owner", "", "owning type, for methods")
	showCmd.Flags().StringVar(&showExample, "example", "", "usage example to attach")
	showCmd.Flags().StringVar(&showFormat, "format", "markdown", "output format: markdown, json or html")
}

func runShow(cmd *cobra.Command, args []string) {
	block := &sdkdoc.BlockRequest{
		Name:    args[1],
		Kind:    sdkdoc.Kind(showKind),
		Owner:   showOwner,
		Example: showExample,
	}

	var req sdkdoc.Request
	switch args[0] {
	case "typescript", "ts":
		req.TypeScript = block
	case "python", "py":
		req.Python = block
	case "rust", "rs":
		req.Rust = block
	case "api":
		req.API = block
	case "all":
		req = sdkdoc.Request{TypeScript: block, Python: block, Rust: block, API: block}
	default:
		log.Fatalf("unknown source %q: want typescript, python, rust, api or all", args[0])
	}

	tabs := sdkdoc.NewFromConfig(mustLoadConfig()).Assemble(context.Background(), req)

	switch showFormat {
	case "json":
		out, _ := json.MarshalIndent(tabs, "", "  ")
		fmt.Println(string(out))
	case "html":
		fmt.Print(sdkdoc.HTML(tabs))
	case "markdown", "md":
		fmt.Print(sdkdoc.Markdown(tabs))
	default:
		log.Fatalf("unknown format %q", showFormat)
	}
}
