package cmd

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/drift-labs/sdkdoc/internal/artifact"
	"github.com/drift-labs/sdkdoc/internal/rustdoc"
)

var precomputeCmd = &cobra.Command{
	Use:   "precompute <rustdoc.json[.zst]>",
	Short: "Slim a full rustdoc dump to the root crate and write its method map",
	Long: `Reduce a rustdoc JSON dump to the items of the documented crate and
derive the method map the resolver serves method lookups from. Outputs ending
in .zst are zstd-compressed.`,
	Example: `  sdkdoc precompute target/doc/drift_rs.json
  sdkdoc precompute --out public/sdk/rust/drift_rs.json.zst target/doc/drift_rs.json`,
	Args: cobra.ExactArgs(1),
	Run:  runPrecompute,
}

var (
	precomputeOut     string
	precomputeMethods string
)

func init() {
	precomputeCmd.Flags().StringVar(&precomputeOut, "out", "", "slim dump path (default: rust.dump from config)")
	precomputeCmd.Flags().StringVar(&precomputeMethods, "methods", "", "method map path (default: derived from --out, else rust.methods)")
}

func runPrecompute(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()

	out, methods := cfg.Rust.Dump, cfg.Rust.Methods
	if precomputeOut != "" {
		out = precomputeOut
		methods = methodsPath(out)
	}
	if precomputeMethods != "" {
		methods = precomputeMethods
	}

	data, err := artifact.ReadAll(args[0])
	if err != nil {
		log.Fatalf("failed to read dump: %v", err)
	}
	result, err := rustdoc.Precompute(data)
	if err != nil {
		log.Fatalf("precompute failed: %v", err)
	}

	if err := artifact.Write(out, result.Slim); err != nil {
		log.Fatalf("failed to write slim dump: %v", err)
	}
	if err := artifact.WriteJSON(methods, result.Methods); err != nil {
		log.Fatalf("failed to write method map: %v", err)
	}

	fmt.Printf("kept %d of %d items -> %s\n", result.Kept, result.Total, out)
	fmt.Printf("%d methods -> %s\n", len(result.Methods), methods)
}

// methodsPath derives the method map path from a dump path:
// drift_rs.json.zst -> drift_rs.methods.json.zst.
func methodsPath(dump string) string {
	for _, ext := range []string{".json.zst", ".json"} {
		if base, ok := strings.CutSuffix(dump, ext); ok {
			return base + ".methods" + ext
		}
	}
	return dump + ".methods.json"
}
