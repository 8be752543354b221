package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/drift-labs/sdkdoc/internal/gencache"
)

var clearCacheCmd = &cobra.Command{
	Use:   "clear-cache",
	Short: "Clear the cached TypeScript definitions",
	Run:   runClearCache,
}

func runClearCache(cmd *cobra.Command, args []string) {
	if err := gencache.Clear(); err != nil {
		slog.Error("failed to clear cache", "error", err)
		os.Exit(1)
	}
	fmt.Printf("definition cache cleared (%s)\n", gencache.Dir())
}
