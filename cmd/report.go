package cmd

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/drift-labs/sdkdoc/internal/db"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show placeholder tabs from the latest render run",
	Run:   runReport,
}

var reportJSON bool

func init() {
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "output as JSON")
}

func runReport(cmd *cobra.Command, args []string) {
	cfg := mustLoadConfig()

	database, err := db.New(cfg.Report.Path)
	if err != nil {
		log.Fatalf("failed to open report database: %v", err)
	}
	defer database.Close()

	run, err := database.LatestRun()
	if err != nil {
		log.Fatalf("failed to read report: %v", err)
	}
	if run == nil {
		fmt.Println("no render runs recorded")
		return
	}

	summary, err := database.Summary(run.ID)
	if err != nil {
		log.Fatalf("failed to summarize run: %v", err)
	}
	placeholders, err := database.Placeholders(run.ID)
	if err != nil {
		log.Fatalf("failed to list placeholders: %v", err)
	}

	if reportJSON {
		out, _ := json.MarshalIndent(struct {
			Run          *db.Run         `json:"run"`
			Summary      []db.LabelCount `json:"summary"`
			Placeholders []db.TabRecord  `json:"placeholders"`
		}{run, summary, placeholders}, "", "  ")
		fmt.Println(string(out))
		return
	}

	state := "incomplete"
	if run.FinishedAt != nil {
		state = fmt.Sprintf("%d pages", run.Pages)
	}
	fmt.Printf("run %d at %s [%s]\n", run.ID, run.StartedAt.Format("2006-01-02 15:04:05"), state)
	for _, c := range summary {
		fmt.Printf("  %-10s %d tabs, %d placeholders\n", c.Label, c.Tabs, c.Placeholders)
	}

	if len(placeholders) == 0 {
		fmt.Println("no placeholders")
		return
	}
	fmt.Println()
	for _, p := range placeholders {
		fmt.Printf("  %s#%d %s %s: %s\n", p.Page, p.Block, p.Label, p.Symbol, p.Reason)
	}
}
