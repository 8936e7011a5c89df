package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smartshop/insights-service/internal/export"
	"github.com/smartshop/insights-service/internal/optimizer"
)

var (
	exportRequestFile string
	exportOutputFile  string
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Optimize a basket and export the shopping list as a spreadsheet",
	Long: `Run basket optimization and write the resulting shopping list to an .xlsx
file, one row per fulfilled line plus totals and advisories. The request file has
the same shape as for the optimize command.`,
	Example: `  insights export --catalog ./catalog.json --request ./basket.json --out shopping-list.xlsx`,
	RunE:    runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportRequestFile, "request", "", "basket request JSON file (required)")
	exportCmd.Flags().StringVar(&exportOutputFile, "out", "shopping-list.xlsx", "Output .xlsx path")
	exportCmd.MarkFlagRequired("request")
}

func runExport(cmd *cobra.Command, args []string) error {
	source, err := loadCatalog()
	if err != nil {
		return err
	}

	request, err := loadBasketRequest(exportRequestFile)
	if err != nil {
		return err
	}

	engine := optimizer.NewBasketOptimizer(source, optimizer.DefaultConfig())
	result, err := engine.Optimize(context.Background(), request)
	if err != nil {
		return fmt.Errorf("optimization failed: %w", err)
	}

	if err := export.WriteBasketXLSX(result, exportOutputFile); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	logger.Info().
		Str("file", exportOutputFile).
		Int("items", len(result.Items)).
		Msg("Shopping list exported")
	return nil
}
