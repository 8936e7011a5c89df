package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/smartshop/insights-service/internal/forecast"
)

var forecastOutput string

// forecastCmd represents the forecast command
var forecastCmd = &cobra.Command{
	Use:   "forecast <product-id> [product-id...]",
	Short: "Predict price trends for products",
	Long: `Predict the price trend for one or more products from their price history
in the catalog file. Products without enough history are silently excluded,
matching the /predict-prices API behavior.`,
	Example: `  insights forecast milk-1l bread-500g --catalog ./catalog.json
  insights forecast milk-1l --catalog ./catalog.json --output json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runForecast,
}

func init() {
	rootCmd.AddCommand(forecastCmd)

	forecastCmd.Flags().StringVar(&forecastOutput, "output", "table", "Output format: table or json")
}

func runForecast(cmd *cobra.Command, args []string) error {
	source, err := loadCatalog()
	if err != nil {
		return err
	}

	engine := forecast.NewForecaster(source, forecast.DefaultConfig())
	predictions, err := engine.Forecast(context.Background(), args)
	if err != nil {
		return fmt.Errorf("forecast failed: %w", err)
	}

	if forecastOutput == "json" {
		return printJSON(predictions)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRODUCT\tPREDICTED\tCONFIDENCE\tTREND\tADVICE")
	for _, p := range predictions {
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%s\t%s\n",
			p.ProductID, p.PredictedPrice, p.Confidence, p.Trend, p.BestBuyTime)
	}
	w.Flush()

	if len(predictions) < len(args) {
		fmt.Printf("\n%d of %d products had insufficient history\n", len(args)-len(predictions), len(args))
	}
	return nil
}
