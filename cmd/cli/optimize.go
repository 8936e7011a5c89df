package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/smartshop/insights-service/internal/optimizer"
)

var (
	optimizeRequestFile string
	optimizeOutput      string
)

// optimizeCmd represents the optimize command
var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Optimize a shopping basket against the catalog",
	Long: `Optimize a shopping basket by routing each requested product to the store
with the lowest effective price. The request file is a JSON document with the same
shape as the /optimize-basket API body: items, optional budget and preferred stores.`,
	Example: `  insights optimize --catalog ./catalog.json --request ./basket.json
  insights optimize --catalog ./catalog.json --request ./basket.json --output json`,
	RunE: runOptimize,
}

func init() {
	rootCmd.AddCommand(optimizeCmd)

	optimizeCmd.Flags().StringVar(&optimizeRequestFile, "request", "", "basket request JSON file (required)")
	optimizeCmd.Flags().StringVar(&optimizeOutput, "output", "table", "Output format: table or json")
	optimizeCmd.MarkFlagRequired("request")
}

// basketRequestFile mirrors the /optimize-basket API body.
type basketRequestFile struct {
	Items []struct {
		ProductID string   `json:"product_id"`
		Quantity  int      `json:"quantity"`
		MaxPrice  *float64 `json:"max_price"`
	} `json:"items"`
	Budget          *float64 `json:"budget"`
	PreferredStores []string `json:"preferred_stores"`
}

func loadBasketRequest(path string) (*optimizer.BasketRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read request file: %w", err)
	}

	var file basketRequestFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse request file: %w", err)
	}

	items := make([]optimizer.LineItem, len(file.Items))
	for i, item := range file.Items {
		items[i] = optimizer.LineItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			MaxPrice:  item.MaxPrice,
		}
	}

	return &optimizer.BasketRequest{
		Items:           items,
		Budget:          file.Budget,
		PreferredStores: file.PreferredStores,
	}, nil
}

func runOptimize(cmd *cobra.Command, args []string) error {
	source, err := loadCatalog()
	if err != nil {
		return err
	}

	request, err := loadBasketRequest(optimizeRequestFile)
	if err != nil {
		return err
	}

	engine := optimizer.NewBasketOptimizer(source, optimizer.DefaultConfig())
	result, err := engine.Optimize(context.Background(), request)
	if err != nil {
		return fmt.Errorf("optimization failed: %w", err)
	}

	if optimizeOutput == "json" {
		return printJSON(result)
	}
	printBasketTable(result)
	return nil
}

func printBasketTable(result *optimizer.BasketResult) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRODUCT\tQTY\tSTORE\tUNIT\tTOTAL\tSAVINGS")
	for _, item := range result.Items {
		fmt.Fprintf(w, "%s\t%d\t%s\t%.2f\t%.2f\t%.2f\n",
			item.ProductName, item.Quantity, item.Store, item.UnitPrice, item.LineTotal, item.Savings)
	}
	w.Flush()

	fmt.Printf("\nTotal cost: %.2f\nTotal savings: %.2f\n", result.TotalCost, result.TotalSavings)
	if len(result.Recommendations) > 0 {
		fmt.Println("\nRecommendations:")
		for _, rec := range result.Recommendations {
			fmt.Printf("  - %s\n", rec)
		}
	}
}

func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
