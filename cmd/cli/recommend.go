package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/smartshop/insights-service/internal/recommend"
)

var (
	recommendCategories []string
	recommendBrands     []string
	recommendMaxPrice   float64
	recommendOutput     string
)

// recommendCmd represents the recommend command
var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Generate personalized product recommendations",
	Long: `Score every catalog product against a preference profile and print the
top matches. Preferences are matched case- and diacritic-insensitively, so
"mlijeko" and "Mlijéko" are the same category.`,
	Example: `  insights recommend --catalog ./catalog.json --category dairy --brand Dukat
  insights recommend --catalog ./catalog.json --max-price 20 --output json`,
	RunE: runRecommend,
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().StringSliceVar(&recommendCategories, "category", nil, "Preferred categories (repeatable)")
	recommendCmd.Flags().StringSliceVar(&recommendBrands, "brand", nil, "Preferred brands (repeatable)")
	recommendCmd.Flags().Float64Var(&recommendMaxPrice, "max-price", 0, "Price ceiling (0 uses the default)")
	recommendCmd.Flags().StringVar(&recommendOutput, "output", "table", "Output format: table or json")
}

func runRecommend(cmd *cobra.Command, args []string) error {
	source, err := loadCatalog()
	if err != nil {
		return err
	}

	engine := recommend.NewScorer(source, recommend.DefaultConfig())
	results, err := engine.Recommend(context.Background(), recommend.Profile{
		Categories: recommendCategories,
		MaxPrice:   recommendMaxPrice,
		Brands:     recommendBrands,
	})
	if err != nil {
		return fmt.Errorf("recommendation failed: %w", err)
	}

	if recommendOutput == "json" {
		return printJSON(results)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRODUCT\tSCORE\tPRICE\tSTORE\tREASON")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%s\t%s\n", r.Name, r.Score, r.BestPrice, r.BestStore, r.Reason)
	}
	w.Flush()

	fmt.Printf("\n%d recommendation(s)\n", len(results))
	return nil
}
