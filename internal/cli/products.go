package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newProductsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "List products",
		RunE: func(cmd *cobra.Command, args []string) error {
			bootstrap(cmd.Context())
			if !app.State.Snapshot().IsAuthenticated() {
				return fmt.Errorf("not logged in; run 'invdash login' first")
			}

			products, err := app.API.ListProducts(cmd.Context())
			if err != nil {
				return fmt.Errorf("list products: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(products) == 0 {
				fmt.Fprintln(out, "No products found.")
				return nil
			}

			fmt.Fprintf(out, "%-6s  %-30s  %-15s  %-15s  %10s  %6s\n", "ID", "NAME", "BRAND", "CATEGORY", "PRICE", "STOCK")
			for _, p := range products {
				fmt.Fprintf(out, "%-6d  %-30s  %-15s  %-15s  %10.2f  %6d\n",
					p.ID, p.Name, p.Brand, p.Category, p.Price, p.StockQuantity)
			}
			return nil
		},
	}
}
