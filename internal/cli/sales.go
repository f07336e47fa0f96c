package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSalesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sales",
		Short: "List recorded sales",
		RunE: func(cmd *cobra.Command, args []string) error {
			bootstrap(cmd.Context())
			if !app.State.Snapshot().IsAuthenticated() {
				return fmt.Errorf("not logged in; run 'invdash login' first")
			}

			sales, err := app.API.ListSales(cmd.Context())
			if err != nil {
				return fmt.Errorf("list sales: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(sales) == 0 {
				fmt.Fprintln(out, "No sales found.")
				return nil
			}

			fmt.Fprintf(out, "%-6s  %-30s  %5s  %10s  %10s  %s\n", "ID", "PRODUCT", "QTY", "PRICE", "TOTAL", "WHEN")
			for _, s := range sales {
				fmt.Fprintf(out, "%-6d  %-30s  %5d  %10.2f  %10.2f  %s\n",
					s.ID, s.ProductName, s.Quantity, s.PriceAtSale, s.TotalPrice,
					s.Timestamp.Format("2006-01-02 15:04"))
			}
			return nil
		},
	}
}
