package cli

import (
	"github.com/spf13/cobra"

	"github.com/aufaa4aaaaa/kasir-app/internal/app"
)

// NewProductsCommand lists the catalog with low-stock markers.
func NewProductsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "List the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), rootOpts, func(a *app.App) error {
				products := a.Service.Products()
				if rootOpts.Format == "json" {
					return writeJSON(cmd.OutOrStdout(), products)
				}
				return writeProducts(cmd.OutOrStdout(), a.Formatter, products)
			})
		},
	}
}
