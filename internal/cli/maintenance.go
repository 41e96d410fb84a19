package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aufaa4aaaaa/kasir-app/internal/app"
)

type resetOptions struct {
	Yes bool
}

// NewResetCommand clears cart and history and reinstalls the seed catalog.
func NewResetCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &resetOptions{}

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset all till data",
		Long:  "Clear the cart and the sales history and reinstall the seed catalog. Requires --yes.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opts.Yes {
				return fmt.Errorf("reset deletes every transaction; rerun with --yes to confirm")
			}
			return withApp(cmd.Context(), rootOpts, func(a *app.App) error {
				a.Service.Reset(cmd.Context())
				if rootOpts.Format == "json" {
					return writeJSON(cmd.OutOrStdout(), map[string]string{"status": "reset"})
				}
				fmt.Fprintln(cmd.OutOrStdout(), "data reset")
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "confirm the reset")

	return cmd
}

// NewSampleCommand adds the two demo sales when the history is empty.
func NewSampleCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sample",
		Short: "Add sample transactions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), rootOpts, func(a *app.App) error {
				added := a.Service.SeedSampleTransactions(cmd.Context())
				if rootOpts.Format == "json" {
					return writeJSON(cmd.OutOrStdout(), map[string]int{"added": added})
				}
				if added == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "history not empty; no sample transactions added")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d sample transactions added\n", added)
				return nil
			})
		},
	}
}
