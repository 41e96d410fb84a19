package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aufaa4aaaaa/kasir-app/internal/app"
	"github.com/aufaa4aaaaa/kasir-app/internal/report"
)

type reportOptions struct {
	Out string
}

// NewReportCommand exports today's sales report.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &reportOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export the daily sales report",
		Long: `Export today's sales report.

Without --out the text report is written to stdout. When --out names a
directory the file is created inside it as laporan-YYYY-MM-DD.txt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), rootOpts, func(a *app.App) error {
				return runReport(cmd, rootOpts, opts, a)
			})
		},
	}

	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "output file or directory")

	return cmd
}

func runReport(cmd *cobra.Command, rootOpts *RootOptions, opts *reportOptions, a *app.App) error {
	day := a.Service.Today()

	if rootOpts.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), day)
	}

	if opts.Out == "" {
		return report.Export(cmd.OutOrStdout(), a.Formatter, day, a.Service.Engine().TaxRate())
	}

	path := opts.Out
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, a.Formatter.FileName(day.Date))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	if err := report.Export(f, a.Formatter, day, a.Service.Engine().TaxRate()); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close report file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "report written: %s\n", path)
	return nil
}
