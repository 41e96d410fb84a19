package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/aufaa4aaaaa/kasir-app/internal/app"
	"github.com/aufaa4aaaaa/kasir-app/pkg/config"
	"github.com/aufaa4aaaaa/kasir-app/pkg/logger"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	EnvFile  string
	Format   string // "text" | "json"
	LogLevel string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the kasirctl root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "kasirctl",
		Short: "kasirctl - till maintenance for the kasir POS",
		Long:  "Operate on the persisted till state: export the daily report, reset data, add sample sales and manage the mirror schema.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file loaded before reading KASIR_* settings")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "warn", "log level written to stderr")

	cmd.AddCommand(NewProductsCommand(opts))
	cmd.AddCommand(NewReportCommand(opts))
	cmd.AddCommand(NewResetCommand(opts))
	cmd.AddCommand(NewSampleCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// loadConfig reads the dotenv file, when present, and the KASIR_* environment.
func loadConfig(opts *RootOptions) (*config.Config, error) {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", opts.EnvFile, err)
		}
	}
	return config.Load()
}

func newLogger(opts *RootOptions) *logger.Logger {
	return logger.New(logger.Options{
		ServiceName: "kasirctl",
		Level:       logger.ParseLevel(opts.LogLevel),
		Output:      os.Stderr,
	})
}

// withApp opens the configured till, runs fn and flushes on the way out.
func withApp(ctx context.Context, opts *RootOptions, fn func(a *app.App) error) (err error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	a, err := app.New(ctx, cfg, newLogger(opts), app.Options{})
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := a.Close(ctx); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return fn(a)
}
