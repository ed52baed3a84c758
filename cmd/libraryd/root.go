package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/school-library-lending/shell/config"
)

type rootFlags struct {
	envFile string
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "libraryd",
		Short:         "School library lending service",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	root.AddCommand(
		newServeCommand(flags),
		newImportBooksCommand(flags),
		newReportCommand(flags),
	)

	return root
}

// loadSettings reads the configuration and builds the process logger from it.
func loadSettings(flags *rootFlags) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(flags.envFile)
	if err != nil {
		return config.Config{}, nil, err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	return cfg, logger, nil
}
