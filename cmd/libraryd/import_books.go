package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/school-library-lending/shell/catalogimport"
)

func newImportBooksCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "import-books <file.csv>",
		Short: "Add books from a CSV file with the columns id,title,author,isbn,copies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadSettings(flags)
			if err != nil {
				return err
			}

			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = file.Close() }()

			ctx := cmd.Context()

			rt, err := openRuntime(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer func() { _ = rt.close() }()

			importer := catalogimport.NewImporter(rt.handlers.AddBook, catalogimport.WithLogger(logger))

			result, err := importer.Import(ctx, file)
			if flushErr := rt.flush(ctx); flushErr != nil {
				return flushErr
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, rowErr := range result.Errors {
				_, _ = fmt.Fprintf(out, "ERROR %v\n", rowErr)
			}
			_, _ = fmt.Fprintf(out, "Successfully imported: %d books\nErrors: %d\n", result.Imported, result.Failed)

			return nil
		},
	}
}
