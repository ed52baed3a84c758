package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/school-library-lending/features/query/usagereport"
)

type reportFlags struct {
	topN   int
	asJSON bool
}

func newReportCommand(flags *rootFlags) *cobra.Command {
	opts := &reportFlags{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the usage report per batch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := loadSettings(flags)
			if err != nil {
				return err
			}

			ctx := cmd.Context()

			rt, err := openRuntime(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer func() { _ = rt.close() }()

			topN := cfg.TopN
			if cmd.Flags().Changed("top") {
				topN = opts.topN
			}

			report, err := rt.handlers.UsageReport.Handle(ctx, usagereport.BuildQuery(topN))
			if err != nil {
				return err
			}

			if opts.asJSON {
				return jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(cmd.OutOrStdout()).Encode(report)
			}

			return writeUsageReport(cmd.OutOrStdout(), report)
		},
	}

	cmd.Flags().IntVar(&opts.topN, "top", 0, "titles per batch, 0 for all (default from LIBRARY_REPORT_TOP_N)")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the report as JSON")

	return cmd
}

func writeUsageReport(out io.Writer, report usagereport.UsageReport) error {
	if report.Count == 0 {
		_, err := fmt.Fprintln(out, "No borrows recorded.")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	for _, class := range report.Classes {
		_, _ = fmt.Fprintf(w, "%s (%s)\t%d borrows\n", class.ClassName, class.ClassID, class.TotalBorrowed)
		for rank, usage := range class.TopBooks {
			_, _ = fmt.Fprintf(w, "  %d. %s\t%s\t%d\n", rank+1, usage.Title, usage.BookID, usage.BorrowCount)
		}
	}

	return w.Flush()
}
