package cli

import (
	"github.com/spf13/cobra"
)

// newReportCmd creates the report command
func newReportCmd() *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Browse reports saved on a server",
		Long:  "List and show reports saved on the server given by --server (default " + DefaultServerAddr + ").",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List saved reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			c, err := cliCtx.Client()
			if err != nil {
				return err
			}

			reports, err := c.ListReports(cmd.Context())
			if err != nil {
				return err
			}
			if cliCtx.OutputFormat == OutputJSON {
				return printJSON(cmd, reports)
			}
			return writeReportList(cmd.OutOrStdout(), reports)
		},
	}

	getCmd := &cobra.Command{
		Use:   "get ID",
		Short: "Show one saved report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			c, err := cliCtx.Client()
			if err != nil {
				return err
			}

			report, err := c.GetReport(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printReport(cmd, cliCtx.OutputFormat, *report)
		},
	}

	reportCmd.AddCommand(listCmd, getCmd)
	return reportCmd
}

//Personal.AI order the ending
