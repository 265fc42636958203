package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/turtacn/InfringeCheck/internal/app"
	"github.com/turtacn/InfringeCheck/internal/infrastructure/refdata"
)

// DataCheckResult is printed by "data check".
type DataCheckResult struct {
	Source    string `json:"source"`
	Patents   int    `json:"patents"`
	Companies int    `json:"companies"`
}

func newDataCmd() *cobra.Command {
	dataCmd := &cobra.Command{
		Use:   "data",
		Short: "Inspect the reference data",
	}

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Load the reference data and print record counts",
		Long:  "Load both reference documents exactly as the server does at startup and fail the same way it would.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			cfg := cliCtx.Config.RefData
			logger := cliCtx.Logger.Named("refdata")

			src, checkers, err := app.NewSource(cfg, logger)
			if err != nil {
				return err
			}
			for _, c := range checkers {
				if err := c.Check(cmd.Context()); err != nil {
					return fmt.Errorf("%s: %w", c.Name(), err)
				}
			}

			catalog, err := refdata.NewLoader(src, cfg.PatentsFile, cfg.CompaniesFile, logger).LoadCatalog(cmd.Context())
			if err != nil {
				return err
			}

			patents, companies := catalog.Counts()
			result := DataCheckResult{Source: cfg.Source, Patents: patents, Companies: companies}
			if cliCtx.OutputFormat == OutputJSON {
				return printJSON(cmd, result)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Source:    %s\nPatents:   %d\nCompanies: %d\n", result.Source, result.Patents, result.Companies)
			PrintSuccess(cmd, "reference data loaded")
			return nil
		},
	}

	dataCmd.AddCommand(checkCmd)
	return dataCmd
}

//Personal.AI order the ending
