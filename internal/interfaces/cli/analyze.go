package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/turtacn/InfringeCheck/internal/app"
	"github.com/turtacn/InfringeCheck/internal/domain/analysis"
	"github.com/turtacn/InfringeCheck/pkg/errors"
)

type analyzeOptions struct {
	patentID    string
	companyName string
	save        bool
}

func newAnalyzeCmd() *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a patent against a company's products",
		Long: `Run an infringement analysis for one patent and one company.

Without --server the pipeline runs in process using the configured reference
data and completion backend.  With --server the analysis runs on that server,
and --save stores the report there.`,
		Example: `  infringecheck analyze --patent US-RE49889-E1 --company "Walmart Inc."
  infringecheck --server http://localhost:8080 analyze --patent US-RE49889-E1 --company "Walmart Inc." --save`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			return runAnalyze(cmd, cliCtx, opts)
		},
	}

	cmd.Flags().StringVar(&opts.patentID, "patent", "", "patent publication number, e.g. US-RE49889-E1 (required)")
	cmd.Flags().StringVar(&opts.companyName, "company", "", "company name, case-insensitive (required)")
	cmd.Flags().BoolVar(&opts.save, "save", false, "save the report on the server (requires --server)")
	_ = cmd.MarkFlagRequired("patent")
	_ = cmd.MarkFlagRequired("company")
	return cmd
}

func runAnalyze(cmd *cobra.Command, cliCtx *CLIContext, opts *analyzeOptions) error {
	if opts.save && !cliCtx.Remote() {
		return errors.NewValidationError("--save requires --server")
	}

	var (
		result analysis.Result
		err    error
	)
	if cliCtx.Remote() {
		result, err = analyzeRemote(cmd.Context(), cliCtx, opts)
	} else {
		result, err = analyzeLocal(cmd.Context(), cliCtx, opts)
	}
	if err != nil {
		return err
	}

	if err := printReport(cmd, cliCtx.OutputFormat, result); err != nil {
		return err
	}
	if opts.save && cliCtx.OutputFormat != OutputJSON {
		PrintSuccess(cmd, "report "+result.AnalysisID+" saved")
	}
	return nil
}

func analyzeLocal(ctx context.Context, cliCtx *CLIContext, opts *analyzeOptions) (analysis.Result, error) {
	a, err := app.New(ctx, cliCtx.Config, cliCtx.Logger, cliCtx.appOptions...)
	if err != nil {
		return analysis.Result{}, err
	}
	return a.Analyzer.Analyze(ctx, opts.patentID, opts.companyName)
}

func analyzeRemote(ctx context.Context, cliCtx *CLIContext, opts *analyzeOptions) (analysis.Result, error) {
	c, err := cliCtx.Client()
	if err != nil {
		return analysis.Result{}, err
	}

	report, err := c.Analyze(ctx, opts.patentID, opts.companyName)
	if err != nil {
		return analysis.Result{}, err
	}
	if opts.save {
		if _, err := c.SaveReport(ctx, *report); err != nil {
			return analysis.Result{}, err
		}
	}
	return *report, nil
}

//Personal.AI order the ending
