package main

import (
	"fmt"

	"github.com/Gonzalodlm/proyecto-L-v2/internal/domain"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/allocation"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/catalog"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/comparison"
	diversificationhandlers "github.com/Gonzalodlm/proyecto-L-v2/internal/modules/diversification/handlers"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/performance"
	performancehandlers "github.com/Gonzalodlm/proyecto-L-v2/internal/modules/performance/handlers"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/questionnaire"
	"github.com/Gonzalodlm/proyecto-L-v2/internal/modules/rebalancing"
	rebalancinghandlers "github.com/Gonzalodlm/proyecto-L-v2/internal/modules/rebalancing/handlers"
	"github.com/Gonzalodlm/proyecto-L-v2/pkg/embedded"
	"github.com/spf13/cobra"
)

func scoreCmd(a *app, simulate bool) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a questionnaire and classify the investor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw questionnaire.RawAnswers
			if err := readInput(cmd, file, &raw); err != nil {
				return err
			}
			c, err := a.engine()
			if err != nil {
				return err
			}

			score := c.Profiler.ScoreRaw
			if simulate {
				score = c.Profiler.SimulateRaw
			}
			profile, err := score(raw)
			if err != nil {
				return err
			}
			return a.writeOutput(cmd, profile)
		},
	}
	if simulate {
		cmd.Use = "simulate"
		cmd.Short = "Score a hypothetical questionnaire without treating it as a submission"
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "answers document (JSON or YAML, - for stdin)")
	return cmd
}

func composeCmd(a *app) *cobra.Command {
	var (
		file      string
		bucket    int
		normalize bool
	)
	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Build an allocation from a model portfolio and optional overrides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var req allocation.ComposeRequest
			if file != "" {
				if err := readInput(cmd, file, &req); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("bucket") {
				b := domain.RiskBucket(bucket)
				req.Bucket = &b
			}
			if normalize {
				req.Normalize = true
			}

			c, err := a.engine()
			if err != nil {
				return err
			}
			result, err := c.Composer.Compose(req)
			if err != nil {
				return err
			}
			return a.writeOutput(cmd, result)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "compose request document (JSON or YAML, - for stdin)")
	cmd.Flags().IntVarP(&bucket, "bucket", "b", 0, "risk bucket whose model portfolio is the base (0-4)")
	cmd.Flags().BoolVar(&normalize, "normalize", false, "rescale the result to sum to one")
	return cmd
}

func analyzeCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze the diversification of an allocation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var req diversificationhandlers.AnalyzeRequest
			if err := readInput(cmd, file, &req); err != nil {
				return err
			}
			c, err := a.engine()
			if err != nil {
				return err
			}
			report, err := c.Analyzer.Analyze(req.Allocation)
			if err != nil {
				return err
			}
			return a.writeOutput(cmd, report)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "document with an allocation field (JSON or YAML, - for stdin)")
	return cmd
}

func rebalanceCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "rebalance",
		Short: "Suggest trades that bring a current allocation back to its target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var req rebalancinghandlers.SuggestRequest
			if err := readInput(cmd, file, &req); err != nil {
				return err
			}
			if req.Current == nil || req.Target == nil {
				return fmt.Errorf("current and target allocations are required")
			}
			c, err := a.engine()
			if err != nil {
				return err
			}
			plan, err := c.Advisor.Suggest(req.Current, req.Target, rebalancing.Options{
				Threshold:      req.Threshold,
				PortfolioValue: req.PortfolioValue,
				Costs:          req.Costs,
			})
			if err != nil {
				return err
			}
			return a.writeOutput(cmd, plan)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "rebalance request document (JSON or YAML, - for stdin)")
	return cmd
}

func metricsCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Compute performance metrics of a value series",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var req performancehandlers.MetricsRequest
			if err := readInput(cmd, file, &req); err != nil {
				return err
			}
			ppy, err := performance.ResolvePeriodsPerYear(req.Interval, req.PeriodsPerYear)
			if err != nil {
				return err
			}
			c, err := a.engine()
			if err != nil {
				return err
			}
			m, err := c.Calculator.Compute(req.Values, ppy, req.RiskFreeRate)
			if err != nil {
				return err
			}
			return a.writeOutput(cmd, m)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "series document (JSON or YAML, - for stdin)")
	return cmd
}

func compareCmd(a *app) *cobra.Command {
	var (
		file   string
		rankBy string
	)
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Rank candidate portfolios by a chosen metric",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var req performancehandlers.CompareRequest
			if err := readInput(cmd, file, &req); err != nil {
				return err
			}
			if rankBy != "" {
				req.RankBy = comparison.RankKey(rankBy)
			}
			ppy, err := performance.ResolvePeriodsPerYear(req.Interval, req.PeriodsPerYear)
			if err != nil {
				return err
			}
			c, err := a.engine()
			if err != nil {
				return err
			}
			result, err := c.Comparator.Compare(req.Candidates, comparison.Options{
				RankBy:         req.RankBy,
				PeriodsPerYear: ppy,
				RiskFreeRate:   req.RiskFreeRate,
			})
			if err != nil {
				return err
			}
			return a.writeOutput(cmd, result)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "comparison request document (JSON or YAML, - for stdin)")
	cmd.Flags().StringVar(&rankBy, "rank-by", "", "ranking metric, overrides the document")
	return cmd
}

func catalogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and validate engine catalogs",
	}

	validate := &cobra.Command{
		Use:   "validate [path]",
		Short: "Check that a catalog file builds into consistent tables",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.catalogPath
			if len(args) == 1 {
				path = args[0]
			}
			tables, err := catalog.LoadTables(path, a.sumTolerance)
			if err != nil {
				return err
			}
			source := path
			if source == "" {
				source = "embedded"
			}
			return a.writeOutput(cmd, map[string]interface{}{
				"source":        source,
				"valid":         true,
				"instruments":   tables.Universe.Size(),
				"max_score":     tables.Weights.MaxScore(),
				"sum_tolerance": tables.SumTolerance,
			})
		},
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the catalog embedded in this binary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cmd.OutOrStdout().Write(embedded.Catalog)
			return err
		},
	}

	cmd.AddCommand(validate, show)
	return cmd
}
