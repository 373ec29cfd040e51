package cmd

import (
	"context"

	csvsource "github.com/bnema/abstats/internal/adapters/dataset/csv"
	"github.com/bnema/abstats/internal/application"
	"github.com/bnema/abstats/internal/domain"
	"github.com/spf13/cobra"
)

type compareFlags struct {
	experimentID string
	dataPath     string
	branchColumn string
	metric       string
	samples      int
	seed         uint64
	asJSON       bool
	progress     bool
}

func newCompareCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare branch conversion rates by posterior sampling",
	}

	cmd.AddCommand(
		newCompareTwoCmd(app),
		newCompareManyCmd(app),
	)

	return cmd
}

func newCompareTwoCmd(app *app) *cobra.Command {
	var (
		flags   compareFlags
		control string
		focus   string
	)

	cmd := &cobra.Command{
		Use:   "two",
		Short: "Measure one treatment branch's uplift over the control",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := app.service(flags.seed)
			compare := application.CompareTwoCommand{
				Metric:     flags.metric,
				Control:    domain.BranchID(control),
				Focus:      domain.BranchID(focus),
				NumSamples: flags.numSamples(cmd, app),
			}

			var analysis domain.TwoBranchAnalysis
			err := runAnalysis(cmd, flags, compare.NumSamples, func(ctx context.Context) error {
				var err error
				if flags.dataPath != "" {
					analysis, err = svc.CompareTwoObservations(ctx, flags.source(app), compare)
				} else {
					analysis, err = svc.CompareTwoExperiment(ctx, domain.ExperimentID(flags.experimentID), compare)
				}
				return err
			})
			if err != nil {
				return err
			}

			return writeReport(cmd, app, application.TwoBranchReport(analysis), flags.asJSON)
		},
	}

	bindCompareFlags(cmd, &flags)
	cmd.Flags().StringVar(&control, "control", "", "Control branch (default: the experiment's control, else \"control\")")
	cmd.Flags().StringVar(&focus, "focus", "", "Treatment branch, required with more than two branches")

	return cmd
}

func newCompareManyCmd(app *app) *cobra.Command {
	var flags compareFlags

	cmd := &cobra.Command{
		Use:   "many",
		Short: "Compare every branch against the best of the others",
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc := app.service(flags.seed)
			compare := application.CompareManyCommand{
				Metric:     flags.metric,
				NumSamples: flags.numSamples(cmd, app),
			}

			var analysis domain.MultiBranchAnalysis
			err := runAnalysis(cmd, flags, compare.NumSamples, func(ctx context.Context) error {
				var err error
				if flags.dataPath != "" {
					analysis, err = svc.CompareManyObservations(ctx, flags.source(app), compare)
				} else {
					analysis, err = svc.CompareManyExperiment(ctx, domain.ExperimentID(flags.experimentID), compare)
				}
				return err
			})
			if err != nil {
				return err
			}

			return writeReport(cmd, app, application.MultiBranchReport(analysis), flags.asJSON)
		},
	}

	bindCompareFlags(cmd, &flags)

	return cmd
}

func bindCompareFlags(cmd *cobra.Command, flags *compareFlags) {
	cmd.Flags().StringVar(&flags.experimentID, "experiment", "", "Recorded experiment ID")
	cmd.Flags().StringVar(&flags.dataPath, "data", "", "CSV file with one row per subject")
	cmd.Flags().StringVar(&flags.branchColumn, "branch-column", "", "CSV column naming the branch (default \"branch\")")
	cmd.Flags().StringVar(&flags.metric, "metric", "", "Binary metric name")
	cmd.Flags().IntVar(&flags.samples, "samples", 0, "Number of posterior draws (default analysis.num_samples)")
	cmd.Flags().Uint64Var(&flags.seed, "seed", 0, "Random seed (default analysis.seed, 0 for random)")
	cmd.Flags().BoolVar(&flags.asJSON, "json", false, "Output JSON")
	cmd.Flags().BoolVar(&flags.progress, "progress", false, "Show a spinner on stderr while sampling")
	_ = cmd.MarkFlagRequired("metric")
	cmd.MarkFlagsOneRequired("experiment", "data")
	cmd.MarkFlagsMutuallyExclusive("experiment", "data")
}

// numSamples keeps an explicit --samples value as given so that zero or
// negative counts are rejected downstream.
func (f compareFlags) numSamples(cmd *cobra.Command, app *app) int {
	if cmd.Flags().Changed("samples") {
		return f.samples
	}
	return app.analysis.NumSamples
}

func (f compareFlags) source(app *app) *csvsource.Source {
	column := f.branchColumn
	if column == "" {
		column = app.branchColumn
	}
	return csvsource.NewSource(f.dataPath, column)
}

func runAnalysis(cmd *cobra.Command, flags compareFlags, numSamples int, run func(context.Context) error) error {
	if !flags.progress {
		return run(cmd.Context())
	}

	return runSamplingSpinner(cmd.Context(), cmd.ErrOrStderr(), numSamples, run)
}
