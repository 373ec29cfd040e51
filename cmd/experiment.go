package cmd

import (
	"fmt"
	"strings"

	"github.com/bnema/abstats/internal/application"
	"github.com/bnema/abstats/internal/domain"
	"github.com/spf13/cobra"
)

func newExperimentCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "experiment",
		Short: "Manage recorded experiments",
	}

	cmd.AddCommand(
		newExperimentListCmd(app),
		newExperimentSetCmd(app),
	)

	return cmd
}

func newExperimentListCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded experiments",
		RunE: func(cmd *cobra.Command, _ []string) error {
			experiments, err := app.service(0).ListExperiments(cmd.Context())
			if err != nil {
				return err
			}

			for _, experiment := range experiments {
				metrics := make([]string, 0, len(experiment.Metrics))
				for _, metric := range experiment.Metrics {
					metrics = append(metrics, metric.Name)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n",
					experiment.ID,
					experiment.Name,
					experiment.ControlOrDefault(),
					strings.Join(metrics, ","))
			}

			return nil
		},
	}
}

func newExperimentSetCmd(app *app) *cobra.Command {
	var (
		experimentID string
		name         string
		control      string
		metric       string
		branch       string
		enrollments  int64
		conversions  int64
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Record enrollment and conversion counts for one branch",
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := app.service(0).RecordCounts(cmd.Context(), application.RecordCountsCommand{
				Experiment: domain.ExperimentID(experimentID),
				Name:       name,
				Control:    domain.BranchID(control),
				Metric:     metric,
				Branch:     domain.BranchID(branch),
				Counts: domain.BranchCounts{
					Enrollments: enrollments,
					Conversions: conversions,
				},
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "recorded %s/%s branch %s: %d/%d\n",
				experimentID, metric, branch, conversions, enrollments)
			return err
		},
	}

	cmd.Flags().StringVar(&experimentID, "experiment", "", "Experiment ID")
	cmd.Flags().StringVar(&name, "name", "", "Experiment display name")
	cmd.Flags().StringVar(&control, "control", "", "Control branch (default \"control\")")
	cmd.Flags().StringVar(&metric, "metric", "", "Binary metric name")
	cmd.Flags().StringVar(&branch, "branch", "", "Branch ID")
	cmd.Flags().Int64Var(&enrollments, "enrollments", 0, "Number of enrolled subjects")
	cmd.Flags().Int64Var(&conversions, "conversions", 0, "Number of converted subjects")
	_ = cmd.MarkFlagRequired("experiment")
	_ = cmd.MarkFlagRequired("metric")
	_ = cmd.MarkFlagRequired("branch")
	_ = cmd.MarkFlagRequired("enrollments")
	_ = cmd.MarkFlagRequired("conversions")

	return cmd
}
