package cmd

import (
	"github.com/bnema/abstats/internal/application"
	"github.com/bnema/abstats/internal/domain"
	"github.com/spf13/cobra"
)

func newSummarizeCmd(app *app) *cobra.Command {
	var (
		experimentID string
		metric       string
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Show closed-form posterior summaries for each branch",
		RunE: func(cmd *cobra.Command, _ []string) error {
			individual, err := app.service(0).SummarizeExperiment(cmd.Context(), domain.ExperimentID(experimentID), metric)
			if err != nil {
				return err
			}

			return writeReport(cmd, app, application.SummaryReport(metric, individual), asJSON)
		},
	}

	cmd.Flags().StringVar(&experimentID, "experiment", "", "Experiment ID")
	cmd.Flags().StringVar(&metric, "metric", "", "Binary metric name")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output JSON")
	_ = cmd.MarkFlagRequired("experiment")
	_ = cmd.MarkFlagRequired("metric")

	return cmd
}
