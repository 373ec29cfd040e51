package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "abstats",
		Short:         "abstats: Bayesian analysis of conversion experiments",
		Long:          "abstats records per-branch enrollment and conversion counts, then estimates each branch's conversion rate and the uplift between branches by sampling Beta posteriors.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug details to stderr")

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		app.configureLogging(cmd.ErrOrStderr(), verbose)
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newExperimentCmd(app),
		newSummarizeCmd(app),
		newCompareCmd(app),
	)

	return rootCmd
}
