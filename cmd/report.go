package cmd

import (
	"encoding/json"
	"fmt"

	reportadapter "github.com/bnema/abstats/internal/adapters/render/report"
	"github.com/bnema/abstats/internal/application"
	"github.com/spf13/cobra"
)

func writeReport(cmd *cobra.Command, app *app, report application.Report, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	rendered, err := app.reportRenderer(report, reportadapter.RenderOptions{})
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
