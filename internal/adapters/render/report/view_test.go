package report

import (
	"math"
	"testing"

	"github.com/bnema/abstats/internal/application"
	"github.com/bnema/abstats/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quantiles(values map[float64]float64, probabilities []float64) domain.Quantiles {
	out := make(domain.Quantiles, 0, len(probabilities))
	for _, p := range probabilities {
		out = append(out, domain.Quantile{P: p, Value: values[p]})
	}
	return out
}

func summaryQuantiles(lo, hi float64) domain.Quantiles {
	return quantiles(map[float64]float64{0.005: lo, 0.05: lo, 0.95: hi, 0.995: hi}, domain.SummaryProbabilities)
}

func TestRenderTwoBranchReport(t *testing.T) {
	uplift := quantiles(map[float64]float64{
		0.005: -0.05, 0.025: 0.01, 0.05: 0.03, 0.5: 0.2, 0.95: 0.4, 0.975: 0.45, 0.995: 0.55,
	}, domain.UpliftProbabilities)

	output, err := Render(application.Report{
		Kind:   application.ReportKindTwoBranch,
		Metric: "num_conversions",
		Individual: []application.IndividualRow{
			{Branch: "control", Mean: 0.1, Quantiles: summaryQuantiles(0.08, 0.12)},
			{Branch: "treatment", Mean: 0.12, Quantiles: summaryQuantiles(0.1, 0.14)},
		},
		Comparative: []application.ComparativeRow{{
			Branch:   "treatment",
			Baseline: "control",
			Stats: domain.ComparativeStats{
				ProbWin:        0.93,
				ExpectedLoss:   0.0004,
				RelativeUplift: domain.UpliftStats{Exp: 0.21, Quantiles: uplift},
			},
		}},
	}, RenderOptions{BarWidth: 10})

	require.NoError(t, err)
	assert.Contains(t, output, "treatment vs control")
	assert.Contains(t, output, "metric: num_conversions  branches: 2")
	assert.Contains(t, output, "0.5%")
	assert.Contains(t, output, "99.5%")
	assert.Contains(t, output, "0.1200")
	assert.Contains(t, output, "median +20.0%")
	assert.Contains(t, output, "90% CI [+3.0%, +40.0%]")
	assert.Contains(t, output, "[=========-]")
	assert.Contains(t, output, "93.0%")
}

func TestRenderMultiBranchReportUsesBestOfRestTitle(t *testing.T) {
	output, err := Render(application.Report{
		Kind:   application.ReportKindMultiBranch,
		Metric: "signup",
		Individual: []application.IndividualRow{
			{Branch: "a", Mean: 0.1, Quantiles: summaryQuantiles(0.08, 0.12)},
			{Branch: "b", Mean: 0.1, Quantiles: summaryQuantiles(0.08, 0.12)},
			{Branch: "c", Mean: 0.1, Quantiles: summaryQuantiles(0.08, 0.12)},
		},
		Comparative: []application.ComparativeRow{
			{Branch: "a", Baseline: application.BestOfRestBaseline},
			{Branch: "b", Baseline: application.BestOfRestBaseline},
			{Branch: "c", Baseline: application.BestOfRestBaseline},
		},
	}, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "each branch vs best of rest")
	assert.Contains(t, output, "branches: 3")
	assert.Contains(t, output, "b vs best of rest")
}

func TestRenderSummaryReportHasNoComparisons(t *testing.T) {
	output, err := Render(application.Report{
		Kind:   application.ReportKindSummary,
		Metric: "signup",
		Individual: []application.IndividualRow{
			{Branch: "control", Mean: 0.25, Quantiles: summaryQuantiles(0.2, 0.3)},
		},
	}, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "Conversion rate posteriors")
	assert.Contains(t, output, "0.2500")
	assert.NotContains(t, output, "P(win)")
}

func TestRenderEmptyReport(t *testing.T) {
	output, err := Render(application.Report{Kind: application.ReportKindSummary, Metric: "signup"}, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "No branches to report.")
}

func TestFormatUplift(t *testing.T) {
	assert.Equal(t, "+12.5%", formatUplift(0.125))
	assert.Equal(t, "-3.0%", formatUplift(-0.03))
	assert.Equal(t, "+Inf", formatUplift(math.Inf(1)))
}

func TestProbabilityLabel(t *testing.T) {
	assert.Equal(t, "0.5%", probabilityLabel(0.005))
	assert.Equal(t, "5%", probabilityLabel(0.05))
	assert.Equal(t, "99.5%", probabilityLabel(0.995))
}

func TestRenderProbabilityBarClamps(t *testing.T) {
	s := newStyles()
	assert.Equal(t, "[----]", renderProbabilityBar(-1, 4, s))
	assert.Equal(t, "[====]", renderProbabilityBar(2, 4, s))
	assert.Equal(t, "", renderProbabilityBar(0.5, 0, s))
}
