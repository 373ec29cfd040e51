package uplift

import (
	"testing"

	"github.com/bnema/abstats/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareConstantUplift(t *testing.T) {
	stats, err := NewComparator().Compare(
		[]float64{0.2, 0.2, 0.2, 0.2},
		[]float64{0.1, 0.1, 0.1, 0.1},
	)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Samples)
	assert.Equal(t, 1.0, stats.ProbWin)
	assert.Equal(t, 0.0, stats.ExpectedLoss)
	assert.InDelta(t, 1.0, stats.RelativeUplift.Exp, 1e-12)
	assert.InDelta(t, 0.1, stats.AbsoluteUplift.Exp, 1e-12)

	require.Len(t, stats.RelativeUplift.Quantiles, len(domain.UpliftProbabilities))
	for _, q := range stats.RelativeUplift.Quantiles {
		assert.InDelta(t, 1.0, q.Value, 1e-12, "p=%v", q.P)
	}
	assert.Empty(t, stats.Metric, "metric label is attached by the caller")
}

func TestCompareMixedOutcomes(t *testing.T) {
	treatment := []float64{0.1, 0.3}
	baseline := []float64{0.2, 0.2}

	stats, err := NewComparator().Compare(treatment, baseline)
	require.NoError(t, err)

	assert.Equal(t, 0.5, stats.ProbWin)
	assert.InDelta(t, 0.05, stats.ExpectedLoss, 1e-12)
	assert.InDelta(t, 0.0, stats.RelativeUplift.Exp, 1e-12)

	low, ok := stats.RelativeUplift.Quantiles.At(0.005)
	require.True(t, ok)
	high, ok := stats.RelativeUplift.Quantiles.At(0.995)
	require.True(t, ok)
	assert.Less(t, low, high)
	assert.GreaterOrEqual(t, low, -0.5)
	assert.LessOrEqual(t, high, 0.5)

	assert.Equal(t, []float64{0.1, 0.3}, treatment, "inputs must not be reordered")
}

func TestCompareQuantilesAreOrdered(t *testing.T) {
	treatment := []float64{0.12, 0.08, 0.15, 0.11, 0.09, 0.14, 0.1, 0.13}
	baseline := []float64{0.1, 0.11, 0.09, 0.1, 0.12, 0.1, 0.1, 0.11}

	stats, err := NewComparator().Compare(treatment, baseline)
	require.NoError(t, err)

	for _, uplift := range []domain.UpliftStats{stats.RelativeUplift, stats.AbsoluteUplift} {
		for i := 1; i < len(uplift.Quantiles); i++ {
			assert.LessOrEqual(t, uplift.Quantiles[i-1].Value, uplift.Quantiles[i].Value)
		}
	}
}

func TestCompareRejectsMisalignedSamples(t *testing.T) {
	_, err := NewComparator().Compare([]float64{0.1}, []float64{0.1, 0.2})
	require.ErrorIs(t, err, domain.ErrSampleMismatch)

	_, err = NewComparator().Compare(nil, nil)
	require.ErrorIs(t, err, domain.ErrSampleMismatch)
}
