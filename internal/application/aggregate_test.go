package application

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/abstats/internal/adapters/posterior/beta"
	"github.com/bnema/abstats/internal/adapters/uplift"
	"github.com/bnema/abstats/internal/domain"
	"github.com/bnema/abstats/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceSource []domain.Observation

func (s sliceSource) Observations(context.Context) ([]domain.Observation, error) {
	return s, nil
}

type failingSource struct{ err error }

func (s failingSource) Observations(context.Context) ([]domain.Observation, error) {
	return nil, s.err
}

func observation(branch domain.BranchID, converted float64) domain.Observation {
	return domain.Observation{Branch: branch, Values: map[string]float64{"converted": converted}}
}

func TestTabulateCountsRowsAndConversions(t *testing.T) {
	table, err := Tabulate([]domain.Observation{
		observation("control", 0),
		observation("control", 1),
		observation("control", 0),
		observation("treatment", 1),
		observation("treatment", 1),
	}, "converted")
	require.NoError(t, err)

	assert.Equal(t, domain.SummaryTable{
		"control":   {Enrollments: 3, Conversions: 1},
		"treatment": {Enrollments: 2, Conversions: 2},
	}, table)
}

func TestTabulateRejectsNonBinaryMetric(t *testing.T) {
	tests := []struct {
		name string
		rows []domain.Observation
	}{
		{name: "fractional value", rows: []domain.Observation{observation("control", 0.5)}},
		{name: "count value", rows: []domain.Observation{observation("control", 1), observation("control", 2)}},
		{name: "negative value", rows: []domain.Observation{observation("control", -1)}},
		{name: "missing value", rows: []domain.Observation{{Branch: "control", Values: map[string]float64{"other": 1}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Tabulate(tt.rows, "converted")
			require.ErrorIs(t, err, domain.ErrNonBinaryMetric)
		})
	}
}

func TestCompareTwoObservations(t *testing.T) {
	rows := sliceSource{}
	for i := 0; i < 200; i++ {
		rows = append(rows, observation("control", float64(boolToInt(i%10 == 0))))
		rows = append(rows, observation("treatment", float64(boolToInt(i%5 == 0))))
	}

	service := NewService(mocks.NewMockExperimentRepository(t), beta.NewSeededModel(4), uplift.NewComparator(), nil)
	result, err := service.CompareTwoObservations(context.Background(), rows, CompareTwoCommand{Metric: "converted", Control: "control", NumSamples: 5000})
	require.NoError(t, err)

	assert.Equal(t, "converted", result.Comparative.Metric)
	assert.InDelta(t, 0.1, result.Individual["control"].Mean, 1e-12)
	assert.InDelta(t, 0.2, result.Individual["treatment"].Mean, 1e-12)
}

func TestCompareManyObservationsRejectsNonBinaryBeforeSampling(t *testing.T) {
	model := &countingModel{PosteriorModel: beta.NewSeededModel(1)}
	service := NewService(mocks.NewMockExperimentRepository(t), model, uplift.NewComparator(), nil)

	_, err := service.CompareManyObservations(context.Background(), sliceSource{
		observation("control", 1),
		observation("a", 3),
	}, CompareManyCommand{Metric: "converted", NumSamples: 100})
	require.ErrorIs(t, err, domain.ErrNonBinaryMetric)
	assert.Zero(t, model.samples)
}

func TestCompareObservationsPropagatesSourceError(t *testing.T) {
	readErr := errors.New("disk on fire")
	service := NewService(mocks.NewMockExperimentRepository(t), beta.NewSeededModel(1), uplift.NewComparator(), nil)

	_, err := service.CompareTwoObservations(context.Background(), failingSource{err: readErr}, CompareTwoCommand{Metric: "converted", NumSamples: 10})
	require.ErrorIs(t, err, readErr)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
