package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBranchCountsValidate(t *testing.T) {
	tests := []struct {
		name    string
		counts  BranchCounts
		wantErr bool
	}{
		{name: "typical", counts: BranchCounts{Enrollments: 1000, Conversions: 100}},
		{name: "all converted", counts: BranchCounts{Enrollments: 10, Conversions: 10}},
		{name: "empty branch", counts: BranchCounts{}},
		{name: "conversions exceed enrollments", counts: BranchCounts{Enrollments: 5, Conversions: 6}, wantErr: true},
		{name: "negative enrollments", counts: BranchCounts{Enrollments: -1}, wantErr: true},
		{name: "negative conversions", counts: BranchCounts{Enrollments: 1, Conversions: -1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.counts.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidSummary)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestBranchCountsPosteriorShapeUsesUniformPrior(t *testing.T) {
	alpha, beta := BranchCounts{Enrollments: 100, Conversions: 0}.PosteriorShape()
	assert.Equal(t, 1.0, alpha)
	assert.Equal(t, 101.0, beta)
}

func TestSummaryTableValidateNamesOffendingBranch(t *testing.T) {
	table := SummaryTable{
		"control":   {Enrollments: 10, Conversions: 1},
		"treatment": {Enrollments: 10, Conversions: 11},
	}

	err := table.Validate()
	require.ErrorIs(t, err, ErrInvalidSummary)
	assert.Contains(t, err.Error(), `"treatment"`)
}

func TestSummaryTableValidateEnrolledRejectsEmptyBranch(t *testing.T) {
	table := SummaryTable{
		"control":   {Enrollments: 10, Conversions: 1},
		"treatment": {},
	}

	require.NoError(t, table.Validate())
	require.ErrorIs(t, table.ValidateEnrolled(), ErrInvalidSummary)
}

func TestSummaryTableBranchesSortedAndRestrict(t *testing.T) {
	table := SummaryTable{
		"b": {Enrollments: 2},
		"a": {Enrollments: 1},
		"c": {Enrollments: 3},
	}

	assert.Equal(t, []BranchID{"a", "b", "c"}, table.Branches())

	restricted := table.Restrict("c", "a", "missing")
	assert.Equal(t, SummaryTable{"a": {Enrollments: 1}, "c": {Enrollments: 3}}, restricted)
	assert.Len(t, table, 3)
}

func TestSampleTableRejectsMisalignedColumns(t *testing.T) {
	_, err := NewSampleTable(3, map[BranchID][]float64{
		"a": {0.1, 0.2, 0.3},
		"b": {0.1, 0.2},
	})
	require.ErrorIs(t, err, ErrSampleMismatch)

	_, err = NewSampleTable(0, nil)
	require.ErrorIs(t, err, ErrInvalidSampleCount)
}

func TestSampleTableBestOfRest(t *testing.T) {
	table, err := NewSampleTable(3, map[BranchID][]float64{
		"a": {0.1, 0.5, 0.3},
		"b": {0.4, 0.2, 0.1},
		"c": {0.2, 0.3, 0.6},
	})
	require.NoError(t, err)

	best, err := table.BestOfRest("a")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.4, 0.3, 0.6}, best)

	best, err = table.BestOfRest("c")
	require.NoError(t, err)
	assert.Equal(t, []float64{0.4, 0.5, 0.3}, best)

	column, ok := table.Column("a")
	require.True(t, ok)
	assert.Equal(t, []float64{0.1, 0.5, 0.3}, column, "reduction must not mutate columns")

	_, err = table.BestOfRest("missing")
	require.Error(t, err)
}

func TestSampleTableBestOfRestSingleColumn(t *testing.T) {
	table, err := NewSampleTable(1, map[BranchID][]float64{"a": {0.1}})
	require.NoError(t, err)

	_, err = table.BestOfRest("a")
	require.Error(t, err)
}

func TestQuantilesAt(t *testing.T) {
	q := Quantiles{{P: 0.05, Value: 0.1}, {P: 0.95, Value: 0.3}}

	v, ok := q.At(0.95)
	require.True(t, ok)
	assert.Equal(t, 0.3, v)

	_, ok = q.At(0.5)
	assert.False(t, ok)
}

func TestExperimentSetCountsAndMetricLookup(t *testing.T) {
	exp := Experiment{ID: "exp-1"}
	exp.SetCounts("signup", "control", BranchCounts{Enrollments: 10, Conversions: 1})
	exp.SetCounts("signup", "treatment", BranchCounts{Enrollments: 12, Conversions: 3})
	exp.SetCounts("retained", "control", BranchCounts{Enrollments: 10, Conversions: 4})

	require.Len(t, exp.Metrics, 2)

	metric, err := exp.Metric("signup")
	require.NoError(t, err)
	assert.Equal(t, SummaryTable{
		"control":   {Enrollments: 10, Conversions: 1},
		"treatment": {Enrollments: 12, Conversions: 3},
	}, metric.Counts)

	_, err = exp.Metric("missing")
	require.ErrorIs(t, err, ErrMetricNotFound)

	assert.Equal(t, DefaultControl, exp.ControlOrDefault())
}
