package csv

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bnema/abstats/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadParsesBranchAndMetrics(t *testing.T) {
	input := strings.Join([]string{
		"branch, converted, retained",
		"control, 0, 1",
		"treatment, 1, true",
		"treatment, 0.5, ",
	}, "\n")

	observations, err := Read(context.Background(), strings.NewReader(input), DefaultBranchColumn)
	require.NoError(t, err)

	assert.Equal(t, []domain.Observation{
		{Branch: "control", Values: map[string]float64{"converted": 0, "retained": 1}},
		{Branch: "treatment", Values: map[string]float64{"converted": 1, "retained": 1}},
		{Branch: "treatment", Values: map[string]float64{"converted": 0.5}},
	}, observations)
}

func TestReadCustomBranchColumn(t *testing.T) {
	input := "converted,arm\n1,a\n0,b\n"

	observations, err := Read(context.Background(), strings.NewReader(input), "arm")
	require.NoError(t, err)
	require.Len(t, observations, 2)
	assert.Equal(t, domain.BranchID("a"), observations[0].Branch)
	assert.Equal(t, 1.0, observations[0].Values["converted"])
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "missing branch column", input: "arm,converted\na,1\n", wantErr: "branch column not found"},
		{name: "non numeric cell", input: "branch,converted\na,yes\n", wantErr: `column "converted"`},
		{name: "ragged row", input: "branch,converted\na,1,2\n", wantErr: "read dataset line 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(context.Background(), strings.NewReader(tt.input), DefaultBranchColumn)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestReadEmptyInput(t *testing.T) {
	observations, err := Read(context.Background(), strings.NewReader(""), DefaultBranchColumn)
	require.NoError(t, err)
	assert.Empty(t, observations)
}

func TestSourceReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("branch,converted\ncontrol,1\n"), 0o600))

	observations, err := NewSource(path, "").Observations(context.Background())
	require.NoError(t, err)
	require.Len(t, observations, 1)

	_, err = NewSource(filepath.Join(t.TempDir(), "missing.csv"), "").Observations(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "open dataset")
}
