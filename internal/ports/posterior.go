package ports

import (
	"context"

	"github.com/bnema/abstats/internal/domain"
)

// PosteriorModel draws and summarizes per-branch posterior conversion rates.
type PosteriorModel interface {
	Sample(ctx context.Context, table domain.SummaryTable, numSamples int) (domain.SampleTable, error)
	Summarize(counts domain.BranchCounts) (domain.BranchSummary, error)
}

// Comparator summarizes row-aligned treatment draws against baseline draws.
type Comparator interface {
	Compare(treatment, baseline []float64) (domain.ComparativeStats, error)
}
