// Package beta models per-branch conversion rates with Beta posteriors under a
// uniform prior.
package beta

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/bnema/abstats/internal/domain"
	"github.com/bnema/abstats/internal/ports"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	DefaultNumSamples  = 10000
	DefaultParallelism = 4
)

var errEmptyTable = errors.New("summary table has no branches")

// Model samples and summarizes Beta(c+1, n-c+1) posteriors.
//
// Each Sample call derives one PCG stream per branch from the root source, in
// sorted branch order, so a seeded root gives the same draws regardless of how
// branches are scheduled.
type Model struct {
	mu          sync.Mutex
	src         rand.Source
	parallelism int
}

var _ ports.PosteriorModel = (*Model)(nil)

type Option func(*Model)

func WithParallelism(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.parallelism = n
		}
	}
}

func NewModel(src rand.Source, opts ...Option) *Model {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}

	m := &Model{src: src, parallelism: DefaultParallelism}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// NewSeededModel is shorthand for a model over a PCG source seeded with seed.
func NewSeededModel(seed uint64, opts ...Option) *Model {
	return NewModel(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15), opts...)
}

func (m *Model) Sample(ctx context.Context, table domain.SummaryTable, numSamples int) (domain.SampleTable, error) {
	if numSamples <= 0 {
		return domain.SampleTable{}, fmt.Errorf("%w: got %d", domain.ErrInvalidSampleCount, numSamples)
	}
	if len(table) == 0 {
		return domain.SampleTable{}, fmt.Errorf("%w: %w", domain.ErrInvalidSummary, errEmptyTable)
	}
	if err := table.Validate(); err != nil {
		return domain.SampleTable{}, err
	}

	branches := table.Branches()
	streams := m.streams(len(branches))
	columns := make([][]float64, len(branches))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.parallelism)
	for i, id := range branches {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			alpha, beta := table[id].PosteriorShape()
			dist := distuv.Beta{Alpha: alpha, Beta: beta, Src: streams[i]}

			column := make([]float64, numSamples)
			for j := range column {
				column[j] = dist.Rand()
			}
			columns[i] = column
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.SampleTable{}, fmt.Errorf("sample posteriors: %w", err)
	}

	named := make(map[domain.BranchID][]float64, len(branches))
	for i, id := range branches {
		named[id] = columns[i]
	}

	return domain.NewSampleTable(numSamples, named)
}

// Summarize returns the observed conversion rate and the closed-form posterior
// credible-interval bounds for one branch.
func (m *Model) Summarize(counts domain.BranchCounts) (domain.BranchSummary, error) {
	return Summarize(counts)
}

func Summarize(counts domain.BranchCounts) (domain.BranchSummary, error) {
	if err := counts.Validate(); err != nil {
		return domain.BranchSummary{}, err
	}
	if counts.Enrollments == 0 {
		return domain.BranchSummary{}, fmt.Errorf("%w: mean is undefined without enrollments", domain.ErrInvalidSummary)
	}

	alpha, beta := counts.PosteriorShape()
	dist := distuv.Beta{Alpha: alpha, Beta: beta}

	quantiles := make(domain.Quantiles, len(domain.SummaryProbabilities))
	for i, p := range domain.SummaryProbabilities {
		quantiles[i] = domain.Quantile{P: p, Value: dist.Quantile(p)}
	}

	return domain.BranchSummary{
		Mean:      float64(counts.Conversions) / float64(counts.Enrollments),
		Quantiles: quantiles,
	}, nil
}

func (m *Model) streams(n int) []rand.Source {
	m.mu.Lock()
	defer m.mu.Unlock()

	streams := make([]rand.Source, n)
	for i := range streams {
		streams[i] = rand.NewPCG(m.src.Uint64(), m.src.Uint64())
	}

	return streams
}
