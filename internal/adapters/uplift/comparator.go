// Package uplift summarizes the uplift of one set of posterior draws over
// another.
package uplift

import (
	"fmt"
	"sort"

	"github.com/bnema/abstats/internal/domain"
	"github.com/bnema/abstats/internal/ports"
	"gonum.org/v1/gonum/stat"
)

type Comparator struct {
	probabilities []float64
}

var _ ports.Comparator = (*Comparator)(nil)

func NewComparator() *Comparator {
	return &Comparator{probabilities: domain.UpliftProbabilities}
}

// Compare treats treatment[i] and baseline[i] as one joint draw. Relative
// uplift is (t-b)/b, absolute uplift is t-b. Quantiles are linearly
// interpolated between order statistics.
func (c *Comparator) Compare(treatment, baseline []float64) (domain.ComparativeStats, error) {
	if len(treatment) == 0 || len(treatment) != len(baseline) {
		return domain.ComparativeStats{}, fmt.Errorf("%w: %d treatment rows, %d baseline rows", domain.ErrSampleMismatch, len(treatment), len(baseline))
	}

	n := len(treatment)
	relative := make([]float64, n)
	absolute := make([]float64, n)
	wins := 0
	loss := 0.0
	for i := range treatment {
		diff := treatment[i] - baseline[i]
		absolute[i] = diff
		relative[i] = diff / baseline[i]
		if diff > 0 {
			wins++
		} else {
			loss -= diff
		}
	}

	return domain.ComparativeStats{
		Samples:        n,
		ProbWin:        float64(wins) / float64(n),
		ExpectedLoss:   loss / float64(n),
		RelativeUplift: c.summarize(relative),
		AbsoluteUplift: c.summarize(absolute),
	}, nil
}

func (c *Comparator) summarize(values []float64) domain.UpliftStats {
	exp := stat.Mean(values, nil)
	sort.Float64s(values)

	quantiles := make(domain.Quantiles, len(c.probabilities))
	for i, p := range c.probabilities {
		quantiles[i] = domain.Quantile{P: p, Value: stat.Quantile(p, stat.LinInterp, values, nil)}
	}

	return domain.UpliftStats{Exp: exp, Quantiles: quantiles}
}
