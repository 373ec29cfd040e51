package application

import (
	"fmt"

	"github.com/bnema/abstats/internal/domain"
)

// Tabulate counts enrollments (rows) and conversions (sum of the metric) per
// branch. Every row must carry the metric as exactly 0 or 1.
func Tabulate(observations []domain.Observation, metric string) (domain.SummaryTable, error) {
	for i, obs := range observations {
		value, ok := obs.Values[metric]
		if !ok {
			return nil, fmt.Errorf("%w: row %d has no value for %q", domain.ErrNonBinaryMetric, i, metric)
		}
		if value != 0 && value != 1 {
			return nil, fmt.Errorf("%w: row %d has %q = %v", domain.ErrNonBinaryMetric, i, metric, value)
		}
	}

	table := domain.SummaryTable{}
	for _, obs := range observations {
		counts := table[obs.Branch]
		counts.Enrollments++
		if obs.Values[metric] == 1 {
			counts.Conversions++
		}
		table[obs.Branch] = counts
	}

	return table, nil
}
