package application

import "github.com/bnema/abstats/internal/domain"

// DefaultMetricLabel names comparative results built straight from a summary
// table, where no metric column name is known.
const DefaultMetricLabel = "num_conversions"

type CompareTwoCommand struct {
	Metric     string
	Control    domain.BranchID
	Focus      domain.BranchID
	NumSamples int
}

type CompareManyCommand struct {
	Metric     string
	NumSamples int
}

type RecordCountsCommand struct {
	Experiment domain.ExperimentID
	Name       string
	Control    domain.BranchID
	Metric     string
	Branch     domain.BranchID
	Counts     domain.BranchCounts
}

func metricLabel(metric string) string {
	if metric == "" {
		return DefaultMetricLabel
	}
	return metric
}
