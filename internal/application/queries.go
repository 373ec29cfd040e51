package application

import (
	"sort"

	"github.com/bnema/abstats/internal/domain"
)

type ReportKind string

const (
	ReportKindTwoBranch   ReportKind = "two_branch"
	ReportKindMultiBranch ReportKind = "multi_branch"
	ReportKindSummary     ReportKind = "summary"
)

// BestOfRestBaseline labels comparisons made against the per-draw best of all
// other branches.
const BestOfRestBaseline = "best of rest"

type IndividualRow struct {
	Branch    domain.BranchID  `json:"branch"`
	Mean      float64          `json:"mean"`
	Quantiles domain.Quantiles `json:"quantiles"`
}

type ComparativeRow struct {
	Branch   domain.BranchID         `json:"branch"`
	Baseline string                  `json:"baseline"`
	Stats    domain.ComparativeStats `json:"stats"`
}

// Report is the tabular form of an analysis: one individual row per branch and
// one comparative row per comparison made.
type Report struct {
	Kind        ReportKind       `json:"kind"`
	Metric      string           `json:"metric"`
	Individual  []IndividualRow  `json:"individual"`
	Comparative []ComparativeRow `json:"comparative,omitempty"`
}

func TwoBranchReport(analysis domain.TwoBranchAnalysis) Report {
	return Report{
		Kind:   ReportKindTwoBranch,
		Metric: analysis.Metric,
		Individual: individualRows(analysis.Individual, []domain.BranchID{
			analysis.Control,
			analysis.Treatment,
		}),
		Comparative: []ComparativeRow{{
			Branch:   analysis.Treatment,
			Baseline: string(analysis.Control),
			Stats:    analysis.Comparative,
		}},
	}
}

func MultiBranchReport(analysis domain.MultiBranchAnalysis) Report {
	branches := sortedBranches(analysis.Individual)

	comparative := make([]ComparativeRow, 0, len(analysis.Comparative))
	for _, branch := range branches {
		stats, ok := analysis.Comparative[branch]
		if !ok {
			continue
		}
		comparative = append(comparative, ComparativeRow{
			Branch:   branch,
			Baseline: BestOfRestBaseline,
			Stats:    stats,
		})
	}

	return Report{
		Kind:        ReportKindMultiBranch,
		Metric:      analysis.Metric,
		Individual:  individualRows(analysis.Individual, branches),
		Comparative: comparative,
	}
}

func SummaryReport(metric string, individual map[domain.BranchID]domain.BranchSummary) Report {
	return Report{
		Kind:       ReportKindSummary,
		Metric:     metric,
		Individual: individualRows(individual, sortedBranches(individual)),
	}
}

func individualRows(individual map[domain.BranchID]domain.BranchSummary, order []domain.BranchID) []IndividualRow {
	rows := make([]IndividualRow, 0, len(order))
	for _, branch := range order {
		summary, ok := individual[branch]
		if !ok {
			continue
		}
		rows = append(rows, IndividualRow{
			Branch:    branch,
			Mean:      summary.Mean,
			Quantiles: summary.Quantiles,
		})
	}

	return rows
}

func sortedBranches(individual map[domain.BranchID]domain.BranchSummary) []domain.BranchID {
	branches := make([]domain.BranchID, 0, len(individual))
	for branch := range individual {
		branches = append(branches, branch)
	}
	sort.Slice(branches, func(i, j int) bool { return branches[i] < branches[j] })

	return branches
}
