package domain

// Posterior credible-interval probabilities reported for each branch.
var SummaryProbabilities = []float64{0.005, 0.05, 0.95, 0.995}

// Uplift quantile probabilities reported by comparisons.
var UpliftProbabilities = []float64{0.005, 0.025, 0.05, 0.5, 0.95, 0.975, 0.995}

type Quantile struct {
	P     float64 `json:"p"`
	Value float64 `json:"value"`
}

type Quantiles []Quantile

func (q Quantiles) At(p float64) (float64, bool) {
	for _, entry := range q {
		if entry.P == p {
			return entry.Value, true
		}
	}

	return 0, false
}

type BranchSummary struct {
	Mean      float64   `json:"mean"`
	Quantiles Quantiles `json:"quantiles"`
}

type UpliftStats struct {
	Exp       float64   `json:"exp"`
	Quantiles Quantiles `json:"quantiles"`
}

// ComparativeStats describes the distribution of a treatment's draws against a
// baseline's draws over the same rows.
type ComparativeStats struct {
	Metric         string      `json:"metric"`
	Samples        int         `json:"samples"`
	ProbWin        float64     `json:"prob_win"`
	ExpectedLoss   float64     `json:"expected_loss"`
	RelativeUplift UpliftStats `json:"relative_uplift"`
	AbsoluteUplift UpliftStats `json:"absolute_uplift"`
}

type TwoBranchAnalysis struct {
	Metric      string                     `json:"metric"`
	Control     BranchID                   `json:"control"`
	Treatment   BranchID                   `json:"treatment"`
	Comparative ComparativeStats           `json:"comparative"`
	Individual  map[BranchID]BranchSummary `json:"individual"`
}

type MultiBranchAnalysis struct {
	Metric      string                        `json:"metric"`
	Comparative map[BranchID]ComparativeStats `json:"comparative"`
	Individual  map[BranchID]BranchSummary    `json:"individual"`
}
