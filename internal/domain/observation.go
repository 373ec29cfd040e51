package domain

// Observation is one enrolled subject: its branch and its value for each
// recorded metric.
type Observation struct {
	Branch BranchID
	Values map[string]float64
}
