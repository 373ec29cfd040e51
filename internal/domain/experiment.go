package domain

import "fmt"

type ExperimentID string

const DefaultControl BranchID = "control"

type Metric struct {
	Name   string
	Counts SummaryTable
}

type Experiment struct {
	ID      ExperimentID
	Name    string
	Control BranchID
	Metrics []Metric
}

func (e Experiment) Metric(name string) (Metric, error) {
	for _, metric := range e.Metrics {
		if metric.Name == name {
			return metric, nil
		}
	}

	return Metric{}, fmt.Errorf("%w: %q in experiment %q", ErrMetricNotFound, name, e.ID)
}

// SetCounts records counts for one branch of a metric, creating the metric
// when it does not exist yet.
func (e *Experiment) SetCounts(metric string, branch BranchID, counts BranchCounts) {
	for i := range e.Metrics {
		if e.Metrics[i].Name != metric {
			continue
		}
		if e.Metrics[i].Counts == nil {
			e.Metrics[i].Counts = SummaryTable{}
		}
		e.Metrics[i].Counts[branch] = counts
		return
	}

	e.Metrics = append(e.Metrics, Metric{Name: metric, Counts: SummaryTable{branch: counts}})
}

func (e Experiment) ControlOrDefault() BranchID {
	if e.Control == "" {
		return DefaultControl
	}
	return e.Control
}
