package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/abstats/internal/domain"
)

func (s *Service) ListExperiments(ctx context.Context) ([]domain.Experiment, error) {
	experiments, err := s.experiments.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list experiments: %w", err)
	}

	return experiments, nil
}

// RecordCounts stores one branch's counts for a metric, creating the
// experiment on first use.
func (s *Service) RecordCounts(ctx context.Context, cmd RecordCountsCommand) error {
	if cmd.Metric == "" {
		return fmt.Errorf("%w: metric name is empty", domain.ErrInvalidSummary)
	}
	if cmd.Branch == "" {
		return fmt.Errorf("%w: branch name is empty", domain.ErrInvalidSummary)
	}
	if err := cmd.Counts.Validate(); err != nil {
		return fmt.Errorf("branch %q: %w", cmd.Branch, err)
	}

	experiment, err := s.experiments.GetByID(ctx, cmd.Experiment)
	if err != nil {
		if !errors.Is(err, domain.ErrExperimentNotFound) {
			return fmt.Errorf("get experiment by id: %w", err)
		}
		experiment = domain.Experiment{ID: cmd.Experiment, Name: string(cmd.Experiment)}
	}

	if cmd.Name != "" {
		experiment.Name = cmd.Name
	}
	if cmd.Control != "" {
		experiment.Control = cmd.Control
	}
	experiment.SetCounts(cmd.Metric, cmd.Branch, cmd.Counts)

	if err := s.experiments.Save(ctx, experiment); err != nil {
		return fmt.Errorf("save experiment counts: %w", err)
	}

	return nil
}

// SummaryFor returns the stored summary table of one metric together with the
// experiment's control branch.
func (s *Service) SummaryFor(ctx context.Context, id domain.ExperimentID, metric string) (domain.SummaryTable, domain.BranchID, error) {
	experiment, err := s.experiments.GetByID(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("get experiment by id: %w", err)
	}

	m, err := experiment.Metric(metric)
	if err != nil {
		return nil, "", err
	}

	return m.Counts.Clone(), experiment.ControlOrDefault(), nil
}

func (s *Service) CompareTwoExperiment(ctx context.Context, id domain.ExperimentID, cmd CompareTwoCommand) (domain.TwoBranchAnalysis, error) {
	table, control, err := s.SummaryFor(ctx, id, cmd.Metric)
	if err != nil {
		return domain.TwoBranchAnalysis{}, err
	}
	if cmd.Control == "" {
		cmd.Control = control
	}

	return s.CompareTwo(ctx, table, cmd)
}

func (s *Service) CompareManyExperiment(ctx context.Context, id domain.ExperimentID, cmd CompareManyCommand) (domain.MultiBranchAnalysis, error) {
	table, _, err := s.SummaryFor(ctx, id, cmd.Metric)
	if err != nil {
		return domain.MultiBranchAnalysis{}, err
	}

	return s.CompareMany(ctx, table, cmd)
}

func (s *Service) SummarizeExperiment(ctx context.Context, id domain.ExperimentID, metric string) (map[domain.BranchID]domain.BranchSummary, error) {
	table, _, err := s.SummaryFor(ctx, id, metric)
	if err != nil {
		return nil, err
	}

	return s.Summarize(table)
}
