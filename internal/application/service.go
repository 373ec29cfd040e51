package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bnema/abstats/internal/domain"
	"github.com/bnema/abstats/internal/ports"
)

type Service struct {
	experiments ports.ExperimentRepository
	model       ports.PosteriorModel
	comparator  ports.Comparator
	logger      *slog.Logger
}

func NewService(experiments ports.ExperimentRepository, model ports.PosteriorModel, comparator ports.Comparator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Service{
		experiments: experiments,
		model:       model,
		comparator:  comparator,
		logger:      logger,
	}
}

// CompareTwo jointly samples a control and one treatment branch and measures
// the treatment's uplift over the control. A table with more than two
// branches needs cmd.Focus to pick the treatment.
func (s *Service) CompareTwo(ctx context.Context, table domain.SummaryTable, cmd CompareTwoCommand) (domain.TwoBranchAnalysis, error) {
	pair, control, treatment, err := resolvePair(table, cmd)
	if err != nil {
		return domain.TwoBranchAnalysis{}, err
	}
	if err := validateSampleCount(cmd.NumSamples); err != nil {
		return domain.TwoBranchAnalysis{}, err
	}
	if err := pair.ValidateEnrolled(); err != nil {
		return domain.TwoBranchAnalysis{}, err
	}

	metric := metricLabel(cmd.Metric)
	s.logger.DebugContext(ctx, "comparing two branches",
		"metric", metric,
		"control", control,
		"treatment", treatment,
		"num_samples", cmd.NumSamples)

	samples, err := s.model.Sample(ctx, pair, cmd.NumSamples)
	if err != nil {
		return domain.TwoBranchAnalysis{}, fmt.Errorf("sample posteriors: %w", err)
	}

	treatmentSamples, _ := samples.Column(treatment)
	controlSamples, _ := samples.Column(control)
	comparative, err := s.comparator.Compare(treatmentSamples, controlSamples)
	if err != nil {
		return domain.TwoBranchAnalysis{}, fmt.Errorf("compare %s to %s: %w", treatment, control, err)
	}
	comparative.Metric = metric

	individual, err := s.summarize(pair, control, treatment)
	if err != nil {
		return domain.TwoBranchAnalysis{}, err
	}

	return domain.TwoBranchAnalysis{
		Metric:      metric,
		Control:     control,
		Treatment:   treatment,
		Comparative: comparative,
		Individual:  individual,
	}, nil
}

// CompareMany samples every branch once and compares each branch against the
// per-draw best of all other branches. Higher conversion rates are better.
func (s *Service) CompareMany(ctx context.Context, table domain.SummaryTable, cmd CompareManyCommand) (domain.MultiBranchAnalysis, error) {
	if len(table) < 2 {
		return domain.MultiBranchAnalysis{}, fmt.Errorf("%w: need at least two branches, got %d", domain.ErrInvalidSummary, len(table))
	}
	if err := validateSampleCount(cmd.NumSamples); err != nil {
		return domain.MultiBranchAnalysis{}, err
	}
	if err := table.ValidateEnrolled(); err != nil {
		return domain.MultiBranchAnalysis{}, err
	}

	metric := metricLabel(cmd.Metric)
	branches := table.Branches()
	s.logger.DebugContext(ctx, "comparing branches against best of rest",
		"metric", metric,
		"branches", len(branches),
		"num_samples", cmd.NumSamples)

	samples, err := s.model.Sample(ctx, table, cmd.NumSamples)
	if err != nil {
		return domain.MultiBranchAnalysis{}, fmt.Errorf("sample posteriors: %w", err)
	}

	comparative := make(map[domain.BranchID]domain.ComparativeStats, len(branches))
	for _, branch := range branches {
		this, _ := samples.Column(branch)
		bestOfRest, err := samples.BestOfRest(branch)
		if err != nil {
			return domain.MultiBranchAnalysis{}, err
		}

		stats, err := s.comparator.Compare(this, bestOfRest)
		if err != nil {
			return domain.MultiBranchAnalysis{}, fmt.Errorf("compare %s to best of rest: %w", branch, err)
		}
		stats.Metric = metric
		comparative[branch] = stats
	}

	individual, err := s.summarize(table, branches...)
	if err != nil {
		return domain.MultiBranchAnalysis{}, err
	}

	return domain.MultiBranchAnalysis{
		Metric:      metric,
		Comparative: comparative,
		Individual:  individual,
	}, nil
}

// Summarize computes closed-form posterior summaries for every branch without
// sampling.
func (s *Service) Summarize(table domain.SummaryTable) (map[domain.BranchID]domain.BranchSummary, error) {
	if err := table.ValidateEnrolled(); err != nil {
		return nil, err
	}

	return s.summarize(table, table.Branches()...)
}

func (s *Service) CompareTwoObservations(ctx context.Context, source ports.ObservationSource, cmd CompareTwoCommand) (domain.TwoBranchAnalysis, error) {
	table, err := s.tabulate(ctx, source, cmd.Metric)
	if err != nil {
		return domain.TwoBranchAnalysis{}, err
	}

	return s.CompareTwo(ctx, table, cmd)
}

func (s *Service) CompareManyObservations(ctx context.Context, source ports.ObservationSource, cmd CompareManyCommand) (domain.MultiBranchAnalysis, error) {
	table, err := s.tabulate(ctx, source, cmd.Metric)
	if err != nil {
		return domain.MultiBranchAnalysis{}, err
	}

	return s.CompareMany(ctx, table, cmd)
}

func (s *Service) tabulate(ctx context.Context, source ports.ObservationSource, metric string) (domain.SummaryTable, error) {
	observations, err := source.Observations(ctx)
	if err != nil {
		return nil, fmt.Errorf("read observations: %w", err)
	}

	table, err := Tabulate(observations, metric)
	if err != nil {
		return nil, err
	}
	s.logger.DebugContext(ctx, "tabulated observations",
		"metric", metric,
		"rows", len(observations),
		"branches", len(table))

	return table, nil
}

func (s *Service) summarize(table domain.SummaryTable, branches ...domain.BranchID) (map[domain.BranchID]domain.BranchSummary, error) {
	individual := make(map[domain.BranchID]domain.BranchSummary, len(branches))
	for _, branch := range branches {
		summary, err := s.model.Summarize(table[branch])
		if err != nil {
			return nil, fmt.Errorf("summarize branch %q: %w", branch, err)
		}
		individual[branch] = summary
	}

	return individual, nil
}

func resolvePair(table domain.SummaryTable, cmd CompareTwoCommand) (domain.SummaryTable, domain.BranchID, domain.BranchID, error) {
	control := cmd.Control
	if control == "" {
		control = domain.DefaultControl
	}

	pair := table
	if len(table) > 2 {
		if cmd.Focus == "" {
			return nil, "", "", fmt.Errorf("%w: %d branches and no focus branch", domain.ErrAmbiguousBranch, len(table))
		}
		if !table.Has(cmd.Focus) {
			return nil, "", "", fmt.Errorf("%w: focus branch %q not found", domain.ErrAmbiguousBranch, cmd.Focus)
		}
		pair = table.Restrict(cmd.Focus, control)
	}

	if !pair.Has(control) {
		return nil, "", "", fmt.Errorf("%w: %q", domain.ErrMissingControl, control)
	}
	if len(pair) != 2 {
		return nil, "", "", fmt.Errorf("%w: two-branch comparison needs two distinct branches, got %d", domain.ErrAmbiguousBranch, len(pair))
	}

	var treatment domain.BranchID
	for _, id := range pair.Branches() {
		if id != control {
			treatment = id
		}
	}
	if cmd.Focus != "" && cmd.Focus != treatment {
		return nil, "", "", fmt.Errorf("%w: focus branch %q not found", domain.ErrAmbiguousBranch, cmd.Focus)
	}

	return pair, control, treatment, nil
}

func validateSampleCount(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: got %d", domain.ErrInvalidSampleCount, n)
	}
	return nil
}
