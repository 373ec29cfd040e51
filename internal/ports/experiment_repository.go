package ports

import (
	"context"

	"github.com/bnema/abstats/internal/domain"
)

type ExperimentRepository interface {
	GetByID(ctx context.Context, id domain.ExperimentID) (domain.Experiment, error)
	List(ctx context.Context) ([]domain.Experiment, error)
	Save(ctx context.Context, experiment domain.Experiment) error
}
