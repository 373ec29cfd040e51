package ports

import (
	"context"

	"github.com/bnema/abstats/internal/domain"
)

type ObservationSource interface {
	Observations(ctx context.Context) ([]domain.Observation, error)
}
