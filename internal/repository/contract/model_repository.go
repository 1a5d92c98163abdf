package contract

import (
	"context"

	"ai-modelgen-be/internal/entity"
	"ai-modelgen-be/internal/repository/specification"
)

type ModelRepository interface {
	Create(ctx context.Context, m *entity.GeneratedModel) error
	Update(ctx context.Context, m *entity.GeneratedModel) error
	Delete(ctx context.Context, id string) error

	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.GeneratedModel, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.GeneratedModel, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// UpdateTerminalStatus is the idempotent poll-completion write, keyed by
	// task id. Applying it twice is safe.
	UpdateTerminalStatus(ctx context.Context, taskId string, status entity.ModelStatus, modelUrl, thumbnailUrl *string) error

	// UpdateRating attaches rating/comment to an owned record.
	UpdateRating(ctx context.Context, id string, rating int, comment *string) error

	// FindAllWithOwner preloads the owning user for admin listings.
	FindAllWithOwner(ctx context.Context, specs ...specification.Specification) ([]*entity.GeneratedModel, error)

	// AverageRating over rated models only; 0 when none are rated.
	AverageRating(ctx context.Context) (float64, error)
}
