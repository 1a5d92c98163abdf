package contract

import (
	"context"

	"ai-modelgen-be/internal/entity"
	"ai-modelgen-be/internal/repository/specification"
)

type ServiceTypeRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ServiceType, error)
	FindByName(ctx context.Context, name string) (*entity.ServiceType, error)
	FindAllActive(ctx context.Context) ([]*entity.ServiceType, error)

	// UpsertByName is the deployment-time seeding path (cmd/seed).
	UpsertByName(ctx context.Context, serviceType *entity.ServiceType) error
}
