package contract

import (
	"context"

	"ai-modelgen-be/internal/entity"
	"ai-modelgen-be/internal/repository/specification"
)

type UserRepository interface {
	// Upsert creates the user on first sight and refreshes the email
	// otherwise. Users are never deleted by this subsystem.
	Upsert(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
