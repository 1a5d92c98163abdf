package unitofwork

import (
	"context"

	"ai-modelgen-be/internal/repository/contract"
)

// UnitOfWork scopes repository access to one logical operation. Begin opens a
// database transaction; until Commit/Rollback every repository accessor runs
// inside it. Without Begin the accessors run against the plain connection.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	CreditRepository() contract.CreditRepository
	ServiceTypeRepository() contract.ServiceTypeRepository
	ModelRepository() contract.ModelRepository
	TopupRepository() contract.TopupRepository
}
