package contract

import (
	"context"

	"ai-modelgen-be/internal/entity"
	"ai-modelgen-be/internal/repository/specification"
)

type CreditRepository interface {
	// FindHead returns the ledger head for a user, nil if uninitialized.
	FindHead(ctx context.Context, userId string) (*entity.UserCredits, error)

	// FindHeadForUpdate reads the head under a row lock. Only meaningful
	// inside a unit-of-work transaction; it serializes concurrent spends
	// for the same user.
	FindHeadForUpdate(ctx context.Context, userId string) (*entity.UserCredits, error)

	// CreateHeadIfAbsent inserts the head row, silently doing nothing when a
	// concurrent caller won the race (user_id carries a unique constraint).
	CreateHeadIfAbsent(ctx context.Context, head *entity.UserCredits) error

	UpdateHead(ctx context.Context, head *entity.UserCredits) error

	// AppendTransaction writes one immutable ledger row.
	AppendTransaction(ctx context.Context, txn *entity.CreditTransaction) error

	FindTransactions(ctx context.Context, specs ...specification.Specification) ([]*entity.CreditTransaction, error)
	CountTransactions(ctx context.Context, specs ...specification.Specification) (int64, error)
}
