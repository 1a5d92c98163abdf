package contract

import (
	"context"

	"ai-modelgen-be/internal/entity"

	"github.com/google/uuid"
)

type TopupRepository interface {
	FindActivePackages(ctx context.Context) ([]*entity.CreditPackage, error)
	FindPackage(ctx context.Context, id uuid.UUID) (*entity.CreditPackage, error)
	UpsertPackage(ctx context.Context, pkg *entity.CreditPackage) error

	CreatePurchase(ctx context.Context, purchase *entity.CreditPurchase) error
	FindPurchaseByOrderId(ctx context.Context, orderId string) (*entity.CreditPurchase, error)
	UpdatePurchaseStatus(ctx context.Context, orderId, status string, midtransTransactionId *string) error
}
