package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	PurchasePending = "pending"
	PurchaseSettled = "settled"
	PurchaseFailed  = "failed"
)

type CreditPackage struct {
	Id        uuid.UUID
	Name      string
	Credits   int
	Price     float64
	IsActive  bool
	SortOrder int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CreditPurchase struct {
	Id                    uuid.UUID
	OrderId               string
	UserId                string
	PackageId             uuid.UUID
	Credits               int
	GrossAmount           float64
	Status                string
	MidtransTransactionId *string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
