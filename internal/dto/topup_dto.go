package dto

import "github.com/google/uuid"

type CreditPackageResponse struct {
	Id        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Credits   int       `json:"credits"`
	Price     float64   `json:"price"`
	SortOrder int       `json:"sortOrder"`
}

type CheckoutRequest struct {
	PackageId uuid.UUID `json:"packageId" validate:"required"`
}

type CheckoutResponse struct {
	OrderId     string `json:"orderId"`
	Token       string `json:"token"`
	RedirectUrl string `json:"redirectUrl"`
}

type MidtransWebhookRequest struct {
	OrderId           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionStatus string `json:"transaction_status"`
	TransactionId     string `json:"transaction_id"`
	FraudStatus       string `json:"fraud_status"`
}
