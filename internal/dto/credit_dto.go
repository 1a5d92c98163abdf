package dto

import (
	"time"

	"github.com/google/uuid"
)

type SpendCreditsRequest struct {
	UserId      string                 `json:"userId" validate:"required"`
	ServiceType string                 `json:"serviceType" validate:"required"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

type TransactionResponse struct {
	Id            uuid.UUID              `json:"id"`
	Amount        int                    `json:"amount"`
	Type          string                 `json:"type"`
	Description   string                 `json:"description"`
	BalanceAfter  int                    `json:"balanceAfter"`
	ServiceTypeId *uuid.UUID             `json:"serviceTypeId,omitempty"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
}

type SpendCreditsResponse struct {
	Transaction      TransactionResponse `json:"transaction"`
	RemainingCredits int                 `json:"remainingCredits"`
}

type InitializeCreditsResponse struct {
	Credits int `json:"credits"`
}

type BalanceResponse struct {
	Credits int `json:"credits"`
}

type CreditStatsResponse struct {
	CurrentCredits     int                   `json:"currentCredits"`
	TotalEarned        int                   `json:"totalEarned"`
	TotalSpent         int                   `json:"totalSpent"`
	RecentTransactions []TransactionResponse `json:"recentTransactions"`
}

type CreditHistoryResponse struct {
	History []TransactionResponse `json:"history"`
}
