package model

import (
	"time"

	"github.com/google/uuid"
)

type CreditPackage struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Credits   int       `gorm:"not null"`
	Price     float64   `gorm:"type:decimal(12,2);not null"` // IDR
	IsActive  bool      `gorm:"default:true"`
	SortOrder int       `gorm:"default:0"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (CreditPackage) TableName() string {
	return "credit_packages"
}

type CreditPurchase struct {
	Id                    uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderId               string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	UserId                string    `gorm:"type:varchar(255);not null;index"`
	PackageId             uuid.UUID `gorm:"type:uuid;not null"`
	Credits               int       `gorm:"not null"`
	GrossAmount           float64   `gorm:"type:decimal(12,2);not null"`
	Status                string    `gorm:"type:varchar(50);not null;default:'pending'"`
	MidtransTransactionId *string   `gorm:"type:varchar(255)"`
	CreatedAt             time.Time `gorm:"autoCreateTime"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime"`
}

func (CreditPurchase) TableName() string {
	return "credit_purchases"
}
