package model

import (
	"time"
)

// User mirrors the identity provider's account. The id is the provider-issued
// opaque string and is never generated locally.
type User struct {
	Id        string    `gorm:"type:varchar(255);primaryKey"`
	Email     string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
