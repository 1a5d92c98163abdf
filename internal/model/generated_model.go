package model

import (
	"time"
)

// GeneratedModel persists one generation attempt. The primary key is the
// external provider's task id, tying the record 1:1 to a provider task.
type GeneratedModel struct {
	Id           string    `gorm:"type:varchar(255);primaryKey"`
	UserId       string    `gorm:"type:varchar(255);not null;index"`
	ServiceType  string    `gorm:"type:varchar(100);not null"` // denormalized name
	ModelUrl     *string   `gorm:"type:text"`
	ThumbnailUrl *string   `gorm:"type:text"`
	Prompt       *string   `gorm:"type:text"`
	CreditsCost  int       `gorm:"not null"`
	Status       string    `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	Rating       *int
	Comment      *string   `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`

	User *User `gorm:"foreignKey:UserId;references:Id"`
}

func (GeneratedModel) TableName() string {
	return "generated_models"
}
