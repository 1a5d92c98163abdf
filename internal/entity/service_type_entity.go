package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	ServiceTextTo3DPreview   = "text-to-3d-preview"
	ServiceTextTo3DOptimized = "text-to-3d-optimized"
	ServiceImageGeneration   = "image-generation"
)

type ServiceType struct {
	Id          uuid.UUID
	Name        string
	Description string
	CreditCost  int
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
