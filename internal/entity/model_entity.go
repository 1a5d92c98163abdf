package entity

import "time"

type ModelStatus string

const (
	ModelPending   ModelStatus = "PENDING"
	ModelCompleted ModelStatus = "COMPLETED"
	ModelFailed    ModelStatus = "FAILED"
)

// GeneratedModel is one generation attempt. Id is the provider task id.
type GeneratedModel struct {
	Id           string
	UserId       string
	ServiceType  string
	ModelUrl     *string
	ThumbnailUrl *string
	Prompt       *string
	CreditsCost  int
	Status       ModelStatus
	Rating       *int
	Comment      *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Owner is populated only on admin listings.
	Owner *User
}
