package dto

import "time"

type ModelResponse struct {
	Id           string    `json:"id"`
	UserId       string    `json:"userId"`
	ServiceType  string    `json:"serviceType"`
	ModelUrl     *string   `json:"modelUrl"`
	ThumbnailUrl *string   `json:"thumbnailUrl"`
	Prompt       *string   `json:"prompt"`
	CreditsCost  int       `json:"creditsCost"`
	Status       string    `json:"status"`
	Rating       *int      `json:"rating"`
	Comment      *string   `json:"comment"`
	CreatedAt    time.Time `json:"createdAt"`
}

type ListModelsResponse struct {
	Models []ModelResponse `json:"models"`
	Total  int64           `json:"total"`
}

// SaveModelRequest records (or refreshes) a generation attempt keyed by the
// provider task id.
type SaveModelRequest struct {
	TaskId       string  `json:"taskId" validate:"required"`
	ServiceType  string  `json:"serviceType" validate:"required"`
	ModelUrl     *string `json:"modelUrl,omitempty"`
	ThumbnailUrl *string `json:"thumbnailUrl,omitempty"`
	Prompt       *string `json:"prompt,omitempty"`
	CreditsCost  int     `json:"creditsCost" validate:"gte=0"`
	Status       string  `json:"status,omitempty" validate:"omitempty,oneof=PENDING COMPLETED FAILED"`
}

type RatingRequest struct {
	Rating  int     `json:"rating" validate:"required,min=1,max=5"`
	Comment *string `json:"comment,omitempty"`
}

type RatingResponse struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

type ReuseModelRequest struct {
	OriginalModelId string  `json:"originalModelId" validate:"required"`
	NewPrompt       *string `json:"newPrompt,omitempty"`
}

type ReuseModelResponse struct {
	ReusedModel     ModelResponse `json:"reusedModel"`
	OriginalModelId string        `json:"originalModelId"`
}

type SimilarSearchRequest struct {
	Prompt    string   `json:"prompt" validate:"required"`
	Threshold *float64 `json:"threshold,omitempty" validate:"omitempty,gte=0,lte=1"`
	Limit     *int     `json:"limit,omitempty" validate:"omitempty,gt=0"`
}

type SimilarModelResponse struct {
	Id           string    `json:"id"`
	Prompt       *string   `json:"prompt"`
	ModelUrl     *string   `json:"modelUrl"`
	ThumbnailUrl *string   `json:"thumbnailUrl"`
	ServiceType  string    `json:"serviceType"`
	CreatedAt    time.Time `json:"createdAt"`
	UserId       string    `json:"userId"`
	Similarity   float64   `json:"similarity"`
	IsOwnModel   bool      `json:"isOwnModel"`
}

type SimilarSearchResponse struct {
	SimilarModels []SimilarModelResponse `json:"similarModels"`
	ExactMatch    bool                   `json:"exactMatch"`
	SearchPrompt  string                 `json:"searchPrompt"`
	Threshold     float64                `json:"threshold"`
	TotalChecked  int                    `json:"totalChecked"`
}
