package dto

import "time"

type AdminUserResponse struct {
	Id        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type AdminModelResponse struct {
	ModelResponse
	User *AdminUserResponse `json:"user,omitempty"`
}

type AdminModelStats struct {
	TotalRatedModels int64   `json:"totalRatedModels"`
	AverageRating    float64 `json:"averageRating"`
}

type AdminModelsResponse struct {
	Models []AdminModelResponse `json:"models"`
	Total  int64                `json:"total"`
	Stats  AdminModelStats      `json:"stats"`
}
