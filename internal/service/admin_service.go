package service

import (
	"context"
	"fmt"
	"math"

	"ai-modelgen-be/internal/dto"
	"ai-modelgen-be/internal/pkg/logger"
	"ai-modelgen-be/internal/repository/specification"
	"ai-modelgen-be/internal/repository/unitofwork"
)

const maxAdminListLimit = 200

type IAdminService interface {
	// Models lists every user's generations with owner info and the global
	// rating stats.
	Models(ctx context.Context, limit int) (*dto.AdminModelsResponse, error)
}

type AdminService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewAdminService(uowFactory unitofwork.RepositoryFactory, logger logger.ILogger) IAdminService {
	return &AdminService{
		uowFactory: uowFactory,
		logger:     logger,
	}
}

func (s *AdminService) Models(ctx context.Context, limit int) (*dto.AdminModelsResponse, error) {
	if limit <= 0 || limit > maxAdminListLimit {
		limit = maxAdminListLimit
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	models, err := uow.ModelRepository().FindAllWithOwner(ctx,
		specification.NewestFirst{},
		specification.Limit{Limit: limit},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	total, err := uow.ModelRepository().Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count models: %w", err)
	}

	ratedCount, err := uow.ModelRepository().Count(ctx, specification.Rated{})
	if err != nil {
		return nil, fmt.Errorf("failed to count rated models: %w", err)
	}
	avgRating, err := uow.ModelRepository().AverageRating(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to average ratings: %w", err)
	}

	response := &dto.AdminModelsResponse{
		Models: make([]dto.AdminModelResponse, 0, len(models)),
		Total:  total,
		Stats: dto.AdminModelStats{
			TotalRatedModels: ratedCount,
			AverageRating:    math.Round(avgRating*100) / 100,
		},
	}
	for _, m := range models {
		item := dto.AdminModelResponse{ModelResponse: toModelResponse(m)}
		if m.Owner != nil {
			item.User = &dto.AdminUserResponse{
				Id:        m.Owner.Id,
				Email:     m.Owner.Email,
				CreatedAt: m.Owner.CreatedAt,
			}
		}
		response.Models = append(response.Models, item)
	}
	return response, nil
}
