package service

import (
	"context"
	"fmt"
	"sort"

	"ai-modelgen-be/internal/dto"
	"ai-modelgen-be/internal/entity"
	"ai-modelgen-be/internal/pkg/logger"
	"ai-modelgen-be/internal/pkg/serverutils"
	"ai-modelgen-be/internal/repository/specification"
	"ai-modelgen-be/internal/repository/unitofwork"
	"ai-modelgen-be/pkg/similarity"

	"github.com/google/uuid"
)

const (
	maxListLimit         = 100
	defaultSimilarLimit  = 5
	defaultSimilarCutoff = 0.3
)

type IModelService interface {
	List(ctx context.Context, userId string, limit int) (*dto.ListModelsResponse, error)

	// Save records a generation attempt keyed by the provider task id, or
	// refreshes the record when the same owner saves the same task again.
	Save(ctx context.Context, userId string, req *dto.SaveModelRequest) (*dto.ModelResponse, error)

	Delete(ctx context.Context, userId, modelId string) error
	Rate(ctx context.Context, userId, modelId string, req *dto.RatingRequest) (*dto.RatingResponse, error)

	// Reuse copies a completed model into a new zero-cost record owned by the
	// caller. Saving the same url+prompt pair twice is a conflict.
	Reuse(ctx context.Context, userId string, req *dto.ReuseModelRequest) (*dto.ReuseModelResponse, error)

	// Similar ranks the caller's completed models by lexical closeness to a
	// prompt. Cross-user search is a future extension, not implemented.
	Similar(ctx context.Context, userId string, req *dto.SimilarSearchRequest) (*dto.SimilarSearchResponse, error)
}

type ModelService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewModelService(uowFactory unitofwork.RepositoryFactory, logger logger.ILogger) IModelService {
	return &ModelService{
		uowFactory: uowFactory,
		logger:     logger,
	}
}

func (s *ModelService) List(ctx context.Context, userId string, limit int) (*dto.ListModelsResponse, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	models, err := uow.ModelRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.NewestFirst{},
		specification.Limit{Limit: limit},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	total, err := uow.ModelRepository().Count(ctx, specification.OwnedBy{UserID: userId})
	if err != nil {
		return nil, fmt.Errorf("failed to count models: %w", err)
	}

	response := &dto.ListModelsResponse{
		Models: make([]dto.ModelResponse, 0, len(models)),
		Total:  total,
	}
	for _, m := range models {
		response.Models = append(response.Models, toModelResponse(m))
	}
	return response, nil
}

func (s *ModelService) Save(ctx context.Context, userId string, req *dto.SaveModelRequest) (*dto.ModelResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.ModelRepository().FindOne(ctx, specification.ByStringID{ID: req.TaskId})
	if err != nil {
		return nil, fmt.Errorf("failed to look up model: %w", err)
	}

	if existing != nil {
		if existing.UserId != userId {
			return nil, serverutils.Conflict("task already recorded by another user")
		}
		existing.ServiceType = req.ServiceType
		existing.ModelUrl = req.ModelUrl
		existing.ThumbnailUrl = req.ThumbnailUrl
		existing.Prompt = req.Prompt
		existing.CreditsCost = req.CreditsCost
		if req.Status != "" {
			existing.Status = entity.ModelStatus(req.Status)
		}
		if err := uow.ModelRepository().Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update model: %w", err)
		}
		response := toModelResponse(existing)
		return &response, nil
	}

	record := &entity.GeneratedModel{
		Id:           req.TaskId,
		UserId:       userId,
		ServiceType:  req.ServiceType,
		ModelUrl:     req.ModelUrl,
		ThumbnailUrl: req.ThumbnailUrl,
		Prompt:       req.Prompt,
		CreditsCost:  req.CreditsCost,
		Status:       entity.ModelPending,
	}
	if req.Status != "" {
		record.Status = entity.ModelStatus(req.Status)
	}
	if err := uow.ModelRepository().Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create model record: %w", err)
	}

	response := toModelResponse(record)
	return &response, nil
}

func (s *ModelService) Delete(ctx context.Context, userId, modelId string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.ModelRepository().FindOne(ctx,
		specification.ByStringID{ID: modelId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return fmt.Errorf("failed to look up model: %w", err)
	}
	if existing == nil {
		return serverutils.NotFound("model not found")
	}

	if err := uow.ModelRepository().Delete(ctx, modelId); err != nil {
		return fmt.Errorf("failed to delete model: %w", err)
	}
	return nil
}

// Rate accepts a rating at any lifecycle stage; users may pre-rate a pending
// generation and revise later.
func (s *ModelService) Rate(ctx context.Context, userId, modelId string, req *dto.RatingRequest) (*dto.RatingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.ModelRepository().FindOne(ctx,
		specification.ByStringID{ID: modelId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to look up model: %w", err)
	}
	if existing == nil {
		return nil, serverutils.NotFound("model not found")
	}

	if err := uow.ModelRepository().UpdateRating(ctx, modelId, req.Rating, req.Comment); err != nil {
		return nil, fmt.Errorf("failed to update rating: %w", err)
	}

	rating := req.Rating
	return &dto.RatingResponse{Rating: &rating, Comment: req.Comment}, nil
}

func (s *ModelService) Reuse(ctx context.Context, userId string, req *dto.ReuseModelRequest) (*dto.ReuseModelResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	original, err := uow.ModelRepository().FindOne(ctx,
		specification.ByStringID{ID: req.OriginalModelId},
		specification.Completed{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to look up original model: %w", err)
	}
	if original == nil {
		return nil, serverutils.NotFound("original model not found or not completed")
	}

	prompt := original.Prompt
	if req.NewPrompt != nil && *req.NewPrompt != "" {
		prompt = req.NewPrompt
	}

	duplicate, err := uow.ModelRepository().FindOne(ctx,
		specification.OwnedBy{UserID: userId},
		specification.ByModelUrlAndPrompt{ModelUrl: *original.ModelUrl, Prompt: *prompt},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to check duplicate reuse: %w", err)
	}
	if duplicate != nil {
		return nil, serverutils.Conflict("model already saved").
			WithDetails(fmt.Sprintf("existing model id: %s", duplicate.Id))
	}

	record := &entity.GeneratedModel{
		Id:           "reuse-" + uuid.NewString(),
		UserId:       userId,
		ServiceType:  original.ServiceType,
		ModelUrl:     original.ModelUrl,
		ThumbnailUrl: original.ThumbnailUrl,
		Prompt:       prompt,
		CreditsCost:  0,
		Status:       entity.ModelCompleted,
	}
	if err := uow.ModelRepository().Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create reuse record: %w", err)
	}

	s.logger.Info("ModelService", "Model reused", map[string]interface{}{
		"user_id":  userId,
		"original": original.Id,
		"reused":   record.Id,
	})

	return &dto.ReuseModelResponse{
		ReusedModel:     toModelResponse(record),
		OriginalModelId: original.Id,
	}, nil
}

func (s *ModelService) Similar(ctx context.Context, userId string, req *dto.SimilarSearchRequest) (*dto.SimilarSearchResponse, error) {
	threshold := defaultSimilarCutoff
	if req.Threshold != nil {
		threshold = *req.Threshold
	}
	limit := defaultSimilarLimit
	if req.Limit != nil {
		limit = *req.Limit
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	candidates, err := uow.ModelRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.Completed{},
		specification.NewestFirst{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load similarity candidates: %w", err)
	}

	response := &dto.SimilarSearchResponse{
		SimilarModels: []dto.SimilarModelResponse{},
		SearchPrompt:  req.Prompt,
		Threshold:     threshold,
		TotalChecked:  len(candidates),
	}

	for _, m := range candidates {
		score := similarity.Combined(req.Prompt, *m.Prompt)
		if score < threshold {
			continue
		}
		response.SimilarModels = append(response.SimilarModels, dto.SimilarModelResponse{
			Id:           m.Id,
			Prompt:       m.Prompt,
			ModelUrl:     m.ModelUrl,
			ThumbnailUrl: m.ThumbnailUrl,
			ServiceType:  m.ServiceType,
			CreatedAt:    m.CreatedAt,
			UserId:       m.UserId,
			Similarity:   score,
			IsOwnModel:   m.UserId == userId,
		})
	}

	sort.SliceStable(response.SimilarModels, func(i, j int) bool {
		return response.SimilarModels[i].Similarity > response.SimilarModels[j].Similarity
	})
	if len(response.SimilarModels) > limit {
		response.SimilarModels = response.SimilarModels[:limit]
	}

	// ExactMatch reflects what the caller actually gets back: a score high
	// enough to count as exact but filtered out by the threshold does not set
	// it.
	for _, m := range response.SimilarModels {
		if m.Similarity >= similarity.ExactMatchThreshold {
			response.ExactMatch = true
			break
		}
	}
	return response, nil
}

func toModelResponse(m *entity.GeneratedModel) dto.ModelResponse {
	return dto.ModelResponse{
		Id:           m.Id,
		UserId:       m.UserId,
		ServiceType:  m.ServiceType,
		ModelUrl:     m.ModelUrl,
		ThumbnailUrl: m.ThumbnailUrl,
		Prompt:       m.Prompt,
		CreditsCost:  m.CreditsCost,
		Status:       string(m.Status),
		Rating:       m.Rating,
		Comment:      m.Comment,
		CreatedAt:    m.CreatedAt,
	}
}
