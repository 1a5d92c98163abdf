package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-modelgen-be/internal/dto"
	"ai-modelgen-be/internal/entity"
	"ai-modelgen-be/internal/pkg/logger"
	"ai-modelgen-be/internal/pkg/serverutils"
	"ai-modelgen-be/internal/repository/specification"
	"ai-modelgen-be/internal/repository/unitofwork"
	"ai-modelgen-be/pkg/events"
	"ai-modelgen-be/pkg/meshy"

	"github.com/redis/go-redis/v9"
)

// Status reads are cached briefly so a polling frontend does not hammer the
// provider. The TTL matches the provider's own poll cadence.
const taskStatusCacheTTL = 3 * time.Second

type IGenerationService interface {
	// Generate starts a provider task, spends the credits and records the
	// attempt. A record write failure after the spend committed surfaces as a
	// warning, never as a rollback.
	Generate(ctx context.Context, userId string, req *dto.GenerateRequest) (*dto.GenerateResponse, error)

	// GetStatus reads the provider task state and mirrors terminal outcomes
	// onto the local record.
	GetStatus(ctx context.Context, taskType, taskId string) (*dto.TaskStatusResponse, error)
}

type GenerationService struct {
	uowFactory unitofwork.RepositoryFactory
	meshy      *meshy.Client
	catalogSvc ICatalogService
	creditSvc  ICreditService
	publisher  IPublisherService
	events     EventPublisher
	redis      *redis.Client
	logger     logger.ILogger
}

func NewGenerationService(
	uowFactory unitofwork.RepositoryFactory,
	meshyClient *meshy.Client,
	catalogSvc ICatalogService,
	creditSvc ICreditService,
	publisher IPublisherService,
	eventPublisher EventPublisher,
	redisClient *redis.Client,
	logger logger.ILogger,
) IGenerationService {
	return &GenerationService{
		uowFactory: uowFactory,
		meshy:      meshyClient,
		catalogSvc: catalogSvc,
		creditSvc:  creditSvc,
		publisher:  publisher,
		events:     eventPublisher,
		redis:      redisClient,
		logger:     logger,
	}
}

func (s *GenerationService) Generate(ctx context.Context, userId string, req *dto.GenerateRequest) (*dto.GenerateResponse, error) {
	serviceName, taskType, err := resolveMode(req)
	if err != nil {
		return nil, err
	}

	cost, err := s.catalogSvc.Cost(ctx, serviceName)
	if err != nil {
		return nil, err
	}

	// Cheap precheck before touching the provider. The authoritative check
	// happens again inside Spend under the row lock.
	affordable, err := s.creditSvc.CanAfford(ctx, userId, cost)
	if err != nil {
		return nil, err
	}
	if !affordable {
		return nil, serverutils.PaymentRequired("insufficient credits")
	}

	taskId, err := s.createProviderTask(ctx, req)
	if err != nil {
		return nil, err
	}

	spend, err := s.creditSvc.Spend(ctx, &dto.SpendCreditsRequest{
		UserId:      userId,
		ServiceType: serviceName,
		Metadata: map[string]interface{}{
			"task_id":   taskId,
			"task_type": taskType,
		},
	})
	if err != nil {
		return nil, err
	}

	response := &dto.GenerateResponse{
		TaskId:           taskId,
		TaskType:         taskType,
		ServiceType:      serviceName,
		CreditsCost:      cost,
		RemainingCredits: spend.RemainingCredits,
		Status:           string(entity.ModelPending),
	}

	// The spend has committed. From here on nothing rolls it back: a lost
	// record is a warning, the user still has their task id.
	var prompt *string
	if req.Prompt != "" {
		p := req.Prompt
		prompt = &p
	}
	record := &entity.GeneratedModel{
		Id:          taskId,
		UserId:      userId,
		ServiceType: serviceName,
		Prompt:      prompt,
		CreditsCost: cost,
		Status:      entity.ModelPending,
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ModelRepository().Create(ctx, record); err != nil {
		s.logger.Error("GenerationService", "Model record write failed after spend", map[string]interface{}{
			"task_id": taskId,
			"user_id": userId,
			"error":   err.Error(),
		})
		response.Warning = "generation started but the model record could not be saved"
	}

	if err := s.publisher.PublishPollTask(dto.PollTaskMessage{
		TaskId:   taskId,
		TaskType: taskType,
		UserId:   userId,
	}); err != nil {
		s.logger.Warn("GenerationService", "Poll task publish failed", map[string]interface{}{
			"task_id": taskId,
			"error":   err.Error(),
		})
	}

	return response, nil
}

func (s *GenerationService) GetStatus(ctx context.Context, taskType, taskId string) (*dto.TaskStatusResponse, error) {
	cacheKey := fmt.Sprintf("task:%s:%s", taskType, taskId)
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.TaskStatusResponse
			if json.Unmarshal([]byte(cached), &response) == nil {
				return &response, nil
			}
		}
	}

	task, err := s.meshy.GetTask(ctx, taskType, taskId)
	if err != nil {
		return nil, err
	}

	response := &dto.TaskStatusResponse{
		Id:       task.Id,
		Status:   string(entity.ModelPending),
		Progress: task.Progress,
	}

	switch task.Status {
	case meshy.StatusSucceeded:
		response.Status = string(entity.ModelCompleted)
		response.ModelUrl = task.ModelUrls.GLB
		response.ThumbnailUrl = task.ThumbnailUrl
		s.recordTerminal(ctx, taskId, entity.ModelCompleted, task)
	case meshy.StatusFailed:
		response.Status = string(entity.ModelFailed)
		s.recordTerminal(ctx, taskId, entity.ModelFailed, task)
	}

	if s.redis != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.redis.Set(ctx, cacheKey, payload, taskStatusCacheTTL).Err(); err != nil {
				s.logger.Debug("GenerationService", "Status cache write failed", map[string]interface{}{
					"task_id": taskId,
					"error":   err.Error(),
				})
			}
		}
	}
	return response, nil
}

// recordTerminal mirrors a finished provider task onto the local record. The
// write is idempotent; the poll worker may already have applied it.
func (s *GenerationService) recordTerminal(ctx context.Context, taskId string, status entity.ModelStatus, task *meshy.Task) {
	var modelUrl, thumbnailUrl *string
	if task.ModelUrls.GLB != "" {
		modelUrl = &task.ModelUrls.GLB
	}
	if task.ThumbnailUrl != "" {
		thumbnailUrl = &task.ThumbnailUrl
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	ownerId := ""
	if record, err := uow.ModelRepository().FindOne(ctx, specification.ByStringID{ID: taskId}); err == nil && record != nil {
		ownerId = record.UserId
	}
	if err := uow.ModelRepository().UpdateTerminalStatus(ctx, taskId, status, modelUrl, thumbnailUrl); err != nil {
		s.logger.Warn("GenerationService", "Terminal status write failed", map[string]interface{}{
			"task_id": taskId,
			"error":   err.Error(),
		})
		return
	}

	if s.events != nil {
		if err := s.events.Publish(ctx, events.NewModelTerminal(taskId, ownerId, string(status))); err != nil {
			s.logger.Warn("GenerationService", "Event publish failed", map[string]interface{}{
				"task_id": taskId,
				"error":   err.Error(),
			})
		}
	}
}

func (s *GenerationService) createProviderTask(ctx context.Context, req *dto.GenerateRequest) (string, error) {
	switch req.Mode {
	case "preview":
		return s.meshy.CreatePreviewTask(ctx, req.Prompt)
	case "refine":
		return s.meshy.CreateRefineTask(ctx, req.PreviewTaskId)
	case "image":
		return s.meshy.CreateImageTask(ctx, req.ImageUrl)
	}
	return "", serverutils.BadRequest(fmt.Sprintf("unknown generation mode: %s", req.Mode))
}

func resolveMode(req *dto.GenerateRequest) (serviceName, taskType string, err error) {
	switch req.Mode {
	case "preview":
		if req.Prompt == "" {
			return "", "", serverutils.BadRequest("prompt is required for preview generation")
		}
		return entity.ServiceTextTo3DPreview, meshy.TaskTypeTextTo3D, nil
	case "refine":
		if req.PreviewTaskId == "" {
			return "", "", serverutils.BadRequest("previewTaskId is required for refine generation")
		}
		return entity.ServiceTextTo3DOptimized, meshy.TaskTypeTextTo3D, nil
	case "image":
		if req.ImageUrl == "" {
			return "", "", serverutils.BadRequest("imageUrl is required for image generation")
		}
		return entity.ServiceImageGeneration, meshy.TaskTypeImageTo3D, nil
	}
	return "", "", serverutils.BadRequest(fmt.Sprintf("unknown generation mode: %s", req.Mode))
}
