package service

import (
	"context"
	"encoding/json"
	"errors"

	"ai-modelgen-be/internal/dto"
	"ai-modelgen-be/internal/entity"
	"ai-modelgen-be/internal/pkg/logger"
	"ai-modelgen-be/internal/repository/unitofwork"
	"ai-modelgen-be/pkg/events"
	"ai-modelgen-be/pkg/meshy"

	"github.com/ThreeDotsLabs/watermill/message"
)

// ConsumerService is the background safety net behind GetStatus: it polls
// every paid generation until the provider settles, so terminal outcomes land
// on the record even when the frontend never asks again.
type ConsumerService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  IPublisherService
	meshy      *meshy.Client
	events     EventPublisher
	logger     logger.ILogger
}

func NewConsumerService(
	uowFactory unitofwork.RepositoryFactory,
	publisher IPublisherService,
	meshyClient *meshy.Client,
	eventPublisher EventPublisher,
	logger logger.ILogger,
) *ConsumerService {
	return &ConsumerService{
		uowFactory: uowFactory,
		publisher:  publisher,
		meshy:      meshyClient,
		events:     eventPublisher,
		logger:     logger,
	}
}

// Run blocks consuming poll tasks until the context is canceled. Intended to
// run as a single goroutine next to the HTTP server.
func (s *ConsumerService) Run(ctx context.Context) error {
	messages, err := s.publisher.Subscribe(ctx, TopicPollTasks)
	if err != nil {
		return err
	}

	s.logger.Info("ConsumerService", "Poll worker started", nil)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			s.handle(ctx, msg)
		}
	}
}

func (s *ConsumerService) handle(ctx context.Context, msg *message.Message) {
	var task dto.PollTaskMessage
	if err := json.Unmarshal(msg.Payload, &task); err != nil {
		s.logger.Error("ConsumerService", "Unreadable poll task dropped", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		msg.Ack()
		return
	}

	result, err := s.meshy.PollUntilTerminal(ctx, task.TaskType, task.TaskId)
	if err != nil {
		var timeout *meshy.ErrPollTimeout
		if errors.As(err, &timeout) {
			// The poll budget is the retry policy; a stuck task stays
			// PENDING and the next status read picks it up.
			s.logger.Warn("ConsumerService", "Poll budget exhausted", map[string]interface{}{
				"task_id":  task.TaskId,
				"attempts": timeout.Attempts,
			})
			msg.Ack()
			return
		}
		if errors.Is(err, context.Canceled) {
			msg.Nack()
			return
		}
		s.logger.Error("ConsumerService", "Poll failed", map[string]interface{}{
			"task_id": task.TaskId,
			"error":   err.Error(),
		})
		msg.Ack()
		return
	}

	status := entity.ModelCompleted
	if result.Status == meshy.StatusFailed {
		status = entity.ModelFailed
	}

	var modelUrl, thumbnailUrl *string
	if result.ModelUrls.GLB != "" {
		modelUrl = &result.ModelUrls.GLB
	}
	if result.ThumbnailUrl != "" {
		thumbnailUrl = &result.ThumbnailUrl
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ModelRepository().UpdateTerminalStatus(ctx, task.TaskId, status, modelUrl, thumbnailUrl); err != nil {
		s.logger.Error("ConsumerService", "Terminal status write failed", map[string]interface{}{
			"task_id": task.TaskId,
			"error":   err.Error(),
		})
		msg.Nack()
		return
	}

	if s.events != nil {
		if err := s.events.Publish(ctx, events.NewModelTerminal(task.TaskId, task.UserId, string(status))); err != nil {
			s.logger.Warn("ConsumerService", "Event publish failed", map[string]interface{}{
				"task_id": task.TaskId,
				"error":   err.Error(),
			})
		}
	}

	s.logger.Info("ConsumerService", "Task settled", map[string]interface{}{
		"task_id": task.TaskId,
		"status":  string(status),
	})
	msg.Ack()
}
