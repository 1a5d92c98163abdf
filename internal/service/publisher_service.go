package service

import (
	"context"
	"encoding/json"
	"fmt"

	"ai-modelgen-be/internal/dto"
	"ai-modelgen-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// TopicPollTasks carries one message per paid generation; the consumer polls
// the provider until the task settles.
const TopicPollTasks = "generation.poll"

type IPublisherService interface {
	PublishPollTask(task dto.PollTaskMessage) error
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
	Close() error
}

type PublisherService struct {
	pubSub *gochannel.GoChannel
	logger logger.ILogger
}

func NewPublisherService(logger logger.ILogger) IPublisherService {
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NopLogger{},
	)
	return &PublisherService{
		pubSub: pubSub,
		logger: logger,
	}
}

func (s *PublisherService) PublishPollTask(task dto.PollTaskMessage) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to marshal poll task: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := s.pubSub.Publish(TopicPollTasks, msg); err != nil {
		return fmt.Errorf("failed to publish poll task: %w", err)
	}

	s.logger.Debug("PublisherService", "Poll task published", map[string]interface{}{
		"task_id":   task.TaskId,
		"task_type": task.TaskType,
	})
	return nil
}

func (s *PublisherService) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return s.pubSub.Subscribe(ctx, topic)
}

func (s *PublisherService) Close() error {
	return s.pubSub.Close()
}
