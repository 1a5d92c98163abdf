package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g. "CREDITS_SPENT").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Ledger and generation lifecycle events.
const (
	TypeCreditsSpent   = "CREDITS_SPENT"
	TypeCreditsEarned  = "CREDITS_EARNED"
	TypeModelCompleted = "MODEL_COMPLETED"
	TypeModelFailed    = "MODEL_FAILED"
)

func NewCreditsSpent(userId string, amount, balanceAfter int, serviceType string) Event {
	return BaseEvent{
		Type: TypeCreditsSpent,
		Data: map[string]interface{}{
			"user_id":       userId,
			"amount":        amount,
			"balance_after": balanceAfter,
			"service_type":  serviceType,
		},
		OccurredAt: time.Now(),
	}
}

func NewCreditsEarned(userId string, amount, balanceAfter int, txnType string) Event {
	return BaseEvent{
		Type: TypeCreditsEarned,
		Data: map[string]interface{}{
			"user_id":       userId,
			"amount":        amount,
			"balance_after": balanceAfter,
			"type":          txnType,
		},
		OccurredAt: time.Now(),
	}
}

func NewModelTerminal(taskId, userId, status string) Event {
	eventType := TypeModelCompleted
	if status == "FAILED" {
		eventType = TypeModelFailed
	}
	return BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"task_id": taskId,
			"user_id": userId,
			"status":  status,
		},
		OccurredAt: time.Now(),
	}
}
