package nats

import (
	"testing"

	"ai-modelgen-be/pkg/events"

	"github.com/stretchr/testify/assert"
)

func TestSubjectForEventTypes(t *testing.T) {
	tests := []struct {
		eventType string
		subject   string
	}{
		{events.TypeCreditsSpent, "modelgen.credits_spent"},
		{events.TypeCreditsEarned, "modelgen.credits_earned"},
		{events.TypeModelCompleted, "modelgen.model_completed"},
		{events.TypeModelFailed, "modelgen.model_failed"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.subject, subjectFor(tt.eventType))
	}
}
