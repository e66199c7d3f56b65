package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	t.Parallel()

	profileID := uuid.New()
	payload := ScoreChangedPayload{PreviousScore: 680, Score: 702, Band: "good", Reason: "account_added"}

	event, err := NewEvent(TypeScoreChanged, profileID, payload)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, event.ID)
	assert.Equal(t, TypeScoreChanged, event.Type)
	assert.Equal(t, profileID, event.ProfileID)
	assert.WithinDuration(t, time.Now(), event.CreatedAt, 2*time.Second)

	var decoded ScoreChangedPayload
	require.NoError(t, event.UnmarshalPayload(&decoded))
	assert.Equal(t, payload, decoded)
}

func TestNewEvent_UnencodablePayload(t *testing.T) {
	t.Parallel()

	_, err := NewEvent(TypeScoreChanged, uuid.New(), make(chan int))
	assert.Error(t, err)
}

// MockEventHandler implements the EventHandler interface for testing
type MockEventHandler struct {
	LastEvent    *Event
	HandlerError error
	HandledCount int
}

// HandleEvent implements the EventHandler interface
func (h *MockEventHandler) HandleEvent(ctx context.Context, event *Event) error {
	h.LastEvent = event
	h.HandledCount++
	return h.HandlerError
}

func TestEventHandlerFunc(t *testing.T) {
	t.Parallel()

	var got *Event
	h := EventHandlerFunc(func(_ context.Context, e *Event) error {
		got = e
		return errors.New("boom")
	})

	event, err := NewEvent("test", uuid.New(), nil)
	require.NoError(t, err)
	assert.EqualError(t, h.HandleEvent(context.Background(), event), "boom")
	assert.Same(t, event, got)
}
