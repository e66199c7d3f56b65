package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryEventEmitter(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	newEvent := func(t *testing.T) *Event {
		event, err := NewEvent(TypeScoreChanged, uuid.New(), ScoreChangedPayload{Score: 700})
		require.NoError(t, err)
		return event
	}

	t.Run("emit event with no handlers", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		assert.NoError(t, emitter.EmitEvent(context.Background(), newEvent(t)))
	})

	t.Run("emit event with successful handlers", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(logger)
		handler1 := &MockEventHandler{}
		handler2 := &MockEventHandler{}
		emitter.RegisterHandler(handler1)
		emitter.RegisterHandler(handler2)

		event := newEvent(t)
		require.NoError(t, emitter.EmitEvent(context.Background(), event))

		assert.Equal(t, 1, handler1.HandledCount)
		assert.Equal(t, 1, handler2.HandledCount)
		assert.Same(t, event, handler1.LastEvent)
		assert.Same(t, event, handler2.LastEvent)
	})

	t.Run("first error returned and later handlers still run", func(t *testing.T) {
		emitter := NewInMemoryEventEmitter(nil)
		first := &MockEventHandler{HandlerError: errors.New("first failure")}
		second := &MockEventHandler{HandlerError: errors.New("second failure")}
		third := &MockEventHandler{}
		emitter.RegisterHandler(first)
		emitter.RegisterHandler(second)
		emitter.RegisterHandler(third)

		err := emitter.EmitEvent(context.Background(), newEvent(t))
		assert.EqualError(t, err, "first failure")
		assert.Equal(t, 1, first.HandledCount)
		assert.Equal(t, 1, second.HandledCount)
		assert.Equal(t, 1, third.HandledCount)
	})
}
