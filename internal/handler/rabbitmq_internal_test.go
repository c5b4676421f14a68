package handler

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/handler/mocks"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/tasks"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/pkg/v1/commander"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var logger = zerolog.Nop()

func encodeCommand(t *testing.T, productID, taskID string) []byte {
	t.Helper()

	message, err := json.Marshal(commander.ScrapeCommand{ProductID: productID, TaskID: taskID})
	require.NoError(t, err)

	return message
}

func TestUnitHandle(t *testing.T) {
	productID := uuid.New()
	taskID := uuid.NewString()

	runner := mocks.NewRunner(t)
	tracker := mocks.NewTaskTracker(t)

	tracker.On("Set", mock.Anything, taskID, tasks.StateRunning, "").Return(nil)
	runner.On("Run", mock.Anything, productID).Return(nil).Once()
	tracker.On("Set", mock.Anything, taskID, tasks.StateSucceeded, "").Return(nil)

	han := NewHandler(nil, runner, tracker, &logger)

	err := han.handle(context.TODO(), encodeCommand(t, productID.String(), taskID))

	require.NoError(t, err, "shouldn't return any error")
}

func TestUnitHandleRetriesThenSucceeds(t *testing.T) {
	productID := uuid.New()
	taskID := uuid.NewString()

	runner := mocks.NewRunner(t)
	tracker := mocks.NewTaskTracker(t)

	tracker.On("Set", mock.Anything, taskID, tasks.StateRunning, "").Return(nil)
	runner.On("Run", mock.Anything, productID).Return(assert.AnError).Once()
	runner.On("Run", mock.Anything, productID).Return(nil).Once()
	tracker.On("Set", mock.Anything, taskID, tasks.StateSucceeded, "").Return(nil)

	han := NewHandler(nil, runner, tracker, &logger, WithRetry(3, time.Millisecond))

	err := han.handle(context.TODO(), encodeCommand(t, productID.String(), taskID))

	require.NoError(t, err, "shouldn't return any error")
	runner.AssertNumberOfCalls(t, "Run", 2)
}

func TestUnitHandleExhaustsRetries(t *testing.T) {
	productID := uuid.New()
	taskID := uuid.NewString()

	runner := mocks.NewRunner(t)
	tracker := mocks.NewTaskTracker(t)

	tracker.On("Set", mock.Anything, taskID, tasks.StateRunning, "").Return(nil)
	runner.On("Run", mock.Anything, productID).Return(assert.AnError)

	var failureInfo string
	tracker.On("Set", mock.Anything, taskID, tasks.StateFailed, mock.Anything).
		Run(func(args mock.Arguments) { failureInfo = args.String(3) }).
		Return(nil)

	han := NewHandler(nil, runner, tracker, &logger, WithRetry(3, time.Millisecond))

	err := han.handle(context.TODO(), encodeCommand(t, productID.String(), taskID))

	require.ErrorIs(t, err, assert.AnError, "should return the cause")
	assert.ErrorContains(t, err, "pipeline failed after 3 attempts", "should report exhausted attempts")
	assert.Equal(t, assert.AnError.Error(), failureInfo, "should record the failure on the task")
	runner.AssertNumberOfCalls(t, "Run", 3)
}

func TestUnitHandleBadMessages(t *testing.T) {
	tests := map[string]struct {
		message []byte
	}{
		"not json":           {message: []byte("not json")},
		"invalid product id": {message: encodeCommandRaw(`{"product_id":"not-a-uuid","task_id":"t"}`)},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			runner := mocks.NewRunner(t)
			tracker := mocks.NewTaskTracker(t)

			han := NewHandler(nil, runner, tracker, &logger)

			err := han.handle(context.TODO(), tt.message)

			require.Error(t, err, "should return an error")
			runner.AssertNotCalled(t, "Run")
		})
	}
}

func encodeCommandRaw(raw string) []byte { return []byte(raw) }

func TestUnitHandleContextCanceledDuringBackoff(t *testing.T) {
	productID := uuid.New()
	taskID := uuid.NewString()

	runner := mocks.NewRunner(t)
	tracker := mocks.NewTaskTracker(t)

	tracker.On("Set", mock.Anything, taskID, tasks.StateRunning, "").Return(nil)
	runner.On("Run", mock.Anything, productID).Return(assert.AnError).Once()

	ctx, cancel := context.WithCancel(context.Background())

	han := NewHandler(nil, runner, tracker, &logger, WithRetry(3, time.Minute))

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	err := han.handle(ctx, encodeCommand(t, productID.String(), taskID))

	require.ErrorIs(t, err, context.Canceled, "should stop waiting when the context closes")
	runner.AssertNumberOfCalls(t, "Run", 1)
}
