package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/platform/rabbitmq"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/tasks"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/pkg/v1/commander"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	defaultMaxAttempts = 3
	defaultBackoff     = 60 * time.Second
)

//go:generate mockery --name Runner --filename runner.go
//go:generate mockery --name TaskTracker --filename tasktracker.go

// Runner runs the scrape-and-embed pipeline for one product.
type Runner interface {
	Run(ctx context.Context, productID uuid.UUID) error
}

// TaskTracker records task lifecycle states.
type TaskTracker interface {
	Set(ctx context.Context, taskID, state, info string) error
}

// Option is custom configuration of RMQHandler.
type Option func(h *RMQHandler)

// RMQHandler handles scrape commands consumed from RabbitMQ. A failed
// pipeline run is retried in place with a fixed backoff before the task
// is reported failed.
type RMQHandler struct {
	rmq         *rabbitmq.RabbitMQ
	runner      Runner
	tracker     TaskTracker
	logger      *zerolog.Logger
	maxAttempts int
	backoff     time.Duration
}

// NewHandler returns new RMQHandler.
func NewHandler(rmq *rabbitmq.RabbitMQ, runner Runner, tracker TaskTracker, logger *zerolog.Logger, ops ...Option) *RMQHandler {
	han := &RMQHandler{
		rmq:         rmq,
		runner:      runner,
		tracker:     tracker,
		logger:      logger,
		maxAttempts: defaultMaxAttempts,
		backoff:     defaultBackoff,
	}

	for _, op := range ops {
		op(han)
	}

	return han
}

// WithRetry sets RMQHandler's custom retry attempts and backoff.
func WithRetry(maxAttempts int, backoff time.Duration) Option {
	return func(h *RMQHandler) {
		h.maxAttempts = maxAttempts
		h.backoff = backoff
	}
}

// Start starts consuming and handling scrape commands from queue.
func (h *RMQHandler) Start(ctx context.Context, queue string) error {
	errorsChan, err := h.rmq.Consume(ctx, queue, h.handle)
	if err != nil {
		return err
	}

	go func() {
		for err := range errorsChan {
			h.logger.Error().
				Err(err).
				Msg("can't handle message")
		}
	}()

	return nil
}

func (h *RMQHandler) handle(ctx context.Context, message []byte) error {
	cmd, err := decodeMessage(message)
	if err != nil {
		return err
	}

	productID, err := uuid.Parse(cmd.ProductID)
	if err != nil {
		return fmt.Errorf("can't parse product id: %w", err)
	}

	h.setTaskState(ctx, cmd.TaskID, tasks.StateRunning, "")

	h.logger.Info().
		Str("productId", cmd.ProductID).
		Str("taskId", cmd.TaskID).
		Msg("pipeline run started")

	var runErr error
	for attempt := 1; attempt <= h.maxAttempts; attempt++ {
		runErr = h.runner.Run(ctx, productID)
		if runErr == nil {
			h.setTaskState(ctx, cmd.TaskID, tasks.StateSucceeded, "")
			h.logger.Info().
				Str("productId", cmd.ProductID).
				Str("taskId", cmd.TaskID).
				Msg("pipeline run finished")
			return nil
		}

		h.logger.Warn().
			Err(runErr).
			Str("productId", cmd.ProductID).
			Int("attempt", attempt).
			Int("maxAttempts", h.maxAttempts).
			Msg("pipeline run failed")

		if attempt < h.maxAttempts {
			if err := h.wait(ctx); err != nil {
				return err
			}
		}
	}

	h.setTaskState(ctx, cmd.TaskID, tasks.StateFailed, runErr.Error())

	return fmt.Errorf("pipeline failed after %d attempts: %w", h.maxAttempts, runErr)
}

func (h *RMQHandler) wait(ctx context.Context) error {
	timer := time.NewTimer(h.backoff)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// setTaskState records the task state; the tracker is informational, a
// write failure never aborts the run.
func (h *RMQHandler) setTaskState(ctx context.Context, taskID, state, info string) {
	if err := h.tracker.Set(ctx, taskID, state, info); err != nil {
		h.logger.Warn().
			Err(err).
			Str("taskId", taskID).
			Msg("can't update task state")
	}
}

func decodeMessage(msg []byte) (*commander.ScrapeCommand, error) {
	var cmd commander.ScrapeCommand
	err := json.Unmarshal(msg, &cmd)
	if err != nil {
		return nil, fmt.Errorf("can't decode scrape command: %w", err)
	}

	return &cmd, err
}
