// Package tasks tracks the lifecycle of submitted pipeline tasks. The
// tracked state is informational only; the product's own status column
// stays the authoritative application-level state.
package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Task lifecycle states.
const (
	StateQueued    = "queued"
	StateRunning   = "running"
	StateSucceeded = "succeeded"
	StateFailed    = "failed"
)

const statusTTL = 24 * time.Hour

// Status is the tracked state of one task.
type Status struct {
	State     string    `json:"state"`
	Info      string    `json:"info,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Tracker stores task statuses in Redis. The worker writes statuses,
// the API reads them for the secondary task_status field.
type Tracker struct {
	client *redis.Client
}

// NewTracker returns new Tracker.
func NewTracker(client *redis.Client) *Tracker {
	return &Tracker{client: client}
}

// Set stores the state of taskID.
func (t *Tracker) Set(ctx context.Context, taskID, state, info string) error {
	status := Status{
		State:     state,
		Info:      info,
		UpdatedAt: time.Now().UTC(),
	}
	encoded, err := json.Marshal(status)
	if err != nil {
		return fmt.Errorf("can't encode task status: %w", err)
	}

	if err := t.client.Set(ctx, key(taskID), encoded, statusTTL).Err(); err != nil {
		return fmt.Errorf("can't store task status: %w", err)
	}

	return nil
}

// Get returns the state of taskID or nil when the task is unknown or
// its status expired.
func (t *Tracker) Get(ctx context.Context, taskID string) (*Status, error) {
	encoded, err := t.client.Get(ctx, key(taskID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("can't read task status: %w", err)
	}

	var status Status
	if err := json.Unmarshal(encoded, &status); err != nil {
		return nil, fmt.Errorf("can't decode task status: %w", err)
	}

	return &status, nil
}

func key(taskID string) string {
	return "task_" + taskID
}
