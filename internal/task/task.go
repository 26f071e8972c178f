package task

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the current state of a task.
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// TaskTypeCardGeneration is the task type for generating cards from text.
const TaskTypeCardGeneration = "card_generation"

// Task is a unit of background work.
type Task interface {
	// ID returns the task's unique identifier.
	ID() uuid.UUID

	// Type returns the task type identifier.
	Type() string

	// Payload returns the task data as a byte slice.
	Payload() []byte

	// Status returns the current task status.
	Status() TaskStatus

	// Execute runs the task logic.
	Execute(ctx context.Context) error
}

// TaskStore persists tasks so unfinished work survives restarts.
type TaskStore interface {
	// SaveTask persists a new task.
	SaveTask(ctx context.Context, task Task) error

	// UpdateTaskStatus updates the status of a task, recording the error
	// message for failed tasks.
	UpdateTaskStatus(ctx context.Context, taskID uuid.UUID, status TaskStatus, errorMsg string) error

	// GetPendingTasks retrieves all tasks in pending status.
	GetPendingTasks(ctx context.Context) ([]Task, error)

	// GetProcessingTasks retrieves tasks in processing status. If olderThan
	// is non-zero, only tasks that entered the state at least that long ago
	// are returned.
	GetProcessingTasks(ctx context.Context, olderThan time.Duration) ([]Task, error)
}

// Reconstructor rebuilds an executable Task from its persisted form. The
// store only holds the type and payload; the reconstructor reattaches the
// dependencies Execute needs.
type Reconstructor interface {
	Reconstruct(id uuid.UUID, taskType string, payload []byte, status TaskStatus) (Task, error)
}
