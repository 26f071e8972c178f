package task_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repeatry/leitner-api/internal/task"
)

// memoryTaskStore is an in-memory task.TaskStore for runner tests.
type memoryTaskStore struct {
	mu       sync.Mutex
	tasks    map[uuid.UUID]task.Task
	statuses map[uuid.UUID]task.TaskStatus
}

func newMemoryTaskStore() *memoryTaskStore {
	return &memoryTaskStore{
		tasks:    make(map[uuid.UUID]task.Task),
		statuses: make(map[uuid.UUID]task.TaskStatus),
	}
}

func (s *memoryTaskStore) SaveTask(ctx context.Context, t task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks[t.ID()] = t
	s.statuses[t.ID()] = t.Status()
	return nil
}

func (s *memoryTaskStore) UpdateTaskStatus(ctx context.Context, taskID uuid.UUID, status task.TaskStatus, errorMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[taskID] = status
	return nil
}

func (s *memoryTaskStore) GetPendingTasks(ctx context.Context) ([]task.Task, error) {
	return s.byStatus(task.TaskStatusPending), nil
}

func (s *memoryTaskStore) GetProcessingTasks(ctx context.Context, olderThan time.Duration) ([]task.Task, error) {
	return s.byStatus(task.TaskStatusProcessing), nil
}

func (s *memoryTaskStore) byStatus(status task.TaskStatus) []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []task.Task
	for id, st := range s.statuses {
		if st == status {
			out = append(out, s.tasks[id])
		}
	}
	return out
}

func (s *memoryTaskStore) statusOf(taskID uuid.UUID) task.TaskStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statuses[taskID]
}

// testTask is a minimal task.Task whose Execute signals a channel.
type testTask struct {
	id      uuid.UUID
	status  task.TaskStatus
	execute func(ctx context.Context) error
}

func newTestTask(execute func(ctx context.Context) error) *testTask {
	return &testTask{id: uuid.New(), status: task.TaskStatusPending, execute: execute}
}

func (t *testTask) ID() uuid.UUID          { return t.id }
func (t *testTask) Type() string           { return "test" }
func (t *testTask) Payload() []byte        { return nil }
func (t *testTask) Status() task.TaskStatus { return t.status }
func (t *testTask) Execute(ctx context.Context) error {
	if t.execute != nil {
		return t.execute(ctx)
	}
	return nil
}

func waitFor(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for task execution")
	}
}

func TestRunner_SubmitAndExecute(t *testing.T) {
	t.Parallel()

	store := newMemoryTaskStore()
	runner := task.NewRunner(store, task.RunnerConfig{WorkerCount: 1, QueueSize: 10}, nil)
	require.NoError(t, runner.Start())
	defer runner.Stop()

	done := make(chan struct{})
	tk := newTestTask(func(ctx context.Context) error {
		close(done)
		return nil
	})

	require.NoError(t, runner.Submit(context.Background(), tk))
	waitFor(t, done)

	assert.Eventually(t, func() bool {
		return store.statusOf(tk.ID()) == task.TaskStatusCompleted
	}, 5*time.Second, 10*time.Millisecond)
}

func TestRunner_FailedTaskIsMarkedFailed(t *testing.T) {
	t.Parallel()

	store := newMemoryTaskStore()
	runner := task.NewRunner(store, task.RunnerConfig{WorkerCount: 1, QueueSize: 10}, nil)
	require.NoError(t, runner.Start())
	defer runner.Stop()

	done := make(chan struct{})
	tk := newTestTask(func(ctx context.Context) error {
		defer close(done)
		return context.DeadlineExceeded
	})

	require.NoError(t, runner.Submit(context.Background(), tk))
	waitFor(t, done)

	assert.Eventually(t, func() bool {
		return store.statusOf(tk.ID()) == task.TaskStatusFailed
	}, 5*time.Second, 10*time.Millisecond)
}

func TestRunner_RecoversPendingTasksOnStart(t *testing.T) {
	t.Parallel()

	store := newMemoryTaskStore()

	done := make(chan struct{})
	tk := newTestTask(func(ctx context.Context) error {
		close(done)
		return nil
	})

	// Persisted before the runner existed, as after a restart.
	require.NoError(t, store.SaveTask(context.Background(), tk))

	runner := task.NewRunner(store, task.RunnerConfig{WorkerCount: 1, QueueSize: 10}, nil)
	require.NoError(t, runner.Start())
	defer runner.Stop()

	waitFor(t, done)
}

func TestRunner_QueueFull(t *testing.T) {
	t.Parallel()

	store := newMemoryTaskStore()

	// No workers started, so the queue never drains.
	runner := task.NewRunner(store, task.RunnerConfig{WorkerCount: 1, QueueSize: 1}, nil)

	block := newTestTask(nil)
	require.NoError(t, runner.Submit(context.Background(), block))

	err := runner.Submit(context.Background(), newTestTask(nil))
	assert.ErrorIs(t, err, task.ErrQueueFull)
}
