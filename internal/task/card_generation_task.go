package task

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/repeatry/leitner-api/internal/domain"
	"github.com/repeatry/leitner-api/internal/generation"
	"github.com/repeatry/leitner-api/internal/store"
)

// Construction errors
var (
	ErrNilGenerator = errors.New("generator cannot be nil")
	ErrNilCardStore = errors.New("card store cannot be nil")
	ErrEmptyUserID  = errors.New("user ID cannot be empty")
	ErrEmptyText    = errors.New("text cannot be empty")
)

// cardGenerationPayload is the persisted form of a card generation task.
type cardGenerationPayload struct {
	UserID uuid.UUID `json:"user_id"`
	Text   string    `json:"text"`
}

// CardGenerationTask chunks uploaded text, asks the generator for
// question/answer pairs per chunk, and persists the results as new cards.
type CardGenerationTask struct {
	id        uuid.UUID
	userID    uuid.UUID
	text      string
	db        *sql.DB
	cardStore store.CardStore
	generator generation.Generator
	logger    *slog.Logger
	status    TaskStatus
}

var _ Task = (*CardGenerationTask)(nil)

// ID implements Task.
func (t *CardGenerationTask) ID() uuid.UUID { return t.id }

// Type implements Task.
func (t *CardGenerationTask) Type() string { return TaskTypeCardGeneration }

// Status implements Task.
func (t *CardGenerationTask) Status() TaskStatus { return t.status }

// Payload implements Task.
func (t *CardGenerationTask) Payload() []byte {
	data, err := json.Marshal(cardGenerationPayload{UserID: t.userID, Text: t.text})
	if err != nil {
		t.logger.Error("failed to marshal task payload",
			slog.String("task_id", t.id.String()),
			slog.String("error", err.Error()))
		return nil
	}
	return data
}

// Execute implements Task. Generating zero cards is a successful outcome;
// not every text yields usable pairs.
func (t *CardGenerationTask) Execute(ctx context.Context) error {
	log := t.logger.With(
		slog.String("task_id", t.id.String()),
		slog.String("user_id", t.userID.String()))

	chunks := generation.ChunkText(t.text, generation.DefaultMaxChunkChars)
	log.Info("generating cards", slog.Int("chunks", len(chunks)))

	var cards []*domain.Card
	for i, chunk := range chunks {
		generated, err := t.generator.GenerateCards(ctx, chunk, t.userID)
		if err != nil {
			return fmt.Errorf("failed to generate cards for chunk %d: %w", i, err)
		}
		cards = append(cards, generated...)
	}

	if len(cards) == 0 {
		log.Info("no cards generated")
		return nil
	}

	if err := t.saveCards(ctx, cards); err != nil {
		return fmt.Errorf("failed to save generated cards: %w", err)
	}

	log.Info("cards saved", slog.Int("count", len(cards)))
	return nil
}

func (t *CardGenerationTask) saveCards(ctx context.Context, cards []*domain.Card) error {
	if t.db == nil {
		return t.cardStore.CreateMultiple(ctx, cards)
	}
	return store.RunInTransaction(ctx, t.db, func(ctx context.Context, tx *sql.Tx) error {
		return t.cardStore.WithTx(tx).CreateMultiple(ctx, cards)
	})
}

// CardGenerationTaskFactory builds card generation tasks with their runtime
// dependencies attached, both for fresh submissions and for tasks
// reconstructed from the store during recovery.
type CardGenerationTaskFactory struct {
	db        *sql.DB
	cardStore store.CardStore
	generator generation.Generator
	logger    *slog.Logger
}

var _ Reconstructor = (*CardGenerationTaskFactory)(nil)

// NewCardGenerationTaskFactory creates a task factory. db may be nil in
// tests; card persistence then runs without a transaction.
func NewCardGenerationTaskFactory(
	db *sql.DB,
	cardStore store.CardStore,
	generator generation.Generator,
	logger *slog.Logger,
) (*CardGenerationTaskFactory, error) {
	if cardStore == nil {
		return nil, ErrNilCardStore
	}
	if generator == nil {
		return nil, ErrNilGenerator
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CardGenerationTaskFactory{
		db:        db,
		cardStore: cardStore,
		generator: generator,
		logger:    logger.With(slog.String("component", "card_generation_task")),
	}, nil
}

// NewTask creates a pending task for the given user and text.
func (f *CardGenerationTaskFactory) NewTask(userID uuid.UUID, text string) (*CardGenerationTask, error) {
	if userID == uuid.Nil {
		return nil, ErrEmptyUserID
	}
	if text == "" {
		return nil, ErrEmptyText
	}

	return &CardGenerationTask{
		id:        uuid.New(),
		userID:    userID,
		text:      text,
		db:        f.db,
		cardStore: f.cardStore,
		generator: f.generator,
		logger:    f.logger,
		status:    TaskStatusPending,
	}, nil
}

// Reconstruct implements Reconstructor.
func (f *CardGenerationTaskFactory) Reconstruct(
	id uuid.UUID,
	taskType string,
	payload []byte,
	status TaskStatus,
) (Task, error) {
	if taskType != TaskTypeCardGeneration {
		return nil, fmt.Errorf("unknown task type %q", taskType)
	}

	var p cardGenerationPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal task payload: %w", err)
	}

	return &CardGenerationTask{
		id:        id,
		userID:    p.UserID,
		text:      p.Text,
		db:        f.db,
		cardStore: f.cardStore,
		generator: f.generator,
		logger:    f.logger,
		status:    status,
	}, nil
}
