package task_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repeatry/leitner-api/internal/domain"
	"github.com/repeatry/leitner-api/internal/mocks"
	"github.com/repeatry/leitner-api/internal/task"
)

// stubGenerator returns a fixed set of cards (or an error) per chunk.
type stubGenerator struct {
	perChunk []*domain.Card
	err      error
	calls    int
}

func (g *stubGenerator) GenerateCards(ctx context.Context, text string, userID uuid.UUID) ([]*domain.Card, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.perChunk, nil
}

func newFactory(t *testing.T, cards *mocks.CardStore, gen *stubGenerator) *task.CardGenerationTaskFactory {
	t.Helper()
	factory, err := task.NewCardGenerationTaskFactory(nil, cards, gen, nil)
	require.NoError(t, err)
	return factory
}

func TestNewCardGenerationTaskFactory_Validation(t *testing.T) {
	t.Parallel()

	_, err := task.NewCardGenerationTaskFactory(nil, nil, &stubGenerator{}, nil)
	assert.ErrorIs(t, err, task.ErrNilCardStore)

	_, err = task.NewCardGenerationTaskFactory(nil, mocks.NewCardStore(), nil, nil)
	assert.ErrorIs(t, err, task.ErrNilGenerator)
}

func TestNewTask_Validation(t *testing.T) {
	t.Parallel()

	factory := newFactory(t, mocks.NewCardStore(), &stubGenerator{})

	_, err := factory.NewTask(uuid.Nil, "some text")
	assert.ErrorIs(t, err, task.ErrEmptyUserID)

	_, err = factory.NewTask(uuid.New(), "")
	assert.ErrorIs(t, err, task.ErrEmptyText)
}

func TestCardGenerationTask_Execute(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	card, err := domain.NewCard(userID, "question", "answer")
	require.NoError(t, err)

	cards := mocks.NewCardStore()
	gen := &stubGenerator{perChunk: []*domain.Card{card}}
	factory := newFactory(t, cards, gen)

	tk, err := factory.NewTask(userID, "Some text to generate cards from.")
	require.NoError(t, err)
	require.Equal(t, task.TaskStatusPending, tk.Status())
	require.Equal(t, task.TaskTypeCardGeneration, tk.Type())

	require.NoError(t, tk.Execute(context.Background()))
	assert.Equal(t, 1, gen.calls)
	require.Len(t, cards.Cards, 1)
	assert.Equal(t, 1, cards.Cards[0].Box, "generated cards start in box 1")
}

func TestCardGenerationTask_Execute_ZeroCardsIsSuccess(t *testing.T) {
	t.Parallel()

	cards := mocks.NewCardStore()
	factory := newFactory(t, cards, &stubGenerator{})

	tk, err := factory.NewTask(uuid.New(), "Nothing useful here.")
	require.NoError(t, err)

	require.NoError(t, tk.Execute(context.Background()))
	assert.Empty(t, cards.Cards)
}

func TestCardGenerationTask_Execute_GeneratorError(t *testing.T) {
	t.Parallel()

	genErr := errors.New("model unavailable")
	factory := newFactory(t, mocks.NewCardStore(), &stubGenerator{err: genErr})

	tk, err := factory.NewTask(uuid.New(), "Some text.")
	require.NoError(t, err)

	err = tk.Execute(context.Background())
	assert.ErrorIs(t, err, genErr)
}

func TestCardGenerationTask_PayloadRoundTrip(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	factory := newFactory(t, mocks.NewCardStore(), &stubGenerator{})

	original, err := factory.NewTask(userID, "Round trip text.")
	require.NoError(t, err)

	rebuilt, err := factory.Reconstruct(
		original.ID(), original.Type(), original.Payload(), task.TaskStatusPending)
	require.NoError(t, err)

	assert.Equal(t, original.ID(), rebuilt.ID())
	assert.Equal(t, original.Payload(), rebuilt.Payload())
}

func TestReconstruct_UnknownType(t *testing.T) {
	t.Parallel()

	factory := newFactory(t, mocks.NewCardStore(), &stubGenerator{})

	_, err := factory.Reconstruct(uuid.New(), "bogus_type", nil, task.TaskStatusPending)
	assert.Error(t, err)
}
