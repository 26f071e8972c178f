package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"google.golang.org/genai"

	"github.com/repeatry/leitner-api/internal/config"
	"github.com/repeatry/leitner-api/internal/domain"
	"github.com/repeatry/leitner-api/internal/generation"
)

const promptTemplate = `Create up to 5 flashcards from this text.
Return ONLY JSON in this format:
[
  {"question": "Q1", "answer": "A1"},
  {"question": "Q2", "answer": "A2"}
]

Text:
%s`

// cardSchema is one question/answer pair in the model's JSON response.
type cardSchema struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Generator implements generation.Generator using the Gemini API.
type Generator struct {
	logger     *slog.Logger
	client     *genai.Client
	model      string
	maxRetries int
	baseDelay  time.Duration
}

var _ generation.Generator = (*Generator)(nil)

// NewGenerator creates a Gemini-backed generator from the LLM configuration.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return &Generator{
		logger:     logger.With(slog.String("component", "gemini_generator")),
		client:     client,
		model:      cfg.ModelName,
		maxRetries: 3,
		baseDelay:  2 * time.Second,
	}, nil
}

// GenerateCards implements generation.Generator.
func (g *Generator) GenerateCards(ctx context.Context, text string, userID uuid.UUID) ([]*domain.Card, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	if userID == uuid.Nil {
		return nil, errors.New("user ID cannot be empty")
	}

	prompt := fmt.Sprintf(promptTemplate, text)

	raw, err := g.callWithRetry(ctx, prompt)
	if err != nil {
		return nil, err
	}

	pairs := parsePairs(raw)
	cards := make([]*domain.Card, 0, len(pairs))
	for _, pair := range pairs {
		if pair.Question == "" || pair.Answer == "" {
			continue
		}
		card, err := domain.NewCard(userID, pair.Question, pair.Answer)
		if err != nil {
			g.logger.WarnContext(ctx, "skipping invalid generated card",
				slog.String("error", err.Error()))
			continue
		}
		cards = append(cards, card)
	}

	g.logger.InfoContext(ctx, "cards generated",
		slog.String("user_id", userID.String()),
		slog.Int("count", len(cards)))
	return cards, nil
}

// callWithRetry calls the Gemini API with exponential backoff and jitter.
// Permanent errors (blocked content, unparseable responses) are returned
// immediately; only transient API errors are retried.
func (g *Generator) callWithRetry(ctx context.Context, prompt string) (string, error) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for attempt := 0; ; attempt++ {
		raw, err := g.call(ctx, prompt)
		if err == nil {
			return raw, nil
		}

		if errors.Is(err, generation.ErrContentBlocked) || errors.Is(err, generation.ErrInvalidResponse) {
			return "", err
		}
		if attempt >= g.maxRetries {
			return "", fmt.Errorf("%w: exceeded %d attempts: %v",
				generation.ErrTransientFailure, g.maxRetries+1, err)
		}

		backoff := float64(g.baseDelay) * math.Pow(2, float64(attempt))
		jitter := 0.5 + rng.Float64()*0.5
		delay := time.Duration(backoff * jitter)

		g.logger.WarnContext(ctx, "gemini call failed, retrying",
			slog.Int("attempt", attempt+1),
			slog.Duration("delay", delay),
			slog.String("error", err.Error()))

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctx.Err())
		}
	}
}

func (g *Generator) call(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini API call: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: finish reason safety", generation.ErrContentBlocked)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}

// parsePairs extracts question/answer pairs from the model output. The model
// is asked for bare JSON but often wraps it in prose or code fences, so a
// failed parse falls back to the outermost bracketed slice of the text.
// Unusable output yields an empty list, not an error.
func parsePairs(raw string) []cardSchema {
	var pairs []cardSchema
	if err := json.Unmarshal([]byte(raw), &pairs); err == nil {
		return pairs
	}

	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end == -1 || end < start {
		return nil
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &pairs); err != nil {
		return nil
	}
	return pairs
}
