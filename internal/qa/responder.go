package qa

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/platform"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/platform/models"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// FallbackAnswer is returned when similarity search yields no matches.
// No LLM call is made in that case.
const FallbackAnswer = "I don't have enough information to answer this question."

const (
	defaultTopK  = 5
	historyTurns = 5
	cacheTTL     = time.Hour
)

//go:generate mockery --name Retriever --filename retriever.go
//go:generate mockery --name LLM --filename llm.go
//go:generate mockery --name AnswerCache --filename answercache.go

// Retriever returns the most similar chunks of a product's corpus.
type Retriever interface {
	QuerySimilar(ctx context.Context, productID, query string, topK int) ([]models.ContextChunk, error)
}

// LLM generates an answer from a prompt.
type LLM interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// AnswerCache stores answers keyed by product and question.
type AnswerCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Option is custom configuration of Responder.
type Option func(r *Responder)

// Responder answers product questions over the retrieval corpus.
// Answers are cached for an hour; cache hits are returned verbatim.
type Responder struct {
	retriever Retriever
	llm       LLM
	cache     AnswerCache
	topK      int
	logger    *zerolog.Logger
}

// NewResponder returns new Responder.
func NewResponder(retriever Retriever, llm LLM, cache AnswerCache, logger *zerolog.Logger, ops ...Option) *Responder {
	responder := &Responder{
		retriever: retriever,
		llm:       llm,
		cache:     cache,
		topK:      defaultTopK,
		logger:    logger,
	}

	for _, op := range ops {
		op(responder)
	}

	return responder
}

// WithTopK sets Responder's custom similarity match count.
func WithTopK(topK int) Option {
	return func(r *Responder) {
		r.topK = topK
	}
}

// Answer answers question about product using the most similar corpus
// chunks as context and at most the last five history turns as a
// transcript. Zero similarity matches yield the fixed fallback answer
// with empty context and no LLM call. Errors propagate without retry;
// Q&A is an interactive path where retry belongs to the client.
func (r *Responder) Answer(ctx context.Context, productID, question string, history []models.ChatTurn) (*models.QAResult, error) {
	key := cacheKey(productID, question)

	if cached, ok, err := r.cache.Get(ctx, key); err != nil {
		r.logger.Warn().Err(err).Msg("can't read answer cache")
	} else if ok {
		var result models.QAResult
		if err := json.Unmarshal(cached, &result); err == nil {
			r.logger.Info().Str("productId", productID).Msg("answer cache hit")
			return &result, nil
		}
		r.logger.Warn().Err(err).Msg("can't decode cached answer")
	}

	chunks, err := r.retriever.QuerySimilar(ctx, productID, question, r.topK)
	if err != nil {
		return nil, fmt.Errorf("can't retrieve context: %w", err)
	}

	if len(chunks) == 0 {
		return &models.QAResult{
			Answer:        FallbackAnswer,
			ContextChunks: []models.ContextChunk{},
		}, nil
	}

	prompt := buildPrompt(chunks, history, question)

	answer, err := r.llm.Generate(ctx, prompt)
	if err != nil {
		return nil, platform.WrapError(platform.KindLLM, fmt.Errorf("can't generate answer: %w", err))
	}

	result := &models.QAResult{
		Answer:        answer,
		ContextChunks: chunks,
	}

	if encoded, err := json.Marshal(result); err != nil {
		r.logger.Warn().Err(err).Msg("can't encode answer for cache")
	} else if err := r.cache.Set(ctx, key, encoded, cacheTTL); err != nil {
		r.logger.Warn().Err(err).Msg("can't write answer cache")
	}

	return result, nil
}

func buildPrompt(chunks []models.ContextChunk, history []models.ChatTurn, question string) string {
	contextText := strings.Join(
		lo.Map(chunks, func(chunk models.ContextChunk, _ int) string { return chunk.Text }),
		"\n\n",
	)

	if len(history) > historyTurns {
		history = history[len(history)-historyTurns:]
	}
	historyText := strings.Join(
		lo.Map(history, func(turn models.ChatTurn, _ int) string {
			return turn.Role + ": " + turn.Content
		}),
		"\n",
	)

	return fmt.Sprintf(promptTemplate, contextText, historyText, question)
}

func cacheKey(productID, question string) string {
	return fmt.Sprintf("qa_%s_%x", productID, sha256.Sum256([]byte(question)))
}
