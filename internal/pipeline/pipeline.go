package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/embedder"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/normalizer"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/platform"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/platform/models"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/platform/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

//go:generate mockery --name Scraper --filename scraper.go
//go:generate mockery --name Embedder --filename embedder.go
//go:generate mockery --name Storage --filename storage.go

// Scraper extracts product fields from a product page.
type Scraper interface {
	Scrape(ctx context.Context, url string) (*models.ProductFields, error)
}

// Embedder chunks, embeds and stores product text.
type Embedder interface {
	// EmbedAndStore embeds text under the product's namespace and
	// returns the number of vectors stored.
	EmbedAndStore(ctx context.Context, productID, text string) (int, error)
	// DeleteNamespace removes every vector of a product.
	DeleteNamespace(ctx context.Context, productID string) error
}

// Storage is product, review and Q&A state storage.
type Storage interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*storage.Product, error)
	SetProductStatus(ctx context.Context, id uuid.UUID, status string) error
	MarkProductFailed(ctx context.Context, id uuid.UUID, message string) error
	MarkProductCompleted(ctx context.Context, id uuid.UUID, namespace string, vectorCount int) error
	UpdateScrapedFields(ctx context.Context, id uuid.UUID, fields *models.ProductFields, scrapedAt time.Time) error
	CreateReviews(ctx context.Context, productID uuid.UUID, reviews []models.Review) error
	CreateQuestionAnswers(ctx context.Context, productID uuid.UUID, questions []string) error
	ListProductsOlderThan(ctx context.Context, cutoff time.Time) ([]storage.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

// Clock provides times.
type Clock interface {
	// Now returns current UTC time.
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// Option is custom configuration of Runner.
type Option func(r *Runner)

// Runner executes one scrape -> normalize -> embed pipeline run per
// product and persists the run's state transitions. It does not guard
// against two concurrent runs for the same product; the creation-time
// existence check is responsible for not double-submitting.
type Runner struct {
	scraper  Scraper
	embedder Embedder
	storage  Storage
	clock    Clock
	logger   *zerolog.Logger
}

// NewRunner returns new Runner.
func NewRunner(scraper Scraper, embedder Embedder, storage Storage, logger *zerolog.Logger, ops ...Option) *Runner {
	runner := &Runner{
		scraper:  scraper,
		embedder: embedder,
		storage:  storage,
		clock:    systemClock{},
		logger:   logger,
	}

	for _, op := range ops {
		op(runner)
	}

	return runner
}

// WithClock sets Runner's custom Clock.
func WithClock(c Clock) Option {
	return func(r *Runner) {
		r.clock = c
	}
}

// Run runs the pipeline for product id: scrape the page, persist the
// extracted fields with reviews and Q&A entries, then embed the
// normalized text into the product's namespace. Any failure flips the
// product to failed with the error message recorded and is returned to
// the caller for retry handling.
func (r *Runner) Run(ctx context.Context, productID uuid.UUID) error {
	product, err := r.storage.GetProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("can't load product: %w", err)
	}

	if err := r.storage.SetProductStatus(ctx, productID, models.StatusScraping); err != nil {
		return fmt.Errorf("can't start scraping: %w", err)
	}

	r.logger.Info().
		Str("productId", productID.String()).
		Str("url", product.URL).
		Msg("scraping started")

	fields, err := r.scraper.Scrape(ctx, product.URL)
	if err != nil {
		return r.fail(ctx, productID, fmt.Errorf("can't scrape product page: %w", err))
	}

	if err := r.storage.UpdateScrapedFields(ctx, productID, fields, r.clock.Now()); err != nil {
		return r.fail(ctx, productID, fmt.Errorf("can't store scraped fields: %w", err))
	}
	if err := r.storage.CreateReviews(ctx, productID, fields.Reviews); err != nil {
		return r.fail(ctx, productID, fmt.Errorf("can't store reviews: %w", err))
	}
	if err := r.storage.CreateQuestionAnswers(ctx, productID, fields.QA); err != nil {
		return r.fail(ctx, productID, fmt.Errorf("can't store question answers: %w", err))
	}
	if err := r.storage.SetProductStatus(ctx, productID, models.StatusEmbedding); err != nil {
		return r.fail(ctx, productID, fmt.Errorf("can't start embedding: %w", err))
	}

	r.logger.Info().
		Str("productId", productID.String()).
		Int("reviews", len(fields.Reviews)).
		Int("questions", len(fields.QA)).
		Msg("scraped data stored")

	text := normalizer.Normalize(fields)
	if text == "" {
		err := platform.WrapError(platform.KindEmbedding, fmt.Errorf("no text to embed"))
		return r.fail(ctx, productID, err)
	}

	vectorCount, err := r.embedder.EmbedAndStore(ctx, productID.String(), text)
	if err != nil {
		return r.fail(ctx, productID, fmt.Errorf("can't embed product text: %w", err))
	}

	namespace := embedder.Namespace(productID.String())
	if err := r.storage.MarkProductCompleted(ctx, productID, namespace, vectorCount); err != nil {
		return r.fail(ctx, productID, fmt.Errorf("can't complete pipeline run: %w", err))
	}

	r.logger.Info().
		Str("productId", productID.String()).
		Int("vectorCount", vectorCount).
		Msg("pipeline run completed")

	return nil
}

// fail records the failure on the product and returns the original
// error. The message stored is the error text only, not a trace.
func (r *Runner) fail(ctx context.Context, productID uuid.UUID, runErr error) error {
	if err := r.storage.MarkProductFailed(ctx, productID, runErr.Error()); err != nil {
		r.logger.Error().
			Err(err).
			Str("productId", productID.String()).
			Msg("can't mark product failed")
	}

	return runErr
}
