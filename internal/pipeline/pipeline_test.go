package pipeline_test

import (
	"context"
	"testing"
	"time"

	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/embedder"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/normalizer"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/pipeline"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/pipeline/mocks"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/platform"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/platform/models"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/platform/models/modelstesting"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/platform/storage"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	logger = zerolog.Nop()
	now    = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
)

type fakeClock struct{ now time.Time }

func (c fakeClock) Now() time.Time { return c.now }

func TestUnitRun(t *testing.T) {
	productID := uuid.New()
	product := &storage.Product{
		ID:     productID,
		URL:    "https://www.amazon.com/dp/B000000000",
		Status: models.StatusPending,
	}
	fields := modelstesting.FakeProductFields()
	text := normalizer.Normalize(&fields)
	require.NotEmpty(t, text, "fake fields should normalize to text")

	scraper := mocks.NewScraper(t)
	emb := mocks.NewEmbedder(t)
	store := mocks.NewStorage(t)

	store.On("GetProduct", mock.Anything, productID).Return(product, nil)
	store.On("SetProductStatus", mock.Anything, productID, models.StatusScraping).Return(nil)
	scraper.On("Scrape", mock.Anything, product.URL).Return(&fields, nil)
	store.On("UpdateScrapedFields", mock.Anything, productID, &fields, now).Return(nil)
	store.On("CreateReviews", mock.Anything, productID, fields.Reviews).Return(nil)
	store.On("CreateQuestionAnswers", mock.Anything, productID, fields.QA).Return(nil)
	store.On("SetProductStatus", mock.Anything, productID, models.StatusEmbedding).Return(nil)
	emb.On("EmbedAndStore", mock.Anything, productID.String(), text).Return(7, nil)
	store.On("MarkProductCompleted", mock.Anything, productID, embedder.Namespace(productID.String()), 7).Return(nil)

	runner := pipeline.NewRunner(scraper, emb, store, &logger, pipeline.WithClock(fakeClock{now: now}))

	err := runner.Run(context.TODO(), productID)

	require.NoError(t, err, "shouldn't return any error")
	store.AssertNotCalled(t, "MarkProductFailed")
}

func TestUnitRunStubbedScenario(t *testing.T) {
	productID := uuid.New()
	product := &storage.Product{
		ID:     productID,
		URL:    "https://www.amazon.com/dp/TEST123",
		Status: models.StatusPending,
	}
	fields := models.ProductFields{
		Title:    "Widget",
		Features: "Durable",
		Reviews: []models.Review{{
			Text:         "Great",
			Rating:       "5",
			CustomerName: "Al",
			Title:        "Nice",
			HelpfulVotes: "1 person found this helpful",
		}},
		QA: []string{"Is it blue? Yes"},
	}

	scraper := mocks.NewScraper(t)
	emb := mocks.NewEmbedder(t)
	store := mocks.NewStorage(t)

	store.On("GetProduct", mock.Anything, productID).Return(product, nil)
	store.On("SetProductStatus", mock.Anything, productID, models.StatusScraping).Return(nil)
	scraper.On("Scrape", mock.Anything, product.URL).Return(&fields, nil)
	store.On("UpdateScrapedFields", mock.Anything, productID, &fields, mock.Anything).Return(nil)

	var storedReviews []models.Review
	store.On("CreateReviews", mock.Anything, productID, mock.Anything).
		Run(func(args mock.Arguments) { storedReviews = args.Get(2).([]models.Review) }).
		Return(nil)

	var storedQuestions []string
	store.On("CreateQuestionAnswers", mock.Anything, productID, mock.Anything).
		Run(func(args mock.Arguments) { storedQuestions = args.Get(2).([]string) }).
		Return(nil)

	store.On("SetProductStatus", mock.Anything, productID, models.StatusEmbedding).Return(nil)
	emb.On("EmbedAndStore", mock.Anything, productID.String(), mock.Anything).Return(1, nil)
	store.On("MarkProductCompleted", mock.Anything, productID, embedder.Namespace(productID.String()), 1).Return(nil)

	runner := pipeline.NewRunner(scraper, emb, store, &logger)

	err := runner.Run(context.TODO(), productID)

	require.NoError(t, err, "shouldn't return any error")
	require.Len(t, storedReviews, 1, "should store one review")
	assert.Equal(t, "Al", storedReviews[0].CustomerName, "should keep the reviewer name")
	assert.Equal(t, []string{"Is it blue? Yes"}, storedQuestions, "should store the question entry")
}

func TestUnitRunScrapeFailure(t *testing.T) {
	productID := uuid.New()
	product := &storage.Product{ID: productID, URL: "https://www.amazon.com/dp/B000000000"}

	scraper := mocks.NewScraper(t)
	emb := mocks.NewEmbedder(t)
	store := mocks.NewStorage(t)

	store.On("GetProduct", mock.Anything, productID).Return(product, nil)
	store.On("SetProductStatus", mock.Anything, productID, models.StatusScraping).Return(nil)
	scraper.On("Scrape", mock.Anything, product.URL).Return(nil, assert.AnError)

	var failureMessage string
	store.On("MarkProductFailed", mock.Anything, productID, mock.Anything).
		Run(func(args mock.Arguments) { failureMessage = args.String(2) }).
		Return(nil)

	runner := pipeline.NewRunner(scraper, emb, store, &logger)

	err := runner.Run(context.TODO(), productID)

	require.ErrorIs(t, err, assert.AnError, "should return the cause")
	assert.Contains(t, failureMessage, "can't scrape product page", "should record the failure stage")
	emb.AssertNotCalled(t, "EmbedAndStore")
}

func TestUnitRunEmptyCorpus(t *testing.T) {
	productID := uuid.New()
	product := &storage.Product{ID: productID, URL: "https://www.amazon.com/dp/B000000000"}

	scraper := mocks.NewScraper(t)
	emb := mocks.NewEmbedder(t)
	store := mocks.NewStorage(t)

	store.On("GetProduct", mock.Anything, productID).Return(product, nil)
	store.On("SetProductStatus", mock.Anything, productID, models.StatusScraping).Return(nil)
	scraper.On("Scrape", mock.Anything, product.URL).Return(&models.ProductFields{}, nil)
	store.On("UpdateScrapedFields", mock.Anything, productID, mock.Anything, mock.Anything).Return(nil)
	store.On("CreateReviews", mock.Anything, productID, mock.Anything).Return(nil)
	store.On("CreateQuestionAnswers", mock.Anything, productID, mock.Anything).Return(nil)
	store.On("SetProductStatus", mock.Anything, productID, models.StatusEmbedding).Return(nil)
	store.On("MarkProductFailed", mock.Anything, productID, mock.Anything).Return(nil)

	runner := pipeline.NewRunner(scraper, emb, store, &logger)

	err := runner.Run(context.TODO(), productID)

	require.ErrorIs(t, err, platform.KindEmbedding, "nothing to embed should be a hard failure")
	emb.AssertNotCalled(t, "EmbedAndStore")
}

func TestUnitRunEmbedFailure(t *testing.T) {
	productID := uuid.New()
	product := &storage.Product{ID: productID, URL: "https://www.amazon.com/dp/B000000000"}
	fields := modelstesting.FakeProductFields()

	scraper := mocks.NewScraper(t)
	emb := mocks.NewEmbedder(t)
	store := mocks.NewStorage(t)

	store.On("GetProduct", mock.Anything, productID).Return(product, nil)
	store.On("SetProductStatus", mock.Anything, productID, models.StatusScraping).Return(nil)
	scraper.On("Scrape", mock.Anything, product.URL).Return(&fields, nil)
	store.On("UpdateScrapedFields", mock.Anything, productID, mock.Anything, mock.Anything).Return(nil)
	store.On("CreateReviews", mock.Anything, productID, mock.Anything).Return(nil)
	store.On("CreateQuestionAnswers", mock.Anything, productID, mock.Anything).Return(nil)
	store.On("SetProductStatus", mock.Anything, productID, models.StatusEmbedding).Return(nil)
	emb.On("EmbedAndStore", mock.Anything, productID.String(), mock.Anything).Return(0, assert.AnError)
	store.On("MarkProductFailed", mock.Anything, productID, mock.Anything).Return(nil)

	runner := pipeline.NewRunner(scraper, emb, store, &logger)

	err := runner.Run(context.TODO(), productID)

	require.ErrorIs(t, err, assert.AnError, "should return the cause")
	store.AssertNotCalled(t, "MarkProductCompleted")
}

func TestUnitRunUnknownProduct(t *testing.T) {
	productID := uuid.New()

	scraper := mocks.NewScraper(t)
	emb := mocks.NewEmbedder(t)
	store := mocks.NewStorage(t)

	store.On("GetProduct", mock.Anything, productID).Return(nil, platform.ErrProductNotFound)

	runner := pipeline.NewRunner(scraper, emb, store, &logger)

	err := runner.Run(context.TODO(), productID)

	require.ErrorIs(t, err, platform.ErrProductNotFound, "should return not found")
	store.AssertNotCalled(t, "MarkProductFailed")
	scraper.AssertNotCalled(t, "Scrape")
}
