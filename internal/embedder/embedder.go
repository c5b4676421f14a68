package embedder

import (
	"context"
	"fmt"

	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/chunker"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/clients/pinecone"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/platform"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/platform/models"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// metadataTextLimit caps chunk text stored as vector metadata.
const metadataTextLimit = 1000

//go:generate mockery --name EmbeddingClient --filename embeddingclient.go
//go:generate mockery --name VectorStore --filename vectorstore.go

// EmbeddingClient creates embedding vectors for documents and queries.
type EmbeddingClient interface {
	EmbedDocuments(ctx context.Context, inputs []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, input string) ([]float32, error)
}

// VectorStore is the namespaced external vector index.
type VectorStore interface {
	Upsert(ctx context.Context, namespace string, vectors []pinecone.Vector) (int, error)
	Query(ctx context.Context, namespace string, vector []float32, topK int) ([]pinecone.Match, error)
	DeleteAll(ctx context.Context, namespace string) error
}

// Service chunks product text, embeds the chunks in fixed-size batches
// and upserts the vectors into the product's namespace.
type Service struct {
	embeddings EmbeddingClient
	vectors    VectorStore
	splitter   chunker.Splitter
	batchSize  int
	logger     *zerolog.Logger
}

// NewService returns new Service embedding chunks in batches of batchSize.
func NewService(embeddings EmbeddingClient, vectors VectorStore, batchSize int, logger *zerolog.Logger) *Service {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &Service{
		embeddings: embeddings,
		vectors:    vectors,
		splitter:   chunker.NewSplitter(chunker.DefaultWindow, chunker.DefaultOverlap),
		batchSize:  batchSize,
		logger:     logger,
	}
}

// Namespace returns the vector store namespace of a product.
func Namespace(productID string) string {
	return "product_" + productID
}

// EmbedAndStore splits text into chunks, embeds them batch by batch and
// upserts the vectors under the product's namespace. Vector ids are
// deterministic ({productID}_chunk_{index}), so re-running overwrites
// vectors at matching indices. Returns the total number of vectors
// stored. Empty text yields zero vectors without error.
func (s *Service) EmbedAndStore(ctx context.Context, productID, text string) (int, error) {
	chunks := s.splitter.Split(text)
	if len(chunks) == 0 {
		s.logger.Warn().
			Str("productId", productID).
			Msg("no chunks created")
		return 0, nil
	}

	namespace := Namespace(productID)
	stored := 0

	for batchIx, batch := range lo.Chunk(chunks, s.batchSize) {
		embeddings, err := s.embeddings.EmbedDocuments(ctx, batch)
		if err != nil {
			return stored, platform.WrapError(platform.KindEmbedding, fmt.Errorf("can't embed batch %d: %w", batchIx, err))
		}

		vectors := make([]pinecone.Vector, 0, len(batch))
		for ix, chunk := range batch {
			absIx := batchIx*s.batchSize + ix
			vectors = append(vectors, pinecone.Vector{
				ID:     fmt.Sprintf("%s_chunk_%d", productID, absIx),
				Values: embeddings[ix],
				Metadata: map[string]any{
					"product_id":  productID,
					"chunk_index": absIx,
					"text":        truncate(chunk, metadataTextLimit),
				},
			})
		}

		if _, err := s.vectors.Upsert(ctx, namespace, vectors); err != nil {
			return stored, platform.WrapError(platform.KindVectorStore, fmt.Errorf("can't upsert batch %d: %w", batchIx, err))
		}
		stored += len(vectors)

		s.logger.Info().
			Str("productId", productID).
			Int("batch", batchIx+1).
			Int("vectors", len(vectors)).
			Msg("upserted embedding batch")
	}

	return stored, nil
}

// QuerySimilar embeds query and returns the topK most similar chunks in
// the product's namespace.
func (s *Service) QuerySimilar(ctx context.Context, productID, query string, topK int) ([]models.ContextChunk, error) {
	vector, err := s.embeddings.EmbedQuery(ctx, query)
	if err != nil {
		return nil, platform.WrapError(platform.KindEmbedding, fmt.Errorf("can't embed query: %w", err))
	}

	matches, err := s.vectors.Query(ctx, Namespace(productID), vector, topK)
	if err != nil {
		return nil, platform.WrapError(platform.KindVectorStore, fmt.Errorf("can't query namespace: %w", err))
	}

	chunks := make([]models.ContextChunk, 0, len(matches))
	for _, match := range matches {
		text, _ := match.Metadata["text"].(string)
		chunks = append(chunks, models.ContextChunk{
			Text:  text,
			Score: match.Score,
		})
	}

	return chunks, nil
}

// DeleteNamespace removes every vector of a product.
func (s *Service) DeleteNamespace(ctx context.Context, productID string) error {
	if err := s.vectors.DeleteAll(ctx, Namespace(productID)); err != nil {
		return platform.WrapError(platform.KindVectorStore, fmt.Errorf("can't delete namespace: %w", err))
	}

	return nil
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
