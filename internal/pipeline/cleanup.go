package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// cleanupConcurrency bounds parallel product deletions; the vector
// store call dominates each deletion.
const cleanupConcurrency = 4

// Sweeper deletes products older than a configured age, together with
// their vector namespaces.
type Sweeper struct {
	storage  Storage
	embedder Embedder
	maxAge   time.Duration
	clock    Clock
	logger   *zerolog.Logger
}

// NewSweeper returns new Sweeper deleting products older than maxAge.
func NewSweeper(storage Storage, embedder Embedder, maxAge time.Duration, logger *zerolog.Logger) *Sweeper {
	return &Sweeper{
		storage:  storage,
		embedder: embedder,
		maxAge:   maxAge,
		clock:    systemClock{},
		logger:   logger,
	}
}

// CleanupOld deletes every product created before now-maxAge. The
// product's vector namespace is deleted before the database row;
// namespace deletion failures are logged and do not block the row
// deletion. Returns the number of deleted products.
func (s *Sweeper) CleanupOld(ctx context.Context) (int, error) {
	cutoff := s.clock.Now().Add(-s.maxAge)

	products, err := s.storage.ListProductsOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("can't list old products: %w", err)
	}

	var deleted atomic.Int64
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(cleanupConcurrency)

	for _, product := range products {
		product := product
		group.Go(func() error {
			if err := s.embedder.DeleteNamespace(groupCtx, product.ID.String()); err != nil {
				// accepted leak, cleanup must not wedge on the vector store
				s.logger.Error().
					Err(err).
					Str("productId", product.ID.String()).
					Msg("can't delete vector namespace")
			}

			if err := s.storage.DeleteProduct(groupCtx, product.ID); err != nil {
				s.logger.Error().
					Err(err).
					Str("productId", product.ID.String()).
					Msg("can't delete old product")
				return nil
			}

			deleted.Add(1)
			return nil
		})
	}

	_ = group.Wait()

	s.logger.Info().
		Int64("deleted", deleted.Load()).
		Time("cutoff", cutoff).
		Msg("cleanup finished")

	return int(deleted.Load()), nil
}

// Start runs the sweep every interval until ctx is closed.
func (s *Sweeper) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.CleanupOld(ctx); err != nil {
				s.logger.Error().Err(err).Msg("cleanup sweep failed")
			}
		}
	}
}
