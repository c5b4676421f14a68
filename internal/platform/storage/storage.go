package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/platform"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/platform/models"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// Store is products, reviews, Q&A and chat storage.
type Store struct {
	db *gorm.DB
}

// NewStore returns new Store.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the database schema.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(
		&Product{},
		&Review{},
		&QuestionAnswer{},
		&ChatSession{},
		&ChatMessage{},
	)
}

// ListProductsParams are filters and pagination of ListProducts.
type ListProductsParams struct {
	Search   string
	Status   string
	Page     int
	PageSize int
}

// CreateProduct creates new pending product for url.
// If a product with this url already exists, the existing record is
// returned with created == false and no new row is created. The check is
// best-effort; a concurrent duplicate insert fails on the unique index.
func (s *Store) CreateProduct(ctx context.Context, url string) (product *Product, created bool, err error) {
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Product
		findErr := tx.Where("url = ?", url).First(&existing).Error
		if findErr == nil {
			product = &existing
			return nil
		}
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return fmt.Errorf("can't check product existence: %w", findErr)
		}

		product = &Product{URL: url, Status: models.StatusPending}
		if createErr := tx.Create(product).Error; createErr != nil {
			return fmt.Errorf("can't create product: %w", createErr)
		}
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return product, created, nil
}

// GetProduct returns product by id or platform.ErrProductNotFound.
func (s *Store) GetProduct(ctx context.Context, id uuid.UUID) (*Product, error) {
	var product Product
	err := s.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, platform.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't get product: %w", err)
	}

	return &product, nil
}

// ListProducts returns a page of products ordered by creation time
// descending, together with the total number of matching rows.
func (s *Store) ListProducts(ctx context.Context, params ListProductsParams) ([]Product, int64, error) {
	query := s.db.WithContext(ctx).Model(&Product{})

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("title LIKE ? OR brand LIKE ?", pattern, pattern)
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("can't count products: %w", err)
	}

	page := max(params.Page, 1)
	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}

	var products []Product
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("can't list products: %w", err)
	}

	return products, total, nil
}

// SetProductTask stores the task handle of the submitted pipeline run.
func (s *Store) SetProductTask(ctx context.Context, id uuid.UUID, taskID string) error {
	return s.updateProduct(ctx, id, map[string]any{"task_id": taskID})
}

// SetProductStatus moves product to status.
func (s *Store) SetProductStatus(ctx context.Context, id uuid.UUID, status string) error {
	return s.updateProduct(ctx, id, map[string]any{"status": status})
}

// MarkProductFailed moves product to failed state and records the error message.
func (s *Store) MarkProductFailed(ctx context.Context, id uuid.UUID, message string) error {
	return s.updateProduct(ctx, id, map[string]any{
		"status":        models.StatusFailed,
		"error_message": message,
	})
}

// MarkProductCompleted moves product to completed state, sets its vector
// store linkage and clears the error message.
func (s *Store) MarkProductCompleted(ctx context.Context, id uuid.UUID, namespace string, vectorCount int) error {
	return s.updateProduct(ctx, id, map[string]any{
		"status":        models.StatusCompleted,
		"namespace":     namespace,
		"vector_count":  vectorCount,
		"error_message": "",
	})
}

// UpdateScrapedFields copies extracted fields onto the product row and
// stamps scraped_at.
func (s *Store) UpdateScrapedFields(ctx context.Context, id uuid.UUID, fields *models.ProductFields, scrapedAt time.Time) error {
	return s.updateProduct(ctx, id, map[string]any{
		"title":            fields.Title,
		"brand":            fields.Brand,
		"current_price":    fields.CurrentPrice,
		"original_price":   fields.OriginalPrice,
		"availability":     fields.Availability,
		"features":         fields.Features,
		"specifications":   newJSONMap(fields.Specifications),
		"categories":       newJSONSlice(fields.Categories),
		"variants":         newJSONSlice(fields.Variants),
		"sales_rank":       fields.SalesRank,
		"related_products": newJSONSlice(fields.RelatedProducts),
		"shipping_info":    newJSONSlice(fields.ShippingInfo),
		"scraped_at":       scrapedAt,
	})
}

// ResetForRetry moves a failed product back to pending and clears its
// error message. Returns platform.ErrNotFailed for any other status.
func (s *Store) ResetForRetry(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Model(&Product{}).
		Where("id = ? AND status = ?", id, models.StatusFailed).
		Updates(map[string]any{
			"status":        models.StatusPending,
			"error_message": "",
		})
	if result.Error != nil {
		return fmt.Errorf("can't reset product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		if _, err := s.GetProduct(ctx, id); err != nil {
			return err
		}
		return platform.ErrNotFailed
	}

	return nil
}

// DeleteProduct deletes product row; reviews, questions, sessions and
// messages cascade with it. The vector namespace is not touched here.
func (s *Store) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&Product{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("can't delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return platform.ErrProductNotFound
	}

	return nil
}

// ListProductsOlderThan returns products created before cutoff.
func (s *Store) ListProductsOlderThan(ctx context.Context, cutoff time.Time) ([]Product, error) {
	var products []Product
	err := s.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("can't list old products: %w", err)
	}

	return products, nil
}

// CreateReviews bulk-creates review rows for product.
func (s *Store) CreateReviews(ctx context.Context, productID uuid.UUID, reviews []models.Review) error {
	if len(reviews) == 0 {
		return nil
	}

	rows := lo.Map(reviews, func(review models.Review, _ int) Review {
		return Review{
			ProductID:    productID,
			Title:        review.Title,
			Text:         review.Text,
			Rating:       review.Rating,
			CustomerName: review.CustomerName,
			HelpfulVotes: review.HelpfulVotes,
			ReviewDate:   review.ReviewDate,
		}
	})
	if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("can't create reviews: %w", err)
	}

	return nil
}

// ListReviews returns a page of product reviews, newest first, with the
// total number of reviews.
func (s *Store) ListReviews(ctx context.Context, productID uuid.UUID, page, pageSize int) ([]Review, int64, error) {
	query := s.db.WithContext(ctx).Model(&Review{}).Where("product_id = ?", productID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("can't count reviews: %w", err)
	}

	page = max(page, 1)
	if pageSize <= 0 {
		pageSize = 10
	}

	var reviews []Review
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, fmt.Errorf("can't list reviews: %w", err)
	}

	return reviews, total, nil
}

// CreateQuestionAnswers creates one row per scraped Q&A snippet.
// Answers stay empty, reserved for curation.
func (s *Store) CreateQuestionAnswers(ctx context.Context, productID uuid.UUID, questions []string) error {
	if len(questions) == 0 {
		return nil
	}

	rows := lo.Map(questions, func(question string, _ int) QuestionAnswer {
		return QuestionAnswer{ProductID: productID, Question: question}
	})
	if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return fmt.Errorf("can't create question answers: %w", err)
	}

	return nil
}

// GetSessionByExternalID returns the chat session with the externally
// visible session id, scoped to product, or platform.ErrSessionNotFound.
func (s *Store) GetSessionByExternalID(ctx context.Context, productID uuid.UUID, sessionID string) (*ChatSession, error) {
	var session ChatSession
	err := s.db.WithContext(ctx).
		Where("product_id = ? AND session_id = ?", productID, sessionID).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, platform.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't get chat session: %w", err)
	}

	return &session, nil
}

// CreateSession creates a chat session for product with the provided
// external session id.
func (s *Store) CreateSession(ctx context.Context, productID uuid.UUID, sessionID string) (*ChatSession, error) {
	session := ChatSession{ProductID: productID, SessionID: sessionID}
	if err := s.db.WithContext(ctx).Create(&session).Error; err != nil {
		return nil, fmt.Errorf("can't create chat session: %w", err)
	}

	return &session, nil
}

// ListSessions returns product chat sessions, newest first.
func (s *Store) ListSessions(ctx context.Context, productID uuid.UUID) ([]ChatSession, error) {
	var sessions []ChatSession
	err := s.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("can't list chat sessions: %w", err)
	}

	return sessions, nil
}

// CreateMessage appends a message to session.
func (s *Store) CreateMessage(ctx context.Context, sessionID uuid.UUID, role, content string, chunks []models.ContextChunk) (*ChatMessage, error) {
	message := ChatMessage{
		SessionID:     sessionID,
		Role:          role,
		Content:       content,
		ContextChunks: newJSONSlice(chunks),
	}
	if err := s.db.WithContext(ctx).Create(&message).Error; err != nil {
		return nil, fmt.Errorf("can't create chat message: %w", err)
	}

	return &message, nil
}

// ListMessages returns session messages in chronological order. When
// limit > 0 only the latest limit messages are returned.
func (s *Store) ListMessages(ctx context.Context, sessionID uuid.UUID, limit int) ([]ChatMessage, error) {
	query := s.db.WithContext(ctx).Where("session_id = ?", sessionID)
	if limit > 0 {
		query = query.Order("created_at DESC").Limit(limit)
	} else {
		query = query.Order("created_at ASC")
	}

	var messages []ChatMessage
	if err := query.Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("can't list chat messages: %w", err)
	}

	if limit > 0 {
		lo.Reverse(messages)
	}

	return messages, nil
}

// GetSessionByID returns the chat session with the external session id
// across all products, or platform.ErrSessionNotFound.
func (s *Store) GetSessionByID(ctx context.Context, sessionID string) (*ChatSession, error) {
	var session ChatSession
	err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, platform.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("can't get chat session: %w", err)
	}

	return &session, nil
}

func (s *Store) updateProduct(ctx context.Context, id uuid.UUID, values map[string]any) error {
	result := s.db.WithContext(ctx).
		Model(&Product{}).
		Where("id = ?", id).
		Updates(values)
	if result.Error != nil {
		return fmt.Errorf("can't update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return platform.ErrProductNotFound
	}

	return nil
}
