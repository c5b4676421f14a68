package server

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/platform"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/platform/models"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/platform/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type createProductRequest struct {
	URL string `json:"url" binding:"required"`
}

func (s *Server) createProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}

	if err := validateProductURL(req.URL); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, created, err := s.store.CreateProduct(c.Request.Context(), req.URL)
	if err != nil {
		s.logger.Error().Err(err).Msg("can't create product")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "can't create product"})
		return
	}

	if !created {
		message := "Product is being processed"
		if product.Status == models.StatusCompleted {
			message = "Product already exists"
		}
		c.JSON(http.StatusOK, gin.H{
			"message": message,
			"product": product,
		})
		return
	}

	taskID, err := s.submitRun(c, product.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("productId", product.ID.String()).Msg("can't submit scrape task")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "can't submit scrape task"})
		return
	}
	product.TaskID = taskID

	s.logger.Info().
		Str("productId", product.ID.String()).
		Str("url", product.URL).
		Msg("product scraping started")

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product scraping started",
		"product": product,
		"task_id": taskID,
	})
}

// submitRun submits a scrape command with a fresh task handle and
// stores the handle on the product.
func (s *Server) submitRun(c *gin.Context, productID uuid.UUID) (string, error) {
	ctx := c.Request.Context()
	taskID := uuid.NewString()

	if err := s.tracker.Set(ctx, taskID, "queued", ""); err != nil {
		s.logger.Warn().Err(err).Str("taskId", taskID).Msg("can't mark task queued")
	}
	if err := s.submitter.SendScrapeCommand(ctx, productID.String(), taskID); err != nil {
		return "", err
	}
	if err := s.store.SetProductTask(ctx, productID, taskID); err != nil {
		return "", err
	}

	return taskID, nil
}

func (s *Server) listProducts(c *gin.Context) {
	page, pageSize := pagination(c)
	params := storage.ListProductsParams{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		Page:     page,
		PageSize: pageSize,
	}

	products, total, err := s.store.ListProducts(c.Request.Context(), params)
	if err != nil {
		s.logger.Error().Err(err).Msg("can't list products")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "can't list products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":     total,
		"page":      page,
		"page_size": pageSize,
		"results":   products,
	})
}

func (s *Server) getProduct(c *gin.Context) {
	product, ok := s.productByID(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, product)
}

func (s *Server) deleteProduct(c *gin.Context) {
	product, ok := s.productByID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	// the namespace is not a database cascade, delete it explicitly
	if err := s.embedder.DeleteNamespace(ctx, product.ID.String()); err != nil {
		s.logger.Error().
			Err(err).
			Str("productId", product.ID.String()).
			Msg("can't delete vector namespace")
	}

	if err := s.store.DeleteProduct(ctx, product.ID); err != nil {
		s.logger.Error().Err(err).Msg("can't delete product")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "can't delete product"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) getProductStatus(c *gin.Context) {
	product, ok := s.productByID(c)
	if !ok {
		return
	}

	response := gin.H{
		"product_id":    product.ID.String(),
		"status":        product.Status,
		"task_id":       product.TaskID,
		"error_message": product.ErrorMessage,
	}

	if product.TaskID != "" && isProcessing(product.Status) {
		status, err := s.tracker.Get(c.Request.Context(), product.TaskID)
		if err != nil {
			s.logger.Warn().Err(err).Str("taskId", product.TaskID).Msg("can't read task status")
		} else if status != nil {
			response["task_status"] = status.State
			response["task_info"] = status.Info
		}
	}

	c.JSON(http.StatusOK, response)
}

func (s *Server) retryProduct(c *gin.Context) {
	product, ok := s.productByID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	if err := s.store.ResetForRetry(ctx, product.ID); err != nil {
		if errors.Is(err, platform.ErrNotFailed) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product is not in failed state"})
			return
		}
		s.logger.Error().Err(err).Msg("can't reset product")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "can't reset product"})
		return
	}

	taskID, err := s.submitRun(c, product.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("productId", product.ID.String()).Msg("can't submit scrape task")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "can't submit scrape task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Scraping restarted",
		"task_id": taskID,
	})
}

func (s *Server) listReviews(c *gin.Context) {
	product, ok := s.productByID(c)
	if !ok {
		return
	}

	page, pageSize := pagination(c)
	reviews, total, err := s.store.ListReviews(c.Request.Context(), product.ID, page, pageSize)
	if err != nil {
		s.logger.Error().Err(err).Msg("can't list reviews")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "can't list reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":     total,
		"page":      page,
		"page_size": pageSize,
		"results":   reviews,
	})
}

// productByID loads the product addressed by the id path parameter,
// answering 400/404 itself when it can't.
func (s *Server) productByID(c *gin.Context) (*storage.Product, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return nil, false
	}

	product, err := s.store.GetProduct(c.Request.Context(), id)
	if errors.Is(err, platform.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return nil, false
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("can't get product")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "can't get product"})
		return nil, false
	}

	return product, true
}

func validateProductURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return errors.New("url is not a valid http(s) url")
	}
	if !strings.Contains(parsed.Host, "amazon.") {
		return errors.New("url is not an Amazon product url")
	}

	return nil
}

func isProcessing(status string) bool {
	return status == models.StatusPending ||
		status == models.StatusScraping ||
		status == models.StatusEmbedding
}

func pagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}

	return page, pageSize
}
