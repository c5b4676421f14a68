package server

import (
	"context"

	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/platform/models"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/platform/storage"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/tasks"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

//go:generate mockery --name Responder --filename responder.go
//go:generate mockery --name Submitter --filename submitter.go
//go:generate mockery --name TaskStore --filename taskstore.go
//go:generate mockery --name Embedder --filename embedder.go

// Responder answers product questions.
type Responder interface {
	Answer(ctx context.Context, productID, question string, history []models.ChatTurn) (*models.QAResult, error)
}

// Submitter submits scrape commands to the task queue.
type Submitter interface {
	SendScrapeCommand(ctx context.Context, productID, taskID string) error
}

// TaskStore reads and writes task lifecycle states.
type TaskStore interface {
	Set(ctx context.Context, taskID, state, info string) error
	Get(ctx context.Context, taskID string) (*tasks.Status, error)
}

// Embedder deletes product vector namespaces.
type Embedder interface {
	DeleteNamespace(ctx context.Context, productID string) error
}

// Server is the HTTP facade over products, the pipeline and chat Q&A.
type Server struct {
	store     *storage.Store
	submitter Submitter
	responder Responder
	tracker   TaskStore
	embedder  Embedder
	logger    *zerolog.Logger
}

// NewServer returns new Server.
func NewServer(
	store *storage.Store,
	submitter Submitter,
	responder Responder,
	tracker TaskStore,
	embedder Embedder,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		store:     store,
		submitter: submitter,
		responder: responder,
		tracker:   tracker,
		embedder:  embedder,
		logger:    logger,
	}
}

// Router returns the gin engine with all API routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	api := router.Group("/api")
	{
		api.POST("/products/", s.createProduct)
		api.GET("/products/", s.listProducts)
		api.GET("/products/:id", s.getProduct)
		api.DELETE("/products/:id", s.deleteProduct)

		api.GET("/products/:id/status/", s.getProductStatus)
		api.POST("/products/:id/retry/", s.retryProduct)
		api.POST("/products/:id/ask/", s.askQuestion)

		api.GET("/products/:id/reviews/", s.listReviews)
		api.GET("/products/:id/chat-sessions/", s.listChatSessions)
		api.GET("/chat-sessions/:sessionID/messages/", s.listSessionMessages)
	}

	return router
}
