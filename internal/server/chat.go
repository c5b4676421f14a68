package server

import (
	"errors"
	"net/http"

	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/platform"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/platform/models"
	"github.com/Saroj-jagadish-mandal/ShopWise-AI/internal/platform/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// historyMessages is how many stored messages are replayed to the
// responder (pairs of user and assistant turns).
const historyMessages = 10

type askRequest struct {
	Question  string `json:"question" binding:"required"`
	SessionID string `json:"session_id"`
}

func (s *Server) askQuestion(c *gin.Context) {
	product, ok := s.productByID(c)
	if !ok {
		return
	}

	if product.Status != models.StatusCompleted {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Product is not ready for questions",
			"status": product.Status,
		})
		return
	}

	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
		return
	}

	ctx := c.Request.Context()

	session, err := s.resolveSession(c, product.ID, req.SessionID)
	if err != nil {
		s.logger.Error().Err(err).Msg("can't resolve chat session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "can't resolve chat session"})
		return
	}

	if _, err = s.store.CreateMessage(ctx, session.ID, models.RoleUser, req.Question, nil); err != nil {
		s.logger.Error().Err(err).Msg("can't store question")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "can't store question"})
		return
	}

	history, err := s.store.ListMessages(ctx, session.ID, historyMessages)
	if err != nil {
		s.logger.Warn().Err(err).Msg("can't load chat history")
	}
	turns := lo.Map(history, func(m storage.ChatMessage, _ int) models.ChatTurn {
		return models.ChatTurn{Role: m.Role, Content: m.Content}
	})

	result, err := s.responder.Answer(ctx, product.ID.String(), req.Question, turns)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("productId", product.ID.String()).
			Msg("can't generate answer")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate answer"})
		return
	}

	if _, err = s.store.CreateMessage(ctx, session.ID, models.RoleAssistant, result.Answer, result.ContextChunks); err != nil {
		s.logger.Error().Err(err).Msg("can't store answer")
	}

	c.JSON(http.StatusOK, gin.H{
		"answer":         result.Answer,
		"session_id":     session.SessionID,
		"context_chunks": result.ContextChunks,
	})
}

// resolveSession finds the chat session by its client-supplied id,
// creating it when missing. Without a supplied id a fresh session is
// started.
func (s *Server) resolveSession(c *gin.Context, productID uuid.UUID, sessionID string) (*storage.ChatSession, error) {
	ctx := c.Request.Context()

	if sessionID == "" {
		return s.store.CreateSession(ctx, productID, uuid.NewString())
	}

	session, err := s.store.GetSessionByExternalID(ctx, productID, sessionID)
	if errors.Is(err, platform.ErrSessionNotFound) {
		return s.store.CreateSession(ctx, productID, sessionID)
	}
	if err != nil {
		return nil, err
	}

	return session, nil
}

func (s *Server) listChatSessions(c *gin.Context) {
	product, ok := s.productByID(c)
	if !ok {
		return
	}

	sessions, err := s.store.ListSessions(c.Request.Context(), product.ID)
	if err != nil {
		s.logger.Error().Err(err).Msg("can't list chat sessions")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "can't list chat sessions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   len(sessions),
		"results": sessions,
	})
}

func (s *Server) listSessionMessages(c *gin.Context) {
	session, err := s.store.GetSessionByID(c.Request.Context(), c.Param("sessionID"))
	if errors.Is(err, platform.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("can't get chat session")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "can't get chat session"})
		return
	}

	messages, err := s.store.ListMessages(c.Request.Context(), session.ID, 0)
	if err != nil {
		s.logger.Error().Err(err).Msg("can't list chat messages")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "can't list chat messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": session.SessionID,
		"count":      len(messages),
		"results":    messages,
	})
}
