package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cardcompass/backend/internal/domain"
	"github.com/cardcompass/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	conversations *usecase.ConversationService
	comparisons   *usecase.ComparisonService
	cards         domain.CardRepository
}

// NewHandler creates a new HTTP handler
func NewHandler(
	conversations *usecase.ConversationService,
	comparisons *usecase.ComparisonService,
	cards domain.CardRepository,
) *Handler {
	return &Handler{
		conversations: conversations,
		comparisons:   comparisons,
		cards:         cards,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "cardcompass-backend",
		"version": "1.0.0",
	})
}

// StartChat creates a new conversation session and returns its greeting.
func (h *Handler) StartChat(c *gin.Context) {
	sessionID := uuid.NewString()

	conv, err := h.conversations.StartSession(c.Request.Context(), sessionID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"sessionId": conv.SessionID,
		"message":   conv.Messages[0].Content,
	})
}

type sendMessageRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
	Message   string `json:"message" binding:"required"`
}

// SendMessage processes one user utterance in an existing session.
func (h *Handler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "sessionId and message are required",
		})
		return
	}

	result, err := h.conversations.HandleMessage(c.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      result.Reply,
		"currentStep":  result.Step,
		"canRecommend": result.CanRecommend,
	})
}

// GetConversation returns the full state of a session.
func (h *Handler) GetConversation(c *gin.Context) {
	conv, err := h.conversations.GetConversation(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"conversation": conv,
	})
}

// ResetConversation restores a session to its initial state.
func (h *Handler) ResetConversation(c *gin.Context) {
	conv, err := h.conversations.ResetSession(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Conversation reset successfully",
		"sessionId": conv.SessionID,
	})
}

type recommendRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
	Limit     int    `json:"limit"`
	// UserProfile, when present, replaces the session's extracted profile
	// for this request. This is the explicit path for monthly spending
	// amounts and a maximum-fee budget.
	UserProfile *domain.UserProfile `json:"userProfile"`
}

// GetRecommendations ranks the catalog against the session profile, or
// against an explicit profile supplied in the request body.
func (h *Handler) GetRecommendations(c *gin.Context) {
	var req recommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "sessionId is required",
		})
		return
	}

	recs, err := h.conversations.Recommend(c.Request.Context(), req.SessionID, req.Limit, req.UserProfile)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"recommendations": recs,
	})
}

// GetRecommendationsBySession returns the last persisted ranking.
func (h *Handler) GetRecommendationsBySession(c *gin.Context) {
	recs, profile, err := h.conversations.CachedRecommendations(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"recommendations": recs,
		"userProfile":     profile,
	})
}

type simulateRequest struct {
	CardID          string             `json:"cardId" binding:"required"`
	MonthlySpending map[string]float64 `json:"monthlySpending" binding:"required"`
}

// SimulateRewards projects annual rewards for a card and spending map.
func (h *Handler) SimulateRewards(c *gin.Context) {
	var req simulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "cardId and monthlySpending are required",
		})
		return
	}

	sim, err := h.conversations.Simulate(c.Request.Context(), req.CardID, req.MonthlySpending)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"simulation": sim,
	})
}

// ListCards returns active catalog cards with optional filters.
func (h *Handler) ListCards(c *gin.Context) {
	filter := domain.CardFilter{
		Type:   c.Query("type"),
		Issuer: c.Query("issuer"),
	}
	if v := c.Query("maxAnnualFee"); v != "" {
		fee, err := strconv.ParseFloat(v, 64)
		if err != nil || fee < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid maxAnnualFee"})
			return
		}
		filter.MaxAnnualFee = &fee
	}
	if v := c.Query("minIncome"); v != "" {
		income, err := strconv.ParseFloat(v, 64)
		if err != nil || income < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid minIncome"})
			return
		}
		filter.MaxMinIncome = &income
	}

	cards, err := h.cards.ListActive(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"cards":   cards,
		"total":   len(cards),
	})
}

// GetCard returns one card by id.
func (h *Handler) GetCard(c *gin.Context) {
	card, err := h.cards.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"card":    card,
	})
}

// ExplainCard scores one card against a session profile with reasoning.
func (h *Handler) ExplainCard(c *gin.Context) {
	sessionID := c.Query("sessionId")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "sessionId query parameter is required",
		})
		return
	}

	result, err := h.conversations.ExplainSingleCard(c.Request.Context(), sessionID, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"recommendation": result,
	})
}

type compareRequest struct {
	CardIDs []string `json:"cardIds" binding:"required"`
}

// CompareCards returns a side-by-side comparison of 2-5 cards.
func (h *Handler) CompareCards(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "cardIds is required",
		})
		return
	}

	comparison, err := h.comparisons.Compare(c.Request.Context(), req.CardIDs)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"comparison": comparison,
	})
}

// respondError maps domain errors to HTTP responses.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrCardNotFound),
		errors.Is(err, domain.ErrNoRecommendations):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal error"})
	}
}
