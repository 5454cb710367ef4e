package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdtrack/internal/domain/models"
	"github.com/mamadbah2/herdtrack/internal/service/feedback"
)

// FeedbackHandler exposes the feedback inbox.
type FeedbackHandler struct {
	svc    *feedback.Service
	logger *zap.Logger
}

// NewFeedbackHandler constructs the feedback HTTP adapter.
func NewFeedbackHandler(svc *feedback.Service, logger *zap.Logger) *FeedbackHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedbackHandler{svc: svc, logger: logger}
}

type feedbackList struct {
	Items  []models.Feedback     `json:"items"`
	Counts models.FeedbackCounts `json:"counts"`
}

// List returns every feedback item, newest submissions first, with per-status counts.
func (h *FeedbackHandler) List(c *gin.Context) {
	items := h.svc.List()
	c.JSON(http.StatusOK, feedbackList{Items: items, Counts: feedback.Tally(items)})
}

// Submit records feedback from the signed-in user, or anonymously.
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var input models.FeedbackInput
	if err := c.ShouldBindJSON(&input); err != nil {
		invalidBody(c, h.logger, err)
		return
	}

	var author *models.User
	if user, ok := currentUser(c); ok {
		author = &user
	}

	item, err := h.svc.Submit(author, input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// SetStatus moves an item to any status.
func (h *FeedbackHandler) SetStatus(c *gin.Context) {
	var req models.FeedbackStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, h.logger, err)
		return
	}

	item, ok, err := h.svc.SetStatus(c.Param("id"), req.Status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, item)
}
