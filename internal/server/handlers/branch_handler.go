package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdtrack/internal/domain/models"
	"github.com/mamadbah2/herdtrack/internal/service/branches"
)

// BranchHandler exposes farm branch management.
type BranchHandler struct {
	svc    *branches.Service
	logger *zap.Logger
}

// NewBranchHandler constructs the branch HTTP adapter.
func NewBranchHandler(svc *branches.Service, logger *zap.Logger) *BranchHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BranchHandler{svc: svc, logger: logger}
}

// List returns every branch in insertion order.
func (h *BranchHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.List())
}

// Get returns one branch.
func (h *BranchHandler) Get(c *gin.Context) {
	b, err := h.svc.Get(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// Create adds a branch.
func (h *BranchHandler) Create(c *gin.Context) {
	var input models.BranchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		invalidBody(c, h.logger, err)
		return
	}

	b, err := h.svc.Create(input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// Update edits a branch. An unknown id answers 204 without changes.
func (h *BranchHandler) Update(c *gin.Context) {
	var input models.BranchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		invalidBody(c, h.logger, err)
		return
	}

	b, ok, err := h.svc.Update(c.Param("id"), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, b)
}

// SetStatus activates or deactivates a branch.
func (h *BranchHandler) SetStatus(c *gin.Context) {
	var req models.BranchStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, h.logger, err)
		return
	}

	b, ok, err := h.svc.SetStatus(c.Param("id"), req.Status)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, b)
}

// Delete removes a branch that holds no animals.
func (h *BranchHandler) Delete(c *gin.Context) {
	if _, err := h.svc.Delete(c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
