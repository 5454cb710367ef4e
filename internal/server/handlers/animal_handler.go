package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdtrack/internal/domain/models"
	"github.com/mamadbah2/herdtrack/internal/service/animals"
	"github.com/mamadbah2/herdtrack/internal/service/reporting"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AnimalHandler exposes the animal register.
type AnimalHandler struct {
	svc      *animals.Service
	exporter *reporting.Service
	logger   *zap.Logger
}

// NewAnimalHandler constructs the animal HTTP adapter.
func NewAnimalHandler(svc *animals.Service, exporter *reporting.Service, logger *zap.Logger) *AnimalHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnimalHandler{svc: svc, exporter: exporter, logger: logger}
}

// List returns animals, optionally narrowed with ?branchId=.
func (h *AnimalHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.List(c.Query("branchId")))
}

// Get returns one animal.
func (h *AnimalHandler) Get(c *gin.Context) {
	a, err := h.svc.Get(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// Create registers an animal.
func (h *AnimalHandler) Create(c *gin.Context) {
	var input models.AnimalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		invalidBody(c, h.logger, err)
		return
	}

	a, err := h.svc.Create(input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// Update edits an animal. An unknown id answers 204 without changes.
func (h *AnimalHandler) Update(c *gin.Context) {
	var input models.AnimalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		invalidBody(c, h.logger, err)
		return
	}

	a, ok, err := h.svc.Update(c.Param("id"), input)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, a)
}

// Delete removes an animal.
func (h *AnimalHandler) Delete(c *gin.Context) {
	h.svc.Delete(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// Export downloads the register as an xlsx workbook.
func (h *AnimalHandler) Export(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.exporter.ExportAnimals(c.Request.Context(), c.Query("branchId"), &buf); err != nil {
		respondError(c, h.logger, err)
		return
	}

	filename := fmt.Sprintf("animals-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
