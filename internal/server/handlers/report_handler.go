package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdtrack/internal/domain/models"
	"github.com/mamadbah2/herdtrack/internal/service/reporting"
)

// ReportArchive returns the most recent stored herd report, nil when none exists.
type ReportArchive interface {
	LatestHerdReport(ctx context.Context) (*models.HerdReport, error)
}

// ReportHandler serves herd summaries.
type ReportHandler struct {
	svc     *reporting.Service
	archive ReportArchive
	logger  *zap.Logger
}

// NewReportHandler constructs the report HTTP adapter. archive may be nil.
func NewReportHandler(svc *reporting.Service, archive ReportArchive, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{svc: svc, archive: archive, logger: logger}
}

// Herd returns a summary of the live herd.
func (h *ReportHandler) Herd(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.BuildReport(c.Request.Context()))
}

// Latest returns the last published report.
func (h *ReportHandler) Latest(c *gin.Context) {
	if h.archive == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "report archive not configured"})
		return
	}

	report, err := h.archive.LatestHerdReport(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no report published yet"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// Publish builds a report and stores it in every configured sink.
func (h *ReportHandler) Publish(c *gin.Context) {
	report, err := h.svc.Publish(c.Request.Context())
	if err != nil {
		h.logger.Error("herd report publish incomplete", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to store report", "report": report})
		return
	}
	c.JSON(http.StatusCreated, report)
}
