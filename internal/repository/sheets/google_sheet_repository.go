package sheets

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/herdtrack/internal/config"
	"github.com/mamadbah2/herdtrack/internal/domain/models"
)

const herdReportRange = "Reports!A:J"

// Repository defines the persistence operations supported by the Google Sheets adapter.
type Repository interface {
	WriteRow(ctx context.Context, sheetRange string, values []interface{}) error
}

// GoogleSheetRepository implements the Repository interface using the official Google Sheets API.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetRepository builds a Google Sheets backed repository instance.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (Repository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// WriteRow appends the provided values to the supplied sheet range.
func (r *GoogleSheetRepository) WriteRow(ctx context.Context, sheetRange string, values []interface{}) error {
	if sheetRange == "" {
		return fmt.Errorf("sheetRange must not be empty")
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := r.service.Spreadsheets.Values.Append(r.spreadsheetID, sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append row into range %s: %w", sheetRange, err)
	}

	r.logger.Debug("row appended to sheet", zap.String("range", sheetRange))
	return nil
}

// ReportSink appends herd reports as rows of the Reports sheet.
type ReportSink struct {
	repo Repository
}

// NewReportSink wraps a sheet repository.
func NewReportSink(repo Repository) *ReportSink {
	return &ReportSink{repo: repo}
}

// Name identifies the sink in logs.
func (s *ReportSink) Name() string { return "sheets" }

// SaveHerdReport appends one row: date, farms, active farms, animals, healthy,
// sick, under treatment, average weight, pending and resolved feedback.
func (s *ReportSink) SaveHerdReport(ctx context.Context, report models.HerdReport) error {
	row := []interface{}{
		report.GeneratedAt.Format(time.DateTime),
		report.Branches,
		report.ActiveBranches,
		report.Animals,
		report.Healthy,
		report.Sick,
		report.UnderTreatment,
		fmt.Sprintf("%.1f", report.AverageWeight),
		report.Feedback.Pending,
		report.Feedback.Resolved,
	}
	return s.repo.WriteRow(ctx, herdReportRange, row)
}
