package reporting

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/herdtrack/internal/domain/models"
	"github.com/mamadbah2/herdtrack/internal/repository/memory"
	"github.com/mamadbah2/herdtrack/internal/service/feedback"
)

// Sink stores published herd reports.
type Sink interface {
	Name() string
	SaveHerdReport(ctx context.Context, report models.HerdReport) error
}

// Service builds herd summaries from the store and exports the animal register.
type Service struct {
	store  *memory.Store
	sinks  []Sink
	now    func() time.Time
	logger *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(store *memory.Store, sinks []Sink, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, sinks: sinks, now: time.Now, logger: logger}
}

// BuildReport summarizes the current herd.
func (s *Service) BuildReport(_ context.Context) models.HerdReport {
	report := models.HerdReport{GeneratedAt: s.now().UTC()}

	for _, b := range s.store.Branches() {
		report.Branches++
		if b.Status == models.BranchActive {
			report.ActiveBranches++
		}
	}

	var totalWeight int
	for _, a := range s.store.Animals("") {
		report.Animals++
		totalWeight += a.Weight
		switch a.HealthStatus {
		case models.HealthHealthy:
			report.Healthy++
		case models.HealthSick:
			report.Sick++
		case models.HealthUnderTreatment:
			report.UnderTreatment++
		}
	}
	if report.Animals > 0 {
		avg := float64(totalWeight) / float64(report.Animals)
		report.AverageWeight = math.Round(avg*10) / 10
	}

	report.Feedback = feedback.Tally(s.store.Feedbacks())
	return report
}

// Publish builds a report and hands it to every sink. Sink failures are
// collected; the remaining sinks still receive the report.
func (s *Service) Publish(ctx context.Context) (models.HerdReport, error) {
	report := s.BuildReport(ctx)

	s.logger.Info("herd report built",
		zap.Int("branches", report.Branches),
		zap.Int("animals", report.Animals),
		zap.Int("health_alerts", report.HealthAlerts()),
		zap.Int("pending_feedback", report.Feedback.Pending))

	var errs []error
	for _, sink := range s.sinks {
		if err := sink.SaveHerdReport(ctx, report); err != nil {
			s.logger.Error("herd report not stored", zap.String("sink", sink.Name()), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", sink.Name(), err))
			continue
		}
		s.logger.Debug("herd report stored", zap.String("sink", sink.Name()))
	}

	return report, errors.Join(errs...)
}
