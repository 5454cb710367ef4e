package feedback

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdtrack/internal/domain/models"
	"github.com/mamadbah2/herdtrack/internal/repository/memory"
)

const dateLayout = "2006-01-02"

// Service manages the feedback board.
type Service struct {
	store  *memory.Store
	newID  func() string
	now    func() time.Time
	logger *zap.Logger
}

// NewService wires the feedback service.
func NewService(store *memory.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		newID:  uuid.NewString,
		now:    time.Now,
		logger: logger,
	}
}

// List returns every feedback item, newest first.
func (s *Service) List() []models.Feedback {
	return s.store.Feedbacks()
}

// Counts tallies feedback per status.
func (s *Service) Counts() models.FeedbackCounts {
	return Tally(s.store.Feedbacks())
}

// Submit records a new feedback item. Status is always Pending and the
// submission date is today. The author, when known, is copied onto the item.
func (s *Service) Submit(author *models.User, input models.FeedbackInput) (models.Feedback, error) {
	subject := strings.TrimSpace(input.Subject)
	message := strings.TrimSpace(input.Message)
	category := input.Category
	if category == "" {
		category = models.CategorySuggestion
	}

	switch {
	case subject == "":
		return models.Feedback{}, models.Invalid("subject is required")
	case message == "":
		return models.Feedback{}, models.Invalid("message is required")
	case !category.Valid():
		return models.Feedback{}, models.Invalid("unknown category %q", string(category))
	}

	item := models.Feedback{
		ID:          s.newID(),
		Subject:     subject,
		Category:    category,
		Message:     message,
		Status:      models.FeedbackPending,
		SubmittedAt: s.now().Format(dateLayout),
	}
	if author != nil {
		item.FarmerName = author.Name
		item.FarmName = author.FarmName
	}

	created := s.store.InsertFeedback(item)
	s.logger.Info("feedback submitted", zap.String("feedback_id", created.ID), zap.String("category", string(created.Category)))
	return created, nil
}

// SetStatus moves a feedback item to any status. A missing id is a silent no-op.
func (s *Service) SetStatus(id string, status models.FeedbackStatus) (models.Feedback, bool, error) {
	if !status.Valid() {
		return models.Feedback{}, false, models.Invalid("unknown feedback status %q", string(status))
	}

	updated, ok := s.store.UpdateFeedback(id, func(f *models.Feedback) { f.Status = status })
	if ok {
		s.logger.Info("feedback status updated", zap.String("feedback_id", id), zap.String("status", string(status)))
	}
	return updated, ok, nil
}

// Tally counts feedback items per status.
func Tally(items []models.Feedback) models.FeedbackCounts {
	var c models.FeedbackCounts
	for _, f := range items {
		switch f.Status {
		case models.FeedbackPending:
			c.Pending++
		case models.FeedbackReviewed:
			c.Reviewed++
		case models.FeedbackResolved:
			c.Resolved++
		}
	}
	return c
}
