package models

// FeedbackCategory classifies a feedback item.
type FeedbackCategory string

const (
	CategorySuggestion FeedbackCategory = "Suggestion"
	CategoryComplaint  FeedbackCategory = "Complaint"
	CategoryQuestion   FeedbackCategory = "Question"
	CategoryBugReport  FeedbackCategory = "Bug Report"
)

// Valid reports whether c is a known category.
func (c FeedbackCategory) Valid() bool {
	switch c {
	case CategorySuggestion, CategoryComplaint, CategoryQuestion, CategoryBugReport:
		return true
	}
	return false
}

// FeedbackStatus is the review state of a feedback item. Any status may follow any other.
type FeedbackStatus string

const (
	FeedbackPending  FeedbackStatus = "Pending"
	FeedbackReviewed FeedbackStatus = "Reviewed"
	FeedbackResolved FeedbackStatus = "Resolved"
)

// Valid reports whether s is a known feedback status.
func (s FeedbackStatus) Valid() bool {
	switch s {
	case FeedbackPending, FeedbackReviewed, FeedbackResolved:
		return true
	}
	return false
}

// Feedback is a grievance or suggestion submitted by a farmer.
type Feedback struct {
	ID          string           `json:"id"`
	Subject     string           `json:"subject"`
	Category    FeedbackCategory `json:"category"`
	Message     string           `json:"message"`
	Status      FeedbackStatus   `json:"status"`
	SubmittedAt string           `json:"submittedAt"`
	FarmerName  string           `json:"farmerName,omitempty"`
	FarmName    string           `json:"farmName,omitempty"`
}

// FeedbackInput is the body of the feedback form.
type FeedbackInput struct {
	Subject  string           `json:"subject"`
	Category FeedbackCategory `json:"category"`
	Message  string           `json:"message"`
}

// FeedbackStatusRequest is the body of a status change.
type FeedbackStatusRequest struct {
	Status FeedbackStatus `json:"status" binding:"required"`
}

// FeedbackCounts aggregates feedback items per status.
type FeedbackCounts struct {
	Pending  int `json:"pending" bson:"pending"`
	Reviewed int `json:"reviewed" bson:"reviewed"`
	Resolved int `json:"resolved" bson:"resolved"`
}
