package dashboard

import (
	"context"
	"strconv"

	"github.com/mamadbah2/herdtrack/internal/domain/models"
)

// Summarizer provides the herd figures shown on the overview panel.
type Summarizer interface {
	BuildReport(ctx context.Context) models.HerdReport
}

// Panel is a tab on a dashboard.
type Panel struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Stat is one overview figure.
type Stat struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

// Dashboard is the role-specific landing view.
type Dashboard struct {
	Title  string      `json:"title"`
	Role   models.Role `json:"role"`
	User   models.User `json:"user"`
	Panels []Panel     `json:"panels"`
	Stats  []Stat      `json:"stats"`
}

var (
	adminPanels = []Panel{
		{ID: "overview", Label: "Overview"},
		{ID: "farmers", Label: "Farmers"},
		{ID: "feedback", Label: "Feedback"},
	}
	farmerPanels = []Panel{
		{ID: "overview", Label: "Overview"},
		{ID: "farms", Label: "My Farms"},
		{ID: "animals", Label: "Animals"},
		{ID: "feedback", Label: "Feedback"},
	}
)

// Service assembles dashboards.
type Service struct {
	summary Summarizer
}

// NewService wires the dashboard service.
func NewService(summary Summarizer) *Service {
	return &Service{summary: summary}
}

// Overview returns the dashboard for the user's role with figures derived from the live herd.
func (s *Service) Overview(ctx context.Context, user models.User) Dashboard {
	report := s.summary.BuildReport(ctx)

	if user.Role == models.RoleAdmin {
		return Dashboard{
			Title:  "Admin Panel",
			Role:   user.Role,
			User:   user,
			Panels: adminPanels,
			Stats: []Stat{
				{Title: "Total Farms", Value: strconv.Itoa(report.Branches)},
				{Title: "Total Animals", Value: strconv.Itoa(report.Animals)},
				{Title: "Health Alerts", Value: strconv.Itoa(report.HealthAlerts())},
				{Title: "Pending Feedback", Value: strconv.Itoa(report.Feedback.Pending)},
			},
		}
	}

	return Dashboard{
		Title:  "Farmer Panel",
		Role:   user.Role,
		User:   user,
		Panels: farmerPanels,
		Stats: []Stat{
			{Title: "My Farms", Value: strconv.Itoa(report.Branches)},
			{Title: "Active Farms", Value: strconv.Itoa(report.ActiveBranches)},
			{Title: "Total Animals", Value: strconv.Itoa(report.Animals)},
			{Title: "Health Alerts", Value: strconv.Itoa(report.HealthAlerts())},
		},
	}
}
