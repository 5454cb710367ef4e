package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mamadbah2/herdtrack/internal/domain/models"
)

type staticSummary models.HerdReport

func (s staticSummary) BuildReport(context.Context) models.HerdReport { return models.HerdReport(s) }

func TestOverviewByRole(t *testing.T) {
	svc := NewService(staticSummary{
		Branches:       3,
		ActiveBranches: 2,
		Animals:        4,
		Sick:           1,
		UnderTreatment: 1,
		Feedback:       models.FeedbackCounts{Pending: 2},
	})

	admin := svc.Overview(context.Background(), models.User{ID: "admin-001", Role: models.RoleAdmin})
	assert.Equal(t, "Admin Panel", admin.Title)
	assert.Equal(t, []string{"overview", "farmers", "feedback"}, panelIDs(admin))
	assert.Contains(t, admin.Stats, Stat{Title: "Pending Feedback", Value: "2"})

	farmer := svc.Overview(context.Background(), models.User{ID: "farmer-001", Role: models.RoleFarmer})
	assert.Equal(t, "Farmer Panel", farmer.Title)
	assert.Equal(t, []string{"overview", "farms", "animals", "feedback"}, panelIDs(farmer))
	assert.Contains(t, farmer.Stats, Stat{Title: "Health Alerts", Value: "2"})
	assert.Contains(t, farmer.Stats, Stat{Title: "My Farms", Value: "3"})
}

func panelIDs(d Dashboard) []string {
	out := make([]string, 0, len(d.Panels))
	for _, p := range d.Panels {
		out = append(out, p.ID)
	}
	return out
}
