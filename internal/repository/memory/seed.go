package memory

import (
	"github.com/paulmach/orb"

	"github.com/mamadbah2/herdtrack/internal/domain/models"
)

// SeedDemo fills the store with the demo farms, animals and feedback shown on first login.
// place supplies the position of animals seeded without explicit coordinates.
func SeedDemo(s *Store, place func() orb.Point) {
	branches := []models.Branch{
		{ID: "1", Name: "Green Valley Farm", Location: "North District", Size: "50 acres", Status: models.BranchActive},
		{ID: "2", Name: "Sunset Ranch", Location: "East District", Size: "30 acres", Status: models.BranchActive},
		{ID: "3", Name: "Oak Hill Farm", Location: "South District", Size: "25 acres", Status: models.BranchInactive},
	}
	for _, b := range branches {
		s.InsertBranch(b)
	}

	animals := []models.Animal{
		{ID: "1", TagID: "COW-001", Breed: "Holstein", Age: 3, Weight: 450, HealthStatus: models.HealthHealthy, BranchID: "1"},
		{ID: "2", TagID: "COW-002", Breed: "Jersey", Age: 2, Weight: 380, HealthStatus: models.HealthHealthy, BranchID: "1"},
		{ID: "3", TagID: "COW-003", Breed: "Angus", Age: 4, Weight: 520, HealthStatus: models.HealthUnderTreatment, BranchID: "2"},
		{ID: "4", TagID: "COW-004", Breed: "Brahman", Age: 5, Weight: 600, HealthStatus: models.HealthHealthy, BranchID: "2"},
	}
	for _, a := range animals {
		p := place()
		a.Longitude, a.Latitude = p.Lon(), p.Lat()
		a.SyntheticPosition = true
		s.InsertAnimal(a)
	}

	feedback := []models.Feedback{
		{
			ID:          "1",
			Subject:     "Animal health tracking improvements",
			Category:    models.CategorySuggestion,
			Message:     "Would like to see more detailed health tracking features for better monitoring of animal wellness.",
			Status:      models.FeedbackReviewed,
			SubmittedAt: "2023-12-01",
			FarmerName:  "John Smith",
			FarmName:    "Green Valley Farm",
		},
		{
			ID:          "2",
			Subject:     "Mobile app needed",
			Category:    models.CategorySuggestion,
			Message:     "Please consider developing a mobile app for easier farm management on the go.",
			Status:      models.FeedbackPending,
			SubmittedAt: "2023-12-03",
			FarmerName:  "Mary Johnson",
			FarmName:    "Sunset Ranch",
		},
		{
			ID:          "3",
			Subject:     "System loading slowly",
			Category:    models.CategoryBugReport,
			Message:     "The animal management page takes too long to load when there are many animals.",
			Status:      models.FeedbackPending,
			SubmittedAt: "2023-12-05",
			FarmerName:  "Robert Wilson",
			FarmName:    "Oak Hill Farm",
		},
		{
			ID:          "4",
			Subject:     "Export feature request",
			Category:    models.CategoryQuestion,
			Message:     "How can I export my animal data to CSV format for external analysis?",
			Status:      models.FeedbackResolved,
			SubmittedAt: "2023-11-28",
			FarmerName:  "Sarah Davis",
			FarmName:    "Meadow Brook Farm",
		},
	}
	for _, f := range feedback {
		s.AppendFeedback(f)
	}
}
