package feedback

import (
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/herdtrack/internal/domain/models"
	"github.com/mamadbah2/herdtrack/internal/repository/memory"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	store := memory.NewStore()
	memory.SeedDemo(store, func() orb.Point { return orb.Point{} })
	svc := NewService(store, nil)
	svc.now = func() time.Time { return time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC) }
	return svc
}

func TestSubmitForcesPendingAndToday(t *testing.T) {
	svc := newTestService(t)
	author := &models.User{ID: "farmer-001", Name: "John Farmer", FarmName: "Green Valley Farm"}

	created, err := svc.Submit(author, models.FeedbackInput{
		Subject:  "Water trough broken",
		Category: models.CategoryComplaint,
		Message:  "The trough at the north paddock leaks.",
	})
	require.NoError(t, err)

	assert.Equal(t, models.FeedbackPending, created.Status)
	assert.Equal(t, "2026-03-14", created.SubmittedAt)
	assert.Equal(t, "John Farmer", created.FarmerName)
	assert.Equal(t, "Green Valley Farm", created.FarmName)
	assert.Equal(t, created.ID, svc.List()[0].ID)
}

func TestSubmitValidation(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Submit(nil, models.FeedbackInput{Message: "no subject"})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = svc.Submit(nil, models.FeedbackInput{Subject: "no message"})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = svc.Submit(nil, models.FeedbackInput{Subject: "s", Message: "m", Category: "Rant"})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestStatusTransitionsAreUnconstrained(t *testing.T) {
	svc := newTestService(t)

	_, ok, err := svc.SetStatus("2", models.FeedbackResolved)
	require.NoError(t, err)
	require.True(t, ok)

	updated, ok, err := svc.SetStatus("2", models.FeedbackPending)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, models.FeedbackPending, updated.Status)
}

func TestSetStatusMissingAndInvalid(t *testing.T) {
	svc := newTestService(t)

	_, ok, err := svc.SetStatus("missing", models.FeedbackReviewed)
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = svc.SetStatus("1", "Archived")
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestCounts(t *testing.T) {
	svc := newTestService(t)
	assert.Equal(t, models.FeedbackCounts{Pending: 2, Reviewed: 1, Resolved: 1}, svc.Counts())
}
