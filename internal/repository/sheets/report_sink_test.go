package sheets

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/herdtrack/internal/domain/models"
)

type recordingRepo struct {
	ranges []string
	rows   [][]interface{}
}

func (r *recordingRepo) WriteRow(_ context.Context, sheetRange string, values []interface{}) error {
	r.ranges = append(r.ranges, sheetRange)
	r.rows = append(r.rows, values)
	return nil
}

func TestReportSinkWritesOneRow(t *testing.T) {
	repo := &recordingRepo{}
	sink := NewReportSink(repo)

	err := sink.SaveHerdReport(context.Background(), models.HerdReport{
		GeneratedAt:    time.Date(2026, 5, 1, 20, 0, 0, 0, time.UTC),
		Branches:       3,
		ActiveBranches: 2,
		Animals:        4,
		Healthy:        3,
		UnderTreatment: 1,
		AverageWeight:  487.5,
		Feedback:       models.FeedbackCounts{Pending: 2, Reviewed: 1, Resolved: 1},
	})
	require.NoError(t, err)

	require.Len(t, repo.rows, 1)
	assert.Equal(t, []string{herdReportRange}, repo.ranges)
	assert.Equal(t, []interface{}{"2026-05-01 20:00:00", 3, 2, 4, 3, 0, 1, "487.5", 2, 1}, repo.rows[0])
	assert.Equal(t, "sheets", sink.Name())
}
