package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/herdtrack/internal/config"
	"github.com/mamadbah2/herdtrack/internal/domain/models"
)

type countingPublisher struct{ calls int }

func (p *countingPublisher) Publish(context.Context) (models.HerdReport, error) {
	p.calls++
	return models.HerdReport{}, nil
}

func TestNewSchedulerRejectsUnknownTimezone(t *testing.T) {
	_, err := NewScheduler(config.ReportingConfig{CronSchedule: "0 20 * * 5", Timezone: "Mars/Olympus"}, &countingPublisher{}, nil)
	assert.Error(t, err)
}

func TestStartRejectsBadSchedule(t *testing.T) {
	s, err := NewScheduler(config.ReportingConfig{CronSchedule: "every friday", Timezone: "UTC"}, &countingPublisher{}, nil)
	require.NoError(t, err)
	assert.Error(t, s.Start())
}

func TestJobPublishes(t *testing.T) {
	pub := &countingPublisher{}
	s, err := NewScheduler(config.ReportingConfig{CronSchedule: "0 20 * * 5", Timezone: "Africa/Nairobi"}, pub, nil)
	require.NoError(t, err)
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Len(t, s.cron.Entries(), 1)
	s.publishHerdReport()
	assert.Equal(t, 1, pub.calls)
}
