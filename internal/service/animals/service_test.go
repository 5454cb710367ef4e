package animals

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/herdtrack/internal/domain/models"
	"github.com/mamadbah2/herdtrack/internal/geo"
	"github.com/mamadbah2/herdtrack/internal/repository/memory"
)

func newTestService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	jitter := geo.NewJitter(geo.DefaultCenter, geo.DefaultSpread, 1)
	memory.SeedDemo(store, jitter.Next)
	return NewService(store, jitter.Next, nil), store
}

func cowForm() models.AnimalInput {
	return models.AnimalInput{
		TagID:        "COW-010",
		Breed:        "Angus",
		Age:          "2",
		Weight:       "300",
		HealthStatus: models.HealthHealthy,
		BranchID:     "1",
	}
}

func TestCreateResolvesBranchAndParsesNumbers(t *testing.T) {
	svc, _ := newTestService(t)

	before := svc.List("")
	created, err := svc.Create(cowForm())
	require.NoError(t, err)

	assert.Equal(t, 2, created.Age)
	assert.Equal(t, 300, created.Weight)
	assert.Equal(t, "Green Valley Farm", created.BranchName)
	assert.NotEmpty(t, created.ID)

	after := svc.List("")
	require.Len(t, after, len(before)+1)
	assert.Equal(t, created, after[len(after)-1])

	var matches int
	for _, a := range after {
		if a.ID == created.ID {
			matches++
		}
	}
	assert.Equal(t, 1, matches)
}

func TestCreateUnknownBranchFailsOpen(t *testing.T) {
	svc, _ := newTestService(t)

	form := cowForm()
	form.BranchID = "99"
	created, err := svc.Create(form)
	require.NoError(t, err)
	assert.Equal(t, "", created.BranchName)
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService(t)
	lat, lon := 91.0, 10.0

	tests := []struct {
		name   string
		mutate func(*models.AnimalInput)
	}{
		{"missing tag", func(in *models.AnimalInput) { in.TagID = "  " }},
		{"missing breed", func(in *models.AnimalInput) { in.Breed = "" }},
		{"missing age", func(in *models.AnimalInput) { in.Age = "" }},
		{"missing weight", func(in *models.AnimalInput) { in.Weight = "" }},
		{"missing branch", func(in *models.AnimalInput) { in.BranchID = "" }},
		{"non numeric age", func(in *models.AnimalInput) { in.Age = "two" }},
		{"non numeric weight", func(in *models.AnimalInput) { in.Weight = "300kg" }},
		{"negative age", func(in *models.AnimalInput) { in.Age = "-1" }},
		{"unknown health", func(in *models.AnimalInput) { in.HealthStatus = "Dead" }},
		{"half coordinate", func(in *models.AnimalInput) { in.Latitude = &lat }},
		{"out of range", func(in *models.AnimalInput) { in.Latitude, in.Longitude = &lat, &lon }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := cowForm()
			tt.mutate(&form)
			_, err := svc.Create(form)
			assert.ErrorIs(t, err, models.ErrValidation)
		})
	}

	assert.Len(t, svc.List(""), 4)
}

func TestCreateDefaultsHealthy(t *testing.T) {
	svc, _ := newTestService(t)
	form := cowForm()
	form.HealthStatus = ""
	created, err := svc.Create(form)
	require.NoError(t, err)
	assert.Equal(t, models.HealthHealthy, created.HealthStatus)
}

func TestSyntheticPositionAssignedOnceAndStable(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.Create(cowForm())
	require.NoError(t, err)
	assert.True(t, created.SyntheticPosition)

	jitter := geo.NewJitter(geo.DefaultCenter, geo.DefaultSpread, 0)
	assert.True(t, jitter.Contains(created.Point()))

	_, err = svc.Create(cowForm())
	require.NoError(t, err)
	svc.Delete("1")

	form := cowForm()
	form.Weight = "310"
	updated, ok, err := svc.Update(created.ID, form)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, created.Point(), updated.Point())
	assert.True(t, updated.SyntheticPosition)
}

func TestExplicitCoordinatesKept(t *testing.T) {
	svc, _ := newTestService(t)
	lat, lon := -1.3, 36.9

	form := cowForm()
	form.Latitude, form.Longitude = &lat, &lon
	created, err := svc.Create(form)
	require.NoError(t, err)
	assert.Equal(t, orb.Point{36.9, -1.3}, created.Point())
	assert.False(t, created.SyntheticPosition)
}

func TestUpdateTouchesOnlyTarget(t *testing.T) {
	svc, _ := newTestService(t)
	before := svc.List("")

	form := cowForm()
	form.BranchID = "2"
	updated, ok, err := svc.Update("1", form)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Sunset Ranch", updated.BranchName)
	assert.Equal(t, "COW-010", updated.TagID)

	after := svc.List("")
	require.Len(t, after, len(before))
	for i := range before {
		if before[i].ID == "1" {
			continue
		}
		assert.Equal(t, before[i], after[i])
	}
}

func TestUpdateMissingIsNoop(t *testing.T) {
	svc, _ := newTestService(t)
	before := svc.List("")

	_, ok, err := svc.Update("missing", cowForm())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, before, svc.List(""))
}

func TestDelete(t *testing.T) {
	svc, _ := newTestService(t)

	assert.True(t, svc.Delete("3"))
	assert.Len(t, svc.List(""), 3)
	assert.False(t, svc.Delete("3"))
	assert.Len(t, svc.List(""), 3)

	_, err := svc.Get("3")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestListByBranch(t *testing.T) {
	svc, _ := newTestService(t)

	for _, branch := range []string{"1", "2", "3"} {
		for _, a := range svc.List(branch) {
			assert.Equal(t, branch, a.BranchID)
		}
	}
	assert.Len(t, svc.List("1"), 2)
	assert.Len(t, svc.List(""), 4)
}
