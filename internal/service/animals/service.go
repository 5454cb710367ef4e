package animals

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdtrack/internal/domain/models"
	"github.com/mamadbah2/herdtrack/internal/geo"
	"github.com/mamadbah2/herdtrack/internal/repository/memory"
)

// Service manages the animal register.
type Service struct {
	store  *memory.Store
	place  func() orb.Point
	newID  func() string
	logger *zap.Logger
}

// NewService wires the animal service. place supplies positions for animals
// submitted without coordinates; it is called once per created animal.
func NewService(store *memory.Store, place func() orb.Point, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		place:  place,
		newID:  uuid.NewString,
		logger: logger,
	}
}

// List returns the animals of branchID, or every animal when branchID is empty.
func (s *Service) List(branchID string) []models.Animal {
	return s.store.Animals(branchID)
}

// Get returns one animal.
func (s *Service) Get(id string) (models.Animal, error) {
	a, ok := s.store.Animal(id)
	if !ok {
		return models.Animal{}, fmt.Errorf("animal %s: %w", id, models.ErrNotFound)
	}
	return a, nil
}

// Create validates the form and appends a new animal.
func (s *Service) Create(input models.AnimalInput) (models.Animal, error) {
	fields, err := parseInput(input)
	if err != nil {
		return models.Animal{}, err
	}

	animal := models.Animal{ID: s.newID()}
	fields.apply(&animal)
	if !fields.hasPosition {
		p := s.place()
		animal.Longitude, animal.Latitude = p.Lon(), p.Lat()
		animal.SyntheticPosition = true
	}

	created := s.store.InsertAnimal(animal)
	s.logger.Info("animal added",
		zap.String("animal_id", created.ID),
		zap.String("tag_id", created.TagID),
		zap.String("branch_id", created.BranchID))
	return created, nil
}

// Update merges the form into the animal with the given id. A missing id is a
// silent no-op and is reported through the boolean.
func (s *Service) Update(id string, input models.AnimalInput) (models.Animal, bool, error) {
	fields, err := parseInput(input)
	if err != nil {
		return models.Animal{}, false, err
	}

	updated, ok := s.store.UpdateAnimal(id, fields.apply)
	if !ok {
		s.logger.Debug("update skipped, animal not found", zap.String("animal_id", id))
		return models.Animal{}, false, nil
	}

	s.logger.Info("animal updated", zap.String("animal_id", id))
	return updated, true, nil
}

// Delete removes an animal. A missing id is a no-op.
func (s *Service) Delete(id string) bool {
	removed := s.store.DeleteAnimal(id)
	if removed {
		s.logger.Info("animal deleted", zap.String("animal_id", id))
	}
	return removed
}

type animalFields struct {
	tagID       string
	breed       string
	age         int
	weight      int
	health      models.HealthStatus
	branchID    string
	hasPosition bool
	lat, lon    float64
}

// apply leaves the stored position untouched unless the form carried one.
func (f animalFields) apply(a *models.Animal) {
	a.TagID = f.tagID
	a.Breed = f.breed
	a.Age = f.age
	a.Weight = f.weight
	a.HealthStatus = f.health
	a.BranchID = f.branchID
	if f.hasPosition {
		a.Latitude, a.Longitude = f.lat, f.lon
		a.SyntheticPosition = false
	}
}

func parseInput(input models.AnimalInput) (animalFields, error) {
	f := animalFields{
		tagID:    strings.TrimSpace(input.TagID),
		breed:    strings.TrimSpace(input.Breed),
		health:   input.HealthStatus,
		branchID: strings.TrimSpace(input.BranchID),
	}

	switch {
	case f.tagID == "":
		return f, models.Invalid("tagId is required")
	case f.breed == "":
		return f, models.Invalid("breed is required")
	case input.Age.Empty():
		return f, models.Invalid("age is required")
	case input.Weight.Empty():
		return f, models.Invalid("weight is required")
	case f.branchID == "":
		return f, models.Invalid("branchId is required")
	}

	var err error
	if f.age, err = input.Age.Int(); err != nil {
		return f, models.Invalid("age must be a whole number, got %q", string(input.Age))
	}
	if f.weight, err = input.Weight.Int(); err != nil {
		return f, models.Invalid("weight must be a whole number, got %q", string(input.Weight))
	}
	if f.age < 0 {
		return f, models.Invalid("age must not be negative")
	}
	if f.weight < 0 {
		return f, models.Invalid("weight must not be negative")
	}

	if f.health == "" {
		f.health = models.HealthHealthy
	}
	if !f.health.Valid() {
		return f, models.Invalid("unknown healthStatus %q", string(f.health))
	}

	switch {
	case input.Latitude == nil && input.Longitude == nil:
	case input.Latitude == nil || input.Longitude == nil:
		return f, models.Invalid("latitude and longitude must be supplied together")
	default:
		if err := geo.ValidateCoordinate(*input.Latitude, *input.Longitude); err != nil {
			return f, models.Invalid("%s", err.Error())
		}
		f.hasPosition = true
		f.lat, f.lon = *input.Latitude, *input.Longitude
	}

	return f, nil
}
