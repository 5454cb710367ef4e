package branches

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdtrack/internal/domain/models"
	"github.com/mamadbah2/herdtrack/internal/repository/memory"
)

// ErrBranchInUse is returned when a farm still owns animals and cannot be deleted.
var ErrBranchInUse = memory.ErrBranchInUse

// Service manages farms.
type Service struct {
	store  *memory.Store
	newID  func() string
	logger *zap.Logger
}

// NewService wires the branch service.
func NewService(store *memory.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, newID: uuid.NewString, logger: logger}
}

// List returns every farm in creation order.
func (s *Service) List() []models.Branch {
	return s.store.Branches()
}

// Get returns one farm.
func (s *Service) Get(id string) (models.Branch, error) {
	b, ok := s.store.Branch(id)
	if !ok {
		return models.Branch{}, fmt.Errorf("branch %s: %w", id, models.ErrNotFound)
	}
	return b, nil
}

// Create adds a farm. New farms start Active with no animals.
func (s *Service) Create(input models.BranchInput) (models.Branch, error) {
	input, err := normalize(input)
	if err != nil {
		return models.Branch{}, err
	}

	created := s.store.InsertBranch(models.Branch{
		ID:       s.newID(),
		Name:     input.Name,
		Location: input.Location,
		Size:     input.Size,
		Status:   models.BranchActive,
	})
	s.logger.Info("branch added", zap.String("branch_id", created.ID), zap.String("name", created.Name))
	return created, nil
}

// Update replaces the editable fields of a farm. A missing id is a silent no-op.
func (s *Service) Update(id string, input models.BranchInput) (models.Branch, bool, error) {
	input, err := normalize(input)
	if err != nil {
		return models.Branch{}, false, err
	}

	updated, ok := s.store.UpdateBranch(id, func(b *models.Branch) {
		b.Name = input.Name
		b.Location = input.Location
		b.Size = input.Size
	})
	if !ok {
		s.logger.Debug("update skipped, branch not found", zap.String("branch_id", id))
		return models.Branch{}, false, nil
	}
	s.logger.Info("branch updated", zap.String("branch_id", id))
	return updated, true, nil
}

// SetStatus switches a farm between Active and Inactive.
func (s *Service) SetStatus(id string, status models.BranchStatus) (models.Branch, bool, error) {
	if !status.Valid() {
		return models.Branch{}, false, models.Invalid("unknown branch status %q", string(status))
	}
	updated, ok := s.store.UpdateBranch(id, func(b *models.Branch) { b.Status = status })
	return updated, ok, nil
}

// Delete removes a farm. Farms that still own animals are rejected with ErrBranchInUse.
func (s *Service) Delete(id string) (bool, error) {
	removed, err := s.store.DeleteBranch(id)
	if err != nil {
		if errors.Is(err, memory.ErrBranchInUse) {
			s.logger.Warn("branch delete rejected", zap.String("branch_id", id), zap.Error(err))
		}
		return false, fmt.Errorf("delete branch %s: %w", id, err)
	}
	if removed {
		s.logger.Info("branch deleted", zap.String("branch_id", id))
	}
	return removed, nil
}

func normalize(input models.BranchInput) (models.BranchInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Location = strings.TrimSpace(input.Location)
	input.Size = strings.TrimSpace(input.Size)
	if input.Name == "" {
		return input, models.Invalid("name is required")
	}
	return input, nil
}
