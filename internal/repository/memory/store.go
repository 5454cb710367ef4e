// Package memory holds the process-local store for branches, animals and feedback.
// It is the single source of truth: derived values such as a branch's animal
// count or an animal's branch name are computed on read.
package memory

import (
	"errors"
	"sync"

	"github.com/mamadbah2/herdtrack/internal/domain/models"
)

var (
	// ErrBranchInUse is returned when deleting a branch that still owns animals.
	ErrBranchInUse = errors.New("branch still has animals assigned")
)

// Entity identifies which collection a change touched.
type Entity string

const (
	EntityBranch   Entity = "branch"
	EntityAnimal   Entity = "animal"
	EntityFeedback Entity = "feedback"
)

// Op identifies the kind of mutation.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Change describes a committed mutation.
type Change struct {
	Entity Entity
	Op     Op
	ID     string
}

// Listener is notified after a mutation is committed and the store lock released.
type Listener func(Change)

// Store keeps keyed, insertion-ordered collections guarded by a single lock.
type Store struct {
	mu       sync.RWMutex
	branches *collection[models.Branch]
	animals  *collection[models.Animal]
	feedback *collection[models.Feedback]

	listenersMu sync.RWMutex
	listeners   []Listener
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		branches: newCollection[models.Branch](),
		animals:  newCollection[models.Animal](),
		feedback: newCollection[models.Feedback](),
	}
}

// Subscribe registers a change listener.
func (s *Store) Subscribe(l Listener) {
	if l == nil {
		return
	}
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.listeners = append(s.listeners, l)
}

func (s *Store) notify(change Change) {
	s.listenersMu.RLock()
	listeners := append([]Listener(nil), s.listeners...)
	s.listenersMu.RUnlock()

	for _, l := range listeners {
		l(change)
	}
}

// Branches returns every branch with its animal count derived from the live animal set.
func (s *Store) Branches() []models.Branch {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := s.animalCountsLocked()
	out := s.branches.list(nil)
	for i := range out {
		out[i].AnimalCount = counts[out[i].ID]
	}
	return out
}

// Branch looks up one branch by id.
func (s *Store) Branch(id string) (models.Branch, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.branches.get(id)
	if !ok {
		return models.Branch{}, false
	}
	b.AnimalCount = s.animalCountsLocked()[id]
	return b, true
}

// InsertBranch appends a branch. An existing id is overwritten in place.
func (s *Store) InsertBranch(b models.Branch) models.Branch {
	s.mu.Lock()
	b.AnimalCount = 0
	s.branches.appendItem(b.ID, b)
	b.AnimalCount = s.animalCountsLocked()[b.ID]
	s.mu.Unlock()

	s.notify(Change{Entity: EntityBranch, Op: OpCreate, ID: b.ID})
	return b
}

// UpdateBranch applies mutate to the branch with the given id. It reports false when absent.
func (s *Store) UpdateBranch(id string, mutate func(*models.Branch)) (models.Branch, bool) {
	s.mu.Lock()
	b, ok := s.branches.get(id)
	if !ok {
		s.mu.Unlock()
		return models.Branch{}, false
	}
	mutate(&b)
	b.ID = id
	b.AnimalCount = 0
	s.branches.replace(id, b)
	b.AnimalCount = s.animalCountsLocked()[id]
	s.mu.Unlock()

	s.notify(Change{Entity: EntityBranch, Op: OpUpdate, ID: id})
	return b, true
}

// DeleteBranch removes a branch. Branches that still own animals are kept and
// ErrBranchInUse is returned. The boolean reports whether a branch was removed.
func (s *Store) DeleteBranch(id string) (bool, error) {
	s.mu.Lock()
	if _, ok := s.branches.get(id); !ok {
		s.mu.Unlock()
		return false, nil
	}
	if s.animalCountsLocked()[id] > 0 {
		s.mu.Unlock()
		return false, ErrBranchInUse
	}
	s.branches.remove(id)
	s.mu.Unlock()

	s.notify(Change{Entity: EntityBranch, Op: OpDelete, ID: id})
	return true, nil
}

// Animals returns the animals of one branch, or all animals when branchID is
// empty, in insertion order with branch names resolved.
func (s *Store) Animals(branchID string) []models.Animal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keep func(models.Animal) bool
	if branchID != "" {
		keep = func(a models.Animal) bool { return a.BranchID == branchID }
	}
	out := s.animals.list(keep)
	for i := range out {
		out[i].BranchName = s.branchNameLocked(out[i].BranchID)
	}
	return out
}

// Animal looks up one animal by id.
func (s *Store) Animal(id string) (models.Animal, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.animals.get(id)
	if !ok {
		return models.Animal{}, false
	}
	a.BranchName = s.branchNameLocked(a.BranchID)
	return a, true
}

// InsertAnimal appends an animal.
func (s *Store) InsertAnimal(a models.Animal) models.Animal {
	s.mu.Lock()
	a.BranchName = ""
	s.animals.appendItem(a.ID, a)
	a.BranchName = s.branchNameLocked(a.BranchID)
	s.mu.Unlock()

	s.notify(Change{Entity: EntityAnimal, Op: OpCreate, ID: a.ID})
	return a
}

// UpdateAnimal applies mutate to the animal with the given id. It reports false when absent.
func (s *Store) UpdateAnimal(id string, mutate func(*models.Animal)) (models.Animal, bool) {
	s.mu.Lock()
	a, ok := s.animals.get(id)
	if !ok {
		s.mu.Unlock()
		return models.Animal{}, false
	}
	mutate(&a)
	a.ID = id
	a.BranchName = ""
	s.animals.replace(id, a)
	a.BranchName = s.branchNameLocked(a.BranchID)
	s.mu.Unlock()

	s.notify(Change{Entity: EntityAnimal, Op: OpUpdate, ID: id})
	return a, true
}

// DeleteAnimal removes an animal and reports whether it existed.
func (s *Store) DeleteAnimal(id string) bool {
	s.mu.Lock()
	removed := s.animals.remove(id)
	s.mu.Unlock()

	if removed {
		s.notify(Change{Entity: EntityAnimal, Op: OpDelete, ID: id})
	}
	return removed
}

// Feedbacks returns every feedback item, newest submission first.
func (s *Store) Feedbacks() []models.Feedback {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.feedback.list(nil)
}

// InsertFeedback puts a feedback item at the head of the list.
func (s *Store) InsertFeedback(f models.Feedback) models.Feedback {
	s.mu.Lock()
	s.feedback.prependItem(f.ID, f)
	s.mu.Unlock()

	s.notify(Change{Entity: EntityFeedback, Op: OpCreate, ID: f.ID})
	return f
}

// AppendFeedback puts a feedback item at the tail of the list. Used for seeding history.
func (s *Store) AppendFeedback(f models.Feedback) models.Feedback {
	s.mu.Lock()
	s.feedback.appendItem(f.ID, f)
	s.mu.Unlock()

	s.notify(Change{Entity: EntityFeedback, Op: OpCreate, ID: f.ID})
	return f
}

// UpdateFeedback applies mutate to the feedback item with the given id.
func (s *Store) UpdateFeedback(id string, mutate func(*models.Feedback)) (models.Feedback, bool) {
	s.mu.Lock()
	f, ok := s.feedback.get(id)
	if !ok {
		s.mu.Unlock()
		return models.Feedback{}, false
	}
	mutate(&f)
	f.ID = id
	s.feedback.replace(id, f)
	s.mu.Unlock()

	s.notify(Change{Entity: EntityFeedback, Op: OpUpdate, ID: id})
	return f, true
}

func (s *Store) animalCountsLocked() map[string]int {
	counts := make(map[string]int, s.branches.count())
	for _, a := range s.animals.items {
		counts[a.BranchID]++
	}
	return counts
}

func (s *Store) branchNameLocked(branchID string) string {
	if b, ok := s.branches.get(branchID); ok {
		return b.Name
	}
	return ""
}
