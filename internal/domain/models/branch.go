package models

// BranchStatus marks whether a farm is in use.
type BranchStatus string

const (
	BranchActive   BranchStatus = "Active"
	BranchInactive BranchStatus = "Inactive"
)

// Valid reports whether s is a known branch status.
func (s BranchStatus) Valid() bool {
	return s == BranchActive || s == BranchInactive
}

// Branch is a farm owning zero or more animals.
type Branch struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Location string       `json:"location"`
	Size     string       `json:"size"`
	Status   BranchStatus `json:"status"`
	// AnimalCount is derived from the live animal set on every read.
	AnimalCount int `json:"animalCount"`
}

// BranchInput carries the editable branch fields submitted by the farm form.
type BranchInput struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
	Size     string `json:"size"`
}

// BranchStatusRequest is the body of a status change.
type BranchStatusRequest struct {
	Status BranchStatus `json:"status" binding:"required"`
}
