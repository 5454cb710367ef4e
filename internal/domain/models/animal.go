package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// HealthStatus drives marker color and badge styling.
type HealthStatus string

const (
	HealthHealthy        HealthStatus = "Healthy"
	HealthSick           HealthStatus = "Sick"
	HealthUnderTreatment HealthStatus = "Under Treatment"
)

// Valid reports whether h is a known health status.
func (h HealthStatus) Valid() bool {
	switch h {
	case HealthHealthy, HealthSick, HealthUnderTreatment:
		return true
	}
	return false
}

// Animal is one tagged head of livestock.
type Animal struct {
	ID           string       `json:"id"`
	TagID        string       `json:"tagId"`
	Breed        string       `json:"breed"`
	Age          int          `json:"age"`
	Weight       int          `json:"weight"`
	HealthStatus HealthStatus `json:"healthStatus"`
	BranchID     string       `json:"branchId"`
	// BranchName is resolved against the branch collection at read time.
	BranchName string  `json:"branchName"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	// SyntheticPosition is set when the coordinates were generated rather than supplied.
	SyntheticPosition bool `json:"syntheticPosition"`
}

// Point returns the animal position in lon/lat order.
func (a Animal) Point() orb.Point {
	return orb.Point{a.Longitude, a.Latitude}
}

// AnimalInput is the body of the animal form. Age and weight arrive as form strings or numbers.
type AnimalInput struct {
	TagID        string       `json:"tagId"`
	Breed        string       `json:"breed"`
	Age          FormNumber   `json:"age"`
	Weight       FormNumber   `json:"weight"`
	HealthStatus HealthStatus `json:"healthStatus"`
	BranchID     string       `json:"branchId"`
	Latitude     *float64     `json:"latitude,omitempty"`
	Longitude    *float64     `json:"longitude,omitempty"`
}

// FormNumber keeps the raw text of a numeric form field so it can be parsed explicitly.
type FormNumber string

// UnmarshalJSON accepts both JSON strings and JSON numbers.
func (n *FormNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = FormNumber(s)
		return nil
	}
	*n = FormNumber(data)
	return nil
}

// Int parses the field as a base-10 integer.
func (n FormNumber) Int() (int, error) {
	return strconv.Atoi(strings.TrimSpace(string(n)))
}

// Empty reports whether the field was left blank.
func (n FormNumber) Empty() bool {
	return strings.TrimSpace(string(n)) == ""
}
