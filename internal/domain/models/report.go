package models

import "time"

// HerdReport is a point-in-time summary of the herd, stored by the report sinks.
type HerdReport struct {
	GeneratedAt    time.Time      `bson:"generated_at" json:"generated_at"`
	Branches       int            `bson:"branches" json:"branches"`
	ActiveBranches int            `bson:"active_branches" json:"active_branches"`
	Animals        int            `bson:"animals" json:"animals"`
	Healthy        int            `bson:"healthy" json:"healthy"`
	Sick           int            `bson:"sick" json:"sick"`
	UnderTreatment int            `bson:"under_treatment" json:"under_treatment"`
	AverageWeight  float64        `bson:"average_weight" json:"average_weight"`
	Feedback       FeedbackCounts `bson:"feedback" json:"feedback"`
}

// HealthAlerts counts animals that are not healthy.
func (r HerdReport) HealthAlerts() int {
	return r.Sick + r.UnderTreatment
}
