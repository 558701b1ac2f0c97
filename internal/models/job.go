package models

type JobType string

const (
	JobTypeFullTime   JobType = "Full-time"
	JobTypePartTime   JobType = "Part-time"
	JobTypeContract   JobType = "Contract"
	JobTypeInternship JobType = "Internship"
)

// Job is an opening on the careers page.
type Job struct {
	Record
	Title            string   `json:"title"`
	Summary          string   `json:"summary"`
	Details          []string `json:"details"`
	Responsibilities []string `json:"responsibilities"`
	Requirements     []string `json:"requirements"`
	IsHiring         bool     `json:"isHiring"`

	// Optional posting details
	Department  string  `json:"department,omitempty"`
	Location    string  `json:"location,omitempty"`
	Type        JobType `json:"type,omitempty"`
	Experience  string  `json:"experience,omitempty"`
	Salary      string  `json:"salary,omitempty"`
	Description string  `json:"description,omitempty"`
}
