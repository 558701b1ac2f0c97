package dto

import (
	"strings"

	"github.com/orchid-haven/orchid-backend/internal/models"
	"github.com/orchid-haven/orchid-backend/internal/validation"
)

type CreateJobRequest struct {
	Title            string   `json:"title" validate:"required,min=5,max=100"`
	Summary          string   `json:"summary" validate:"max=500"`
	Details          []string `json:"details" validate:"omitempty,max=20,dive,required"`
	Responsibilities []string `json:"responsibilities" validate:"omitempty,max=20,dive,required"`
	Requirements     []string `json:"requirements" validate:"required,min=1,max=20"`
	IsHiring         *bool    `json:"isHiring" validate:"required"`

	Department  string `json:"department" validate:"omitempty,min=2,max=50"`
	Location    string `json:"location" validate:"omitempty,min=5,max=100"`
	Type        string `json:"type" validate:"omitempty,oneof=Full-time Part-time Contract Internship"`
	Experience  string `json:"experience" validate:"omitempty,min=2,max=50"`
	Salary      string `json:"salary" validate:"omitempty,min=5,max=50"`
	Description string `json:"description" validate:"omitempty,min=20,max=1000"`
}

func (r *CreateJobRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Summary = strings.TrimSpace(r.Summary)
	r.Department = strings.TrimSpace(r.Department)
	r.Location = strings.TrimSpace(r.Location)
	r.Type = strings.TrimSpace(r.Type)
	r.Experience = strings.TrimSpace(r.Experience)
	r.Salary = strings.TrimSpace(r.Salary)
	r.Description = strings.TrimSpace(r.Description)
	validation.TrimAll(r.Details)
	validation.TrimAll(r.Responsibilities)
	validation.TrimAll(r.Requirements)
}

func (r *CreateJobRequest) ToModel() models.Job {
	return models.Job{
		Title:            r.Title,
		Summary:          r.Summary,
		Details:          orEmpty(r.Details),
		Responsibilities: orEmpty(r.Responsibilities),
		Requirements:     r.Requirements,
		IsHiring:         *r.IsHiring,
		Department:       r.Department,
		Location:         r.Location,
		Type:             models.JobType(r.Type),
		Experience:       r.Experience,
		Salary:           r.Salary,
		Description:      r.Description,
	}
}

type UpdateJobRequest struct {
	Title            *string  `json:"title" validate:"omitnil,min=5,max=100"`
	Summary          *string  `json:"summary" validate:"omitnil,max=500"`
	Details          []string `json:"details" validate:"omitempty,max=20,dive,required"`
	Responsibilities []string `json:"responsibilities" validate:"omitempty,max=20,dive,required"`
	Requirements     []string `json:"requirements" validate:"omitempty,min=1,max=20"`
	IsHiring         *bool    `json:"isHiring"`

	Department  *string `json:"department" validate:"omitnil,min=2,max=50"`
	Location    *string `json:"location" validate:"omitnil,min=5,max=100"`
	Type        *string `json:"type" validate:"omitnil,oneof=Full-time Part-time Contract Internship"`
	Experience  *string `json:"experience" validate:"omitnil,min=2,max=50"`
	Salary      *string `json:"salary" validate:"omitnil,min=5,max=50"`
	Description *string `json:"description" validate:"omitnil,min=20,max=1000"`
}

func (r *UpdateJobRequest) Normalize() {
	for _, p := range []*string{r.Title, r.Summary, r.Department, r.Location, r.Type, r.Experience, r.Salary, r.Description} {
		validation.TrimPtr(p)
	}
	validation.TrimAll(r.Details)
	validation.TrimAll(r.Responsibilities)
	validation.TrimAll(r.Requirements)
}

func (r *UpdateJobRequest) Apply(j *models.Job) {
	assign(&j.Title, r.Title)
	assign(&j.Summary, r.Summary)
	if r.Details != nil {
		j.Details = r.Details
	}
	if r.Responsibilities != nil {
		j.Responsibilities = r.Responsibilities
	}
	if r.Requirements != nil {
		j.Requirements = r.Requirements
	}
	if r.IsHiring != nil {
		j.IsHiring = *r.IsHiring
	}
	assign(&j.Department, r.Department)
	assign(&j.Location, r.Location)
	if r.Type != nil {
		j.Type = models.JobType(*r.Type)
	}
	assign(&j.Experience, r.Experience)
	assign(&j.Salary, r.Salary)
	assign(&j.Description, r.Description)
}

func assign(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func orEmpty(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
