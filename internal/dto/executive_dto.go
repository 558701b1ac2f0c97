package dto

import (
	"strings"

	"github.com/orchid-haven/orchid-backend/internal/models"
	"github.com/orchid-haven/orchid-backend/internal/validation"
)

type CreateExecutiveRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=50"`
	Position string  `json:"position" validate:"required,min=5,max=100"`
	Bio      string  `json:"bio" validate:"required,min=20,max=500"`
	Image    *string `json:"image" validate:"omitnil,url"`
}

func (r *CreateExecutiveRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Position = strings.TrimSpace(r.Position)
	r.Bio = strings.TrimSpace(r.Bio)
	validation.TrimPtr(r.Image)
	// An empty string means "no portrait", same as null
	if r.Image != nil && *r.Image == "" {
		r.Image = nil
	}
}

func (r *CreateExecutiveRequest) ToModel() models.Executive {
	return models.Executive{
		Name:     r.Name,
		Position: r.Position,
		Bio:      r.Bio,
		Image:    r.Image,
	}
}

type UpdateExecutiveRequest struct {
	Name     *string `json:"name" validate:"omitnil,min=2,max=50"`
	Position *string `json:"position" validate:"omitnil,min=5,max=100"`
	Bio      *string `json:"bio" validate:"omitnil,min=20,max=500"`
	Image    *string `json:"image" validate:"omitnil,url"`
}

func (r *UpdateExecutiveRequest) Normalize() {
	validation.TrimPtr(r.Name)
	validation.TrimPtr(r.Position)
	validation.TrimPtr(r.Bio)
	validation.TrimPtr(r.Image)
	if r.Image != nil && *r.Image == "" {
		r.Image = nil
	}
}

func (r *UpdateExecutiveRequest) Apply(e *models.Executive) {
	assign(&e.Name, r.Name)
	assign(&e.Position, r.Position)
	assign(&e.Bio, r.Bio)
	if r.Image != nil {
		image := *r.Image
		e.Image = &image
	}
}
