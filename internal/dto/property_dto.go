// Package dto holds the request payloads accepted by the API together with
// their validation rules and the merge logic that applies them to records.
package dto

import (
	"strings"

	"github.com/orchid-haven/orchid-backend/internal/models"
	"github.com/orchid-haven/orchid-backend/internal/validation"
)

type CreatePropertyRequest struct {
	Title          string   `json:"title" validate:"required,min=3,max=100"`
	Location       string   `json:"location" validate:"required,min=10,max=200"`
	Price          string   `json:"price" validate:"required,min=5,max=50"`
	Images         []string `json:"images" validate:"omitempty,max=20,dive,required"`
	CustomInfo     []string `json:"customInfo" validate:"required,min=1,max=10"`
	Type           string   `json:"type" validate:"required,oneof=Apartment Villa Plot Commercial"`
	FilterCategory string   `json:"filterCategory" validate:"required,oneof=1BHK 2BHK 3BHK 4BHK 5BHK+"`
	IsActive       *bool    `json:"isActive" validate:"required"`
	Amenities      []string `json:"amenities" validate:"omitempty,max=30,dive,required"`
}

func (r *CreatePropertyRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Location = strings.TrimSpace(r.Location)
	r.Price = strings.TrimSpace(r.Price)
	r.Type = strings.TrimSpace(r.Type)
	r.FilterCategory = strings.TrimSpace(r.FilterCategory)
	validation.TrimAll(r.Images)
	validation.TrimAll(r.CustomInfo)
	validation.TrimAll(r.Amenities)
}

func (r *CreatePropertyRequest) ToModel() models.Property {
	images := r.Images
	if images == nil {
		images = []string{}
	}
	return models.Property{
		Title:          r.Title,
		Location:       r.Location,
		Price:          r.Price,
		Images:         images,
		CustomInfo:     r.CustomInfo,
		Type:           models.PropertyType(r.Type),
		FilterCategory: r.FilterCategory,
		IsActive:       *r.IsActive,
		Amenities:      r.Amenities,
	}
}

// UpdatePropertyRequest is a partial payload: nil fields are left untouched.
type UpdatePropertyRequest struct {
	Title          *string  `json:"title" validate:"omitnil,min=3,max=100"`
	Location       *string  `json:"location" validate:"omitnil,min=10,max=200"`
	Price          *string  `json:"price" validate:"omitnil,min=5,max=50"`
	Images         []string `json:"images" validate:"omitempty,max=20,dive,required"`
	CustomInfo     []string `json:"customInfo" validate:"omitempty,min=1,max=10"`
	Type           *string  `json:"type" validate:"omitnil,oneof=Apartment Villa Plot Commercial"`
	FilterCategory *string  `json:"filterCategory" validate:"omitnil,oneof=1BHK 2BHK 3BHK 4BHK 5BHK+"`
	IsActive       *bool    `json:"isActive"`
	Amenities      []string `json:"amenities" validate:"omitempty,max=30,dive,required"`
}

func (r *UpdatePropertyRequest) Normalize() {
	validation.TrimPtr(r.Title)
	validation.TrimPtr(r.Location)
	validation.TrimPtr(r.Price)
	validation.TrimPtr(r.Type)
	validation.TrimPtr(r.FilterCategory)
	validation.TrimAll(r.Images)
	validation.TrimAll(r.CustomInfo)
	validation.TrimAll(r.Amenities)
}

func (r *UpdatePropertyRequest) Apply(p *models.Property) {
	if r.Title != nil {
		p.Title = *r.Title
	}
	if r.Location != nil {
		p.Location = *r.Location
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.Images != nil {
		p.Images = r.Images
	}
	if r.CustomInfo != nil {
		p.CustomInfo = r.CustomInfo
	}
	if r.Type != nil {
		p.Type = models.PropertyType(*r.Type)
	}
	if r.FilterCategory != nil {
		p.FilterCategory = *r.FilterCategory
	}
	if r.IsActive != nil {
		p.IsActive = *r.IsActive
	}
	if r.Amenities != nil {
		p.Amenities = r.Amenities
	}
}
