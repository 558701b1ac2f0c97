package service

import (
	"context"
	"strconv"

	"github.com/orchid-haven/orchid-backend/internal/dto"
	"github.com/orchid-haven/orchid-backend/internal/events"
	"github.com/orchid-haven/orchid-backend/internal/models"
	"github.com/orchid-haven/orchid-backend/internal/repository"
	"github.com/orchid-haven/orchid-backend/internal/validation"
)

// PropertyService manages listings. Deleting a property deactivates it:
// the public listing hides it, the admin view keeps it.
type PropertyService struct {
	repo      repository.Repository[models.Property]
	validator *validation.Validator
	events    events.Sink
}

func NewPropertyService(repo repository.Repository[models.Property], v *validation.Validator, sink events.Sink) *PropertyService {
	if sink == nil {
		sink = events.Discard
	}
	return &PropertyService{repo: repo, validator: v, events: sink}
}

func isActive(p *models.Property) bool {
	return p.IsActive
}

// ListActive is the public listing.
func (s *PropertyService) ListActive() []models.Property {
	return s.repo.Find(isActive)
}

// ListAll includes deactivated properties.
func (s *PropertyService) ListAll() []models.Property {
	return s.repo.List()
}

// GetActive hides deactivated properties behind ErrNotFound.
func (s *PropertyService) GetActive(id int64) (models.Property, error) {
	p, err := s.repo.Get(id)
	if err != nil {
		return p, err
	}
	if !p.IsActive {
		return models.Property{}, ErrNotFound
	}
	return p, nil
}

func (s *PropertyService) Get(id int64) (models.Property, error) {
	return s.repo.Get(id)
}

func (s *PropertyService) Create(ctx context.Context, req *dto.CreatePropertyRequest) (models.Property, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Property{}, err
	}

	p := s.repo.Create(req.ToModel())
	s.record(ctx, events.TypeCreated, p)
	return p, nil
}

// Update validates first, so a bad payload is reported even for a missing id.
func (s *PropertyService) Update(ctx context.Context, id int64, req *dto.UpdatePropertyRequest) (models.Property, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Property{}, err
	}

	p, err := s.repo.Update(id, req.Apply)
	if err != nil {
		return models.Property{}, err
	}
	s.record(ctx, events.TypeUpdated, p)
	return p, nil
}

// Delete sets isActive to false. Deleting an inactive property succeeds.
func (s *PropertyService) Delete(ctx context.Context, id int64) (models.Property, error) {
	p, err := s.repo.Update(id, func(p *models.Property) {
		p.IsActive = false
	})
	if err != nil {
		return models.Property{}, err
	}
	s.record(ctx, events.TypeDeactivated, p)
	return p, nil
}

func (s *PropertyService) record(ctx context.Context, typ events.Type, p models.Property) {
	s.events.Record(ctx, events.New(ctx, typ, events.EntityProperty, strconv.FormatInt(p.ID, 10), p.Title))
}
