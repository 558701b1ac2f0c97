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

type ExecutiveService struct {
	repo      repository.Repository[models.Executive]
	validator *validation.Validator
	events    events.Sink
}

func NewExecutiveService(repo repository.Repository[models.Executive], v *validation.Validator, sink events.Sink) *ExecutiveService {
	if sink == nil {
		sink = events.Discard
	}
	return &ExecutiveService{repo: repo, validator: v, events: sink}
}

func (s *ExecutiveService) List() []models.Executive {
	return s.repo.List()
}

func (s *ExecutiveService) Get(id int64) (models.Executive, error) {
	return s.repo.Get(id)
}

func (s *ExecutiveService) Create(ctx context.Context, req *dto.CreateExecutiveRequest) (models.Executive, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Executive{}, err
	}

	e := s.repo.Create(req.ToModel())
	s.record(ctx, events.TypeCreated, e)
	return e, nil
}

func (s *ExecutiveService) Update(ctx context.Context, id int64, req *dto.UpdateExecutiveRequest) (models.Executive, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Executive{}, err
	}

	e, err := s.repo.Update(id, req.Apply)
	if err != nil {
		return models.Executive{}, err
	}
	s.record(ctx, events.TypeUpdated, e)
	return e, nil
}

func (s *ExecutiveService) Delete(ctx context.Context, id int64) (models.Executive, error) {
	e, err := s.repo.Get(id)
	if err != nil {
		return models.Executive{}, err
	}
	if err := s.repo.Delete(id); err != nil {
		return models.Executive{}, err
	}
	s.record(ctx, events.TypeDeleted, e)
	return e, nil
}

func (s *ExecutiveService) record(ctx context.Context, typ events.Type, e models.Executive) {
	s.events.Record(ctx, events.New(ctx, typ, events.EntityExecutive, strconv.FormatInt(e.ID, 10), e.Name))
}
