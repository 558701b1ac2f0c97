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

type JobService struct {
	repo      repository.Repository[models.Job]
	validator *validation.Validator
	events    events.Sink
}

func NewJobService(repo repository.Repository[models.Job], v *validation.Validator, sink events.Sink) *JobService {
	if sink == nil {
		sink = events.Discard
	}
	return &JobService{repo: repo, validator: v, events: sink}
}

func (s *JobService) List() []models.Job {
	return s.repo.List()
}

func (s *JobService) Get(id int64) (models.Job, error) {
	return s.repo.Get(id)
}

func (s *JobService) Create(ctx context.Context, req *dto.CreateJobRequest) (models.Job, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Job{}, err
	}

	j := s.repo.Create(req.ToModel())
	s.record(ctx, events.TypeCreated, j)
	return j, nil
}

func (s *JobService) Update(ctx context.Context, id int64, req *dto.UpdateJobRequest) (models.Job, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Job{}, err
	}

	j, err := s.repo.Update(id, req.Apply)
	if err != nil {
		return models.Job{}, err
	}
	s.record(ctx, events.TypeUpdated, j)
	return j, nil
}

// Delete removes the job from the collection.
func (s *JobService) Delete(ctx context.Context, id int64) (models.Job, error) {
	j, err := s.repo.Get(id)
	if err != nil {
		return models.Job{}, err
	}
	if err := s.repo.Delete(id); err != nil {
		return models.Job{}, err
	}
	s.record(ctx, events.TypeDeleted, j)
	return j, nil
}

func (s *JobService) record(ctx context.Context, typ events.Type, j models.Job) {
	s.events.Record(ctx, events.New(ctx, typ, events.EntityJob, strconv.FormatInt(j.ID, 10), j.Title))
}
