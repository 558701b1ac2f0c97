package repository

import "github.com/orchid-haven/orchid-backend/internal/models"

type (
	PropertyRepository  = MemoryRepository[models.Property, *models.Property]
	JobRepository       = MemoryRepository[models.Job, *models.Job]
	ExecutiveRepository = MemoryRepository[models.Executive, *models.Executive]
)

func NewPropertyRepository(seed []models.Property) *PropertyRepository {
	return NewMemoryRepository[models.Property, *models.Property](seed)
}

func NewJobRepository(seed []models.Job) *JobRepository {
	return NewMemoryRepository[models.Job, *models.Job](seed)
}

func NewExecutiveRepository(seed []models.Executive) *ExecutiveRepository {
	return NewMemoryRepository[models.Executive, *models.Executive](seed)
}
