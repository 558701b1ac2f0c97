package service

import "github.com/orchid-haven/orchid-backend/internal/repository"

// ErrNotFound is returned when a record id does not exist (or, for public
// property reads, is not active).
var ErrNotFound = repository.ErrNotFound
