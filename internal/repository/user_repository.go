package repository

import (
	"fmt"
	"sync"

	"github.com/orchid-haven/orchid-backend/internal/models"
)

// UserRepository is the identity store: a fixed set of administrator
// accounts loaded at start-up. There is no way to add or change users
// while the process runs.
type UserRepository struct {
	mu         sync.RWMutex
	byID       map[int64]*models.User
	byUsername map[string]*models.User
}

func NewUserRepository(users ...models.User) (*UserRepository, error) {
	r := &UserRepository{
		byID:       make(map[int64]*models.User, len(users)),
		byUsername: make(map[string]*models.User, len(users)),
	}

	for i := range users {
		u := users[i]
		if u.Username == "" {
			return nil, fmt.Errorf("user %d: empty username", u.ID)
		}
		if _, dup := r.byUsername[u.Username]; dup {
			return nil, fmt.Errorf("duplicate username %q", u.Username)
		}
		if u.ID == 0 {
			u.ID = int64(i + 1)
		}
		if _, dup := r.byID[u.ID]; dup {
			return nil, fmt.Errorf("duplicate user id %d", u.ID)
		}
		r.byID[u.ID] = &u
		r.byUsername[u.Username] = &u
	}

	return r, nil
}

// GetUserByUsername returns nil, nil when no account matches.
func (r *UserRepository) GetUserByUsername(username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byUsername[username]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (r *UserRepository) GetUserByID(id int64) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (r *UserRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
