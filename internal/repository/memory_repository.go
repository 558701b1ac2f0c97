package repository

import (
	"errors"
	"slices"
	"sync"
	"time"
)

var ErrNotFound = errors.New("record not found")

// Entity is implemented by pointers to the collection models through the
// embedded models.Record.
type Entity interface {
	GetID() int64
	SetID(id int64)
	SetCreatedAt(t time.Time)
	SetUpdatedAt(t time.Time)
}

// Repository is the storage contract the services depend on.
type Repository[T any] interface {
	List() []T
	Find(match func(*T) bool) []T
	Get(id int64) (T, error)
	Create(item T) T
	Update(id int64, mutate func(*T)) (T, error)
	Delete(id int64) error
	Count() int
}

// MemoryRepository keeps one entity collection in process memory.
// Reads share an RWMutex; writes are serialised, so two concurrent updates
// to the same id both apply in lock order (last write wins).
// Ids come from a counter that only grows: a deleted id is never handed out again.
type MemoryRepository[T any, P interface {
	*T
	Entity
}] struct {
	mu     sync.RWMutex
	items  map[int64]T
	order  []int64
	nextID int64
	now    func() time.Time
}

func NewMemoryRepository[T any, P interface {
	*T
	Entity
}](seed []T) *MemoryRepository[T, P] {
	r := &MemoryRepository[T, P]{
		items:  make(map[int64]T, len(seed)),
		nextID: 1,
		now:    time.Now,
	}

	for _, item := range seed {
		id := P(&item).GetID()
		if id <= 0 {
			id = r.nextID
			P(&item).SetID(id)
		}
		if _, exists := r.items[id]; !exists {
			r.order = append(r.order, id)
		}
		r.items[id] = item
		if id >= r.nextID {
			r.nextID = id + 1
		}
	}

	return r
}

// WithClock replaces the timestamp source. Used by tests.
func (r *MemoryRepository[T, P]) WithClock(now func() time.Time) *MemoryRepository[T, P] {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = now
	return r
}

// List returns every record in insertion order.
func (r *MemoryRepository[T, P]) List() []T {
	return r.Find(nil)
}

// Find returns the records for which match is true, in insertion order.
// A nil match selects everything.
func (r *MemoryRepository[T, P]) Find(match func(*T) bool) []T {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]T, 0, len(r.order))
	for _, id := range r.order {
		item := r.items[id]
		if match == nil || match(&item) {
			result = append(result, item)
		}
	}
	return result
}

func (r *MemoryRepository[T, P]) Get(id int64) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return item, nil
}

// Create assigns the next id and creation time and stores item.
// Any id already set on item is ignored.
func (r *MemoryRepository[T, P]) Create(item T) T {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++

	P(&item).SetID(id)
	P(&item).SetCreatedAt(r.now())

	r.items[id] = item
	r.order = append(r.order, id)
	return item
}

// Update runs mutate on a copy of the record while holding the write lock,
// then stores the copy with a fresh update time. The id cannot be changed.
func (r *MemoryRepository[T, P]) Update(id int64, mutate func(*T)) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}

	mutate(&item)
	P(&item).SetID(id)
	P(&item).SetUpdatedAt(r.now())

	r.items[id] = item
	return item, nil
}

func (r *MemoryRepository[T, P]) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}

	delete(r.items, id)
	if i := slices.Index(r.order, id); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	return nil
}

func (r *MemoryRepository[T, P]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
