package models

import "time"

// Record carries the identity and bookkeeping fields shared by every entity
// collection. It is embedded, so its fields are flattened into the JSON of
// the owning type.
type Record struct {
	ID        int64      `json:"id"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

func (r *Record) GetID() int64 {
	return r.ID
}

func (r *Record) SetID(id int64) {
	r.ID = id
}

func (r *Record) SetCreatedAt(t time.Time) {
	r.CreatedAt = &t
}

func (r *Record) SetUpdatedAt(t time.Time) {
	r.UpdatedAt = &t
}
