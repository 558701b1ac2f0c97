package dto

import "strings"

// LoginRequest only checks presence: length rules would let callers tell a
// malformed guess apart from a wrong one.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
}
