package models

type Role string

const (
	RoleAdmin Role = "admin"
)

// User is an administrator account. Accounts come from configuration at
// start-up and are never created or modified through the API.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // Never expose password hash in JSON
	Role         Role   `json:"role"`
}
