package testutil

import (
	"strings"
	"testing"

	"github.com/orchid-haven/orchid-backend/internal/dto"
	"github.com/orchid-haven/orchid-backend/internal/models"
	"github.com/orchid-haven/orchid-backend/internal/repository"
	"github.com/orchid-haven/orchid-backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

const (
	AdminUsername = "admin"
	AdminPassword = "admin123"
	TestJWTSecret = "test-secret-key-for-testing-only"
)

// AdminUser returns the seeded administrator with a cheap bcrypt hash.
func AdminUser(t *testing.T) models.User {
	t.Helper()
	hash, err := utils.HashPasswordWithCost(AdminPassword, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash admin password: %v", err)
	}
	return models.User{
		ID:           1,
		Username:     AdminUsername,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
}

// UserRepository returns an identity store holding only AdminUser.
func UserRepository(t *testing.T) *repository.UserRepository {
	t.Helper()
	repo, err := repository.NewUserRepository(AdminUser(t))
	if err != nil {
		t.Fatalf("Failed to build user repository: %v", err)
	}
	return repo
}

func PropertyRequest() *dto.CreatePropertyRequest {
	return &dto.CreatePropertyRequest{
		Title:          "ORCHID SKYLINE",
		Location:       "Ramdaspeth, Nagpur - 440010",
		Price:          "₹1.2 Cr. Onwards",
		Images:         []string{"https://cdn.example.com/skyline.jpg"},
		CustomInfo:     []string{"3 BHK", "1600 sq.ft."},
		Type:           "Apartment",
		FilterCategory: "3BHK",
		IsActive:       Ptr(true),
		Amenities:      []string{"Gym", "Clubhouse"},
	}
}

func JobRequest() *dto.CreateJobRequest {
	return &dto.CreateJobRequest{
		Title:            "Site Engineer",
		Summary:          "Supervise construction quality on our residential projects.",
		Details:          []string{"Daily site supervision"},
		Responsibilities: []string{"Coordinate with contractors"},
		Requirements:     []string{"B.E. Civil", "2+ years on site"},
		IsHiring:         Ptr(true),
	}
}

func ExecutiveRequest() *dto.CreateExecutiveRequest {
	return &dto.CreateExecutiveRequest{
		Name:     "Anita Deshmukh",
		Position: "Head of Projects",
		Bio:      strings.Repeat("Delivers projects on time. ", 2),
	}
}
