package repository

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/orchid-haven/orchid-backend/internal/models"
)

//go:embed seed/*.json
var seedFiles embed.FS

// SeedData is the content the public site shipped with.
type SeedData struct {
	Properties []models.Property
	Jobs       []models.Job
	Executives []models.Executive
}

// LoadSeed decodes the embedded seed collections.
func LoadSeed() (*SeedData, error) {
	var data SeedData

	if err := decodeSeed("seed/properties.json", &data.Properties); err != nil {
		return nil, err
	}
	if err := decodeSeed("seed/jobs.json", &data.Jobs); err != nil {
		return nil, err
	}
	if err := decodeSeed("seed/executives.json", &data.Executives); err != nil {
		return nil, err
	}

	return &data, nil
}

func decodeSeed(name string, target any) error {
	raw, err := seedFiles.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}
