// Package seed ships the embedded starter catalog of destination guides and
// destinations, and imports it into the local stores.
package seed

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/wanderwise/wander/internal/models"
	"github.com/wanderwise/wander/internal/repositories"
	"github.com/wanderwise/wander/internal/shared"
)

//go:embed catalog.json
var catalogJSON []byte

// Catalog is the embedded starter content.
type Catalog struct {
	Guides       []models.Guide       `json:"guides"`
	Destinations []models.Destination `json:"destinations"`
}

// Load decodes the embedded catalog.
func Load() (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(catalogJSON, &c); err != nil {
		return nil, fmt.Errorf("failed to decode embedded catalog: %w", err)
	}
	return &c, nil
}

// ImportResult summarizes a catalog import.
type ImportResult struct {
	GuidesSaved       int
	DestinationsAdded int
	Skipped           int // destinations already present (name conflict)
}

// Import writes the catalog into the local stores. Guide import is an
// upsert; destination import tolerates duplicate names so re-running setup
// with --seed stays safe.
func Import(guides *repositories.GuideRepository, dests *repositories.DestinationRepository) (*ImportResult, error) {
	catalog, err := Load()
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}

	for _, g := range catalog.Guides {
		if _, err := guides.SaveGuide(g); err != nil {
			return result, fmt.Errorf("failed to seed guide %s: %w", g.ID, err)
		}
		result.GuidesSaved++
	}

	for _, d := range catalog.Destinations {
		res := dests.Add(d)
		if res.OK {
			result.DestinationsAdded++
			continue
		}
		if errors.Is(res.Err, shared.ErrKeyConflict) {
			result.Skipped++
			continue
		}
		return result, fmt.Errorf("failed to seed destination %q: %w", d.Name, res.Err)
	}

	return result, nil
}
