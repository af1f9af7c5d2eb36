package repositories

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/wanderwise/wander/internal/models"
	"github.com/wanderwise/wander/internal/shared"
	"github.com/wanderwise/wander/internal/storage"
)

// DestinationRepository persists user-created destinations under
// engine-assigned keys. Names are unique; a duplicate add fails with a
// key-conflict result rather than an error return.
type DestinationRepository struct {
	engine *storage.Engine
	logger *log.Logger
}

// NewDestinationRepository creates a DestinationRepository backed by the given engine.
func NewDestinationRepository(engine *storage.Engine, logger *log.Logger) *DestinationRepository {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &DestinationRepository{engine: engine, logger: logger}
}

// Add stores a destination and returns the outcome as a [models.SaveResult].
// It never returns a Go error; surfaces inspect the result instead.
func (r *DestinationRepository) Add(dest models.Destination) models.SaveResult {
	if err := dest.Validate(); err != nil {
		return models.SaveResult{Err: fmt.Errorf("validation failed: %w", err)}
	}

	// The stored document must not carry a stale id; the engine assigns one.
	dest.ID = 0

	doc, err := marshal(dest)
	if err != nil {
		return models.SaveResult{Err: err}
	}

	id, err := r.engine.Add(storage.StoreDestinations, doc)
	if err != nil {
		return models.SaveResult{Err: fmt.Errorf("failed to add destination %q: %w", dest.Name, err)}
	}

	return models.SaveResult{OK: true, ID: id}
}

// All returns every stored destination with its assigned id. On engine
// failure it returns an empty slice; the failure is logged.
func (r *DestinationRepository) All() []models.Destination {
	records, err := r.engine.GetAll(storage.StoreDestinations)
	if err != nil {
		r.logger.Warn("failed to read destinations, degrading to empty", "error", err)
		return []models.Destination{}
	}

	dests := make([]models.Destination, 0, len(records))
	for _, rec := range records {
		var d models.Destination
		if err := json.Unmarshal(rec.Document, &d); err != nil {
			r.logger.Warn("skipping undecodable destination", "key", rec.IntKey, "error", err)
			continue
		}
		d.ID = rec.IntKey
		dests = append(dests, d)
	}

	return dests
}
