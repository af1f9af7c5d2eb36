package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/wanderwise/wander/internal/models"
	"github.com/wanderwise/wander/internal/shared"
	"github.com/wanderwise/wander/internal/storage"
)

// GuideRepository maintains the master guide collection and the subset
// pinned for offline viewing, keeping the pin set consistent with the
// master set: pinning a guide always writes it to the master store first.
type GuideRepository struct {
	engine *storage.Engine
	logger *log.Logger
	now    func() time.Time
}

// NewGuideRepository creates a GuideRepository backed by the given engine.
func NewGuideRepository(engine *storage.Engine, logger *log.Logger) *GuideRepository {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &GuideRepository{engine: engine, logger: logger, now: time.Now}
}

// SaveGuide upserts a guide into the master store. Saving the same id twice
// leaves one record with the second call's field values.
//
// A guide arriving without an id is assigned one.
func (r *GuideRepository) SaveGuide(guide models.Guide) (models.Guide, error) {
	if guide.ID == "" {
		guide.ID = shared.GenerateID()
	}
	if err := guide.Validate(); err != nil {
		return guide, fmt.Errorf("validation failed: %w", err)
	}

	doc, err := marshal(guide)
	if err != nil {
		return guide, err
	}

	if err := r.engine.Put(storage.StoreGuides, guide.ID, doc); err != nil {
		return guide, fmt.Errorf("failed to save guide %s: %w", guide.ID, err)
	}

	return guide, nil
}

// AllGuides returns the full master collection. On engine failure it
// returns an empty slice; the failure is logged, never propagated.
func (r *GuideRepository) AllGuides() []models.Guide {
	records, err := r.engine.GetAll(storage.StoreGuides)
	if err != nil {
		r.logger.Warn("failed to read guides, degrading to empty", "error", err)
		return []models.Guide{}
	}

	guides := make([]models.Guide, 0, len(records))
	for _, rec := range records {
		var g models.Guide
		if err := json.Unmarshal(rec.Document, &g); err != nil {
			r.logger.Warn("skipping undecodable guide", "key", rec.StringKey, "error", err)
			continue
		}
		guides = append(guides, g)
	}

	return guides
}

// GuideByID returns one guide, or nil when it is absent or unreadable.
func (r *GuideRepository) GuideByID(id string) *models.Guide {
	doc, err := r.engine.Get(storage.StoreGuides, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil
	}
	if err != nil {
		r.logger.Warn("failed to read guide, degrading to absent", "id", id, "error", err)
		return nil
	}

	var g models.Guide
	if err := json.Unmarshal(doc, &g); err != nil {
		r.logger.Warn("undecodable guide", "id", id, "error", err)
		return nil
	}

	return &g
}

// PinForOffline writes the guide into the master store, then records a pin
// snapshot with the current timestamp.
//
// The two writes are independent: a failure after the first leaves the
// guide saved but unpinned, which the next pin attempt repairs.
func (r *GuideRepository) PinForOffline(guide models.Guide) (models.Pin, error) {
	saved, err := r.SaveGuide(guide)
	if err != nil {
		return models.Pin{}, err
	}

	pin := models.Pin{Guide: saved, PinnedAt: r.now().UTC()}

	doc, err := marshal(pin)
	if err != nil {
		return models.Pin{}, err
	}

	if err := r.engine.Put(storage.StoreOfflineGuides, pin.ID, doc); err != nil {
		return models.Pin{}, fmt.Errorf("failed to pin guide %s: %w", pin.ID, err)
	}

	return pin, nil
}

// Pinned returns all offline pins. On engine failure it returns an empty
// slice; the failure is logged, never propagated.
func (r *GuideRepository) Pinned() []models.Pin {
	records, err := r.engine.GetAll(storage.StoreOfflineGuides)
	if err != nil {
		r.logger.Warn("failed to read pins, degrading to empty", "error", err)
		return []models.Pin{}
	}

	pins := make([]models.Pin, 0, len(records))
	for _, rec := range records {
		var p models.Pin
		if err := json.Unmarshal(rec.Document, &p); err != nil {
			r.logger.Warn("skipping undecodable pin", "key", rec.StringKey, "error", err)
			continue
		}
		pins = append(pins, p)
	}

	return pins
}

// IsPinned reports whether the guide with the given id has an offline pin.
func (r *GuideRepository) IsPinned(id string) bool {
	_, err := r.engine.Get(storage.StoreOfflineGuides, id)
	return err == nil
}

// Unpin removes the offline pin for id, leaving the guide itself in the
// master store. Unpinning an id with no pin is a no-op.
func (r *GuideRepository) Unpin(id string) error {
	if err := r.engine.Delete(storage.StoreOfflineGuides, id); err != nil {
		return fmt.Errorf("failed to unpin guide %s: %w", id, err)
	}
	return nil
}
