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

// TripRepository persists saved trip plans under engine-assigned keys.
// Every save produces a new record; plans are never updated in place.
type TripRepository struct {
	engine *storage.Engine
	logger *log.Logger
	now    func() time.Time
}

// NewTripRepository creates a TripRepository backed by the given engine.
func NewTripRepository(engine *storage.Engine, logger *log.Logger) *TripRepository {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &TripRepository{engine: engine, logger: logger, now: time.Now}
}

// Save stamps the creation timestamp, fills the computed totals if the
// caller left them zero, and stores the plan. The outcome is returned as a
// [models.SaveResult]; Save never returns a Go error.
func (r *TripRepository) Save(plan models.TripPlan) models.SaveResult {
	if err := plan.Validate(); err != nil {
		return models.SaveResult{Err: fmt.Errorf("validation failed: %w", err)}
	}

	plan.ID = 0
	plan.CreatedAt = r.now().UTC()
	if plan.TotalSpent == 0 {
		plan.TotalSpent = plan.TotalCost()
	}
	if plan.DaysInTrip == 0 {
		// Validate already parsed the dates.
		plan.DaysInTrip, _ = plan.Days()
	}

	doc, err := marshal(plan)
	if err != nil {
		return models.SaveResult{Err: err}
	}

	id, err := r.engine.Add(storage.StoreTripPlans, doc)
	if err != nil {
		return models.SaveResult{Err: fmt.Errorf("failed to save trip plan %q: %w", plan.TripName, err)}
	}

	return models.SaveResult{OK: true, ID: id}
}

// All returns every saved trip plan with its assigned id. On engine failure
// it returns an empty slice; the failure is logged.
func (r *TripRepository) All() []models.TripPlan {
	records, err := r.engine.GetAll(storage.StoreTripPlans)
	if err != nil {
		r.logger.Warn("failed to read trip plans, degrading to empty", "error", err)
		return []models.TripPlan{}
	}

	plans := make([]models.TripPlan, 0, len(records))
	for _, rec := range records {
		var p models.TripPlan
		if err := json.Unmarshal(rec.Document, &p); err != nil {
			r.logger.Warn("skipping undecodable trip plan", "key", rec.IntKey, "error", err)
			continue
		}
		p.ID = rec.IntKey
		plans = append(plans, p)
	}

	return plans
}

// ByID returns one trip plan, or nil when it is absent or unreadable.
func (r *TripRepository) ByID(id int64) *models.TripPlan {
	doc, err := r.engine.Get(storage.StoreTripPlans, id)
	if errors.Is(err, shared.ErrNotFound) {
		return nil
	}
	if err != nil {
		r.logger.Warn("failed to read trip plan, degrading to absent", "id", id, "error", err)
		return nil
	}

	var p models.TripPlan
	if err := json.Unmarshal(doc, &p); err != nil {
		r.logger.Warn("undecodable trip plan", "id", id, "error", err)
		return nil
	}
	p.ID = id

	return &p
}
