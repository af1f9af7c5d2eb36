package tasks

import (
	"context"
	"fmt"

	"github.com/wanderwise/wander/internal/models"
	"golang.org/x/time/rate"
)

// GuideCache is the slice of the guide repository the pin engine needs.
type GuideCache interface {
	GuideByID(id string) *models.Guide
	PinForOffline(guide models.Guide) (models.Pin, error)
	Pinned() []models.Pin
}

// PinEngine pins batches of guides for offline viewing with rate limiting
// and progress tracking.
type PinEngine struct {
	guides    GuideCache
	rateLimit float64
}

// NewPinEngine creates a PinEngine over the given cache. A rate limit of
// zero or less uses the default of 5 pins per second.
func NewPinEngine(guides GuideCache, rateLimit float64) *PinEngine {
	if rateLimit <= 0 {
		rateLimit = 5.0
	}
	return &PinEngine{guides: guides, rateLimit: rateLimit}
}

// Run pins each requested guide in order, skipping ids with no guide in the
// master store. Partial failures are collected rather than aborting the
// batch; the returned result accounts for every requested id.
func (e *PinEngine) Run(ctx context.Context, ids []string, prog chan<- ProgressUpdate) (*PinRunResult, error) {
	if e.guides == nil {
		return nil, fmt.Errorf("guide cache not initialized")
	}

	result := &PinRunResult{Requested: len(ids)}
	limiter := rate.NewLimiter(rate.Limit(e.rateLimit), 1)

	for i, id := range ids {
		if err := limiter.Wait(ctx); err != nil {
			return result, fmt.Errorf("pin run cancelled: %w", err)
		}

		e.sendProgress(prog, ProgressUpdate{
			Phase:   ResolveGuides,
			Step:    i + 1,
			Total:   len(ids),
			GuideID: id,
			Message: fmt.Sprintf("Looking up guide %s", id),
		})

		guide := e.guides.GuideByID(id)
		if guide == nil {
			result.Missing = append(result.Missing, id)
			continue
		}

		e.sendProgress(prog, ProgressUpdate{
			Phase:   PinGuides,
			Step:    i + 1,
			Total:   len(ids),
			GuideID: id,
			Message: fmt.Sprintf("Pinning %s for offline", guide.Destination),
		})

		if _, err := e.guides.PinForOffline(*guide); err != nil {
			result.Failed = append(result.Failed, id)
			continue
		}

		result.Pinned++
	}

	e.sendProgress(prog, ProgressUpdate{
		Phase:   Done,
		Step:    len(ids),
		Total:   len(ids),
		Message: fmt.Sprintf("Pinned %d of %d guides", result.Pinned, result.Requested),
	})

	return result, nil
}

// RefreshPinned re-pins every currently pinned guide from the master store,
// refreshing stale snapshots. Intended to run after a became-online
// transition.
func (e *PinEngine) RefreshPinned(ctx context.Context, prog chan<- ProgressUpdate) (*PinRunResult, error) {
	pins := e.guides.Pinned()

	ids := make([]string, 0, len(pins))
	for _, p := range pins {
		ids = append(ids, p.ID)
	}

	e.sendProgress(prog, ProgressUpdate{
		Phase:   RefreshPins,
		Total:   len(ids),
		Message: fmt.Sprintf("Refreshing %d pinned guides", len(ids)),
	})

	return e.Run(ctx, ids, prog)
}

// sendProgress sends an update without blocking when no consumer is ready.
func (e *PinEngine) sendProgress(prog chan<- ProgressUpdate, update ProgressUpdate) {
	if prog == nil {
		return
	}
	select {
	case prog <- update:
	default:
	}
}
