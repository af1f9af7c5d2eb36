package repositories

import (
	"errors"
	"testing"
	"time"

	"github.com/wanderwise/wander/internal/models"
	"github.com/wanderwise/wander/internal/shared"
	"github.com/wanderwise/wander/internal/storage"
)

// setupTestEngine creates an engine backed by an in-memory SQLite database.
func setupTestEngine(t *testing.T) *storage.Engine {
	t.Helper()

	engine := storage.NewEngine(":memory:", shared.NewLogger(nil))
	if _, err := engine.Open(); err != nil {
		t.Fatalf("failed to open test engine: %v", err)
	}
	t.Cleanup(func() { engine.Close() })

	return engine
}

// brokenEngine returns an engine whose open permanently fails.
func brokenEngine(t *testing.T) *storage.Engine {
	t.Helper()
	return storage.NewEngine("/nonexistent-dir/wander.db", shared.NewLogger(nil))
}

func testGuide(id string) models.Guide {
	return models.Guide{
		ID:              id,
		Destination:     "Paris",
		Country:         "France",
		Description:     "The City of Light",
		MainAttractions: []string{"Eiffel Tower", "Louvre Museum"},
		BestTimeToVisit: "April to June",
		Language:        "French",
		Currency:        "Euro",
	}
}

func TestGuideRepository(t *testing.T) {
	t.Run("SaveAssignsID", func(t *testing.T) {
		repo := NewGuideRepository(setupTestEngine(t), nil)

		guide := testGuide("")
		saved, err := repo.SaveGuide(guide)
		if err != nil {
			t.Fatalf("failed to save guide: %v", err)
		}
		if saved.ID == "" {
			t.Error("expected an id to be assigned")
		}
	})

	t.Run("SaveRejectsInvalid", func(t *testing.T) {
		repo := NewGuideRepository(setupTestEngine(t), nil)

		if _, err := repo.SaveGuide(models.Guide{ID: "x"}); err == nil {
			t.Error("expected validation error for guide without destination")
		}
	})

	t.Run("SaveTwiceKeepsOneRecord", func(t *testing.T) {
		engine := setupTestEngine(t)
		repo := NewGuideRepository(engine, nil)

		guide := testGuide("paris")
		if _, err := repo.SaveGuide(guide); err != nil {
			t.Fatalf("first save failed: %v", err)
		}

		guide.Description = "Updated description"
		if _, err := repo.SaveGuide(guide); err != nil {
			t.Fatalf("second save failed: %v", err)
		}

		guides := repo.AllGuides()
		if len(guides) != 1 {
			t.Fatalf("expected 1 guide after re-save, got %d", len(guides))
		}
		if guides[0].Description != "Updated description" {
			t.Errorf("expected second save's fields, got %q", guides[0].Description)
		}
	})

	t.Run("GuideByIDAbsent", func(t *testing.T) {
		repo := NewGuideRepository(setupTestEngine(t), nil)

		if g := repo.GuideByID("missing"); g != nil {
			t.Errorf("expected nil for absent guide, got %+v", g)
		}
	})

	t.Run("ReadsDegradeWhenStorageUnavailable", func(t *testing.T) {
		repo := NewGuideRepository(brokenEngine(t), nil)

		if guides := repo.AllGuides(); len(guides) != 0 {
			t.Errorf("expected empty slice, got %d guides", len(guides))
		}
		if pins := repo.Pinned(); len(pins) != 0 {
			t.Errorf("expected empty slice, got %d pins", len(pins))
		}
		if g := repo.GuideByID("paris"); g != nil {
			t.Errorf("expected nil guide, got %+v", g)
		}
	})

	t.Run("WritesSurfaceStorageErrors", func(t *testing.T) {
		repo := NewGuideRepository(brokenEngine(t), nil)

		if _, err := repo.SaveGuide(testGuide("paris")); !errors.Is(err, shared.ErrStorageUnavailable) {
			t.Errorf("expected ErrStorageUnavailable, got %v", err)
		}
	})
}

func TestGuidePinning(t *testing.T) {
	t.Run("PinStoresGuideAndSnapshot", func(t *testing.T) {
		engine := setupTestEngine(t)
		repo := NewGuideRepository(engine, nil)
		repo.now = func() time.Time {
			return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
		}

		pin, err := repo.PinForOffline(testGuide("paris"))
		if err != nil {
			t.Fatalf("failed to pin guide: %v", err)
		}

		if pin.PinnedAt != time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC) {
			t.Errorf("unexpected pin timestamp: %v", pin.PinnedAt)
		}

		// The master store always holds a pinned guide.
		if g := repo.GuideByID("paris"); g == nil {
			t.Error("expected pinned guide to exist in the master store")
		}
		if !repo.IsPinned("paris") {
			t.Error("expected guide to report as pinned")
		}
	})

	t.Run("PinSurvivesRestart", func(t *testing.T) {
		dir := t.TempDir()
		path := dir + "/wander.db"

		repo := NewGuideRepository(storage.NewEngine(path, shared.NewLogger(nil)), nil)
		if _, err := repo.PinForOffline(testGuide("paris")); err != nil {
			t.Fatalf("failed to pin guide: %v", err)
		}
		repo.engine.Close()

		reopened := NewGuideRepository(storage.NewEngine(path, shared.NewLogger(nil)), nil)
		defer reopened.engine.Close()

		pins := reopened.Pinned()
		if len(pins) != 1 {
			t.Fatalf("expected 1 pin after reopen, got %d", len(pins))
		}
		if pins[0].Destination != "Paris" {
			t.Errorf("expected pinned snapshot to carry guide content, got %q", pins[0].Destination)
		}
	})

	t.Run("UnpinKeepsGuide", func(t *testing.T) {
		repo := NewGuideRepository(setupTestEngine(t), nil)

		if _, err := repo.PinForOffline(testGuide("paris")); err != nil {
			t.Fatalf("failed to pin guide: %v", err)
		}

		if err := repo.Unpin("paris"); err != nil {
			t.Fatalf("failed to unpin: %v", err)
		}

		if repo.IsPinned("paris") {
			t.Error("expected guide to be unpinned")
		}
		if g := repo.GuideByID("paris"); g == nil {
			t.Error("expected guide to remain in the master store after unpin")
		}
	})

	t.Run("UnpinAbsentIsNoOp", func(t *testing.T) {
		repo := NewGuideRepository(setupTestEngine(t), nil)

		if err := repo.Unpin("never-pinned"); err != nil {
			t.Errorf("expected unpinning an absent id to succeed, got %v", err)
		}
	})

	t.Run("RepinRefreshesSnapshot", func(t *testing.T) {
		repo := NewGuideRepository(setupTestEngine(t), nil)

		guide := testGuide("paris")
		if _, err := repo.PinForOffline(guide); err != nil {
			t.Fatalf("first pin failed: %v", err)
		}

		guide.Description = "Refreshed"
		if _, err := repo.PinForOffline(guide); err != nil {
			t.Fatalf("second pin failed: %v", err)
		}

		pins := repo.Pinned()
		if len(pins) != 1 {
			t.Fatalf("expected 1 pin after re-pin, got %d", len(pins))
		}
		if pins[0].Description != "Refreshed" {
			t.Errorf("expected refreshed snapshot, got %q", pins[0].Description)
		}
	})
}

func TestDestinationRepository(t *testing.T) {
	t.Run("AddAssignsDistinctIDs", func(t *testing.T) {
		repo := NewDestinationRepository(setupTestEngine(t), nil)

		first := repo.Add(models.Destination{Name: "Paris", Country: "France"})
		if !first.OK {
			t.Fatalf("first add failed: %v", first.Err)
		}
		second := repo.Add(models.Destination{Name: "Tokyo", Country: "Japan"})
		if !second.OK {
			t.Fatalf("second add failed: %v", second.Err)
		}

		if first.ID == second.ID {
			t.Errorf("expected distinct ids, both were %d", first.ID)
		}
	})

	t.Run("DuplicateNameConflicts", func(t *testing.T) {
		repo := NewDestinationRepository(setupTestEngine(t), nil)

		if res := repo.Add(models.Destination{Name: "Paris", Country: "France"}); !res.OK {
			t.Fatalf("first add failed: %v", res.Err)
		}

		res := repo.Add(models.Destination{Name: "Paris", Country: "France"})
		if res.OK {
			t.Fatal("expected duplicate name to be rejected")
		}
		if !errors.Is(res.Err, shared.ErrKeyConflict) {
			t.Errorf("expected ErrKeyConflict, got %v", res.Err)
		}
	})

	t.Run("AddRejectsInvalid", func(t *testing.T) {
		repo := NewDestinationRepository(setupTestEngine(t), nil)

		if res := repo.Add(models.Destination{Name: "Nowhere"}); res.OK {
			t.Error("expected destination without country to be rejected")
		}
	})

	t.Run("AllReturnsAssignedIDs", func(t *testing.T) {
		repo := NewDestinationRepository(setupTestEngine(t), nil)

		repo.Add(models.Destination{Name: "Paris", Country: "France"})
		repo.Add(models.Destination{Name: "Tokyo", Country: "Japan"})

		dests := repo.All()
		if len(dests) != 2 {
			t.Fatalf("expected 2 destinations, got %d", len(dests))
		}
		if dests[0].ID == 0 || dests[1].ID == 0 {
			t.Error("expected assigned ids on listed destinations")
		}
	})

	t.Run("ReadsDegradeWhenStorageUnavailable", func(t *testing.T) {
		repo := NewDestinationRepository(brokenEngine(t), nil)

		if dests := repo.All(); len(dests) != 0 {
			t.Errorf("expected empty slice, got %d destinations", len(dests))
		}
	})

	t.Run("WriteResultCarriesStorageError", func(t *testing.T) {
		repo := NewDestinationRepository(brokenEngine(t), nil)

		res := repo.Add(models.Destination{Name: "Paris", Country: "France"})
		if res.OK {
			t.Fatal("expected add against unavailable storage to fail")
		}
		if !errors.Is(res.Err, shared.ErrStorageUnavailable) {
			t.Errorf("expected ErrStorageUnavailable, got %v", res.Err)
		}
	})
}

func testPlan() models.TripPlan {
	return models.TripPlan{
		TripName:    "Spring in Paris",
		Destination: "Paris, France",
		StartDate:   "2026-04-10",
		EndDate:     "2026-04-14",
		Activities: []models.Activity{
			{Name: "Flight to CDG", Type: models.ActivityFlight, Location: "CDG Airport", Date: "2026-04-10", Cost: 420},
			{Name: "Louvre", Type: models.ActivityAttraction, Location: "Rue de Rivoli", Date: "2026-04-11", Cost: 22},
		},
	}
}

func TestTripRepository(t *testing.T) {
	t.Run("SaveStampsAndComputes", func(t *testing.T) {
		repo := NewTripRepository(setupTestEngine(t), nil)
		created := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
		repo.now = func() time.Time { return created }

		res := repo.Save(testPlan())
		if !res.OK {
			t.Fatalf("failed to save plan: %v", res.Err)
		}

		plan := repo.ByID(res.ID)
		if plan == nil {
			t.Fatal("expected saved plan to be readable")
		}
		if !plan.CreatedAt.Equal(created) {
			t.Errorf("expected creation timestamp %v, got %v", created, plan.CreatedAt)
		}
		if plan.TotalSpent != 442 {
			t.Errorf("expected total spent 442, got %v", plan.TotalSpent)
		}
		if plan.DaysInTrip != 5 {
			t.Errorf("expected 5 days, got %d", plan.DaysInTrip)
		}
	})

	t.Run("EverySaveIsANewRecord", func(t *testing.T) {
		repo := NewTripRepository(setupTestEngine(t), nil)

		first := repo.Save(testPlan())
		second := repo.Save(testPlan())
		if !first.OK || !second.OK {
			t.Fatalf("saves failed: %v, %v", first.Err, second.Err)
		}
		if first.ID == second.ID {
			t.Errorf("expected distinct ids, both were %d", first.ID)
		}

		if plans := repo.All(); len(plans) != 2 {
			t.Errorf("expected 2 plans, got %d", len(plans))
		}
	})

	t.Run("SaveRejectsInvalidDates", func(t *testing.T) {
		repo := NewTripRepository(setupTestEngine(t), nil)

		plan := testPlan()
		plan.StartDate = "2026-04-14"
		plan.EndDate = "2026-04-10"

		if res := repo.Save(plan); res.OK {
			t.Error("expected plan ending before it starts to be rejected")
		}
	})

	t.Run("ByIDAbsent", func(t *testing.T) {
		repo := NewTripRepository(setupTestEngine(t), nil)

		if plan := repo.ByID(99); plan != nil {
			t.Errorf("expected nil for absent plan, got %+v", plan)
		}
	})

	t.Run("ReadsDegradeWhenStorageUnavailable", func(t *testing.T) {
		repo := NewTripRepository(brokenEngine(t), nil)

		if plans := repo.All(); len(plans) != 0 {
			t.Errorf("expected empty slice, got %d plans", len(plans))
		}
	})
}
