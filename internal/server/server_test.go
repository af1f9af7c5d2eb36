package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/wanderwise/wander/internal/models"
	"github.com/wanderwise/wander/internal/network"
	"github.com/wanderwise/wander/internal/repositories"
	"github.com/wanderwise/wander/internal/shared"
	"github.com/wanderwise/wander/internal/storage"
	tu "github.com/wanderwise/wander/internal/testing"
)

type testRepos struct {
	guides       *repositories.GuideRepository
	destinations *repositories.DestinationRepository
	trips        *repositories.TripRepository
}

func setupRepos(t *testing.T) testRepos {
	t.Helper()

	engine := storage.NewEngine(":memory:", shared.NewLogger(nil))
	if _, err := engine.Open(); err != nil {
		t.Fatalf("failed to open test engine: %v", err)
	}
	t.Cleanup(func() { engine.Close() })

	return testRepos{
		guides:       repositories.NewGuideRepository(engine, nil),
		destinations: repositories.NewDestinationRepository(engine, nil),
		trips:        repositories.NewTripRepository(engine, nil),
	}
}

// setupServer builds a router with both handlers over fresh repositories.
func setupServer(t *testing.T, online bool) (testRepos, *httptest.Server) {
	t.Helper()

	repos := setupRepos(t)
	monitor := network.NewMonitor(tu.NewTogglableProbe(online).Probe, time.Minute, nil)

	router := NewBasicRouter()
	router.Handler(NewCacheHandler(repos.guides, monitor))
	router.Handler(NewPlannerHandler(repos.destinations, repos.trips))

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return repos, srv
}

func get(t *testing.T, url string, v any) int {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return resp.StatusCode
}

func TestHealthEndpoint(t *testing.T) {
	_, srv := setupServer(t, true)

	var body map[string]any
	if status := get(t, srv.URL+"/health", &body); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %v", body["status"])
	}
	if body["online"] != true {
		t.Errorf("expected online true, got %v", body["online"])
	}
}

func TestGuideEndpoints(t *testing.T) {
	repos, srv := setupServer(t, true)

	saved, err := repos.guides.SaveGuide(models.Guide{ID: "paris", Destination: "Paris", Country: "France"})
	if err != nil {
		t.Fatalf("failed to save guide: %v", err)
	}

	t.Run("ListGuides", func(t *testing.T) {
		var guides []models.Guide
		if status := get(t, srv.URL+"/guides", &guides); status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		if len(guides) != 1 || guides[0].ID != "paris" {
			t.Errorf("unexpected guides: %+v", guides)
		}
	})

	t.Run("GuideByID", func(t *testing.T) {
		var guide models.Guide
		if status := get(t, srv.URL+"/guides/paris", &guide); status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		if guide.Destination != saved.Destination {
			t.Errorf("expected %q, got %q", saved.Destination, guide.Destination)
		}
	})

	t.Run("GuideNotFound", func(t *testing.T) {
		var body map[string]string
		if status := get(t, srv.URL+"/guides/atlantis", &body); status != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", status)
		}
		if body["error"] == "" {
			t.Error("expected a JSON error body")
		}
	})

	t.Run("OfflineSet", func(t *testing.T) {
		if _, err := repos.guides.PinForOffline(saved); err != nil {
			t.Fatalf("failed to pin guide: %v", err)
		}

		var pins []models.Pin
		if status := get(t, srv.URL+"/offline", &pins); status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		if len(pins) != 1 || pins[0].ID != "paris" {
			t.Errorf("unexpected pins: %+v", pins)
		}
	})

	t.Run("WriteMethodRejected", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/guides", "application/json", nil)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", resp.StatusCode)
		}
	})
}

func TestPlannerEndpoints(t *testing.T) {
	repos, srv := setupServer(t, true)

	if res := repos.destinations.Add(models.Destination{Name: "Paris", Country: "France"}); !res.OK {
		t.Fatalf("failed to add destination: %v", res.Err)
	}
	tripRes := repos.trips.Save(models.TripPlan{
		TripName:    "Spring in Paris",
		Destination: "Paris, France",
		StartDate:   "2026-04-10",
		EndDate:     "2026-04-14",
	})
	if !tripRes.OK {
		t.Fatalf("failed to save trip plan: %v", tripRes.Err)
	}

	t.Run("ListDestinations", func(t *testing.T) {
		var dests []models.Destination
		if status := get(t, srv.URL+"/destinations", &dests); status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		if len(dests) != 1 || dests[0].Name != "Paris" {
			t.Errorf("unexpected destinations: %+v", dests)
		}
	})

	t.Run("ListTrips", func(t *testing.T) {
		var plans []models.TripPlan
		if status := get(t, srv.URL+"/trips", &plans); status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		if len(plans) != 1 {
			t.Fatalf("expected 1 plan, got %d", len(plans))
		}
	})

	t.Run("TripByID", func(t *testing.T) {
		var plan models.TripPlan
		url := srv.URL + "/trips/" + strconv.FormatInt(tripRes.ID, 10)
		if status := get(t, url, &plan); status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
		if plan.TripName != "Spring in Paris" {
			t.Errorf("unexpected plan: %+v", plan)
		}
	})

	t.Run("TripBadID", func(t *testing.T) {
		if status := get(t, srv.URL+"/trips/not-a-number", nil); status != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", status)
		}
	})

	t.Run("TripNotFound", func(t *testing.T) {
		if status := get(t, srv.URL+"/trips/9999", nil); status != http.StatusNotFound {
			t.Errorf("expected 404, got %d", status)
		}
	})
}

func TestLoggingMiddleware(t *testing.T) {
	router := NewBasicRouter()
	router.Use(Logging(shared.NewLogger(nil)))
	router.Handle("GET", "/ping", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/ping", nil))

	if rec.Code != http.StatusTeapot {
		t.Errorf("expected middleware to pass the handler's status through, got %d", rec.Code)
	}
}
