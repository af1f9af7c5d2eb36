package server

import (
	"net/http"
	"strconv"

	"github.com/wanderwise/wander/internal/network"
	"github.com/wanderwise/wander/internal/repositories"
)

// CacheHandler serves the guide catalog and the offline pin set.
type CacheHandler struct {
	guides  *repositories.GuideRepository
	monitor *network.Monitor
}

// NewCacheHandler creates a CacheHandler. The monitor may be nil, in which
// case /health omits connectivity.
func NewCacheHandler(guides *repositories.GuideRepository, monitor *network.Monitor) *CacheHandler {
	return &CacheHandler{guides: guides, monitor: monitor}
}

// Routes returns the path patterns this handler serves.
func (h *CacheHandler) Routes() []string {
	return []string{
		"GET /health",
		"GET /guides",
		"GET /guides/{id}",
		"GET /offline",
	}
}

// ServeHTTP dispatches on the matched route pattern.
func (h *CacheHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Pattern {
	case "GET /health":
		h.health(w)
	case "GET /guides":
		writeJSON(w, http.StatusOK, h.guides.AllGuides())
	case "GET /guides/{id}":
		h.guideByID(w, r)
	case "GET /offline":
		writeJSON(w, http.StatusOK, h.guides.Pinned())
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (h *CacheHandler) health(w http.ResponseWriter) {
	body := map[string]any{"status": "ok"}
	if h.monitor != nil {
		body["online"] = h.monitor.Online()
	}
	writeJSON(w, http.StatusOK, body)
}

func (h *CacheHandler) guideByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	guide := h.guides.GuideByID(id)
	if guide == nil {
		writeError(w, http.StatusNotFound, "guide not found: "+id)
		return
	}

	writeJSON(w, http.StatusOK, guide)
}

// PlannerHandler serves user-created destinations and saved trip plans.
type PlannerHandler struct {
	destinations *repositories.DestinationRepository
	trips        *repositories.TripRepository
}

// NewPlannerHandler creates a PlannerHandler over the given repositories.
func NewPlannerHandler(destinations *repositories.DestinationRepository, trips *repositories.TripRepository) *PlannerHandler {
	return &PlannerHandler{destinations: destinations, trips: trips}
}

// Routes returns the path patterns this handler serves.
func (h *PlannerHandler) Routes() []string {
	return []string{
		"GET /destinations",
		"GET /trips",
		"GET /trips/{id}",
	}
}

// ServeHTTP dispatches on the matched route pattern.
func (h *PlannerHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Pattern {
	case "GET /destinations":
		writeJSON(w, http.StatusOK, h.destinations.All())
	case "GET /trips":
		writeJSON(w, http.StatusOK, h.trips.All())
	case "GET /trips/{id}":
		h.tripByID(w, r)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (h *PlannerHandler) tripByID(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("id")

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid trip id: "+raw)
		return
	}

	plan := h.trips.ByID(id)
	if plan == nil {
		writeError(w, http.StatusNotFound, "trip plan not found: "+raw)
		return
	}

	writeJSON(w, http.StatusOK, plan)
}

var (
	_ Handler = (*CacheHandler)(nil)
	_ Handler = (*PlannerHandler)(nil)
)
