package models

import (
	"fmt"
	"time"
)

// Guide represents a travel guide for one destination.
//
// A guide's identifier is unique within the master guide store. Guides are
// created by seed import or an explicit save and are never deleted in normal
// operation; removing a pin leaves the guide itself untouched.
type Guide struct {
	ID              string   `json:"id"`
	Destination     string   `json:"destination"`
	Country         string   `json:"country"`
	Description     string   `json:"description"`
	MainAttractions []string `json:"main_attractions"`
	LocalCuisine    []string `json:"local_cuisine"`
	BestTimeToVisit string   `json:"best_time_to_visit"`
	Language        string   `json:"language"`
	Currency        string   `json:"currency"`
	TravelTips      string   `json:"travel_tips"`
	ImageURL        string   `json:"image_url"`
	EstimatedSizeKB int      `json:"estimated_size_kb"`
}

// Validate checks that the guide carries the fields the cache requires.
func (g Guide) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("guide id is required")
	}
	if g.Destination == "" {
		return fmt.Errorf("guide destination is required")
	}
	return nil
}

// Pin marks a [Guide] as retained for offline viewing.
//
// The pin snapshots the full guide so pinned content stays readable without
// consulting any other source, and records when it was pinned.
type Pin struct {
	Guide
	PinnedAt time.Time `json:"pinned_at"`
}

// Destination is a user- or seed-created travel destination record.
//
// The identifier is engine-assigned; names are unique across the store.
type Destination struct {
	ID          int64    `json:"id,omitempty"`
	Name        string   `json:"name"`
	Country     string   `json:"country"`
	Continent   string   `json:"continent"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"review_count"`
	Tags        []string `json:"tags"`
}

// Validate checks the fields the destination form requires.
func (d Destination) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("destination name is required")
	}
	if d.Country == "" {
		return fmt.Errorf("destination country is required")
	}
	return nil
}

// ActivityType enumerates the kinds of itinerary activities.
type ActivityType string

const (
	ActivityFlight        ActivityType = "flight"
	ActivityAccommodation ActivityType = "accommodation"
	ActivityFood          ActivityType = "food"
	ActivityAttraction    ActivityType = "attraction"
	ActivityOther         ActivityType = "other"
)

// Valid reports whether t is one of the enumerated activity types.
func (t ActivityType) Valid() bool {
	switch t {
	case ActivityFlight, ActivityAccommodation, ActivityFood, ActivityAttraction, ActivityOther:
		return true
	}
	return false
}

// Activity is a single itinerary line item owned by its parent [TripPlan].
//
// Dates use the YYYY-MM-DD form and start times HH:MM, matching what the
// itinerary builder collects.
type Activity struct {
	Name      string       `json:"name"`
	Type      ActivityType `json:"type"`
	Location  string       `json:"location"`
	Date      string       `json:"date"`
	StartTime string       `json:"start_time"`
	Cost      float64      `json:"cost"`
	Notes     string       `json:"notes,omitempty"`
}

// Validate checks the fields the itinerary builder requires.
func (a Activity) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("activity name is required")
	}
	if a.Location == "" {
		return fmt.Errorf("activity location is required")
	}
	if !a.Type.Valid() {
		return fmt.Errorf("unknown activity type %q", a.Type)
	}
	return nil
}

// TripPlan is a user-authored itinerary aggregate.
//
// Each save produces a new record; there is no update-in-place. The creation
// timestamp is stamped at save time by the repository.
type TripPlan struct {
	ID          int64      `json:"id,omitempty"`
	TripName    string     `json:"trip_name"`
	Destination string     `json:"destination"`
	StartDate   string     `json:"start_date"`
	EndDate     string     `json:"end_date"`
	Budget      *float64   `json:"budget,omitempty"`
	Activities  []Activity `json:"activities"`
	Notes       string     `json:"notes,omitempty"`
	TotalSpent  float64    `json:"total_spent"`
	DaysInTrip  int        `json:"days_in_trip"`
	CreatedAt   time.Time  `json:"created_at,omitzero"`
}

// Validate checks the fields a trip plan must carry before it is saved.
func (p TripPlan) Validate() error {
	if p.TripName == "" {
		return fmt.Errorf("trip name is required")
	}
	if p.Destination == "" {
		return fmt.Errorf("trip destination is required")
	}
	if _, err := p.Days(); err != nil {
		return err
	}
	for _, a := range p.Activities {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("activity %q: %w", a.Name, err)
		}
	}
	return nil
}

// TotalCost sums the cost of every activity in the plan.
func (p TripPlan) TotalCost() float64 {
	var total float64
	for _, a := range p.Activities {
		total += a.Cost
	}
	return total
}

// Days returns the inclusive day count between the start and end dates.
func (p TripPlan) Days() (int, error) {
	start, err := time.Parse("2006-01-02", p.StartDate)
	if err != nil {
		return 0, fmt.Errorf("invalid start date %q: %w", p.StartDate, err)
	}
	end, err := time.Parse("2006-01-02", p.EndDate)
	if err != nil {
		return 0, fmt.Errorf("invalid end date %q: %w", p.EndDate, err)
	}
	if end.Before(start) {
		return 0, fmt.Errorf("end date %s precedes start date %s", p.EndDate, p.StartDate)
	}
	return int(end.Sub(start).Hours()/24) + 1, nil
}

// SaveResult is the outcome of a write against the user-content stores.
//
// Writes never surface a Go error directly to the UI layer; callers inspect
// the result and translate failures into user-facing messages.
type SaveResult struct {
	OK  bool
	ID  int64
	Err error
}
