// Package models defines the domain entities for the wander travel planner.
//
// Entities fall into two groups:
//
// 1. Catalog entities persisted under caller-supplied keys:
//   - [Guide] : A travel guide for one destination, keyed by its id
//   - [Pin] : A guide snapshot retained for offline viewing, plus pinned_at
//
// 2. User-created entities persisted under engine-assigned integer keys:
//   - [Destination] : A destination record added through the destination form
//   - [TripPlan] : A day-by-day itinerary aggregate
//   - [Activity] : A single itinerary line item, owned by its TripPlan
//
// Entities are stored as JSON documents; the struct tags here define the
// field names the storage layer's secondary indexes extract.
package models
