// Package server exposes the local cache over a read-only HTTP API.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Handlers
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
//
// [CacheHandler] serves the guide catalog and offline pins; [PlannerHandler]
// serves destinations and saved trip plans. Both are strictly read-only:
// writes happen through the CLI and TUI, never over HTTP.
//
// Routes:
//
//	GET /health            → liveness + connectivity state
//	GET /guides            → master guide collection
//	GET /guides/{id}       → one guide
//	GET /offline           → offline pins
//	GET /destinations      → destination records
//	GET /trips             → saved trip plans
//	GET /trips/{id}        → one trip plan
package server
