// Package api implements the HTTP REST API and WebSocket server for the
// Hearthwatch planner.
//
// This package provides:
//   - REST endpoints for layout CRUD, placement editing, coverage overlays,
//     effort estimates, and tier plan building
//   - WebSocket hub for real-time planning event broadcasts
//   - Signed share links granting read-only access to coverage reports
//   - Middleware stack (request ID, logging, recovery, CORS)
//   - TLS support for production deployments
//
// # Architecture
//
// The API server sits between the floor-plan editor and the planning
// engines. Handlers call the layout, coverage, effort, and plan packages
// synchronously; results fan out as WebSocket broadcasts to connected
// editors and as MQTT events for external consumers.
//
// # Sharing
//
// Share links embed the layout id in a signed, expiring HS256 token. The
// token grants read access to one layout's coverage report and nothing
// else, so shared reports need no user accounts.
//
// # Graceful Degradation
//
// MQTT, InfluxDB, and the audit store are optional dependencies. The
// server runs without any of them; only the corresponding side effects
// are skipped.
package api
