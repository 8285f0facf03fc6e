// Package handler implements the HTTP API of the topology editor.
//
// # Handlers
//
// PanelHandler exposes one panel: the topology view with derived display
// fields, every editing operation, interactive link creation, metrics
// pushes, theme, save, revisions and backup import/export.
//
// Middleware provides panic recovery, CORS and request logging.
//
// # API Design
//
// Reads are GET, edits are POST, PUT and DELETE on the element they touch.
// Every successful edit answers with the full topology view so the client
// can redraw without a second request; the same view is also pushed to
// Server-Sent Events subscribers.
//
// # Response Format
//
// Error responses return JSON with an {error, details} structure. error is
// a message in the panel language (or the one requested with ?lang= or
// Accept-Language); details carries the raw error. Rejections map to 404
// for unknown elements, 409 for conflicts with existing links or devices
// and 422 for structurally invalid requests.
package handler
