// Package service coordinates the topology engine with persistence, live
// metrics and connected clients.
//
// # Services
//
// PanelService owns one panel. It serializes every external event (an
// edit from the API, a metrics push, a feed file change, a backup import)
// behind a single mutex so the engine never sees concurrent mutation and
// projections never observe a half-applied edit. Saving writes the current
// topology and theme to the repository and is the only operation that
// clears the unsaved-changes flag.
//
// Traffic histories for the info view are extracted from the latest
// series on demand and cached per edge until the next push.
//
// # Event System
//
// Every state change is published on an EventBus. The server forwards the
// events to browsers over Server-Sent Events.
package service
