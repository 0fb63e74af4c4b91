// Package resolver implements the result resolution state machine: the logic
// that decides, for one invocation, whether to render a previously computed
// report from the local cache, fetch a shared report by id from the remote
// store, recompute a report from fresh listening data and persist it, or end
// in a defined failure state.
//
// # States
//
// A run starts at the identity check and ends in exactly one of:
//
//   - Rendered: a full report, either shared (fetched by id, read-only,
//     never written to the personal cache slot) or personal (cache hit or
//     freshly computed).
//   - AuthMissing: no credential and no shared id; distinct from Unavailable
//     so callers can render a login prompt instead of an error.
//   - Unavailable: shared id unknown, identity unresolvable on the personal
//     path, or any external call failing during recompute. Partial reports
//     are never rendered or cached.
//
// # Cache coherence
//
// The personal slot is valid only while the cached report's owner id equals
// the freshly resolved identity. Any mismatch discards the whole entry and
// forces a recompute. The only other cache-busting paths are the explicit
// refresh action and logout.
//
// # Overlapping runs
//
// Each run takes a generation number from an atomic counter. Every commit
// (cache write, location replace, returned rendered state) is guarded by a
// generation check, so a slow run that completes after a newer one started
// discards its result instead of overwriting newer state.
package resolver
