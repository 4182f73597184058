// Package core defines the shared conversation primitives of SearchAgent:
// role-based content with a closed set of part types, transcript events, the
// per-run Session owned by a single agent loop, and the RunRecord handed to
// the observability layer when a run completes.
package core
