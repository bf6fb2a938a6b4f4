// Package query exposes go-command Querier implementations for the read side
// of the profile: snapshots, tip links and the activity trail.
package query
