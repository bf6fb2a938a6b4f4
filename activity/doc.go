// Package activity records the session activity trail. MemoryStore and the
// Bun-backed Repository both implement the ActivitySink (writes) and the
// ActivityRepository read-side contract so commands can log profile changes
// and transports can list them. Payloads are masked before they are stored.
package activity
