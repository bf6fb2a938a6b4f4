// Package editor drives the AI-assisted editing workflow: a small state
// machine (idle, editor_open, generating, error) whose generation cycles run
// the bio and link title requests concurrently, join them, and apply the
// result to the profile only while the cycle is still current.
//
// A second Submit while a cycle is generating is rejected rather than
// superseding the running cycle. Close invalidates the running cycle; its
// late result is dropped and reported as ErrGenerationAbandoned.
package editor
